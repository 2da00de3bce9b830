// Package auth signs API requests with OAuth 1.0a (HMAC-SHA1), carrying the
// protocol parameters in the query string.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dghubble/oauth1"
	"github.com/google/uuid"
)

const (
	oauthVersion         = "1.0"
	oauthSignatureMethod = "HMAC-SHA1"

	paramConsumerKey     = "oauth_consumer_key"
	paramToken           = "oauth_token"
	paramNonce           = "oauth_nonce"
	paramTimestamp       = "oauth_timestamp"
	paramSignatureMethod = "oauth_signature_method"
	paramVersion         = "oauth_version"
	paramSignature       = "oauth_signature"
)

// Credentials are the four values issued for an API v2 application.
type Credentials struct {
	ConsumerKey    string `json:"consumer_key" yaml:"consumer_key"`
	ConsumerSecret string `json:"consumer_secret" yaml:"consumer_secret"`
	Token          string `json:"token" yaml:"token"`
	TokenSecret    string `json:"token_secret" yaml:"token_secret"`
}

// Validate reports every missing credential at once.
func (c Credentials) Validate() error {
	var errs []error
	if strings.TrimSpace(c.ConsumerKey) == "" {
		errs = append(errs, errors.New("consumer key is required"))
	}
	if strings.TrimSpace(c.ConsumerSecret) == "" {
		errs = append(errs, errors.New("consumer secret is required"))
	}
	if strings.TrimSpace(c.Token) == "" {
		errs = append(errs, errors.New("token is required"))
	}
	if strings.TrimSpace(c.TokenSecret) == "" {
		errs = append(errs, errors.New("token secret is required"))
	}
	return errors.Join(errs...)
}

// OAuth1 signs GET requests. It is safe for concurrent use once built.
type OAuth1 struct {
	creds  Credentials
	signer *oauth1.HMACSigner
	now    func() time.Time
	nonce  func() string
}

// NewOAuth1 builds a signer from creds.
func NewOAuth1(creds Credentials) (*OAuth1, error) {
	if err := creds.Validate(); err != nil {
		return nil, fmt.Errorf("oauth1 credentials: %w", err)
	}
	return newOAuth1WithSources(creds, time.Now, randomNonce), nil
}

func newOAuth1WithSources(creds Credentials, now func() time.Time, nonce func() string) *OAuth1 {
	return &OAuth1{
		creds:  creds,
		signer: &oauth1.HMACSigner{ConsumerSecret: creds.ConsumerSecret},
		now:    now,
		nonce:  nonce,
	}
}

func randomNonce() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// SignRequest returns baseURL with params and the oauth_* protocol parameters
// appended as a sorted, RFC 3986 encoded query string. baseURL must not
// carry a query of its own.
func (a *OAuth1) SignRequest(baseURL string, params map[string]string) (string, error) {
	endpoint, err := normalizeBaseURL(baseURL)
	if err != nil {
		return "", err
	}

	all := make(map[string]string, len(params)+7)
	for k, v := range params {
		all[k] = v
	}
	all[paramConsumerKey] = a.creds.ConsumerKey
	all[paramToken] = a.creds.Token
	all[paramNonce] = a.nonce()
	all[paramTimestamp] = strconv.FormatInt(a.now().Unix(), 10)
	all[paramSignatureMethod] = oauthSignatureMethod
	all[paramVersion] = oauthVersion

	signature, err := a.signer.Sign(a.creds.TokenSecret, signatureBase(http.MethodGet, endpoint, all))
	if err != nil {
		return "", fmt.Errorf("sign request: %w", err)
	}
	all[paramSignature] = signature

	return endpoint + "?" + encodeParams(all), nil
}

// normalizeBaseURL lowercases scheme and host and drops default ports.
func normalizeBaseURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("base url %q must be absolute", raw)
	}
	if u.RawQuery != "" || u.ForceQuery {
		return "", fmt.Errorf("base url %q must not carry a query", raw)
	}

	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())
	if port := u.Port(); port != "" {
		if !(scheme == "http" && port == "80") && !(scheme == "https" && port == "443") {
			host += ":" + port
		}
	}
	return scheme + "://" + host + u.EscapedPath(), nil
}

// signatureBase builds the RFC 5849 section 3.4.1 base string.
func signatureBase(method, endpoint string, params map[string]string) string {
	return strings.ToUpper(method) + "&" + percentEncode(endpoint) + "&" + percentEncode(encodeParams(params))
}

// encodeParams encodes params and sorts them by encoded key. Keys are unique,
// so the value never takes part in ordering.
func encodeParams(params map[string]string) string {
	type pair struct{ key, value string }
	pairs := make([]pair, 0, len(params))
	for k, v := range params {
		pairs = append(pairs, pair{key: percentEncode(k), value: percentEncode(v)})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })

	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.key)
		b.WriteByte('=')
		b.WriteString(p.value)
	}
	return b.String()
}

// percentEncode escapes everything outside the RFC 3986 unreserved set.
func percentEncode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
