package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/samvad-hq/yelp-go/internal/config"
	"github.com/samvad-hq/yelp-go/pkg/httpclient"
	"github.com/samvad-hq/yelp-go/pkg/yelp"
	"gopkg.in/yaml.v3"
)

type stubResponse struct {
	status int
	body   []byte
}

func (r stubResponse) Body() []byte    { return r.body }
func (r stubResponse) StatusCode() int { return r.status }

type stubHTTPClient struct {
	status int
	body   string
	urls   []string
}

func (s *stubHTTPClient) Get(_ context.Context, rawURL string, _ map[string]string) (httpclient.Response, error) {
	s.urls = append(s.urls, rawURL)
	status := s.status
	if status == 0 {
		status = 200
	}
	return stubResponse{status: status, body: []byte(s.body)}, nil
}

const searchBody = `{"total":1,"businesses":[{"id":"yelp-sf","name":"Yelp","rating":4.5,"review_count":10,"categories":[["Local Flavor","localflavor"]]}]}`

func testConfig(format string) *config.Config {
	return &config.Config{
		OutputFormat:   format,
		BaseURL:        "https://api.example.test",
		ConsumerKey:    "ck",
		ConsumerSecret: "cs",
		Token:          "tok",
		TokenSecret:    "ts",
	}
}

func newTestRunner(t *testing.T, format string, hc *stubHTTPClient) *Runner {
	t.Helper()
	r, err := NewRunner(testConfig(format), nil, yelp.WithHTTPClient(hc))
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	return r
}

func lastQuery(t *testing.T, hc *stubHTTPClient) (*url.URL, url.Values) {
	t.Helper()
	if len(hc.urls) == 0 {
		t.Fatalf("no request sent")
	}
	u, err := url.Parse(hc.urls[len(hc.urls)-1])
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	return u, u.Query()
}

func TestNewRunnerRequiresCredentials(t *testing.T) {
	cfg := testConfig(config.OutputJSON)
	cfg.TokenSecret = ""
	if _, err := NewRunner(cfg, nil); err == nil || !strings.Contains(err.Error(), "build authenticator") {
		t.Fatalf("expected authenticator error, got %v", err)
	}
	if _, err := NewRunner(nil, nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}

func TestRunCoordsWithNegativeLongitude(t *testing.T) {
	hc := &stubHTTPClient{body: searchBody}
	r := newTestRunner(t, config.OutputJSON, hc)

	var out bytes.Buffer
	if err := r.Run(context.Background(), []string{"coords", "37.8", "-122.4", "--accuracy", "10", "--param", "term=food"}, &out); err != nil {
		t.Fatalf("Run: %v", err)
	}

	u, q := lastQuery(t, hc)
	if u.Host != "api.example.test" || u.Path != yelp.SearchPath {
		t.Fatalf("unexpected endpoint %s", u)
	}
	if q.Get("ll") != "37.8,-122.4,10" {
		t.Fatalf("ll = %q", q.Get("ll"))
	}
	if q.Get("term") != "food" || q.Get("oauth_signature") == "" {
		t.Fatalf("missing params in %v", q)
	}

	var resp yelp.SearchResponse
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if resp.Total != 1 || resp.Businesses[0].Categories[0].Alias != "localflavor" {
		t.Fatalf("unexpected output %+v", resp)
	}
}

func TestRunSearchRequiresLatAndLongTogether(t *testing.T) {
	hc := &stubHTTPClient{body: searchBody}
	r := newTestRunner(t, config.OutputJSON, hc)

	err := r.Run(context.Background(), []string{"search", "San Francisco", "--lat", "37.7"}, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "--lat and --long") {
		t.Fatalf("expected lat/long error, got %v", err)
	}
	if len(hc.urls) != 0 {
		t.Fatalf("no request expected")
	}

	if err := r.Run(context.Background(), []string{"search", "--lat", "37.7", "--long=-122.4", "San Francisco"}, &bytes.Buffer{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	_, q := lastQuery(t, hc)
	if q.Get("location") != "San Francisco" || q.Get("cll") != "37.7,-122.4" {
		t.Fatalf("unexpected query %v", q)
	}
}

func TestRunBoundingBox(t *testing.T) {
	hc := &stubHTTPClient{body: searchBody}
	r := newTestRunner(t, config.OutputJSON, hc)

	if err := r.Run(context.Background(), []string{"bbox", "37.9", "-122.5", "37.788022", "-122.399797"}, &bytes.Buffer{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	_, q := lastQuery(t, hc)
	if q.Get("bounds") != "37.9,-122.5|37.788022,-122.399797" {
		t.Fatalf("bounds = %q", q.Get("bounds"))
	}
}

func TestRunBusinessRendersYAML(t *testing.T) {
	hc := &stubHTTPClient{body: `{"id":"yelp-san-francisco","name":"Yelp","rating":4,"review_count":3}`}
	r := newTestRunner(t, config.OutputYAML, hc)

	var out bytes.Buffer
	if err := r.Run(context.Background(), []string{"business", "yelp-san-francisco"}, &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	u, _ := lastQuery(t, hc)
	if u.Path != yelp.BusinessPath+"yelp-san-francisco" {
		t.Fatalf("path = %q", u.Path)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if doc["id"] != "yelp-san-francisco" || doc["name"] != "Yelp" {
		t.Fatalf("unexpected YAML document %v", doc)
	}
}

func TestRunPhone(t *testing.T) {
	hc := &stubHTTPClient{body: searchBody}
	r := newTestRunner(t, config.OutputJSON, hc)

	if err := r.Run(context.Background(), []string{"phone", "+15555555555"}, &bytes.Buffer{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	u, q := lastQuery(t, hc)
	if u.Path != yelp.PhoneSearchPath || q.Get("phone") != "+15555555555" {
		t.Fatalf("unexpected request %s", u)
	}
}

func TestRunPropagatesAPIErrors(t *testing.T) {
	hc := &stubHTTPClient{status: 400, body: `{"error":{"id":"UNSPECIFIED_LOCATION","text":"Location not specified"}}`}
	r := newTestRunner(t, config.OutputJSON, hc)

	var out bytes.Buffer
	err := r.Run(context.Background(), []string{"search", "nowhere"}, &out)
	if !errors.Is(err, yelp.ErrUnspecifiedLocation) {
		t.Fatalf("expected ErrUnspecifiedLocation, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("nothing should be rendered on failure, got %q", out.String())
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	hc := &stubHTTPClient{body: searchBody}
	r := newTestRunner(t, config.OutputJSON, hc)

	cases := map[string][]string{
		"no command":      nil,
		"unknown command": {"reviews"},
		"missing arg":     {"business"},
		"extra arg":       {"phone", "1", "2"},
		"bad float":       {"coords", "north", "-122.4"},
		"bad param":       {"business", "x", "--param", "novalue"},
		"unknown flag":    {"business", "x", "--verbose", "1"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			if err := r.Run(context.Background(), args, &bytes.Buffer{}); err == nil {
				t.Fatalf("expected error for %v", args)
			}
		})
	}
	if len(hc.urls) != 0 {
		t.Fatalf("no request expected, got %v", hc.urls)
	}
}

func TestSplitArgs(t *testing.T) {
	flags, positional := splitArgs([]string{"37.8", "-122.4", "--accuracy", "5", "--param=term=x", "--", "-v"})
	if strings.Join(flags, " ") != "--accuracy 5 --param=term=x" {
		t.Fatalf("flags = %v", flags)
	}
	if strings.Join(positional, " ") != "37.8 -122.4 -v" {
		t.Fatalf("positional = %v", positional)
	}
}

func TestUsageListsCommands(t *testing.T) {
	var buf bytes.Buffer
	Usage(&buf)
	for name := range commands {
		if !strings.Contains(buf.String(), name) {
			t.Fatalf("usage missing %q", name)
		}
	}
}
