package yelp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error kinds documented by the API. Use errors.Is against an error returned
// from any Client method.
var (
	ErrAreaTooLarge            = errors.New("area too large")
	ErrBadCategory             = errors.New("bad category")
	ErrBusinessUnavailable     = errors.New("business unavailable")
	ErrExceededRequests        = errors.New("exceeded request limit")
	ErrInternal                = errors.New("internal api error")
	ErrInvalidOAuthCredentials = errors.New("invalid oauth credentials")
	ErrInvalidOAuthUser        = errors.New("invalid oauth user")
	ErrInvalidParameter        = errors.New("invalid parameter")
	ErrInvalidSignature        = errors.New("invalid signature")
	ErrMissingParameter        = errors.New("missing parameter")
	ErrMultipleLocations       = errors.New("multiple locations")
	ErrSSLRequired             = errors.New("ssl required")
	ErrUnavailableForLocation  = errors.New("unavailable for location")
	ErrUnspecifiedLocation     = errors.New("unspecified location")
)

// Status-derived kinds, used when the body carries no known error id.
var (
	ErrBadRequest       = errors.New("bad request")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrRateLimited      = errors.New("rate limited")
	ErrServer           = errors.New("server error")
	ErrUnexpectedStatus = errors.New("unexpected status")
)

// ErrMalformedResponse wraps JSON decoding failures of a successful response.
var ErrMalformedResponse = errors.New("malformed response")

var errorKinds = map[string]error{
	"AREA_TOO_LARGE":            ErrAreaTooLarge,
	"BAD_CATEGORY":              ErrBadCategory,
	"BUSINESS_UNAVAILABLE":      ErrBusinessUnavailable,
	"EXCEEDED_REQS":             ErrExceededRequests,
	"INTERNAL_ERROR":            ErrInternal,
	"INVALID_OAUTH_CREDENTIALS": ErrInvalidOAuthCredentials,
	"INVALID_OAUTH_USER":        ErrInvalidOAuthUser,
	"INVALID_PARAMETER":         ErrInvalidParameter,
	"INVALID_SIGNATURE":         ErrInvalidSignature,
	"MISSING_PARAMETER":         ErrMissingParameter,
	"MULTIPLE_LOCATIONS":        ErrMultipleLocations,
	"SSL_REQUIRED":              ErrSSLRequired,
	"UNAVAILABLE_FOR_LOCATION":  ErrUnavailableForLocation,
	"UNSPECIFIED_LOCATION":      ErrUnspecifiedLocation,
}

const maxSnippetBytes = 512

// APIError is returned for every non-2xx response handled by
// DefaultErrorHandler.
type APIError struct {
	StatusCode  int
	ID          string
	Text        string
	Field       string
	Description string
	// Body holds a trimmed copy of the raw body when it could not be matched
	// to a documented error id.
	Body string

	kind error
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "yelp api status %d", e.StatusCode)
	if e.ID != "" {
		fmt.Fprintf(&b, " %s", e.ID)
	}
	if e.Text != "" {
		fmt.Fprintf(&b, ": %s", e.Text)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " (field %s)", e.Field)
	}
	if e.ID == "" && e.Body != "" {
		fmt.Fprintf(&b, ": %s", e.Body)
	}
	return b.String()
}

// Unwrap exposes the error kind.
func (e *APIError) Unwrap() error { return e.kind }

// ErrorHandler turns a non-success response into an error.
type ErrorHandler interface {
	HandleError(statusCode int, body []byte) error
}

// DefaultErrorHandler maps the API's documented error ids to error kinds and
// falls back to the HTTP status.
type DefaultErrorHandler struct{}

type errorEnvelope struct {
	Error *struct {
		ID          string `json:"id"`
		Text        string `json:"text"`
		Field       string `json:"field"`
		Description string `json:"description"`
	} `json:"error"`
}

// HandleError always returns a non-nil *APIError.
func (DefaultErrorHandler) HandleError(statusCode int, body []byte) error {
	apiErr := &APIError{StatusCode: statusCode}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil {
		apiErr.Text = env.Error.Text
		apiErr.Field = env.Error.Field
		apiErr.Description = env.Error.Description
		if kind, ok := errorKinds[env.Error.ID]; ok {
			apiErr.ID = env.Error.ID
			apiErr.kind = kind
			return apiErr
		}
	}

	apiErr.Body = bodySnippet(body)
	apiErr.kind = statusKind(statusCode)
	return apiErr
}

func statusKind(code int) error {
	switch {
	case code == http.StatusBadRequest:
		return ErrBadRequest
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	case code == http.StatusForbidden:
		return ErrForbidden
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusTooManyRequests:
		return ErrRateLimited
	case code >= 500:
		return ErrServer
	default:
		return ErrUnexpectedStatus
	}
}

func bodySnippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxSnippetBytes {
		return s[:maxSnippetBytes] + "..."
	}
	return s
}
