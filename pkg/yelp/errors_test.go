package yelp

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestDefaultErrorHandlerMapsDocumentedIDs(t *testing.T) {
	body := []byte(`{"error": {"id": "INVALID_PARAMETER", "text": "One or more parameters are invalid in request", "field": "limit"}}`)

	err := DefaultErrorHandler{}.HandleError(http.StatusBadRequest, body)
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.ID != "INVALID_PARAMETER" || apiErr.Field != "limit" {
		t.Fatalf("unexpected api error %#v", apiErr)
	}
	if !strings.Contains(err.Error(), "field limit") {
		t.Fatalf("error text missing field: %q", err.Error())
	}
}

func TestDefaultErrorHandlerKnowsEveryID(t *testing.T) {
	for id, kind := range errorKinds {
		body := []byte(`{"error":{"id":"` + id + `"}}`)
		err := DefaultErrorHandler{}.HandleError(http.StatusBadRequest, body)
		if !errors.Is(err, kind) {
			t.Fatalf("id %s: expected %v, got %v", id, kind, err)
		}
	}
}

func TestDefaultErrorHandlerFallsBackToStatus(t *testing.T) {
	cases := []struct {
		status int
		body   string
		want   error
	}{
		{http.StatusBadRequest, `not json`, ErrBadRequest},
		{http.StatusUnauthorized, `{"error":{"id":"SOMETHING_NEW"}}`, ErrUnauthorized},
		{http.StatusForbidden, ``, ErrForbidden},
		{http.StatusNotFound, `<html>missing</html>`, ErrNotFound},
		{http.StatusTooManyRequests, `{}`, ErrRateLimited},
		{http.StatusBadGateway, `upstream`, ErrServer},
		{http.StatusTeapot, `?`, ErrUnexpectedStatus},
	}

	for _, tc := range cases {
		err := DefaultErrorHandler{}.HandleError(tc.status, []byte(tc.body))
		if !errors.Is(err, tc.want) {
			t.Fatalf("status %d: expected %v, got %v", tc.status, tc.want, err)
		}
		var apiErr *APIError
		if !errors.As(err, &apiErr) || apiErr.ID != "" {
			t.Fatalf("status %d: expected APIError without id, got %#v", tc.status, err)
		}
	}
}

func TestBodySnippetTruncates(t *testing.T) {
	long := strings.Repeat("x", maxSnippetBytes+20)
	got := bodySnippet([]byte(long))
	if len(got) != maxSnippetBytes+3 || !strings.HasSuffix(got, "...") {
		t.Fatalf("unexpected snippet length %d", len(got))
	}
}
