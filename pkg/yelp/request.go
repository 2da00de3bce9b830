package yelp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"
)

// endpointURL joins the base URL with the percent-encoded path.
func (c *Client) endpointURL(path string) string {
	return c.baseURL + (&url.URL{Path: path}).EscapedPath()
}

// get signs, sends and decodes exactly one request. params must already be
// owned by the call.
func (c *Client) get(ctx context.Context, path string, params Params, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}

	signed, err := c.auth.SignRequest(c.endpointURL(path), params)
	if err != nil {
		return fmt.Errorf("sign request %s: %w", path, err)
	}

	keys := params.keys()
	sort.Strings(keys)
	c.log.DebugObj("yelp request dispatched", "yelp_request", map[string]any{
		"path":   path,
		"params": keys,
	})

	start := time.Now()
	resp, err := c.http.Get(ctx, signed, c.headers)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}

	status := resp.StatusCode()
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		apiErr := c.errors.HandleError(status, resp.Body())
		if apiErr == nil {
			apiErr = DefaultErrorHandler{}.HandleError(status, resp.Body())
		}
		c.log.WarnObj("yelp request failed", "yelp_error", map[string]any{
			"path":       path,
			"status":     status,
			"error":      apiErr.Error(),
			"elapsed_ms": time.Since(start).Milliseconds(),
		})
		return apiErr
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode %s response: %w: %w", path, ErrMalformedResponse, err)
	}

	c.log.DebugObj("yelp request completed", "yelp_response", map[string]any{
		"path":       path,
		"status":     status,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return nil
}
