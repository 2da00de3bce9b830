package httpclient

import "context"

// Response is the slice of an HTTP response the API client reads.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client issues a single GET and returns the raw response. Implementations must not
// retry or follow up on failures.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}
