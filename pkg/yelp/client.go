// Package yelp is a client for the Yelp v2 local search API. Each method maps
// to one signed GET request and returns the decoded response.
package yelp

import (
	"context"
	"errors"
	"strings"

	"github.com/samvad-hq/yelp-go/pkg/httpclient"
)

const (
	DefaultBaseURL  = "https://api.yelp.com"
	BusinessPath    = "/v2/business/"
	SearchPath      = "/v2/search/"
	PhoneSearchPath = "/v2/phone_search/"
)

// Client talks to the API. A Client holds no per-call state but is meant to be
// used by one goroutine at a time.
type Client struct {
	auth    Authenticator
	http    httpclient.Client
	errors  ErrorHandler
	baseURL string
	headers map[string]string
	log     Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default resty transport.
func WithHTTPClient(hc httpclient.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithBaseURL points the client at another scheme and host, e.g. a local mock.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/"); trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithErrorHandler replaces DefaultErrorHandler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(c *Client) {
		if h != nil {
			c.errors = h
		}
	}
}

// WithHeaders adds static headers to every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		if len(headers) == 0 {
			return
		}
		if c.headers == nil {
			c.headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(log Logger) Option {
	return func(c *Client) {
		c.log = ensureLogger(log)
	}
}

// NewClient builds a Client around auth. The default transport sets no timeout.
func NewClient(auth Authenticator, opts ...Option) (*Client, error) {
	if auth == nil {
		return nil, errors.New("yelp: authenticator must not be nil")
	}

	c := &Client{
		auth:    auth,
		errors:  DefaultErrorHandler{},
		baseURL: DefaultBaseURL,
		log:     noopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.http == nil {
		c.http = httpclient.NewRestyClient(httpclient.Options{})
	}
	return c, nil
}

// GetBusiness looks up one business by id.
func (c *Client) GetBusiness(ctx context.Context, businessID string, params Params) (*BusinessResponse, error) {
	var out BusinessResponse
	if err := c.get(ctx, BusinessPath+businessID, params.clone(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search finds businesses by neighbourhood, address or city. When current is
// set it is sent as the disambiguating "cll" point.
func (c *Client) Search(ctx context.Context, location string, current *LatLong, params Params) (*SearchResponse, error) {
	q := params.clone()
	q[paramLocation] = location
	if current != nil {
		q[paramCurrentLatLong] = FormatLatLong(current.Latitude, current.Longitude)
	}
	return c.search(ctx, SearchPath, q)
}

// SearchByBoundingBox finds businesses inside box.
func (c *Client) SearchByBoundingBox(ctx context.Context, box BoundingBox, params Params) (*SearchResponse, error) {
	q := params.clone()
	q[paramBounds] = FormatBounds(box)
	return c.search(ctx, SearchPath, q)
}

// SearchByCoordinates finds businesses near a point.
func (c *Client) SearchByCoordinates(ctx context.Context, coord Coordinate, params Params) (*SearchResponse, error) {
	q := params.clone()
	q[paramLatLong] = FormatCoordinates(coord)
	return c.search(ctx, SearchPath, q)
}

// PhoneSearch finds businesses listed under phone.
func (c *Client) PhoneSearch(ctx context.Context, phone string, params Params) (*SearchResponse, error) {
	q := params.clone()
	q[paramPhone] = phone
	return c.search(ctx, PhoneSearchPath, q)
}

func (c *Client) search(ctx context.Context, path string, params Params) (*SearchResponse, error) {
	var out SearchResponse
	if err := c.get(ctx, path, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
