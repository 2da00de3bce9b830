package yelp

// BusinessResponse is the decoded body of a business lookup.
type BusinessResponse struct {
	Business `yaml:",inline"`
}

// SearchResponse is the decoded body of every search endpoint.
type SearchResponse struct {
	Region     *Region    `json:"region,omitempty" yaml:"region,omitempty"`
	Total      int        `json:"total" yaml:"total"`
	Businesses []Business `json:"businesses" yaml:"businesses"`
}

// Region describes the map area the search results fall in.
type Region struct {
	Span   *Span    `json:"span,omitempty" yaml:"span,omitempty"`
	Center *LatLong `json:"center,omitempty" yaml:"center,omitempty"`
}

type Span struct {
	LatitudeDelta  float64 `json:"latitude_delta" yaml:"latitude_delta"`
	LongitudeDelta float64 `json:"longitude_delta" yaml:"longitude_delta"`
}
