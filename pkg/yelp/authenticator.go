package yelp

// Authenticator signs a request. It receives the unsigned base URL (scheme,
// host and escaped path, no query) and the call's parameters, and returns the
// complete URL to fetch. Params values can be passed directly.
type Authenticator interface {
	SignRequest(baseURL string, params map[string]string) (string, error)
}

// AuthenticatorFunc adapts a plain function to Authenticator.
type AuthenticatorFunc func(baseURL string, params map[string]string) (string, error)

// SignRequest calls f.
func (f AuthenticatorFunc) SignRequest(baseURL string, params map[string]string) (string, error) {
	return f(baseURL, params)
}
