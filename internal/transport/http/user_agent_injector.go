package http

import (
	"net/http"

	"github.com/oshokin/freesound-grabber/internal/utils"
)

// userAgentHeader is the HTTP header name for User-Agent.
const userAgentHeader = "User-Agent"

// UserAgentInjector adds a User-Agent header to requests that have none.
// The site answers unknown clients with an error page, so every page and asset request goes through it.
type UserAgentInjector struct {
	next              http.RoundTripper
	userAgentProvider utils.UserAgentProvider
}

// NewUserAgentInjector wraps next with User-Agent injection.
func NewUserAgentInjector(next http.RoundTripper, userAgentProvider utils.UserAgentProvider) http.RoundTripper {
	return &UserAgentInjector{
		next:              next,
		userAgentProvider: userAgentProvider,
	}
}

// RoundTrip implements the http.RoundTripper interface.
// The caller's request is never modified, a shallow clone carries the header.
func (t *UserAgentInjector) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(userAgentHeader) != "" {
		return t.next.RoundTrip(req)
	}

	userAgent := t.userAgentProvider.GetUserAgent()
	if userAgent == "" {
		return t.next.RoundTrip(req)
	}

	cloned := req.Clone(req.Context())
	cloned.Header.Set(userAgentHeader, userAgent)

	return t.next.RoundTrip(cloned)
}
