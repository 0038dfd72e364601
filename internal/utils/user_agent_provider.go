package utils

//go:generate $MOCKGEN -source=user_agent_provider.go -destination=mocks/user_agent_provider_mock.go

// UserAgentProvider supplies the User-Agent header value sent with every request.
type UserAgentProvider interface {
	// GetUserAgent returns a User-Agent string.
	GetUserAgent() string
}

// StaticUserAgentProvider always returns the User-Agent it was created with.
type StaticUserAgentProvider struct {
	userAgent string
}

// NewStaticUserAgentProvider creates a provider for a fixed User-Agent,
// usually the browser-like string from the configuration.
func NewStaticUserAgentProvider(userAgent string) UserAgentProvider {
	return &StaticUserAgentProvider{userAgent: userAgent}
}

// GetUserAgent returns a User-Agent string.
func (p *StaticUserAgentProvider) GetUserAgent() string {
	return p.userAgent
}
