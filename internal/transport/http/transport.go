package http

import (
	"net"
	"net/http"
	"time"

	"github.com/oshokin/freesound-grabber/internal/utils"
)

// TransportOptions describes the transport built by NewTransport.
type TransportOptions struct {
	// UserAgent is injected into requests that do not carry one.
	UserAgent string
	// DialTimeout bounds establishing the TCP connection, zero means no limit.
	DialTimeout time.Duration
	// ResponseHeaderTimeout bounds waiting for response headers, zero means no limit.
	ResponseHeaderTimeout time.Duration
	// MaxLogLength caps the size of dumped exchanges at debug level.
	MaxLogLength uint64
}

// NewTransport returns UserAgentInjector(LogTransport(base)) where base is a clone
// of http.DefaultTransport tuned with the given timeouts.
func NewTransport(opts TransportOptions) http.RoundTripper {
	base, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return NewUserAgentInjector(
			NewLogTransport(http.DefaultTransport, opts.MaxLogLength),
			utils.NewStaticUserAgentProvider(opts.UserAgent),
		)
	}

	transport := base.Clone()
	transport.MaxIdleConnsPerHost = maxIdleConnsPerHost
	transport.ResponseHeaderTimeout = opts.ResponseHeaderTimeout

	if opts.DialTimeout > 0 {
		dialer := &net.Dialer{
			Timeout:   opts.DialTimeout,
			KeepAlive: dialKeepAlive,
		}

		transport.DialContext = dialer.DialContext
	}

	return NewUserAgentInjector(
		NewLogTransport(transport, opts.MaxLogLength),
		utils.NewStaticUserAgentProvider(opts.UserAgent),
	)
}
