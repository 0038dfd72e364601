package http

import (
	"errors"
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/oshokin/freesound-grabber/internal/config"
	"github.com/oshokin/freesound-grabber/internal/logger"
	"github.com/oshokin/freesound-grabber/internal/utils"
)

// LogTransport is an http.RoundTripper that dumps every exchange at debug level.
// Bodies are dumped only for text content, so audio streams are never buffered.
type LogTransport struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// maxLogLength is the maximum length of a logged request or response dump.
	maxLogLength uint64
}

// Static error definitions for better error handling.
var (
	// ErrNilRequest indicates that the HTTP request is nil.
	ErrNilRequest = errors.New("request is nil")
)

// NewLogTransport wraps next with exchange logging.
// A zero maxLogLength falls back to config.DefaultMaxLogLength.
func NewLogTransport(next http.RoundTripper, maxLogLength uint64) http.RoundTripper {
	if maxLogLength == 0 {
		maxLogLength = config.DefaultMaxLogLength
	}

	return &LogTransport{
		next:         next,
		maxLogLength: maxLogLength,
	}
}

// RoundTrip implements the http.RoundTripper interface.
func (t *LogTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	if !logger.IsDebugLevel() {
		return t.next.RoundTrip(req)
	}

	var (
		ctx         = req.Context()
		requestDump = t.dumpRequest(req)
		startTime   = time.Now()
	)

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		logger.DebugKV(ctx, "HTTP request failed",
			"method", req.Method,
			"url", req.URL.String(),
			"duration", time.Since(startTime),
			"error", err)

		return nil, err
	}

	logger.DebugKV(ctx, "HTTP exchange",
		"method", req.Method,
		"url", req.URL.String(),
		"status", resp.StatusCode,
		"duration", time.Since(startTime),
		"request", requestDump,
		"response", t.dumpResponse(resp))

	return resp, nil
}

func (t *LogTransport) dumpRequest(req *http.Request) string {
	dump, err := httputil.DumpRequestOut(req, false)
	if err != nil {
		return err.Error()
	}

	return t.truncate(dump)
}

func (t *LogTransport) dumpResponse(resp *http.Response) string {
	contentType := resp.Header.Get("Content-Type")

	// DumpResponse restores the body it reads, so the caller still gets the full stream.
	dump, err := httputil.DumpResponse(resp, utils.IsTextContentType(contentType))
	if err != nil {
		return err.Error()
	}

	return t.truncate(dump)
}

func (t *LogTransport) truncate(data []byte) string {
	if uint64(len(data)) > t.maxLogLength {
		return string(data[:t.maxLogLength]) + truncatedSuffix
	}

	return string(data)
}
