package freesound

//go:generate $MOCKGEN -source=client.go -destination=mocks/client_mock.go

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/oshokin/freesound-grabber/internal/config"
	"github.com/oshokin/freesound-grabber/internal/logger"
	http_transport "github.com/oshokin/freesound-grabber/internal/transport/http"
)

// Client defines the interface for interacting with Freesound.
type Client interface {
	// FetchPage returns the body of a page as text.
	FetchPage(ctx context.Context, pageURL string) (string, error)
	// GetSoundInfo fetches a sound page and extracts its player metadata.
	GetSoundInfo(ctx context.Context, pageURL string) (*SoundInfo, error)
	// FetchAsset opens a streamed download of an audio asset.
	FetchAsset(ctx context.Context, assetURL string) (*FetchAssetResult, error)
}

// ClientImpl implements the Client interface.
type ClientImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// pageClient fetches HTML pages with a bounded total timeout.
	pageClient *http.Client
	// assetClient streams audio assets, only connecting and response headers are bounded.
	assetClient *http.Client
	// soundInfoCache caches parsed pages by URL.
	soundInfoCache *lru.Cache[string, *SoundInfo]
}

// NewClient creates and returns a new instance of ClientImpl.
func NewClient(cfg *config.Config) (Client, error) {
	soundInfoCache, err := lru.New[string, *SoundInfo](soundInfoCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create sound info cache: %w", err)
	}

	pageClient := &http.Client{
		Transport: http_transport.NewTransport(http_transport.TransportOptions{
			UserAgent: cfg.UserAgent,
		}),
		Timeout: cfg.ParsedPageTimeout,
	}

	// No total timeout here, a long transfer must not be cut in the middle.
	assetClient := &http.Client{
		Transport: http_transport.NewTransport(http_transport.TransportOptions{
			UserAgent:             cfg.UserAgent,
			DialTimeout:           cfg.ParsedDownloadTimeout,
			ResponseHeaderTimeout: cfg.ParsedDownloadTimeout,
		}),
	}

	return &ClientImpl{
		cfg:            cfg,
		pageClient:     pageClient,
		assetClient:    assetClient,
		soundInfoCache: soundInfoCache,
	}, nil
}

// FetchPage returns the body of a page as text for any 2xx status.
func (c *ClientImpl) FetchPage(ctx context.Context, pageURL string) (string, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return "", err
	}

	response, err := c.pageClient.Do(request)
	if err != nil {
		return "", err
	}

	defer response.Body.Close() //nolint:errcheck // Error on close is not critical here.

	if !isSuccessStatus(response.StatusCode) {
		return "", &StatusError{StatusCode: response.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, maxPageSize))
	if err != nil {
		return "", fmt.Errorf("failed to read page body: %w", err)
	}

	return string(body), nil
}

// GetSoundInfo fetches a sound page and extracts its player metadata.
// Page requests are retried with exponential backoff, 4xx responses are not retried.
// Successfully parsed pages are cached by URL.
func (c *ClientImpl) GetSoundInfo(ctx context.Context, pageURL string) (*SoundInfo, error) {
	if info, ok := c.soundInfoCache.Get(pageURL); ok {
		logger.Debugf(ctx, "Sound info for %s found in cache", pageURL)

		return info, nil
	}

	content, err := c.fetchPageWithRetry(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	info, err := ExtractSoundInfo(pageURL, content)
	if err != nil {
		return nil, err
	}

	c.soundInfoCache.Add(pageURL, info)

	return info, nil
}

// FetchAsset opens a streamed download of an audio asset.
func (c *ClientImpl) FetchAsset(ctx context.Context, assetURL string) (*FetchAssetResult, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, http.NoBody)
	if err != nil {
		return nil, err
	}

	response, err := c.assetClient.Do(request)
	if err != nil {
		return nil, err
	}

	if !isSuccessStatus(response.StatusCode) {
		response.Body.Close() //nolint:errcheck,gosec // Error on close is not critical here.

		return nil, &StatusError{StatusCode: response.StatusCode}
	}

	return &FetchAssetResult{
		Body:       response.Body,
		TotalBytes: response.ContentLength,
	}, nil
}

func (c *ClientImpl) fetchPageWithRetry(ctx context.Context, pageURL string) (string, error) {
	var content string

	operation := func() error {
		var err error

		content, err = c.FetchPage(ctx, pageURL)
		if err == nil {
			return nil
		}

		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.IsClientError() {
			return backoff.Permanent(err)
		}

		return err
	}

	notify := func(err error, pause time.Duration) {
		logger.Warnf(ctx, "Failed to fetch %s: %v, retrying in %s", pageURL, err, pause.Round(time.Millisecond))
	}

	if err := backoff.RetryNotify(operation, c.newBackOff(ctx), notify); err != nil {
		return "", err
	}

	return content, nil
}

func (c *ClientImpl) newBackOff(ctx context.Context) backoff.BackOff {
	expBackOff := backoff.NewExponentialBackOff()
	expBackOff.InitialInterval = c.cfg.ParsedMinRetryPause
	expBackOff.MaxInterval = c.cfg.ParsedMaxRetryPause
	expBackOff.MaxElapsedTime = 0

	retries := max(c.cfg.RetryAttemptsCount-1, 0)

	//nolint:gosec // retries is never negative.
	return backoff.WithContext(backoff.WithMaxRetries(expBackOff, uint64(retries)), ctx)
}

func isSuccessStatus(statusCode int) bool {
	return statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices
}
