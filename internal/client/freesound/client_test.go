package freesound

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/freesound-grabber/internal/config"
)

const testPlayerPage = `<html><body>
<div class="bw-player" data-mp3="https://cdn/a-lq.mp3" data-title="Test Sound" data-sound-id="1"></div>
</body></html>`

// newTestClient creates a client with fast retries.
func newTestClient(t *testing.T, retryAttempts int64) *ClientImpl {
	t.Helper()

	cfg := config.Default()
	cfg.RetryAttemptsCount = retryAttempts
	cfg.MinRetryPause = "1ms"
	cfg.MaxRetryPause = "5ms"
	cfg.UserAgent = "FreesoundTest/1.0"
	require.NoError(t, config.ValidateConfig(cfg))

	client, err := NewClient(cfg)
	require.NoError(t, err)

	impl, ok := client.(*ClientImpl)
	require.True(t, ok)

	return impl
}

// TestClientImpl_FetchPage tests the FetchPage method.
func TestClientImpl_FetchPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		statusCode    int
		body          string
		expectedBody  string
		expectedError error
	}{
		{name: "ok", statusCode: http.StatusOK, body: "<html></html>", expectedBody: "<html></html>"},
		{name: "other 2xx", statusCode: http.StatusNonAuthoritativeInfo, body: "cached", expectedBody: "cached"},
		{name: "not found", statusCode: http.StatusNotFound, expectedError: ErrUnexpectedHTTPStatus},
		{name: "server error", statusCode: http.StatusBadGateway, expectedError: ErrUnexpectedHTTPStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "FreesoundTest/1.0", r.Header.Get("User-Agent"))
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			body, err := newTestClient(t, 1).FetchPage(context.Background(), server.URL)
			if tt.expectedError != nil {
				require.ErrorIs(t, err, tt.expectedError)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedBody, body)
		})
	}
}

// TestClientImpl_GetSoundInfo tests metadata extraction through the client.
func TestClientImpl_GetSoundInfo(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte(testPlayerPage))
	}))
	defer server.Close()

	client := newTestClient(t, 1)

	info, err := client.GetSoundInfo(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, &SoundInfo{
		SourceURL: server.URL,
		MP3URL:    "https://cdn/a-lq.mp3",
		Title:     "Test Sound",
		SoundID:   "1",
	}, info)

	cached, err := client.GetSoundInfo(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Same(t, info, cached)
	assert.Equal(t, int32(1), requests.Load(), "the second lookup is served from cache")
}

// TestClientImpl_GetSoundInfo_NoPlayer tests that parse failures are not cached.
func TestClientImpl_GetSoundInfo_NoPlayer(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte("<html><body>nothing here</body></html>"))
	}))
	defer server.Close()

	client := newTestClient(t, 3)

	for range 2 {
		_, err := client.GetSoundInfo(context.Background(), server.URL)
		require.ErrorIs(t, err, ErrPlayerNotFound)
	}

	assert.Equal(t, int32(2), requests.Load(), "parse errors are neither retried nor cached")
}

// TestClientImpl_GetSoundInfo_Retry tests the retry policy of page requests.
func TestClientImpl_GetSoundInfo_Retry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		retryAttempts    int64
		failures         int32
		failureStatus    int
		expectedRequests int32
		expectedError    error
	}{
		{
			name:             "single attempt by default",
			retryAttempts:    1,
			failures:         1,
			failureStatus:    http.StatusServiceUnavailable,
			expectedRequests: 1,
			expectedError:    ErrUnexpectedHTTPStatus,
		},
		{
			name:             "server errors are retried",
			retryAttempts:    3,
			failures:         2,
			failureStatus:    http.StatusInternalServerError,
			expectedRequests: 3,
		},
		{
			name:             "attempts are exhausted",
			retryAttempts:    2,
			failures:         5,
			failureStatus:    http.StatusBadGateway,
			expectedRequests: 2,
			expectedError:    ErrUnexpectedHTTPStatus,
		},
		{
			name:             "client errors are permanent",
			retryAttempts:    5,
			failures:         5,
			failureStatus:    http.StatusNotFound,
			expectedRequests: 1,
			expectedError:    ErrUnexpectedHTTPStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var requests atomic.Int32

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if requests.Add(1) <= tt.failures {
					w.WriteHeader(tt.failureStatus)

					return
				}

				_, _ = w.Write([]byte(testPlayerPage))
			}))
			defer server.Close()

			info, err := newTestClient(t, tt.retryAttempts).GetSoundInfo(context.Background(), server.URL)
			assert.Equal(t, tt.expectedRequests, requests.Load())

			if tt.expectedError != nil {
				require.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, info)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Test Sound", info.Title)
		})
	}
}

// TestClientImpl_FetchAsset tests the FetchAsset method.
func TestClientImpl_FetchAsset(t *testing.T) {
	t.Parallel()

	t.Run("stream", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "audio/mpeg")
			_, _ = w.Write([]byte("audio-bytes"))
		}))
		defer server.Close()

		result, err := newTestClient(t, 1).FetchAsset(context.Background(), server.URL)
		require.NoError(t, err)

		defer result.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

		assert.Equal(t, int64(len("audio-bytes")), result.TotalBytes)

		body, err := io.ReadAll(result.Body)
		require.NoError(t, err)
		assert.Equal(t, "audio-bytes", string(body))
	})

	t.Run("error status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		result, err := newTestClient(t, 1).FetchAsset(context.Background(), server.URL)
		require.ErrorIs(t, err, ErrUnexpectedHTTPStatus)
		assert.Nil(t, result)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result, err := newTestClient(t, 1).FetchAsset(ctx, "http://127.0.0.1:1/")
		require.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, result)
	})
}
