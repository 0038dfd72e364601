package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_utils "github.com/oshokin/freesound-grabber/internal/utils/mocks"
)

// TestUserAgentInjector_RoundTrip tests header injection for the different request states.
func TestUserAgentInjector_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		requestAgent  *string
		providerCalls int
		expectedAgent string
	}{
		{
			name:          "header is missing",
			providerCalls: 1,
			expectedAgent: "TestAgent/1.0",
		},
		{
			name:          "header is empty",
			requestAgent:  new(string),
			providerCalls: 1,
			expectedAgent: "TestAgent/1.0",
		},
		{
			name:          "header is kept",
			requestAgent:  func() *string { s := "ExistingAgent/1.0"; return &s }(),
			providerCalls: 0,
			expectedAgent: "ExistingAgent/1.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)

			mockProvider := mock_utils.NewMockUserAgentProvider(ctrl)
			mockProvider.EXPECT().GetUserAgent().Return("TestAgent/1.0").Times(tt.providerCalls)

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.expectedAgent, r.Header.Get("User-Agent"))
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			injector := NewUserAgentInjector(http.DefaultTransport, mockProvider)

			req, err := http.NewRequest(http.MethodGet, server.URL, nil) //nolint:noctx // Test code, context not needed.
			require.NoError(t, err)

			if tt.requestAgent != nil {
				req.Header.Set("User-Agent", *tt.requestAgent)
			}

			resp, err := injector.RoundTrip(req)
			require.NoError(t, err)

			defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}

// TestUserAgentInjector_RoundTrip_ErrorHandling tests that transport errors are passed through.
func TestUserAgentInjector_RoundTrip_ErrorHandling(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)

	mockProvider := mock_utils.NewMockUserAgentProvider(ctrl)
	mockProvider.EXPECT().GetUserAgent().Return("TestAgent/1.0").AnyTimes()

	injector := NewUserAgentInjector(http.DefaultTransport, mockProvider)

	req, err := http.NewRequest(http.MethodGet, "http://[::1]:0", nil) //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)

	resp, err := injector.RoundTrip(req) //nolint:bodyclose // Body is empty on error.
	require.Error(t, err)
	assert.Nil(t, resp)
}

// TestUserAgentInjector_RoundTrip_RequestNotModified tests that the caller's request keeps its headers.
func TestUserAgentInjector_RoundTrip_RequestNotModified(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)

	mockProvider := mock_utils.NewMockUserAgentProvider(ctrl)
	mockProvider.EXPECT().GetUserAgent().Return("TestAgent/1.0")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "TestAgent/1.0", r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL, nil) //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)

	resp, err := NewUserAgentInjector(http.DefaultTransport, mockProvider).RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

	assert.Empty(t, req.Header.Get("User-Agent"))
}

// TestUserAgentInjector_RoundTrip_EmptyProvider tests that an empty provider value is not sent.
func TestUserAgentInjector_RoundTrip_EmptyProvider(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)

	mockProvider := mock_utils.NewMockUserAgentProvider(ctrl)
	mockProvider.EXPECT().GetUserAgent().Return("")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"), "the Go default agent is used")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL, nil) //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)

	resp, err := NewUserAgentInjector(http.DefaultTransport, mockProvider).RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.
}
