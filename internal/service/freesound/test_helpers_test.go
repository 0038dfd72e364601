package freesound

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oshokin/freesound-grabber/internal/client/freesound"
	mock_freesound_client "github.com/oshokin/freesound-grabber/internal/client/freesound/mocks"
	"github.com/oshokin/freesound-grabber/internal/config"
	"github.com/oshokin/freesound-grabber/internal/constants"
)

const (
	testPageURL = "https://freesound.org/people/X/sounds/1/"
	testMP3URL  = "https://cdn.freesound.org/previews/0/1_1-lq.mp3"
	testOGGURL  = "https://cdn.freesound.org/previews/0/1_1-lq.ogg"
)

// testDownloadSetup encapsulates common test dependencies and configuration.
type testDownloadSetup struct {
	mockClient   *mock_freesound_client.MockClient
	tagProcessor *recordingTagProcessor
	service      *ServiceImpl
	config       *config.Config
	tempDir      string
}

// newTestDownloadSetup creates a standard test setup with optional config overrides.
func newTestDownloadSetup(t *testing.T, configOverrides ...func(*config.Config)) *testDownloadSetup {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockClient := mock_freesound_client.NewMockClient(ctrl)
	tempDir := t.TempDir()

	cfg := config.Default()
	cfg.OutputPath = tempDir
	cfg.VerifyMP3 = false

	for _, override := range configOverrides {
		override(cfg)
	}

	require.NoError(t, config.ValidateConfig(cfg))

	tagProcessor := new(recordingTagProcessor)

	return &testDownloadSetup{
		mockClient:   mockClient,
		tagProcessor: tagProcessor,
		service:      newServiceImpl(cfg, mockClient, NewURLProcessor(), tagProcessor, io.Discard),
		config:       cfg,
		tempDir:      tempDir,
	}
}

// outputFiles returns the names of all entries of the output directory.
func (s *testDownloadSetup) outputFiles(t *testing.T) []string {
	t.Helper()

	entries, err := os.ReadDir(s.config.ParsedOutputPath)
	if os.IsNotExist(err) {
		return nil
	}

	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	return names
}

// assertNoPartFiles fails the test when a temporary file was left behind.
func (s *testDownloadSetup) assertNoPartFiles(t *testing.T) {
	t.Helper()

	for _, name := range s.outputFiles(t) {
		require.False(t, strings.HasSuffix(name, constants.ExtensionPart), "temporary file left: %s", name)
	}
}

// newTestSoundInfo returns the metadata of a page exposing both formats.
func newTestSoundInfo() *freesound.SoundInfo {
	return &freesound.SoundInfo{
		SourceURL:       testPageURL,
		MP3URL:          testMP3URL,
		OGGURL:          testOGGURL,
		Title:           "Test Sound",
		SoundID:         "1",
		DurationSeconds: "3.5",
	}
}

// newAssetResult wraps data into a fetch result with a known length.
func newAssetResult(data []byte) *freesound.FetchAssetResult {
	return &freesound.FetchAssetResult{
		Body:       io.NopCloser(bytes.NewReader(data)),
		TotalBytes: int64(len(data)),
	}
}

// recordingTagProcessor remembers every request and fails with err when it is set.
type recordingTagProcessor struct {
	mu       sync.Mutex
	requests []WriteTagsRequest
	err      error
}

func (p *recordingTagProcessor) WriteTags(_ context.Context, req *WriteTagsRequest) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.requests = append(p.requests, *req)

	return p.err
}

func (p *recordingTagProcessor) calls() []WriteTagsRequest {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]WriteTagsRequest(nil), p.requests...)
}

// failingURLProcessor always returns err.
type failingURLProcessor struct {
	err error
}

func (p *failingURLProcessor) ExtractDownloadItems(context.Context, []string) ([]*DownloadItem, error) {
	return nil, p.err
}
