package freesound

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/freesound-grabber/internal/client/freesound"
	"github.com/oshokin/freesound-grabber/internal/config"
)

// TestGetHQURL tests the high-quality URL mapping.
func TestGetHQURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		input          string
		expected       string
		expectedMarker bool
	}{
		{name: "mp3 preview", input: "https://cdn/a-lq.mp3", expected: "https://cdn/a-hq.mp3", expectedMarker: true},
		{name: "ogg preview", input: "https://cdn/a-lq.ogg", expected: "https://cdn/a-hq.ogg", expectedMarker: true},
		{name: "every marker is replaced", input: "https://cdn/x-lq.d/a-lq.mp3", expected: "https://cdn/x-hq.d/a-hq.mp3", expectedMarker: true},
		{name: "no marker", input: "https://cdn/a.mp3", expected: "https://cdn/a.mp3", expectedMarker: false},
		{name: "already high quality", input: "https://cdn/a-hq.mp3", expected: "https://cdn/a-hq.mp3", expectedMarker: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, hasMarker := GetHQURL(tt.input)
			assert.Equal(t, tt.expected, result)
			assert.Equal(t, tt.expectedMarker, hasMarker)
		})
	}
}

// TestBuildAssetFilename tests the output filename pattern.
func TestBuildAssetFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		title    string
		soundID  string
		quality  AssetQuality
		format   AudioFormat
		expected string
	}{
		{name: "plain title", title: "Test Sound", soundID: "1", quality: AssetQualityLow, format: AudioFormatMP3, expected: "Test_Sound_1_lq.mp3"},
		{name: "high quality ogg", title: "Rain", soundID: "42", quality: AssetQualityHigh, format: AudioFormatOGG, expected: "Rain_42_hq.ogg"},
		{name: "restricted characters", title: `a/b:c?`, soundID: "5", quality: AssetQualityLow, format: AudioFormatMP3, expected: "a_b_c__5_lq.mp3"},
		{name: "whitespace runs", title: "  door   slam  ", soundID: "9", quality: AssetQualityLow, format: AudioFormatMP3, expected: "door_slam_9_lq.mp3"},
		{name: "empty title", title: "", soundID: "3", quality: AssetQualityLow, format: AudioFormatMP3, expected: "download_3_lq.mp3"},
		{name: "unknown id", title: "x", soundID: "", quality: AssetQualityLow, format: AudioFormatOGG, expected: "x__lq.ogg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, buildAssetFilename(tt.title, tt.soundID, tt.quality, tt.format))
		})
	}
}

// TestResolveAssetRequests tests request building from page metadata.
func TestResolveAssetRequests(t *testing.T) {
	t.Parallel()

	outputPath := t.TempDir()

	cfg := config.Default()
	cfg.OutputPath = outputPath
	cfg.DownloadOGG = true
	cfg.Quality = config.QualityHigh
	require.NoError(t, config.ValidateConfig(cfg))

	service := newServiceImpl(cfg, nil, nil, nil, nil)
	item := &DownloadItem{Category: DownloadCategorySound, URL: testPageURL, SoundID: "77"}

	t.Run("both formats in order", func(t *testing.T) {
		t.Parallel()

		info := &freesound.SoundInfo{MP3URL: "m", OGGURL: "o", Title: "T", SoundID: "1"}

		requests := service.resolveAssetRequests(item, info)
		require.Len(t, requests, 2)

		assert.Equal(t, AudioFormatMP3, requests[0].Format)
		assert.Equal(t, AssetQualityHigh, requests[0].Quality)
		assert.Equal(t, "m", requests[0].URL)
		assert.Equal(t, "T_1_hq.mp3", requests[0].Filename)
		assert.Equal(t, filepath.Join(outputPath, "T_1_hq.mp3"), requests[0].Path)

		assert.Equal(t, AudioFormatOGG, requests[1].Format)
		assert.Equal(t, "T_1_hq.ogg", requests[1].Filename)
	})

	t.Run("page without sound id uses the url id", func(t *testing.T) {
		t.Parallel()

		info := &freesound.SoundInfo{OGGURL: "o", Title: "T"}

		requests := service.resolveAssetRequests(item, info)
		require.Len(t, requests, 1)
		assert.Equal(t, "T_77_hq.ogg", requests[0].Filename)
	})
}

// TestFormatSoundDuration tests rendering of the player duration.
func TestFormatSoundDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		expected   string
		expectedOK bool
	}{
		{name: "fractional seconds", input: "3.5", expected: "0:03", expectedOK: true},
		{name: "minutes", input: "125", expected: "2:05", expectedOK: true},
		{name: "zero", input: "0", expected: "0:00", expectedOK: true},
		{name: "long sound", input: "3600.9", expected: "60:00", expectedOK: true},
		{name: "empty", input: "", expectedOK: false},
		{name: "not a number", input: "abc", expectedOK: false},
		{name: "negative", input: "-1", expectedOK: false},
		{name: "not a number literal", input: "NaN", expectedOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, ok := formatSoundDuration(tt.input)
			assert.Equal(t, tt.expectedOK, ok)
			assert.Equal(t, tt.expected, result)
		})
	}
}
