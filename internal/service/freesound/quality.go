package freesound

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/oshokin/freesound-grabber/internal/client/freesound"
	"github.com/oshokin/freesound-grabber/internal/utils"
)

const (
	// lowQualityMarker is the part of an asset URL that identifies the standard preview.
	lowQualityMarker = "-lq."
	// highQualityMarker replaces lowQualityMarker to address the high-quality preview.
	highQualityMarker = "-hq."
)

// GetHQURL maps a standard preview URL onto its high-quality variant by replacing
// every "-lq." with "-hq.". The boolean reports whether the marker was present;
// without it the URL is returned unchanged.
func GetHQURL(assetURL string) (string, bool) {
	if !strings.Contains(assetURL, lowQualityMarker) {
		return assetURL, false
	}

	return strings.ReplaceAll(assetURL, lowQualityMarker, highQualityMarker), true
}

// buildAssetFilename returns "{title}_{soundID}_{quality}.{format}".
// Whitespace runs of the sanitized title are joined with underscores.
func buildAssetFilename(title, soundID string, quality AssetQuality, format AudioFormat) string {
	safeTitle := strings.Join(strings.Fields(utils.SanitizeFilename(title)), "_")

	return fmt.Sprintf("%s_%s_%s%s", safeTitle, soundID, quality, format.Extension())
}

// resolveAssetRequests builds one request per format that is both requested and available.
// Formats are ordered MP3 first, then OGG.
func (s *ServiceImpl) resolveAssetRequests(item *DownloadItem, info *freesound.SoundInfo) []*AssetRequest {
	quality := AssetQualityLow
	if s.cfg.IsHighQuality() {
		quality = AssetQualityHigh
	}

	soundID := info.SoundID
	if soundID == "" {
		soundID = item.SoundID
	}

	candidates := []struct {
		format    AudioFormat
		requested bool
		url       string
	}{
		{AudioFormatMP3, s.cfg.DownloadMP3, info.MP3URL},
		{AudioFormatOGG, s.cfg.DownloadOGG, info.OGGURL},
	}

	requests := make([]*AssetRequest, 0, len(candidates))

	for _, candidate := range candidates {
		if !candidate.requested || candidate.url == "" {
			continue
		}

		filename := buildAssetFilename(info.Title, soundID, quality, candidate.format)

		requests = append(requests, &AssetRequest{
			Format:   candidate.format,
			Quality:  quality,
			URL:      candidate.url,
			Filename: filename,
			Path:     filepath.Join(s.cfg.ParsedOutputPath, filename),
		})
	}

	return requests
}

// formatSoundDuration renders a duration in seconds as "M:SS".
// It reports false when the value is not a usable number.
func formatSoundDuration(rawSeconds string) (string, bool) {
	if rawSeconds == "" {
		return "", false
	}

	seconds, err := strconv.ParseFloat(rawSeconds, 64)
	if err != nil || seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "", false
	}

	minutes := int64(seconds / 60)
	remainder := int64(math.Mod(seconds, 60))

	return fmt.Sprintf("%d:%02d", minutes, remainder), true
}
