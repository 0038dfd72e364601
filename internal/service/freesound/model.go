package freesound

import (
	"fmt"
	"strings"
	"time"

	"github.com/oshokin/freesound-grabber/internal/constants"
)

// DownloadCategory represents the type of an input URL.
type DownloadCategory uint8

const (
	// DownloadCategoryUnknown - URL outside of Freesound.
	DownloadCategoryUnknown DownloadCategory = iota
	// DownloadCategorySound - Freesound sound page.
	DownloadCategorySound
)

// String returns a human-readable representation of the DownloadCategory.
func (dc DownloadCategory) String() string {
	switch dc {
	case DownloadCategoryUnknown:
		return "unknown"
	case DownloadCategorySound:
		return "sound"
	default:
		return fmt.Sprintf("unknown: %d", dc)
	}
}

// AudioFormat is the container of a preview stream.
type AudioFormat string

const (
	// AudioFormatMP3 - MP3 preview.
	AudioFormatMP3 AudioFormat = "mp3"
	// AudioFormatOGG - OGG Vorbis preview.
	AudioFormatOGG AudioFormat = "ogg"
)

// Extension returns the file extension of the format, including the dot.
func (f AudioFormat) Extension() string {
	if f == AudioFormatOGG {
		return constants.ExtensionOGG
	}

	return constants.ExtensionMP3
}

// DisplayName returns the upper-case format name used in console messages.
func (f AudioFormat) DisplayName() string {
	return strings.ToUpper(string(f))
}

// AssetQuality is the quality suffix used in filenames.
type AssetQuality string

const (
	// AssetQualityLow - standard "-lq." preview.
	AssetQualityLow AssetQuality = "lq"
	// AssetQualityHigh - "-hq." preview.
	AssetQualityHigh AssetQuality = "hq"
)

// Description returns the wording used in progress messages.
func (q AssetQuality) Description() string {
	if q == AssetQualityHigh {
		return "high-quality"
	}

	return "standard"
}

// DownloadItem represents a single input URL to process.
type DownloadItem struct {
	// Category is the type of the URL.
	Category DownloadCategory
	// URL is the page URL as given by the user.
	URL string
	// SoundID is the numeric identifier taken from the "/sounds/<id>" path segment, possibly empty.
	SoundID string
	// Uploader is the user name taken from the "/people/<name>/" path segment, possibly empty.
	Uploader string
}

// AssetRequest describes one file to download for a sound.
type AssetRequest struct {
	// Format is the requested container.
	Format AudioFormat
	// Quality is the requested quality variant.
	Quality AssetQuality
	// URL is the asset URL after the quality transform.
	URL string
	// Filename is the name of the destination file.
	Filename string
	// Path is the full destination path.
	Path string
}

// DownloadStatistics tracks metrics for a download session.
type DownloadStatistics struct {
	// StartTime is when the download session began.
	StartTime time.Time
	// EndTime is when the download session completed.
	EndTime time.Time
	// IsDryRun indicates if this was a dry-run preview.
	IsDryRun bool
	// SoundsProcessed is the number of input URLs handled.
	SoundsProcessed int64
	// FilesDownloaded is the number of files saved (or that would be saved in dry-run mode).
	FilesDownloaded int64
	// FilesSkipped is the number of files skipped because they already exist.
	FilesSkipped int64
	// Failed is the number of abandoned URLs and files.
	Failed int64
	// TotalBytesDownloaded is the total number of bytes written.
	TotalBytesDownloaded int64
	// Errors contains detailed information about every failure.
	Errors []DownloadError
}

// DownloadError represents a single error that occurred during download.
type DownloadError struct {
	// Category is the type of item that failed.
	Category DownloadCategory
	// ItemID is the sound identifier, possibly empty.
	ItemID string
	// ItemTitle is the sound title when it is already known.
	ItemTitle string
	// ItemURL is the page URL of the failed item.
	ItemURL string
	// ErrorMessage is the error message.
	ErrorMessage string
	// Phase indicates when the error occurred (e.g., "fetching sound page", "downloading MP3").
	Phase string
}

// DownloadAssetResult contains the result of the downloadAsset operation.
type DownloadAssetResult struct {
	// IsExist indicates whether the destination already existed and the download was skipped.
	IsExist bool
	// TempPath is the path to the temporary .part file, empty if nothing was written.
	TempPath string
	// BytesDownloaded is the number of bytes written, or the expected size in dry-run mode.
	BytesDownloaded int64
}
