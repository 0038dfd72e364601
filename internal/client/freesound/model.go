package freesound

import "io"

// SoundInfo is the player metadata extracted from a single sound page.
// At least one of MP3URL and OGGURL is non-empty.
type SoundInfo struct {
	// SourceURL is the page the record was extracted from.
	SourceURL string
	// MP3URL is the MP3 preview stream, empty when the page has none.
	MP3URL string
	// OGGURL is the OGG preview stream, empty when the page has none.
	OGGURL string
	// Title is the sound title, "unknown" when the page does not provide one.
	Title string
	// SoundID is the numeric sound identifier, possibly empty.
	SoundID string
	// DurationSeconds is the raw duration attribute, used for display only.
	DurationSeconds string
}

// HasMP3 reports whether the page exposes an MP3 stream.
func (s *SoundInfo) HasMP3() bool {
	return s.MP3URL != ""
}

// HasOGG reports whether the page exposes an OGG stream.
func (s *SoundInfo) HasOGG() bool {
	return s.OGGURL != ""
}

// FetchAssetResult represents the result of fetching an audio asset.
type FetchAssetResult struct {
	// Body is the response body, it must be closed by the caller.
	Body io.ReadCloser
	// TotalBytes is the Content-Length of the response, -1 when unknown.
	TotalBytes int64
}
