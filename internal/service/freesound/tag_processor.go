package freesound

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/oshokin/id3v2/v2"

	"github.com/oshokin/freesound-grabber/internal/logger"
)

// TagProcessor defines the interface for writing metadata tags to audio files.
type TagProcessor interface {
	WriteTags(ctx context.Context, req *WriteTagsRequest) error
}

// WriteTagsRequest contains parameters for writing metadata to an MP3 file.
type WriteTagsRequest struct {
	// FilePath is the file to tag, usually the temporary .part file.
	FilePath string
	// Title is the sound title.
	Title string
	// Uploader is written as the artist.
	Uploader string
	// SoundID is written into a user-defined text frame when known.
	SoundID string
	// SourceURL is the sound page, written into a comment frame.
	SourceURL string
}

// TagProcessorImpl provides the default implementation of TagProcessor.
type TagProcessorImpl struct{}

const (
	// sourceCommentDescription is the description of the comment frame holding the page URL.
	sourceCommentDescription = "Source"
	// soundIDFrameDescription is the description of the user-defined frame holding the sound ID.
	soundIDFrameDescription = "FREESOUND_SOUND_ID"
)

// Static error definitions for better error handling.
var (
	// ErrEmptyFilePath indicates that the file path is empty.
	ErrEmptyFilePath = errors.New("file path cannot be empty")
)

// NewTagProcessor creates a new TagProcessor instance.
func NewTagProcessor() TagProcessor {
	return new(TagProcessorImpl)
}

// WriteTags writes ID3v2 title, artist, sound ID and source URL frames.
func (tp *TagProcessorImpl) WriteTags(ctx context.Context, req *WriteTagsRequest) error {
	if req.FilePath == "" {
		return ErrEmptyFilePath
	}

	//nolint:exhaustruct // ParseFrames intentionally omitted when Parse=false (parsing disabled).
	tag, err := id3v2.Open(filepath.Clean(req.FilePath), id3v2.Options{Parse: false})
	if err != nil {
		return err
	}

	defer tag.Close() //nolint:errcheck // Save reports write errors, close is best effort.

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetTitle(req.Title)

	if req.Uploader != "" {
		tag.SetArtist(req.Uploader)
	}

	if req.SourceURL != "" {
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding:    id3v2.EncodingUTF8,
			Language:    id3v2.EnglishISO6392Code,
			Description: sourceCommentDescription,
			Text:        req.SourceURL,
		})
	}

	if req.SoundID != "" {
		tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
			Encoding:    id3v2.EncodingUTF8,
			Description: soundIDFrameDescription,
			Value:       req.SoundID,
		})
	}

	logger.Debugf(ctx, "Writing ID3v2 tags to %s", req.FilePath)

	return tag.Save()
}
