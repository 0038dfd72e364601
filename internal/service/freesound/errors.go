package freesound

import (
	"context"
	"errors"
)

// Common errors for the service layer.
var (
	// ErrNotFreesoundURL indicates that an input URL does not point to freesound.org.
	ErrNotFreesoundURL = errors.New("not a Freesound URL")
	// ErrIncompleteDownload indicates that the downloaded file size doesn't match expected size.
	ErrIncompleteDownload = errors.New("incomplete download")
)

// ErrorContext provides context information for download errors.
type ErrorContext struct {
	// Category is the type of item that failed.
	Category DownloadCategory
	// ItemID is the sound identifier, possibly empty.
	ItemID string
	// ItemTitle is the sound title when it is already known.
	ItemTitle string
	// ItemURL is the page URL of the failed item.
	ItemURL string
	// Phase indicates when the error occurred.
	Phase string
}

// recordError records an error in the statistics with proper context.
// Context cancellation errors are ignored as they are expected during graceful shutdown.
func (s *ServiceImpl) recordError(errCtx *ErrorContext, err error) {
	if errCtx == nil || err == nil {
		return
	}

	if errors.Is(err, context.Canceled) {
		return
	}

	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	s.stats.Errors = append(s.stats.Errors, DownloadError{
		Category:     errCtx.Category,
		ItemID:       errCtx.ItemID,
		ItemTitle:    errCtx.ItemTitle,
		ItemURL:      errCtx.ItemURL,
		ErrorMessage: err.Error(),
		Phase:        errCtx.Phase,
	})
}
