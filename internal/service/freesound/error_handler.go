package freesound

import (
	"context"
	"errors"

	"github.com/oshokin/freesound-grabber/internal/logger"
)

// ErrorHandler provides centralized error handling and recording.
type ErrorHandler struct {
	service *ServiceImpl
}

// NewErrorHandler creates an error handler for the service.
func NewErrorHandler(service *ServiceImpl) *ErrorHandler {
	return &ErrorHandler{service: service}
}

// HandleError logs and records err, then counts one failure.
// Returns true if an error was handled.
func (h *ErrorHandler) HandleError(ctx context.Context, err error, errorCtx *ErrorContext) bool {
	if err == nil {
		return false
	}

	// Don't log context cancellation - it's expected when user presses CTRL+C.
	if !errors.Is(err, context.Canceled) {
		logger.Errorf(ctx, "%s failed: %v", errorCtx.Phase, err)
	}

	h.service.recordError(errorCtx, err)
	h.service.incrementFailed()

	return true
}

// HandleWarning logs and records err as a failure without the error level,
// used for input the user can fix, such as URLs from another site.
func (h *ErrorHandler) HandleWarning(ctx context.Context, err error, errorCtx *ErrorContext) {
	logger.Warnf(ctx, "Skipping %s: %v", errorCtx.ItemURL, err)

	h.service.recordError(errorCtx, err)
	h.service.incrementFailed()
}

// WithErrorContext executes a function and handles any errors with the provided context.
// Returns true if execution should continue, false if it should stop.
func (h *ErrorHandler) WithErrorContext(ctx context.Context, errorCtx *ErrorContext, fn func() error) bool {
	if err := fn(); err != nil {
		return !h.HandleError(ctx, err, errorCtx)
	}

	return true
}
