package errorhandler

import (
	"context"
	"net/http"

	"github.com/carehome/carehome-api/internal/pkg/logger"
	"github.com/carehome/carehome-api/internal/pkg/response"
)

// HandleError logs err through the request logger and writes the error envelope.
// 5xx responses log at error level, everything else at warn.
func HandleError(ctx context.Context, w http.ResponseWriter, status int, code, message string, err error) {
	HandleErrorWithDetails(ctx, w, status, code, message, nil, err)
}

// HandleErrorWithDetails is HandleError with per-field details in the envelope
func HandleErrorWithDetails(ctx context.Context, w http.ResponseWriter, status int, code, message string, details map[string]string, err error) {
	l := logger.FromContext(ctx)
	event := l.Warn()
	if status >= http.StatusInternalServerError {
		event = l.Error()
	}
	event = event.
		Str("error_code", code).
		Str("error_message", message).
		Int("status_code", status)
	if err != nil {
		event = event.Err(err)
	}
	if details != nil {
		event = event.Interface("error_details", details)
	}
	event.Msg("Request error")

	response.ErrorWithDetails(w, status, code, message, details)
}

// HandlePanic logs a recovered panic with its stack. The client only gets a generic 500.
func HandlePanic(ctx context.Context, w http.ResponseWriter, r *http.Request, rec interface{}, stack string) {
	logger.FromContext(ctx).Error().
		Interface("panic", rec).
		Str("stack", stack).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("Panic recovered")

	response.InternalError(w)
}

// LogValidationError logs request validation failures
func LogValidationError(ctx context.Context, fieldErrors map[string]string) {
	logger.FromContext(ctx).Warn().
		Interface("validation_errors", fieldErrors).
		Msg("Validation error")
}

// LogExternalServiceError logs failures from calls to third-party services
func LogExternalServiceError(ctx context.Context, service, operation string, err error) {
	logger.FromContext(ctx).Error().
		Str("external_service", service).
		Str("operation", operation).
		Err(err).
		Msg("External service error")
}
