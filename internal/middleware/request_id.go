package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/carehome/carehome-api/internal/pkg/logger"
)

type requestIDKey struct{}

// RequestIDHeader is echoed back on every response
const RequestIDHeader = "X-Request-ID"

// RequestID assigns each request an id, stores it in the context
// and attaches a request-scoped logger carrying it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, requestID)

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		ctx = logger.With(ctx, "request_id", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID returns the request id stored by RequestID, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
