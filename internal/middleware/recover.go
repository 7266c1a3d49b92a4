package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/carehome/carehome-api/internal/pkg/errorhandler"
)

// Recover turns a panic into a logged 500 response
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				errorhandler.HandlePanic(r.Context(), w, r, rec, string(debug.Stack()))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
