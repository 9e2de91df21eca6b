package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"invoice-backend/pkg/utils"
)

// PanicRecovery converts a handler panic into a 500 response so one bad
// request cannot take the server down.
func PanicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[HTTP] panic recovered on %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				utils.JSON(w, http.StatusInternalServerError, map[string]string{
					"error": "Internal server error",
				})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
