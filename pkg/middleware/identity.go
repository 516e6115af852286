package middleware

import (
	"net/http"

	"github.com/karigor/search-service/pkg/logger"
)

// UserIDHeader carries the authenticated user's ID, set by the API gateway
// after it validates the session. The search service trusts it as-is; an
// absent header simply means an anonymous request.
const UserIDHeader = "X-User-ID"

// Identity copies the gateway-provided user identity into the request context
// so downstream logging and telemetry can attribute the request.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID := r.Header.Get(UserIDHeader); userID != "" {
			r = r.WithContext(logger.WithUserID(r.Context(), userID))
		}
		next.ServeHTTP(w, r)
	})
}
