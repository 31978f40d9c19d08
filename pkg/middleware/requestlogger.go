package middleware

import (
	"log/slog"
	"net/http"

	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/pkg/logger"
)

// RequestLogger stores a request-scoped logger in context, enriched with
// correlation_id, user_id and the active trace IDs. Handlers fetch it with
// logger.FromContext. Mount it after RequestLogging and Tracing so those
// fields are already populated.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			// The user ID comes from the auth middleware when present, or
			// from the X-User-ID header on internal calls.
			userID := UserIDFromContext(ctx)
			if userID == "" {
				userID = r.Header.Get("X-User-ID")
			}
			if userID != "" {
				ctx = logger.WithUserID(ctx, userID)
			}

			enriched := logger.WithContext(ctx, base)
			ctx = logger.NewContext(ctx, enriched)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
