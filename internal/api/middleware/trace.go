// Package middleware provides HTTP middleware for the API: request
// tracing and JWT authentication.
package middleware

import (
	"net/http"

	"github.com/lexago/lexago-api/internal/api/shared"
)

// TraceID attaches a unique trace ID to every request context so that
// logs and error responses for the same request can be correlated.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
