// Package middleware provides HTTP middlewares for identity extraction,
// request logging, and rate limiting.
package middleware

import (
	"context"
	"net/http"
)

type ctxKey string

const callerKey ctxKey = "caller"

// Identity is a middleware that attaches the caller's identity to the request
// context.
//
// The upstream identity provider terminates authentication and forwards the
// stable user identifier in the X-Clerk-User-Id header; this service trusts
// that header the way the original deployment trusts its auth gateway.
// Requests without the header are rejected before any handler runs.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callerID := r.Header.Get("X-Clerk-User-Id")
		if callerID == "" {
			http.Error(w, "not authenticated", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), callerKey, callerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetCallerIDFromContext extracts the caller's external identity from the
// request context. Returns an empty string if not found.
func GetCallerIDFromContext(ctx context.Context) string {
	val := ctx.Value(callerKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
