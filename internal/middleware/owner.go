// Package middleware provides HTTP middlewares for owner scoping and logging.
package middleware

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const ownerKey ctxKey = "owner"

// OwnerScope lifts the owner identifier (dni) from the request into the
// context. The identifier may arrive as a query parameter, matching the
// navigation contract, or as an X-DNI header for non-browser clients.
//
// Requests without an identifier pass through with an empty owner; handlers
// that require one respond with 400 themselves, since the list operation
// legitimately short-circuits on an empty owner.
func OwnerScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dni := strings.TrimSpace(r.URL.Query().Get("dni"))
		if dni == "" {
			dni = strings.TrimSpace(r.Header.Get("X-DNI"))
		}
		ctx := context.WithValue(r.Context(), ownerKey, dni)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetOwnerFromContext extracts the owner identifier stored by OwnerScope.
// Returns an empty string if not present.
func GetOwnerFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(ownerKey).(string); ok {
		return s
	}
	return ""
}
