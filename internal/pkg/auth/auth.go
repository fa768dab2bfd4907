// Package auth provides functionality for handling JSON Web Token (JWT) based authentication.
// It includes middleware for validating JWT tokens in HTTP requests and parsing tokens to extract claims.
package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"rewear/internal/models"
)

// contextKey is a custom type used for storing values in a context without risking collisions.
type contextKey string

const (
	// ContextUserID is the key used to store and retrieve the user ID from the request context.
	ContextUserID contextKey = "contextUserID"
	// ContextIsAdmin is the key used to store and retrieve the moderator flag from the request context.
	ContextIsAdmin contextKey = "contextIsAdmin"
)

// CheckJWTMiddleware is an HTTP middleware function that validates the Authorization header of incoming requests.
// It checks for the presence of a Bearer token, parses the token and stores the user ID and moderator flag
// in the request context. If validation fails at any point, it responds with 401.
func CheckJWTMiddleware() func(h http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")

			if authHeader == "" {
				writeErrorResponse(w, "missing auth header", http.StatusUnauthorized)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeErrorResponse(w, "invalid auth header", http.StatusUnauthorized)
				return
			}

			claims, err := ParseToken(parts[1])
			if err != nil {
				writeErrorResponse(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ContextUserID, claims.UserID)
			ctx = context.WithValue(ctx, ContextIsAdmin, claims.IsAdmin)
			h.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(fn)
	}
}

// RequireAdminMiddleware rejects requests whose token does not carry the moderator flag.
// It must be mounted after CheckJWTMiddleware.
func RequireAdminMiddleware() func(h http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			if isAdmin, ok := r.Context().Value(ContextIsAdmin).(bool); !ok || !isAdmin {
				writeErrorResponse(w, "admin access required", http.StatusForbidden)
				return
			}
			h.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}

// UserID returns the authenticated user ID stored in ctx, if any.
func UserID(ctx context.Context) (int32, bool) {
	userID, ok := ctx.Value(ContextUserID).(int32)
	return userID, ok && userID != 0
}

// writeErrorResponse writes a JSON-formatted error response to the HTTP response writer.
func writeErrorResponse(res http.ResponseWriter, errorInfo string, statusCode int) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(statusCode)
	json.NewEncoder(res).Encode(models.ErrorResponse{Errors: errorInfo})
}
