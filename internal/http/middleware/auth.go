// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements bearer-token authentication. Tokens are verified by a
// caller-supplied function (the auth service's JWT verifier), which keeps the
// middleware free of signing details. Two flavors are provided: RequireAuth
// for protected routes and OptionalAuth for routes that also accept guests.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ctxKeyUserID stores the authenticated user's id in the Gin context.
const ctxKeyUserID = "userID"

// TokenVerifier validates a session token and returns the user id it
// carries. A non-nil error marks the token as invalid.
type TokenVerifier func(token string) (string, error)

// BearerToken extracts the token from the Authorization header.
// Returns ("", false) when the header is absent or not a Bearer scheme.
func BearerToken(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(h[len(prefix):])
	return token, token != ""
}

// UserID returns the authenticated user id set by the auth middleware.
// An empty string marks a guest request.
func UserID(c *gin.Context) string {
	return userIDFromCtx(c)
}

// RequireAuth rejects requests without a valid bearer token. On success the
// user id is stored in the context for downstream handlers.
func RequireAuth(verify TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "unauthorized",
				"message": "missing bearer token",
			})
			return
		}
		uid, err := verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "unauthorized",
				"message": "invalid or expired token",
			})
			return
		}
		c.Set(ctxKeyUserID, uid)
		c.Next()
	}
}

// OptionalAuth resolves a bearer token when one is present and lets requests
// without one pass through as guests. A token that is present but fails
// verification is rejected with 401; guest mode is only for requests that
// carry no token at all.
func OptionalAuth(verify TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c)
		if !ok {
			c.Next()
			return
		}
		uid, err := verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "unauthorized",
				"message": "invalid or expired token",
			})
			return
		}
		c.Set(ctxKeyUserID, uid)
		c.Next()
	}
}
