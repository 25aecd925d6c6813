// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements bearer-token authentication. Tokens are HS256-signed
// JWTs minted at login; on success the user identity is placed in the Gin
// context for handlers and the rate limiter.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dilazaad/go-support-backend/internal/utils"
)

const (
	// ContextUserIDKey is the Gin context key holding the authenticated user ID (uint).
	ContextUserIDKey = "userID"
	// ContextUsernameKey is the Gin context key holding the authenticated username.
	ContextUsernameKey = "username"
)

// authFail writes the standard error envelope and aborts.
func authFail(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"request_id": c.Writer.Header().Get("X-Request-ID"),
		"code":       "unauthorized",
		"message":    msg,
	})
}

// bearerToken extracts the token from an "Authorization: Bearer <tok>" header.
func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// AuthRequired rejects requests without a valid session token.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := bearerToken(c)
		if tok == "" {
			authFail(c, "missing or malformed authorization header")
			return
		}
		claims, err := utils.ParseToken(secret, tok)
		if err != nil {
			authFail(c, "invalid or expired token")
			return
		}
		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextUsernameKey, claims.Username)
		c.Next()
	}
}

// AuthOptional resolves the identity when a valid token is present and lets
// anonymous requests through untouched. The chat endpoint uses this for guest
// sessions: a guest gets replies, nothing is persisted.
func AuthOptional(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tok := bearerToken(c); tok != "" {
			if claims, err := utils.ParseToken(secret, tok); err == nil {
				c.Set(ContextUserIDKey, claims.UserID)
				c.Set(ContextUsernameKey, claims.Username)
			}
		}
		c.Next()
	}
}

// UserID returns the authenticated user ID or 0 for anonymous requests.
func UserID(c *gin.Context) uint {
	if v, ok := c.Get(ContextUserIDKey); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
