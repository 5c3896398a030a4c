package middleware

import (
	"github.com/gin-gonic/gin"

	"storefront/internal/auth"
)

const userIDKey = "userId"

// UserAuth requires an access token.
func UserAuth(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return AuthGuard(tokens, auth.TypeAccess)
}

// RefreshAuth requires a refresh token.
func RefreshAuth(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return AuthGuard(tokens, auth.TypeRefresh)
}

// UserID returns the authenticated caller, or 0 for anonymous requests.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}
