package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"storefront/internal/auth"
	"storefront/internal/response"
)

// AuthGuard accepts a bearer token of type typ and stores the caller's
// user id in the context. It never authorizes on the is_admin claim.
func AuthGuard(tokens *auth.TokenIssuer, typ string) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := zerolog.Ctx(c.Request.Context())

		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if raw == "" {
			log.Debug().Msg("missing authorization header")
			abort(c, response.Unauthorized("Missing Authorization Header."))
			return
		}

		parts := strings.Split(raw, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			log.Debug().Msg("malformed authorization header")
			abort(c, response.Unauthorized("Authorization header must be 'Bearer <token>'."))
			return
		}

		claims, err := tokens.Parse(parts[1], typ)
		if err != nil {
			log.Debug().Err(err).Str("type", typ).Msg("token rejected")
			abort(c, response.Unauthorized("Token is invalid or has expired."))
			return
		}

		userID, _ := claims.UserID()
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func abort(c *gin.Context, env response.Envelope) {
	c.AbortWithStatusJSON(env.Code, env)
}
