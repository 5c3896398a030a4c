package handlers

import (
	"github.com/gin-gonic/gin"

	"storefront/internal/auth"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/response"
	"storefront/internal/service"
)

type RegisterRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	EmailAddress string `json:"email_address" binding:"required"`
	PhoneNumber  string `json:"phone_number" binding:"required"`
	Password     string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func (r RegisterRequest) user() models.User {
	return models.User{
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		EmailAddress: r.EmailAddress,
		PhoneNumber:  r.PhoneNumber,
	}
}

func Register(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /user/register"
		var req RegisterRequest
		if !bindJSON(c, route, &req) {
			return
		}
		user, err := svc.Register(c.Request.Context(), req.user(), req.Password)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.Created("New User created successfully", user))
	}
}

// Login exchanges credentials for a fresh access token and a refresh token.
func Login(svc *service.Service, tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /login"
		var req LoginRequest
		if !bindJSON(c, route, &req) {
			return
		}
		ctx := c.Request.Context()
		user, err := svc.Authenticate(ctx, req.Email, req.Password)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		isAdmin, err := svc.IsAdmin(ctx, user.ID)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		pair, err := tokens.IssuePair(user.ID, isAdmin)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(pair).WithMessage("Logged in successful."))
	}
}

// Refresh issues a non-fresh access token for the holder of a refresh
// token. The admin claim is recomputed from the current role.
func Refresh(svc *service.Service, tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /refresh"
		userID := middleware.UserID(c)
		isAdmin, err := svc.IsAdmin(c.Request.Context(), userID)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		pair, err := tokens.Refresh(userID, isAdmin)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(pair))
	}
}

func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, response.Unimplemented())
	}
}

func ResetPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /reset-password"
		var req ResetPasswordRequest
		if !bindJSON(c, route, &req) {
			return
		}
		render(c, response.Unimplemented())
	}
}

// Health reports whether the persistence engine answers.
func Health(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /health"
		if err := svc.Ping(c.Request.Context()); err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(gin.H{"status": "ok"}))
	}
}
