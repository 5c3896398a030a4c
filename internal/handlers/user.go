package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/response"
	"storefront/internal/service"
)

type CreateUserRequest struct {
	RegisterRequest
	RoleID int64 `json:"role_id"`
}

type UpdateSelfRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number" binding:"required"`
}

type UpdateUserRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
	Password    *string `json:"password"`
	RoleID      *int64  `json:"role_id"`
	Status      *bool   `json:"status"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type PaymentMethodRequest struct {
	PaymentTypeID int64  `json:"payment_type_id" binding:"required"`
	Provider      string `json:"provider"`
	AccountNumber string `json:"account_number"`
	ExpiryDate    string `json:"expiry_date"`
	IsDefault     bool   `json:"is_default"`
}

func ListUsers(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /user"
		users, err := svc.ListUsers(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		page, ok := paginate(c, route, users)
		if !ok {
			return
		}
		render(c, response.OK(page))
	}
}

func CreateUser(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /user"
		var req CreateUserRequest
		if !bindJSON(c, route, &req) {
			return
		}
		fields := req.user()
		fields.RoleID = req.RoleID
		user, err := svc.CreateUser(c.Request.Context(), middleware.UserID(c), fields, req.Password)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.Created("New User created successfully", user))
	}
}

// GetMe returns the caller's own account with role, addresses and payment
// methods.
func GetMe(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /user/detail"
		actor := middleware.UserID(c)
		view, err := svc.GetUserDetail(c.Request.Context(), actor, actor)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(view))
	}
}

func UpdateMe(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /user"
		var req UpdateSelfRequest
		if !bindJSON(c, route, &req) {
			return
		}
		user, err := svc.UpdateSelf(c.Request.Context(), middleware.UserID(c), req.FirstName, req.LastName, req.PhoneNumber)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(user).WithMessage("Your information has been updated successfully."))
	}
}

func GetUser(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /user/:user_id"
		id, ok := pathID(c, route, "user_id")
		if !ok {
			return
		}
		view, err := svc.GetUserDetail(c.Request.Context(), middleware.UserID(c), id)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(view))
	}
}

func UpdateUser(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /user/:user_id"
		id, ok := pathID(c, route, "user_id")
		if !ok {
			return
		}
		var req UpdateUserRequest
		if !bindJSON(c, route, &req) {
			return
		}
		user, err := svc.UpdateUser(c.Request.Context(), middleware.UserID(c), id, service.UserUpdate{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			PhoneNumber: req.PhoneNumber,
			Password:    req.Password,
			RoleID:      req.RoleID,
			Status:      req.Status,
		})
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(user).WithMessage("Successfully Updated User Information."))
	}
}

func DeleteUser(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /user/:user_id"
		id, ok := pathID(c, route, "user_id")
		if !ok {
			return
		}
		user, err := svc.DeleteUser(c.Request.Context(), middleware.UserID(c), id)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(user).WithMessage(fmt.Sprintf("User %s has been deleted.", user.EmailAddress)))
	}
}

func AssignRole(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /user/:user_id/role/:role_id"
		userID, ok := pathID(c, route, "user_id")
		if !ok {
			return
		}
		roleID, ok := pathID(c, route, "role_id")
		if !ok {
			return
		}
		user, role, err := svc.AssignRole(c.Request.Context(), middleware.UserID(c), userID, roleID)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		msg := fmt.Sprintf("User %s has been assigned as %s.", user.EmailAddress, role.Name)
		render(c, response.OK(nil).WithMessage(msg).WithoutData())
	}
}

func ChangePassword(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /user/change-password"
		var req ChangePasswordRequest
		if !bindJSON(c, route, &req) {
			return
		}
		user, err := svc.ChangePassword(c.Request.Context(), middleware.UserID(c), req.OldPassword, req.NewPassword)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		msg := fmt.Sprintf("Password updated successfully for user %s.", user.EmailAddress)
		render(c, response.OK(nil).WithMessage(msg).WithoutData())
	}
}

func ListPaymentMethods(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /user/:user_id/payment-method"
		userID, ok := pathID(c, route, "user_id")
		if !ok {
			return
		}
		methods, err := svc.ListPaymentMethods(c.Request.Context(), middleware.UserID(c), userID)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		page, ok := paginate(c, route, methods)
		if !ok {
			return
		}
		render(c, response.OK(page))
	}
}

func CreatePaymentMethod(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /user/:user_id/payment-method"
		userID, ok := pathID(c, route, "user_id")
		if !ok {
			return
		}
		var req PaymentMethodRequest
		if !bindJSON(c, route, &req) {
			return
		}
		method, err := svc.CreatePaymentMethod(c.Request.Context(), middleware.UserID(c), userID, models.UserPaymentMethod{
			PaymentTypeID: req.PaymentTypeID,
			Provider:      req.Provider,
			AccountNumber: req.AccountNumber,
			ExpiryDate:    req.ExpiryDate,
			IsDefault:     req.IsDefault,
		})
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.Created("Successfully added Payment Method.", method))
	}
}

func ListUserAddresses(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /user/:user_id/address"
		userID, ok := pathID(c, route, "user_id")
		if !ok {
			return
		}
		addresses, err := svc.ListUserAddresses(c.Request.Context(), middleware.UserID(c), userID)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(addresses))
	}
}

func LinkUserAddress(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /user/:user_id/address/:address_id"
		userID, ok := pathID(c, route, "user_id")
		if !ok {
			return
		}
		addressID, ok := pathID(c, route, "address_id")
		if !ok {
			return
		}
		link, err := svc.LinkUserAddress(c.Request.Context(), middleware.UserID(c), userID, addressID)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.Created("Successfully link user and address.", link))
	}
}

func UnlinkUserAddress(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /user/:user_id/address/:address_id"
		userID, ok := pathID(c, route, "user_id")
		if !ok {
			return
		}
		addressID, ok := pathID(c, route, "address_id")
		if !ok {
			return
		}
		if err := svc.UnlinkUserAddress(c.Request.Context(), middleware.UserID(c), userID, addressID); err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(nil).WithMessage("Successfully unlink user and address.").WithoutData())
	}
}

func SetDefaultAddress(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /user/:user_id/address/:address_id/default"
		userID, ok := pathID(c, route, "user_id")
		if !ok {
			return
		}
		addressID, ok := pathID(c, route, "address_id")
		if !ok {
			return
		}
		if err := svc.SetDefaultAddress(c.Request.Context(), middleware.UserID(c), userID, addressID); err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(nil).WithMessage("Default address updated.").WithoutData())
	}
}
