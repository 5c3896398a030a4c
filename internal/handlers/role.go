package handlers

import (
	"github.com/gin-gonic/gin"

	"storefront/internal/middleware"
	"storefront/internal/response"
	"storefront/internal/service"
)

type RoleRequest struct {
	Name string `json:"name" binding:"required"`
}

func ListRoles(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /role"
		roles, err := svc.ListRoles(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(roles))
	}
}

func GetRole(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /role/:role_id"
		id, ok := pathID(c, route, "role_id")
		if !ok {
			return
		}
		role, err := svc.GetRole(c.Request.Context(), middleware.UserID(c), id)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(role))
	}
}

func CreateRole(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /role"
		var req RoleRequest
		if !bindJSON(c, route, &req) {
			return
		}
		role, err := svc.CreateRole(c.Request.Context(), middleware.UserID(c), req.Name)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.Created("New Role has been created successfully.", role))
	}
}

func UpdateRole(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /role/:role_id"
		id, ok := pathID(c, route, "role_id")
		if !ok {
			return
		}
		var req RoleRequest
		if !bindJSON(c, route, &req) {
			return
		}
		role, err := svc.UpdateRole(c.Request.Context(), middleware.UserID(c), id, req.Name)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(role).WithMessage("Role has been updated successfully."))
	}
}

func DeleteRole(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /role/:role_id"
		id, ok := pathID(c, route, "role_id")
		if !ok {
			return
		}
		if err := svc.DeleteRole(c.Request.Context(), middleware.UserID(c), id); err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(nil).WithMessage("Role has been deleted successfully.").WithoutData())
	}
}
