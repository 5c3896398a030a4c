package handlers

import (
	"github.com/gin-gonic/gin"

	"storefront/internal/middleware"
	"storefront/internal/response"
	"storefront/internal/service"
)

type CategoryCreateRequest struct {
	Name             string `json:"name" binding:"required"`
	ParentCategoryID *int64 `json:"parent_category_id"`
}

type CategoryRenameRequest struct {
	Name string `json:"name" binding:"required"`
}

// CategoryParentRequest moves a category. A null parent makes it a root.
type CategoryParentRequest struct {
	ParentCategoryID *int64 `json:"parent_category_id"`
}

func CreateCategory(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /product_category"
		var req CategoryCreateRequest
		if !bindJSON(c, route, &req) {
			return
		}
		category, err := svc.CreateCategory(c.Request.Context(), middleware.UserID(c), req.Name, req.ParentCategoryID)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.Created("Successfully added Product Category.", category))
	}
}

func UpdateCategory(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /product_category/:id"
		id, ok := pathID(c, route, "id")
		if !ok {
			return
		}
		var req CategoryRenameRequest
		if !bindJSON(c, route, &req) {
			return
		}
		category, err := svc.RenameCategory(c.Request.Context(), middleware.UserID(c), id, req.Name)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(category).WithMessage("Successfully updated Product Category."))
	}
}

func ReparentCategory(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /product_category/:id/parent"
		id, ok := pathID(c, route, "id")
		if !ok {
			return
		}
		var req CategoryParentRequest
		if !bindJSON(c, route, &req) {
			return
		}
		category, err := svc.ReparentCategory(c.Request.Context(), middleware.UserID(c), id, req.ParentCategoryID)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(category).WithMessage("Successfully moved Product Category."))
	}
}

func DeleteCategory(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /product_category/:id"
		id, ok := pathID(c, route, "id")
		if !ok {
			return
		}
		if err := svc.DeleteCategory(c.Request.Context(), middleware.UserID(c), id); err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(nil).WithMessage("Successfully deleted Product Category.").WithoutData())
	}
}
