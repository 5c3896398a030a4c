package handlers

import (
	"github.com/gin-gonic/gin"

	"storefront/internal/middleware"
	"storefront/internal/response"
	"storefront/internal/service"
)

type ProductRequest struct {
	CategoryID  int64  `json:"category_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type ProductItemRequest struct {
	SKU   string   `json:"sku"`
	Price *float64 `json:"price" binding:"required"`
}

func CreateProduct(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /product"
		var req ProductRequest
		if !bindJSON(c, route, &req) {
			return
		}
		product, err := svc.CreateProduct(c.Request.Context(), middleware.UserID(c), req.CategoryID, req.Name, req.Description)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.Created("Successfully added Product.", product))
	}
}

func UpdateProduct(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /product/:id"
		id, ok := pathID(c, route, "id")
		if !ok {
			return
		}
		var req ProductRequest
		if !bindJSON(c, route, &req) {
			return
		}
		product, err := svc.UpdateProduct(c.Request.Context(), middleware.UserID(c), id, req.CategoryID, req.Name, req.Description)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(product).WithMessage("Successfully updated Product."))
	}
}

func DeleteProduct(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /product/:id"
		id, ok := pathID(c, route, "id")
		if !ok {
			return
		}
		if err := svc.DeleteProduct(c.Request.Context(), middleware.UserID(c), id); err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(nil).WithMessage("Successfully deleted Product.").WithoutData())
	}
}

func CreateProductItem(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /product/:id/item"
		productID, ok := pathID(c, route, "id")
		if !ok {
			return
		}
		var req ProductItemRequest
		if !bindJSON(c, route, &req) {
			return
		}
		item, err := svc.CreateProductItem(c.Request.Context(), middleware.UserID(c), productID, req.SKU, *req.Price)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.Created("Successfully added Product Item.", item))
	}
}

func UpdateProductItem(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /product_item/:id"
		id, ok := pathID(c, route, "id")
		if !ok {
			return
		}
		var req ProductItemRequest
		if !bindJSON(c, route, &req) {
			return
		}
		item, err := svc.UpdateProductItem(c.Request.Context(), middleware.UserID(c), id, req.SKU, *req.Price)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(item).WithMessage("Successfully updated Product Item."))
	}
}

func DeleteProductItem(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /product_item/:id"
		id, ok := pathID(c, route, "id")
		if !ok {
			return
		}
		if err := svc.DeleteProductItem(c.Request.Context(), middleware.UserID(c), id); err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(nil).WithMessage("Successfully deleted Product Item.").WithoutData())
	}
}

func AttachVariation(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /product_item/:id/variation/:line_id"
		itemID, ok := pathID(c, route, "id")
		if !ok {
			return
		}
		lineID, ok := pathID(c, route, "line_id")
		if !ok {
			return
		}
		link, err := svc.AttachVariation(c.Request.Context(), middleware.UserID(c), itemID, lineID)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.Created("Successfully linked Product Item and Variation Line.", link))
	}
}

func DetachVariation(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /product_item/:id/variation/:line_id"
		itemID, ok := pathID(c, route, "id")
		if !ok {
			return
		}
		lineID, ok := pathID(c, route, "line_id")
		if !ok {
			return
		}
		if err := svc.DetachVariation(c.Request.Context(), middleware.UserID(c), itemID, lineID); err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(nil).WithMessage("Successfully unlinked Product Item and Variation Line.").WithoutData())
	}
}
