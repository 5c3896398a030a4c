package handlers

import (
	"github.com/gin-gonic/gin"

	"storefront/internal/middleware"
	"storefront/internal/response"
	"storefront/internal/service"
)

type ShippingMethodRequest struct {
	Name  string   `json:"name" binding:"required"`
	Price *float64 `json:"price" binding:"required"`
}

func ListShippingMethods(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /shipping-method"
		methods, err := svc.ListShippingMethods(c.Request.Context())
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(methods))
	}
}

func GetShippingMethod(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /shipping-method/:id"
		id, ok := pathID(c, route, "id")
		if !ok {
			return
		}
		m, err := svc.GetShippingMethod(c.Request.Context(), id)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(m))
	}
}

func CreateShippingMethod(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /shipping-method"
		var req ShippingMethodRequest
		if !bindJSON(c, route, &req) {
			return
		}
		m, err := svc.CreateShippingMethod(c.Request.Context(), middleware.UserID(c), req.Name, *req.Price)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.Created("Successfully added Shipping Method.", m))
	}
}

func UpdateShippingMethod(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /shipping-method/:id"
		id, ok := pathID(c, route, "id")
		if !ok {
			return
		}
		var req ShippingMethodRequest
		if !bindJSON(c, route, &req) {
			return
		}
		m, err := svc.UpdateShippingMethod(c.Request.Context(), middleware.UserID(c), id, req.Name, *req.Price)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(m).WithMessage("Successfully updated Shipping Method."))
	}
}

func DeleteShippingMethod(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /shipping-method/:id"
		id, ok := pathID(c, route, "id")
		if !ok {
			return
		}
		if err := svc.DeleteShippingMethod(c.Request.Context(), middleware.UserID(c), id); err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(nil).WithMessage("Successfully deleted Shipping Method.").WithoutData())
	}
}
