package handlers

import (
	"github.com/gin-gonic/gin"

	"storefront/internal/middleware"
	"storefront/internal/response"
	"storefront/internal/service"
)

type PaymentTypeRequest struct {
	Name string `json:"name" binding:"required"`
}

func ListPaymentTypes(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /payment-type"
		types, err := svc.ListPaymentTypes(c.Request.Context())
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(types))
	}
}

func GetPaymentType(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /payment-type/:payment_type_id"
		id, ok := pathID(c, route, "payment_type_id")
		if !ok {
			return
		}
		pt, err := svc.GetPaymentType(c.Request.Context(), id)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(pt))
	}
}

func CreatePaymentType(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /payment-type"
		var req PaymentTypeRequest
		if !bindJSON(c, route, &req) {
			return
		}
		pt, err := svc.CreatePaymentType(c.Request.Context(), middleware.UserID(c), req.Name)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.Created("Successfully added Payment Type.", pt))
	}
}

func DeletePaymentType(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /payment-type/:payment_type_id"
		id, ok := pathID(c, route, "payment_type_id")
		if !ok {
			return
		}
		if err := svc.DeletePaymentType(c.Request.Context(), middleware.UserID(c), id); err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(nil).WithMessage("Payment Type has been deleted.").WithoutData())
	}
}
