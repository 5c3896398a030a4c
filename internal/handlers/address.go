package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/response"
	"storefront/internal/service"
)

type AddressRequest struct {
	StreetNumber string `json:"street_number" binding:"required"`
	AddressLine1 string `json:"address_line1" binding:"required"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city" binding:"required"`
	Region       string `json:"region" binding:"required"`
	PostalCode   string `json:"postal_code" binding:"required"`
	CountryID    int64  `json:"country_id" binding:"required"`
}

func (r AddressRequest) address() models.Address {
	return models.Address{
		StreetNumber: r.StreetNumber,
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		City:         r.City,
		Region:       r.Region,
		PostalCode:   r.PostalCode,
		CountryID:    r.CountryID,
	}
}

func ListAddresses(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /address"
		addresses, err := svc.ListAddresses(c.Request.Context())
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		page, ok := paginate(c, route, addresses)
		if !ok {
			return
		}
		render(c, response.OK(page))
	}
}

func GetAddress(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /address/:address_id"
		id, ok := pathID(c, route, "address_id")
		if !ok {
			return
		}
		address, err := svc.GetAddress(c.Request.Context(), id)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(address))
	}
}

func CreateAddress(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /address"
		var req AddressRequest
		if !bindJSON(c, route, &req) {
			return
		}
		address, err := svc.CreateAddress(c.Request.Context(), req.address())
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.Created("Successfully added Address.", address))
	}
}

func UpdateAddress(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /address/:address_id"
		id, ok := pathID(c, route, "address_id")
		if !ok {
			return
		}
		var req AddressRequest
		if !bindJSON(c, route, &req) {
			return
		}
		address, err := svc.UpdateAddress(c.Request.Context(), id, req.address())
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(address).WithMessage("Successfully updated Address."))
	}
}

func DeleteAddress(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /address/:address_id"
		id, ok := pathID(c, route, "address_id")
		if !ok {
			return
		}
		if err := svc.DeleteAddress(c.Request.Context(), middleware.UserID(c), id); err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(nil).WithMessage(fmt.Sprintf("Address id=%d has been deleted.", id)).WithoutData())
	}
}
