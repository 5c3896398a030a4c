package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"storefront/internal/middleware"
	"storefront/internal/response"
	"storefront/internal/service"
)

type CountryRequest struct {
	CountryName string `json:"country_name" binding:"required"`
}

func ListCountries(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /country"
		countries, err := svc.ListCountries(c.Request.Context())
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		page, ok := paginate(c, route, countries)
		if !ok {
			return
		}
		render(c, response.OK(page))
	}
}

func GetCountry(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /country/:country_id"
		id, ok := pathID(c, route, "country_id")
		if !ok {
			return
		}
		country, err := svc.GetCountry(c.Request.Context(), id)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(country))
	}
}

func CreateCountry(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /country"
		var req CountryRequest
		if !bindJSON(c, route, &req) {
			return
		}
		country, err := svc.CreateCountry(c.Request.Context(), middleware.UserID(c), req.CountryName)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.Created("Successfully added Country.", country))
	}
}

func UpdateCountry(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /country/:country_id"
		id, ok := pathID(c, route, "country_id")
		if !ok {
			return
		}
		var req CountryRequest
		if !bindJSON(c, route, &req) {
			return
		}
		country, err := svc.UpdateCountry(c.Request.Context(), middleware.UserID(c), id, req.CountryName)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(country).WithMessage("Successfully updated Country."))
	}
}

func DeleteCountry(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /country/:country_id"
		id, ok := pathID(c, route, "country_id")
		if !ok {
			return
		}
		country, err := svc.DeleteCountry(c.Request.Context(), middleware.UserID(c), id)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(country).WithMessage(fmt.Sprintf("Country %s has been deleted.", country.CountryName)))
	}
}
