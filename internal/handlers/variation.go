package handlers

import (
	"github.com/gin-gonic/gin"

	"storefront/internal/middleware"
	"storefront/internal/response"
	"storefront/internal/service"
)

type VariationRequest struct {
	CategoryID int64  `json:"category_id" binding:"required"`
	Name       string `json:"name" binding:"required"`
}

type VariationLineRequest struct {
	VariationID int64  `json:"variation_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
}

func ListVariations(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /variation"
		variations, err := svc.ListVariations(c.Request.Context())
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(variations))
	}
}

func GetVariation(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /variation/:id"
		id, ok := pathID(c, route, "id")
		if !ok {
			return
		}
		view, err := svc.GetVariation(c.Request.Context(), id)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(view))
	}
}

func CreateVariation(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /variation"
		var req VariationRequest
		if !bindJSON(c, route, &req) {
			return
		}
		v, err := svc.CreateVariation(c.Request.Context(), middleware.UserID(c), req.CategoryID, req.Name)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.Created("Successfully added Product Variation.", v))
	}
}

func DeleteVariation(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /variation/:id"
		id, ok := pathID(c, route, "id")
		if !ok {
			return
		}
		if err := svc.DeleteVariation(c.Request.Context(), middleware.UserID(c), id); err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(nil).WithMessage("Successfully deleted Product Variation.").WithoutData())
	}
}

func ListVariationLines(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /variation_line"
		variationID, ok := queryID(c, route, "variation_id")
		if !ok {
			return
		}
		lines, err := svc.ListVariationLines(c.Request.Context(), variationID)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(lines))
	}
}

func GetVariationLine(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /variation_line/:id"
		id, ok := pathID(c, route, "id")
		if !ok {
			return
		}
		line, err := svc.GetVariationLine(c.Request.Context(), id)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(line))
	}
}

func CreateVariationLine(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /variation_line"
		var req VariationLineRequest
		if !bindJSON(c, route, &req) {
			return
		}
		line, err := svc.CreateVariationLine(c.Request.Context(), middleware.UserID(c), req.VariationID, req.Name)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.Created("Successfully added Variation Line", line))
	}
}

func DeleteVariationLine(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /variation_line/:id"
		id, ok := pathID(c, route, "id")
		if !ok {
			return
		}
		if err := svc.DeleteVariationLine(c.Request.Context(), middleware.UserID(c), id); err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(nil).WithMessage("Successfully deleted Variation Line.").WithoutData())
	}
}
