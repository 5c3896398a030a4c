package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"storefront/internal/response"
	"storefront/internal/service"
)

// GetCategories lists root categories, each with its immediate children.
func GetCategories(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /product_category"
		categories, err := svc.ListCategories(c.Request.Context())
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		page, ok := paginate(c, route, categories)
		if !ok {
			return
		}
		zerolog.Ctx(c.Request.Context()).Debug().Str("route", route).Int("count", len(page)).Msg("returning categories")
		render(c, response.OK(page))
	}
}

func GetCategory(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /product_category/:id"
		id, ok := pathID(c, route, "id")
		if !ok {
			return
		}
		category, err := svc.GetCategory(c.Request.Context(), id)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(category))
	}
}
