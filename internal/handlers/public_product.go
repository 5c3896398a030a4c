package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"storefront/internal/response"
	"storefront/internal/service"
)

// GetProducts lists products, optionally of one category. Pagination is
// applied only when page or limit is given.
func GetProducts(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /product"
		categoryID, ok := queryID(c, route, "category_id")
		if !ok {
			return
		}
		zerolog.Ctx(c.Request.Context()).Debug().
			Str("route", route).
			Str("page", c.Query("page")).
			Str("limit", c.Query("limit")).
			Str("category_id", c.Query("category_id")).
			Msg("hit")

		products, err := svc.ListProducts(c.Request.Context(), categoryID)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		page, ok := paginate(c, route, products)
		if !ok {
			return
		}
		render(c, response.OK(page))
	}
}

func GetProduct(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /product/:id"
		id, ok := pathID(c, route, "id")
		if !ok {
			return
		}
		product, err := svc.GetProduct(c.Request.Context(), id)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(product))
	}
}

func GetProductItems(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /product/:id/item"
		id, ok := pathID(c, route, "id")
		if !ok {
			return
		}
		items, err := svc.ListProductItems(c.Request.Context(), id)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(items))
	}
}

func GetProductItem(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /product_item/:id"
		id, ok := pathID(c, route, "id")
		if !ok {
			return
		}
		item, err := svc.GetProductItem(c.Request.Context(), id)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(item))
	}
}
