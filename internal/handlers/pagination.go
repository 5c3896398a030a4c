package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

var errPagination = errors.New("invalid pagination parameters")

func parsePaginationParams(pageStr, limitStr string) (int64, int64, error) {
	page := int64(1)
	limit := int64(20)

	if pageStr != "" {
		p, err := strconv.ParseInt(pageStr, 10, 64)
		if err != nil || p < 1 {
			return 0, 0, errPagination
		}
		page = p
	}

	if limitStr != "" {
		l, err := strconv.ParseInt(limitStr, 10, 64)
		if err != nil || l < 1 {
			return 0, 0, errPagination
		}
		limit = l
	}

	return page, limit, nil
}

// paginate applies ?page and ?limit to items. Without either parameter the
// full listing is returned.
func paginate[T any](c *gin.Context, route string, items []T) ([]T, bool) {
	pageStr, limitStr := c.Query("page"), c.Query("limit")
	if pageStr == "" && limitStr == "" {
		if items == nil {
			items = []T{}
		}
		return items, true
	}
	page, limit, err := parsePaginationParams(pageStr, limitStr)
	if err != nil {
		respondBadRequest(c, route, "Invalid pagination parameters.")
		return nil, false
	}
	total := int64(len(items))
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	if page-1 >= pages {
		return []T{}, true
	}
	start := (page - 1) * limit
	end := total
	if limit < total-start {
		end = start + limit
	}
	return items[start:end], true
}
