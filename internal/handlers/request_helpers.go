package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"storefront/internal/response"
)

func render(c *gin.Context, env response.Envelope) {
	c.JSON(env.Code, env)
}

// respondWithError renders err through the error taxonomy and logs it with
// the route. Store details stay in the log.
func respondWithError(c *gin.Context, route string, err error) {
	env := response.FromError(err)
	log := zerolog.Ctx(c.Request.Context())
	event := log.Debug()
	if env.Code >= 500 {
		event = log.Error()
	}
	event.Err(err).Str("route", route).Int("status", env.Code).Msg("returning error")
	c.AbortWithStatusJSON(env.Code, env)
}

func respondBadRequest(c *gin.Context, route, message string) {
	zerolog.Ctx(c.Request.Context()).Debug().Str("route", route).Msg(message)
	env := response.BadRequest(message)
	c.AbortWithStatusJSON(env.Code, env)
}

func respondValidationError(c *gin.Context, route string, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			field := fieldError.Field()
			switch fieldError.Tag() {
			case "required":
				details = append(details, fmt.Sprintf("%s is required", field))
			default:
				details = append(details, fmt.Sprintf("%s is invalid", field))
			}
		}
		respondBadRequest(c, route, "validation failed: "+strings.Join(details, "; "))
		return
	}
	respondBadRequest(c, route, "invalid body: "+err.Error())
}

// bindJSON decodes the body into dst and renders a 400 on failure.
func bindJSON(c *gin.Context, route string, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondValidationError(c, route, err)
		return false
	}
	return true
}

// pathID parses a positive integer path parameter.
func pathID(c *gin.Context, route, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(c, route, fmt.Sprintf("Invalid %s.", name))
		return 0, false
	}
	return id, true
}

// queryID parses an optional positive integer query parameter.
func queryID(c *gin.Context, route, name string) (*int64, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(c, route, fmt.Sprintf("Invalid %s.", name))
		return nil, false
	}
	return &id, true
}

var jsonNamesOnce sync.Once

// useJSONFieldNames makes binding errors report json names instead of Go
// field names.
func useJSONFieldNames() {
	jsonNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
	})
}
