package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"storefront/internal/response"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger attaches a request scoped logger to the context, logs every
// completed request and turns panics into a 500 envelope.
func RequestLogger(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		log := base.With().Str("request_id", requestID).Logger()
		c.Request = c.Request.WithContext(log.WithContext(c.Request.Context()))

		defer func() {
			if r := recover(); r != nil {
				var errMsg string
				if e, ok := r.(error); ok {
					errMsg = e.Error()
				} else {
					errMsg = fmt.Sprintf("%v", r)
				}
				log.Error().
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Int64("user_id", UserID(c)).
					Str("error", errMsg).
					Msg("panic recovered")
				abort(c, response.ServerError(""))
			}
			logCompleted(log, c, time.Since(start))
		}()

		c.Next()
	}
}

func logCompleted(log zerolog.Logger, c *gin.Context, latency time.Duration) {
	status := c.Writer.Status()
	event := log.Info()
	if status >= 500 {
		event = log.Error()
	} else if status >= 400 {
		event = log.Warn()
	}
	event.
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Int("status", status).
		Dur("latency", latency).
		Int64("user_id", UserID(c)).
		Msg("request completed")
}
