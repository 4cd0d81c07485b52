package httpapi

import (
	"time"

	"github.com/labstack/echo/v4"
	"interview-insights-go/internal/logger"
)

const headerRequestID = "X-Request-ID"

// requestLogger assigns a request id and logs one line per request.
func requestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Header.Get(headerRequestID) == "" {
				req.Header.Set(headerRequestID, logger.RequestID(req))
			}
			c.Response().Header().Set(headerRequestID, req.Header.Get(headerRequestID))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			log.WithRequest(req).
				WithField("status", c.Response().Status).
				WithField("duration_ms", time.Since(start).Milliseconds()).
				Info("request handled")
			return nil
		}
	}
}
