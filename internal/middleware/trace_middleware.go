package middleware

import (
	"context"
	"myFitLane/business/catalog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const TraceHeader = "X-Trace-Id"

// Trace tags every request with a trace id, reusing the caller's when one is
// supplied.
func Trace() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tid := c.Request().Header.Get(TraceHeader)
			if tid == "" {
				tid = uuid.NewString()
			}

			ctx := context.WithValue(c.Request().Context(), catalog.TraceIDKey, tid)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set(TraceHeader, tid)

			return next(c)
		}
	}
}
