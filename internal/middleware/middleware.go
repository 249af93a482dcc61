package middleware

import (
	"errors"
	"math"
	"net/http"
	"time"

	"banditLab/business/simulation"
	"banditLab/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// TraceID propagates X-Request-ID, or a fresh UUID, into the request context
// via simulation.WithTraceID and echoes it back in the response.
func TraceID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tid := c.Request().Header.Get(echo.HeaderXRequestID)
			if tid == "" {
				tid = uuid.NewString()
			}

			req := c.Request()
			c.SetRequest(req.WithContext(simulation.WithTraceID(req.Context(), tid)))
			c.Response().Header().Set(echo.HeaderXRequestID, tid)

			return next(c)
		}
	}
}

// RateLimit allows rps requests per second per client IP, bursting to the
// next whole number. Rejected requests get 429.
func RateLimit(rps float64) echo.MiddlewareFunc {
	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(rps),
		Burst:     int(math.Ceil(rps)),
		ExpiresIn: 3 * time.Minute,
	})

	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, echo.Map{"message": "unable to identify client"})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			logger.Warn("rate_limited",
				"trace_id", simulation.TraceIDFromContext(c.Request().Context()),
				"client", identifier,
			)
			return c.JSON(http.StatusTooManyRequests, echo.Map{"message": "rate limit exceeded"})
		},
	})
}

// ErrorHandler renders errors that escape handlers as {"message": ...}.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("http_error",
			"trace_id", simulation.TraceIDFromContext(c.Request().Context()),
			"path", c.Path(),
			"error", err,
		)
	}

	if err := c.JSON(code, echo.Map{"message": msg}); err != nil {
		logger.Error("write error response", "error", err)
	}
}
