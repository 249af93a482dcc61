package router

import (
	"net/http"

	"banditLab/internal/rest"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetSimulationRoutes(api *echo.Group, handler *rest.SimulationHandler) {
	sims := api.Group("/simulations")
	sims.POST("", handler.Simulate)
	sims.POST("/trials", handler.SimulateTrials)
	sims.GET("/defaults", handler.Defaults)
}

func SetOpsRoutes(e *echo.Echo) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
}
