package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"banditLab/business/bandit"
	"banditLab/domain"
	"banditLab/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

type (
	SimulationHandler struct {
		validate          *validator.Validate
		simulationService SimulationService
	}

	SimulationService interface {
		Simulate(ctx context.Context, req domain.SimulationRequest) (domain.SimulationReport, error)
		SimulateTrials(ctx context.Context, req domain.TrialRequest) (domain.TrialReport, error)
		Defaults() domain.TrialRequest
	}

	ResponseError struct {
		Message string `json:"message"`
	}
)

func NewSimulationHandler(svc SimulationService) *SimulationHandler {
	return &SimulationHandler{
		validate:          validator.New(),
		simulationService: svc,
	}
}

// POST /api/v1/simulations
func (h *SimulationHandler) Simulate(c echo.Context) error {
	const endpoint = "simulate"
	timer := prometheus.NewTimer(metrics.SimulationLatency.WithLabelValues(endpoint))
	defer timer.ObserveDuration()

	var req domain.SimulationRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, endpoint, http.StatusBadRequest, err)
	}
	if err := h.validate.Struct(&req); err != nil {
		return respondError(c, endpoint, http.StatusBadRequest, err)
	}

	report, err := h.simulationService.Simulate(c.Request().Context(), req)
	if err != nil {
		return respondError(c, endpoint, statusFor(err), err)
	}

	metrics.SimulationRequests.WithLabelValues(endpoint, strconv.Itoa(http.StatusOK)).Inc()
	return c.JSON(http.StatusOK, fres.Response.StatusOK(report))
}

// POST /api/v1/simulations/trials
func (h *SimulationHandler) SimulateTrials(c echo.Context) error {
	const endpoint = "trials"
	timer := prometheus.NewTimer(metrics.SimulationLatency.WithLabelValues(endpoint))
	defer timer.ObserveDuration()

	var req domain.TrialRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, endpoint, http.StatusBadRequest, err)
	}
	if err := h.validate.Struct(&req); err != nil {
		return respondError(c, endpoint, http.StatusBadRequest, err)
	}

	report, err := h.simulationService.SimulateTrials(c.Request().Context(), req)
	if err != nil {
		return respondError(c, endpoint, statusFor(err), err)
	}

	metrics.SimulationRequests.WithLabelValues(endpoint, strconv.Itoa(http.StatusOK)).Inc()
	return c.JSON(http.StatusOK, fres.Response.StatusOK(report))
}

// GET /api/v1/simulations/defaults
func (h *SimulationHandler) Defaults(c echo.Context) error {
	return c.JSON(http.StatusOK, fres.Response.StatusOK(h.simulationService.Defaults()))
}

func respondError(c echo.Context, endpoint string, code int, err error) error {
	metrics.SimulationRequests.WithLabelValues(endpoint, strconv.Itoa(code)).Inc()
	return c.JSON(code, ResponseError{Message: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, bandit.ErrInvalidConfig), errors.Is(err, bandit.ErrInvalidArm):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
