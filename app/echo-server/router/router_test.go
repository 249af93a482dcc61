package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"banditLab/business/simulation"
	"banditLab/internal/rest"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newTestServer() *echo.Echo {
	e := echo.New()
	SetOpsRoutes(e)
	SetSimulationRoutes(e.Group("/api/v1"), rest.NewSimulationHandler(simulation.NewService(simulation.DefaultConfig())))
	return e
}

func TestRoutes(t *testing.T) {
	e := newTestServer()

	cases := []struct {
		method, path, body string
		code               int
		contains           string
	}{
		{http.MethodGet, "/healthz", "", http.StatusOK, `"ok"`},
		{http.MethodGet, "/api/v1/simulations/defaults", "", http.StatusOK, `"win_stay_lose_shift"`},
		{http.MethodPost, "/api/v1/simulations", `{"rounds":30,"seed":4,"policies":["uniform_random"]}`, http.StatusOK, `"uniform_random"`},
		{http.MethodPost, "/api/v1/simulations/trials", `{"rounds":30,"seed":4,"trials":3}`, http.StatusOK, `"mean_payoff"`},
		{http.MethodPost, "/api/v1/simulations", `{"rounds":5000000}`, http.StatusBadRequest, "rounds"},
		{http.MethodGet, "/metrics", "", http.StatusOK, "bandit_simulations_total"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.Equal(t, tc.code, rec.Code, tc.path)
		assert.Contains(t, rec.Body.String(), tc.contains, tc.path)
	}
}
