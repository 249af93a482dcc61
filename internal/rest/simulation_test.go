package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"banditLab/business/bandit"
	"banditLab/business/simulation"
	"banditLab/domain"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	gotReq   domain.SimulationRequest
	gotTrial domain.TrialRequest
	err      error
}

func (f *fakeService) Simulate(_ context.Context, req domain.SimulationRequest) (domain.SimulationReport, error) {
	f.gotReq = req
	if f.err != nil {
		return domain.SimulationReport{}, f.err
	}
	return domain.SimulationReport{RunID: "run-1", Rounds: req.Rounds}, nil
}

func (f *fakeService) SimulateTrials(_ context.Context, req domain.TrialRequest) (domain.TrialReport, error) {
	f.gotTrial = req
	if f.err != nil {
		return domain.TrialReport{}, f.err
	}
	return domain.TrialReport{RunID: "run-2", Trials: req.Trials}, nil
}

func (f *fakeService) Defaults() domain.TrialRequest {
	return domain.TrialRequest{Trials: 3}
}

func post(t *testing.T, handler echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	return rec
}

func TestSimulate_OK(t *testing.T) {
	svc := &fakeService{}
	h := NewSimulationHandler(svc)

	rec := post(t, h.Simulate, `{"arms":[{"kind":"bernoulli","p":0.4},{"kind":"normal","mu":1,"sigma":2}],"policies":["ucb1"],"rounds":20,"seed":7}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "run-1")

	assert.Equal(t, 20, svc.gotReq.Rounds)
	assert.Equal(t, uint64(7), svc.gotReq.Seed)
	assert.Equal(t, []domain.PolicyKind{domain.PolicyUCB1}, svc.gotReq.Policies)
	assert.Equal(t, domain.NormalSpec(1, 2), svc.gotReq.Arms[1])
}

func TestSimulate_ValidationErrors(t *testing.T) {
	h := NewSimulationHandler(&fakeService{})

	bodies := []string{
		`{"arms":[{"kind":"poisson"}]}`,
		`{"arms":[{"kind":"bernoulli","p":1.5}]}`,
		`{"arms":[{"kind":"normal","sigma":-1}]}`,
		`{"policies":["greedy"]}`,
		`{"rounds":-1}`,
		`{"rounds":`,
	}
	for _, body := range bodies {
		rec := post(t, h.Simulate, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)

		var res ResponseError
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.NotEmpty(t, res.Message)
	}
}

func TestSimulate_ServiceErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("run simulation: %w", bandit.ErrInvalidConfig), http.StatusBadRequest},
		{fmt.Errorf("round 3: %w", bandit.ErrInvalidArm), http.StatusBadRequest},
		{context.Canceled, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		h := NewSimulationHandler(&fakeService{err: tc.err})
		rec := post(t, h.Simulate, `{}`)
		assert.Equal(t, tc.code, rec.Code, tc.err.Error())
	}
}

func TestSimulateTrials(t *testing.T) {
	svc := &fakeService{}
	h := NewSimulationHandler(svc)

	rec := post(t, h.SimulateTrials, `{"rounds":10,"trials":4}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4, svc.gotTrial.Trials)
	assert.Equal(t, 10, svc.gotTrial.Rounds)

	rec = post(t, h.SimulateTrials, `{"trials":-2}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDefaults(t *testing.T) {
	h := NewSimulationHandler(&fakeService{})
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Defaults(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"trials":3`)
}

// Runs the real service end to end through the handler.
func TestSimulate_RealService(t *testing.T) {
	h := NewSimulationHandler(simulation.NewService(simulation.DefaultConfig()))

	rec := post(t, h.Simulate, `{"rounds":100,"seed":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"fixed_first"`)
	assert.Contains(t, rec.Body.String(), `"counts":[100,0,0,0,0]`)
}
