// SPDX-License-Identifier: MIT
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/matcalc/internal/config"
	"github.com/katalvlaran/matcalc/internal/logging"
	"github.com/katalvlaran/matcalc/internal/monitoring"
	"github.com/katalvlaran/matcalc/internal/service"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestServer(t *testing.T, mutate func(*config.Config)) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.RateLimit.Enabled = false
	if mutate != nil {
		mutate(cfg)
	}
	metrics := monitoring.NewMetrics()
	calc := service.New(service.Limits{MaxDim: cfg.Limits.MaxDim}, service.WithMetrics(metrics))

	return New(cfg, calc, logging.NewNop(), metrics)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())

	return v
}

func TestHealth(t *testing.T) {
	t.Parallel()
	w := do(t, newTestServer(t, nil), http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
}

func TestRequestID_Propagates(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
}

func TestCalculate_Success(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodPost, "/v1/matrix/add", `{"a":"1,2;3,4","b":"5,6;7,8"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"op":"add","matrix":[[6,8],[10,12]]}`, w.Body.String())

	w = do(t, s, http.MethodPost, "/v1/matrix/multiply", `{"a":"1,2;3,4","b":"5,6;7,8"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"op":"mul","matrix":[[19,22],[43,50]]}`, w.Body.String())

	w = do(t, s, http.MethodPost, "/v1/matrix/identity", `{"n":2}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"op":"identity","matrix":[[1,0],[0,1]]}`, w.Body.String())
}

func TestCalculate_Inverse(t *testing.T) {
	t.Parallel()
	w := do(t, newTestServer(t, nil), http.MethodPost, "/v1/matrix/inv", `{"a":"4,7;2,6"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	v := decode[service.View](t, w)
	require.NotNil(t, v.Determinant)
	require.NotNil(t, v.Residual)
	assert.InDelta(t, 10.0, *v.Determinant, 1e-12)
	assert.InDelta(t, 0.6, v.Matrix[0][0], 1e-12)
	assert.InDelta(t, -0.7, v.Matrix[0][1], 1e-12)
}

func TestCalculate_Errors(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, func(c *config.Config) { c.Limits.MaxDim = 3 })
	cases := []struct {
		name   string
		path   string
		body   string
		status int
		kind   string
	}{
		{"unknown op", "/v1/matrix/pow", `{"a":"1"}`, http.StatusBadRequest, service.KindUnknownOp},
		{"bad json", "/v1/matrix/det", `{"a":`, http.StatusBadRequest, service.KindSyntax},
		{"bad literal", "/v1/matrix/det", `{"a":"1,x"}`, http.StatusBadRequest, service.KindSyntax},
		{"missing b", "/v1/matrix/add", `{"a":"1"}`, http.StatusBadRequest, service.KindMissing},
		{"mismatch", "/v1/matrix/add", `{"a":"1,2","b":"1,2,3"}`, http.StatusBadRequest, service.KindDimension},
		{"too large", "/v1/matrix/transpose", `{"a":"1,2,3,4"}`, http.StatusBadRequest, service.KindTooLarge},
		{"non-square", "/v1/matrix/det", `{"a":"1,2"}`, http.StatusUnprocessableEntity, service.KindNonSquare},
		{"singular", "/v1/matrix/inv", `{"a":"1,2;2,4"}`, http.StatusUnprocessableEntity, service.KindSingular},
		{"empty body", "/v1/matrix/det", ``, http.StatusBadRequest, service.KindMissing},
		{"det overflow", "/v1/matrix/det", `{"a":"1e200,0;0,1e200"}`, http.StatusUnprocessableEntity, service.KindOverflow},
		{"mul overflow", "/v1/matrix/mul", `{"a":"1e200","b":"1e200"}`, http.StatusUnprocessableEntity, service.KindOverflow},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			w := do(t, s, http.MethodPost, tc.path, tc.body)
			require.Equal(t, tc.status, w.Code, w.Body.String())
			e := decode[ErrorResponse](t, w)
			assert.Equal(t, tc.kind, e.Kind)
			assert.NotEmpty(t, e.Error)
		})
	}
}

func TestCalculate_SingularReportsDeterminant(t *testing.T) {
	t.Parallel()
	w := do(t, newTestServer(t, nil), http.MethodPost, "/v1/matrix/inverse", `{"a":"1,2;2,4"}`)
	e := decode[ErrorResponse](t, w)
	require.NotNil(t, e.Determinant)
	assert.Equal(t, 0.0, *e.Determinant)
}

func TestListOps(t *testing.T) {
	t.Parallel()
	w := do(t, newTestServer(t, nil), http.MethodGet, "/v1/ops", "")
	require.Equal(t, http.StatusOK, w.Code)
	v := decode[struct {
		Ops    []string `json:"ops"`
		MaxDim int      `json:"max_dim"`
	}](t, w)
	assert.Contains(t, v.Ops, "inv")
	assert.Equal(t, 10, v.MaxDim)
}

func TestMetricsEndpoints(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)
	do(t, s, http.MethodPost, "/v1/matrix/det", `{"a":"1,2;3,4"}`)

	w := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `matcalc_operations_total{op="det",status="ok"} 1`)

	w = do(t, s, http.MethodGet, "/metrics/json", "")
	require.Equal(t, http.StatusOK, w.Code)
	snap := decode[monitoring.Snapshot](t, w)
	assert.Equal(t, int64(1), snap.TotalOps)
}

func TestRateLimit(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, func(c *config.Config) {
		c.RateLimit.Enabled = true
		c.RateLimit.RequestsPerSecond = 0.001
		c.RateLimit.Burst = 1
	})
	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/health", "").Code)
	require.Equal(t, http.StatusTooManyRequests, do(t, s, http.MethodGet, "/health", "").Code)
}

func TestCORS(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, func(c *config.Config) { c.Server.AllowedOrigins = []string{"http://ok.test"} })

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://ok.test")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, "http://ok.test", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.test")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, func(c *config.Config) {
		c.Server.Host = "127.0.0.1"
		c.Server.Port = 0
	})
	s.http.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestStatusFor(t *testing.T) {
	t.Parallel()
	assert.Equal(t, http.StatusInternalServerError, statusFor(service.KindInternal))
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(service.KindCanceled))
	assert.Equal(t, http.StatusBadRequest, statusFor(service.KindShape))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(service.KindOverflow))
}
