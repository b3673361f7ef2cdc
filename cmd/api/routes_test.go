package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"example.com/footprint/internal/api"
	"example.com/footprint/internal/auth"
	"example.com/footprint/internal/session"
	"example.com/footprint/pkg/logger"
)

// requestCount reads the latency histogram's sample count for one route and status code.
func requestCount(t *testing.T, route, code string) uint64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "footprint_http_request_duration_seconds" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["route"] == route && labels["code"] == code {
				return m.GetHistogram().GetSampleCount()
			}
		}
	}
	return 0
}

func TestHTTPHandlerLogsRejectedRequests(t *testing.T) {
	var buf bytes.Buffer
	tokens := auth.Config{Secret: "test-secret", Issuer: "footprint-test"}
	store := session.NewStore()
	handler := newHTTPHandler(
		api.NewHandler(store, tokens, time.Hour, zap.NewNop()),
		tokens,
		"http://localhost:5173",
		logger.NewWithWriter(logger.Config{Level: "info"}, &buf),
	)

	token, err := auth.Issue(tokens, "ada@example.com", "missing-session", []string{auth.ScopeActivitiesRead}, time.Now().Add(time.Hour))
	require.NoError(t, err)

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		status int
		route  string
	}{
		{name: "missing token", method: http.MethodGet, path: "/v1/activities", status: http.StatusUnauthorized, route: "/v1/activities"},
		{name: "unknown path", method: http.MethodGet, path: "/v1/nope", token: token, status: http.StatusNotFound, route: "unmatched"},
		{name: "wrong method", method: http.MethodDelete, path: "/healthz", status: http.StatusMethodNotAllowed, route: "unmatched"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code := strconv.Itoa(tc.status)
			before := requestCount(t, tc.route, code)
			buf.Reset()

			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			require.Equal(t, tc.status, rr.Code)
			require.NotEmpty(t, rr.Header().Get("X-Request-ID"))
			require.Contains(t, buf.String(), `"path":"`+tc.path+`"`)
			require.Contains(t, buf.String(), `"status":`+code)
			require.Equal(t, before+1, requestCount(t, tc.route, code))
		})
	}
}
