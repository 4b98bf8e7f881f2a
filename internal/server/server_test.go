package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/njchilds90/gopoly"
	"github.com/njchilds90/gopoly/internal/config"
)

func newTestServer(t *testing.T) (*Server, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	s := New(config.DefaultConfig(), zap.New(core))
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return s, logs
}

func postTool(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/tool", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestTool_Add(t *testing.T) {
	s, logs := newTestServer(t)
	rec := postTool(t, s.Handler(), `{"tool":"add","params":{"a":"3x^2 + 2x + 4","b":"2x^2 - 1"}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp gopoly.ToolResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Error)
	assert.Equal(t, "5x^2+2x+3", resp.String)

	entries := logs.FilterMessage("tool call").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "add", entries[0].ContextMap()["tool"])
	assert.NotEmpty(t, entries[0].ContextMap()["request_id"])
}

func TestTool_ErrorIsReportedInBody(t *testing.T) {
	s, logs := newTestServer(t)
	rec := postTool(t, s.Handler(), `{"tool":"add_term","params":{"poly":"x","coefficient":1,"exponent":-1}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp gopoly.ToolResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "invalid exponent")
	assert.Equal(t, 1, logs.FilterMessage("tool call failed").Len())
}

func TestTool_BadRequests(t *testing.T) {
	s, _ := newTestServer(t)
	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed", `{"tool":`, "unexpected EOF"},
		{"unknown field", `{"tool":"parse","extra":1}`, "unknown field"},
		{"trailing data", `{"tool":"parse","params":{"poly":"x"}} {}`, "trailing data"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postTool(t, s.Handler(), tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestTool_BodyLimit(t *testing.T) {
	s, _ := newTestServer(t)
	s.cfg.Server.MaxBodyBytes = 16
	rec := postTool(t, s.Handler(), `{"tool":"parse","params":{"poly":"3x^2 + 2x + 4"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTool_MethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tool", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestSchema(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/schema", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, gopoly.MCPToolSpec(), rec.Body.String())
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","time":"2026-01-02T03:04:05Z"}`, rec.Body.String())
}

func TestRequestID(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	generated := rec.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(generated)
	require.NoError(t, err)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, id)
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(RequestIDHeader))
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	s, logs := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Post("http://"+ln.Addr().String()+"/tool", "application/json",
		bytes.NewBufferString(`{"tool":"evaluate","params":{"poly":"3x^2","x":2}}`))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.JSONEq(t, `{"result":12,"string":"12"}`, string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.Equal(t, 1, logs.FilterMessage("shutting down").Len())
}

func TestRun_ListenError(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.Port = -1
	err := New(cfg, nil).Run(context.Background())
	assert.ErrorContains(t, err, "listen")
}
