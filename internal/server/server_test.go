package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/shorts-optimizer/internal/optimizer"
	"github.com/jonathan/shorts-optimizer/internal/server/ratelimit"
	"github.com/jonathan/shorts-optimizer/internal/session"
	"github.com/jonathan/shorts-optimizer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOptimizer struct {
	result *types.OptimizationResult
	err    error
	gate   chan struct{}
}

func (f *fakeOptimizer) Optimize(_ context.Context, _ string) (*types.OptimizationResult, error) {
	if f.gate != nil {
		<-f.gate
	}
	return f.result, f.err
}

func sampleResult() *types.OptimizationResult {
	return &types.OptimizationResult{
		RefinedScript: []types.Shot{
			{Number: 1, Visual: "V1", Audio: "A1"},
			{Number: 2, Visual: "V2", Audio: "A2"},
		},
		Titles:       []string{"T1", "T2"},
		Description:  "Desc",
		EditingGuide: "Guide",
	}
}

func newTestServer(opt session.Optimizer) *Server {
	return New(Config{RateLimit: &ratelimit.Config{Enabled: false}}, opt)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func waitStatus(t *testing.T, s *Server, want session.Status) {
	t.Helper()
	require.Eventually(t, func() bool {
		return s.Controller().State().Status() == want
	}, time.Second, 5*time.Millisecond)
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(&fakeOptimizer{})

	w := do(t, s.Handler(), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, w)["status"])
}

func TestOptimizeEndpoint_Success(t *testing.T) {
	s := newTestServer(&fakeOptimizer{result: sampleResult()})

	w := do(t, s.Handler(), http.MethodPost, "/optimize", `{"script":"my idea"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	got := decode[types.OptimizationResult](t, w)
	assert.Equal(t, *sampleResult(), got)
}

func TestOptimizeEndpoint_Errors(t *testing.T) {
	tests := []struct {
		name       string
		opt        *fakeOptimizer
		body       string
		wantStatus int
		wantKind   optimizer.Kind
		wantError  string
	}{
		{
			name:       "blank script",
			opt:        &fakeOptimizer{result: sampleResult()},
			body:       `{"script":"   "}`,
			wantStatus: http.StatusBadRequest,
			wantKind:   optimizer.KindValidation,
			wantError:  "Script is empty",
		},
		{
			name:       "invalid body",
			opt:        &fakeOptimizer{result: sampleResult()},
			body:       `{not json`,
			wantStatus: http.StatusBadRequest,
			wantKind:   optimizer.KindValidation,
		},
		{
			name:       "empty response",
			opt:        &fakeOptimizer{err: &optimizer.EmptyResponseError{}},
			body:       `{"script":"idea"}`,
			wantStatus: http.StatusBadGateway,
			wantKind:   optimizer.KindEmptyResponse,
			wantError:  "No response from AI",
		},
		{
			name:       "nil result without error",
			opt:        &fakeOptimizer{},
			body:       `{"script":"idea"}`,
			wantStatus: http.StatusBadGateway,
			wantKind:   optimizer.KindEmptyResponse,
		},
		{
			name:       "malformed response",
			opt:        &fakeOptimizer{err: &optimizer.MalformedResponseError{Message: "bad"}},
			body:       `{"script":"idea"}`,
			wantStatus: http.StatusBadGateway,
			wantKind:   optimizer.KindMalformedResponse,
			wantError:  "The AI returned a response in an unexpected format",
		},
		{
			name:       "transport error",
			opt:        &fakeOptimizer{err: &optimizer.TransportError{Cause: errors.New("dial tcp: refused")}},
			body:       `{"script":"idea"}`,
			wantStatus: http.StatusBadGateway,
			wantKind:   optimizer.KindTransport,
			wantError:  "Failed to reach the AI service: dial tcp: refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(tt.opt)

			w := do(t, s.Handler(), http.MethodPost, "/optimize", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			body := decode[ErrorBody](t, w)
			assert.Equal(t, tt.wantKind, body.Kind)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, body.Error)
			}
		})
	}
}

func TestSessionFlow(t *testing.T) {
	s := newTestServer(&fakeOptimizer{result: sampleResult()})
	h := s.Handler()

	w := do(t, h, http.MethodGet, "/session", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, session.StatusIdle, decode[StateResponse](t, w).Status)

	w = do(t, h, http.MethodGet, "/session/export/script", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodPut, "/session/input", `{"script":"draft idea"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "draft idea", decode[StateResponse](t, w).InputScript)

	// Empty body submits the current input
	w = do(t, h, http.MethodPost, "/session/submit", "")
	require.Equal(t, http.StatusAccepted, w.Code)
	waitStatus(t, s, session.StatusSucceeded)

	w = do(t, h, http.MethodGet, "/session", "")
	st := decode[StateResponse](t, w)
	assert.Equal(t, session.StatusSucceeded, st.Status)
	assert.Equal(t, "draft idea", st.InputScript)
	require.NotNil(t, st.Result)

	w = do(t, h, http.MethodGet, "/session/export/script", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "Shot 1\nVisual: V1\nAudio: A1\n\nShot 2\nVisual: V2\nAudio: A2", w.Body.String())

	w = do(t, h, http.MethodGet, "/session/export/titles", "")
	assert.Equal(t, "T1\nT2", w.Body.String())

	w = do(t, h, http.MethodGet, "/session/export/thumbnail", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/session/submit", `{"script":"another"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, h, http.MethodPost, "/session/reset", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, session.StatusIdle, decode[StateResponse](t, w).Status)
	assert.Equal(t, session.State{}, s.Controller().State())
}

func TestSessionSubmit_Blank(t *testing.T) {
	s := newTestServer(&fakeOptimizer{result: sampleResult()})

	w := do(t, s.Handler(), http.MethodPost, "/session/submit", `{"script":""}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, optimizer.KindValidation, decode[ErrorBody](t, w).Kind)
	assert.Equal(t, session.StatusIdle, s.Controller().State().Status())
}

func TestSessionSubmit_InFlight(t *testing.T) {
	opt := &fakeOptimizer{result: sampleResult(), gate: make(chan struct{})}
	s := newTestServer(opt)
	h := s.Handler()

	w := do(t, h, http.MethodPost, "/session/submit", `{"script":"first"}`)
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.True(t, decode[StateResponse](t, w).IsOptimizing)

	w = do(t, h, http.MethodPost, "/session/submit", `{"script":"second"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	close(opt.gate)
	waitStatus(t, s, session.StatusSucceeded)
	assert.Equal(t, "first", s.Controller().State().InputScript)
}

func TestSessionSubmit_FailureReported(t *testing.T) {
	s := newTestServer(&fakeOptimizer{err: &optimizer.EmptyResponseError{}})
	h := s.Handler()

	w := do(t, h, http.MethodPost, "/session/submit", `{"script":"idea"}`)
	require.Equal(t, http.StatusAccepted, w.Code)
	waitStatus(t, s, session.StatusFailed)

	st := decode[StateResponse](t, do(t, h, http.MethodGet, "/session", ""))
	assert.Equal(t, "No response from AI", st.Error)
	assert.Equal(t, "idea", st.InputScript)
}

func TestSessionEvents(t *testing.T) {
	opt := &fakeOptimizer{result: sampleResult(), gate: make(chan struct{})}
	s := newTestServer(opt)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/session/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	events := make(chan StateResponse, 16)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			line := scanner.Text()
			if data, ok := strings.CutPrefix(line, "data: "); ok {
				var st StateResponse
				if json.Unmarshal([]byte(data), &st) == nil {
					events <- st
				}
			}
		}
		close(events)
	}()

	next := func() StateResponse {
		select {
		case st := <-events:
			return st
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for event")
			return StateResponse{}
		}
	}

	assert.Equal(t, session.StatusIdle, next().Status)

	_, accepted := s.Controller().Submit(context.Background(), "idea")
	require.True(t, accepted)
	assert.Equal(t, session.StatusSubmitting, next().Status)

	close(opt.gate)
	final := next()
	assert.Equal(t, session.StatusSucceeded, final.Status)
	require.NotNil(t, final.Result)
	assert.Equal(t, "Desc", final.Result.Description)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(&fakeOptimizer{})

	w := do(t, s.Handler(), http.MethodOptions, "/optimize", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PUT")
}

func TestRateLimit(t *testing.T) {
	s := New(Config{RateLimit: &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Endpoints: []ratelimit.EndpointConfig{
			{Path: "/optimize", Method: "POST", Limit: 1, Window: time.Hour, Burst: 1},
		},
	}}, &fakeOptimizer{result: sampleResult()})
	h := s.Handler()

	w := do(t, h, http.MethodPost, "/optimize", `{"script":"idea"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = do(t, h, http.MethodPost, "/optimize", `{"script":"idea"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limit_exceeded", decode[map[string]any](t, w)["kind"])

	w = do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	s := newTestServer(&fakeOptimizer{})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil", err: nil, expected: http.StatusOK},
		{name: "validation", err: &optimizer.ValidationError{Message: "x"}, expected: http.StatusBadRequest},
		{name: "empty", err: &optimizer.EmptyResponseError{}, expected: http.StatusBadGateway},
		{name: "malformed", err: &optimizer.MalformedResponseError{}, expected: http.StatusBadGateway},
		{name: "transport", err: &optimizer.TransportError{Cause: errors.New("x")}, expected: http.StatusBadGateway},
		{name: "untyped", err: errors.New("boom"), expected: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestSSEWriter_Format(t *testing.T) {
	w := httptest.NewRecorder()
	sse, err := NewSSEWriter(w)
	require.NoError(t, err)

	require.NoError(t, sse.WriteEvent("state", map[string]string{"status": "idle"}))
	require.NoError(t, sse.WriteComment("keep-alive"))

	assert.Equal(t, "event: state\ndata: {\"status\":\"idle\"}\n\n: keep-alive\n\n", w.Body.String())
	assert.True(t, bytes.HasPrefix([]byte(w.Header().Get("Content-Type")), []byte("text/event-stream")))
}
