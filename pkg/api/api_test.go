package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/gridplace/pkg/cache"
	"github.com/matzehuels/gridplace/pkg/errors"
	"github.com/matzehuels/gridplace/pkg/httputil"
	"github.com/matzehuels/gridplace/pkg/observability"
	"github.com/matzehuels/gridplace/pkg/pipeline"
	"github.com/matzehuels/gridplace/pkg/placement"
)

func newTestServer(t *testing.T, c cache.Cache) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	srv := httptest.NewServer(New(pipeline.NewRunner(c, nil, logger), logger).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	resp, err := http.Post(srv.URL+path, "application/json", &buf)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func pairRequest() PlaceRequest {
	return PlaceRequest{
		Rows: 2,
		Cols: 2,
		Matrix: [][]int{
			{0, 5, 0, 0},
			{5, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		},
		Directives: []placement.Directive{{Element: 1, Position: 1}},
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestPlace(t *testing.T) {
	srv := newTestServer(t, nil)
	resp := post(t, srv, "/v1/placements", pairRequest())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := decode[PlaceResponse](t, resp)
	assert.Equal(t, map[int]int{1: 1, 2: 2, 3: 3, 4: 4}, got.Placement)
	assert.Equal(t, 5, got.Length)
	assert.Equal(t, 3, got.Steps)
	assert.Equal(t, "sequential", got.Algorithm)
	assert.NotEmpty(t, got.ID)
	assert.False(t, got.Cached)
}

func TestPlaceCached(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	srv := newTestServer(t, fc)

	first := decode[PlaceResponse](t, post(t, srv, "/v1/placements", pairRequest()))
	second := decode[PlaceResponse](t, post(t, srv, "/v1/placements", pairRequest()))
	assert.False(t, first.Cached)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Placement, second.Placement)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestPlaceErrors(t *testing.T) {
	dupDirective := pairRequest()
	dupDirective.Directives = []placement.Directive{{Element: 1, Position: 1}, {Element: 2, Position: 1}}

	noSeed := pairRequest()
	noSeed.Directives = nil

	asymmetric := pairRequest()
	asymmetric.Matrix[0][1] = 4

	badGrid := pairRequest()
	badGrid.Rows = 0

	unknownAlg := pairRequest()
	unknownAlg.Algorithm = "annealing"

	tests := []struct {
		name string
		body any
		code errors.Code
	}{
		{"duplicate directive", dupDirective, errors.ErrCodeInvalidDirective},
		{"no seed", noSeed, errors.ErrCodeNoSeedElement},
		{"asymmetric matrix", asymmetric, errors.ErrCodeMalformedMatrix},
		{"bad grid", badGrid, errors.ErrCodeInvalidGrid},
		{"unknown algorithm", unknownAlg, errors.ErrCodeUnknownAlgorithm},
		{"malformed json", `{"rows": 2,`, errors.ErrCodeInvalidInput},
		{"unknown field", `{"rows": 2, "cols": 2, "colour": "red"}`, errors.ErrCodeInvalidInput},
	}
	srv := newTestServer(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv, "/v1/placements", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			got := decode[httputil.ErrorResponse](t, resp)
			assert.Equal(t, tt.code, got.Code)
			assert.NotEmpty(t, got.Message)
		})
	}
}

func TestPlaceRandomWithoutDirectives(t *testing.T) {
	req := pairRequest()
	req.Directives = nil
	req.Algorithm = "random"
	req.Seed = 9

	srv := newTestServer(t, nil)
	resp := post(t, srv, "/v1/placements", req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[PlaceResponse](t, resp)
	assert.Len(t, got.Placement, 4)
}

func TestLength(t *testing.T) {
	srv := newTestServer(t, nil)
	resp := post(t, srv, "/v1/length", LengthRequest{
		Rows:      1,
		Cols:      3,
		Matrix:    [][]int{{0, 0, 2}, {0, 0, 0}, {2, 0, 0}},
		Placement: map[int]int{1: 1, 2: 2, 3: 3},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 4, decode[LengthResponse](t, resp).Length)

	resp = post(t, srv, "/v1/length", LengthRequest{
		Rows:      1,
		Cols:      2,
		Matrix:    [][]int{{0, 1}, {1, 0}},
		Placement: map[int]int{1: 1, 2: 1},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, errors.ErrCodeInvalidPlacement, decode[httputil.ErrorResponse](t, resp).Code)
}

func TestAlgorithms(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, err := http.Get(srv.URL + "/v1/algorithms")
	require.NoError(t, err)
	defer resp.Body.Close()

	got := decode[[]AlgorithmInfo](t, resp)
	require.Len(t, got, 2)
	assert.Equal(t, "random", got[0].Name)
	assert.Equal(t, "sequential", got[1].Name)
	assert.True(t, got[1].Default)
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	events   []string
	routes   []string
	statuses []int
	errors   int
}

func (h *recordingHTTPHooks) OnRequest(_ context.Context, method, path string) {
	h.events = append(h.events, "request "+method+" "+path)
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, method, route string, status int, _ time.Duration) {
	h.events = append(h.events, "response "+method+" "+route)
	h.routes = append(h.routes, route)
	h.statuses = append(h.statuses, status)
}

func (h *recordingHTTPHooks) OnError(context.Context, string, string, error) { h.errors++ }

func TestHTTPHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)

	h := New(pipeline.NewRunner(nil, nil, log.New(io.Discard)), log.New(io.Discard)).Handler()
	body, _ := json.Marshal(pairRequest())
	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodPost, "/v1/placements", bytes.NewReader(body)),
		httptest.NewRequest(http.MethodPost, "/v1/length", bytes.NewBufferString("{")),
	} {
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, []string{"/v1/placements", "/v1/length"}, hooks.routes)
	assert.Equal(t, []int{http.StatusOK, http.StatusBadRequest}, hooks.statuses)
	assert.Equal(t, 1, hooks.errors)
	assert.Equal(t, []string{
		"request POST /v1/placements",
		"response POST /v1/placements",
		"request POST /v1/length",
		"response POST /v1/length",
	}, hooks.events)
}

// A hook registered for requests sees the request while the handler is still
// pending, so in-flight gauges can rise before the work starts.
func TestHTTPHooksRequestBeforeHandler(t *testing.T) {
	observability.Reset()
	defer observability.Reset()
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)

	s := New(pipeline.NewRunner(nil, nil, nil), log.New(io.Discard))
	var seen []string
	h := s.logRequests(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, hooks.events...)
		w.WriteHeader(http.StatusNoContent)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/algorithms", nil))

	require.Equal(t, []string{"request GET /v1/algorithms"}, seen)
	assert.Equal(t, []int{http.StatusNoContent}, hooks.statuses)
}

func TestListenAndServeShutsDown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := New(pipeline.NewRunner(nil, nil, nil), log.New(io.Discard))

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
