package api

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gridplace/pkg/grid"
	"github.com/matzehuels/gridplace/pkg/httputil"
	"github.com/matzehuels/gridplace/pkg/observability"
	"github.com/matzehuels/gridplace/pkg/pipeline"
	"github.com/matzehuels/gridplace/pkg/placement"
	"github.com/matzehuels/gridplace/pkg/schema"
)

// PlaceRequest is the body of POST /v1/placements.
type PlaceRequest struct {
	Rows       int                   `json:"rows"`
	Cols       int                   `json:"cols"`
	Matrix     [][]int               `json:"matrix"`
	Directives []placement.Directive `json:"directives"`
	Algorithm  string                `json:"algorithm,omitempty"`
	Seed       uint64                `json:"seed,omitempty"`
	Refresh    bool                  `json:"refresh,omitempty"`
}

// PlaceResponse is the body returned by POST /v1/placements.
type PlaceResponse struct {
	ID        string      `json:"id"`
	Algorithm string      `json:"algorithm"`
	Placement map[int]int `json:"placement"`
	Length    int         `json:"length"`
	Steps     int         `json:"steps"`
	Cached    bool        `json:"cached"`
}

// LengthRequest is the body of POST /v1/length.
type LengthRequest struct {
	Rows      int         `json:"rows"`
	Cols      int         `json:"cols"`
	Matrix    [][]int     `json:"matrix"`
	Placement map[int]int `json:"placement"`
}

// LengthResponse is the body returned by POST /v1/length.
type LengthResponse struct {
	Length int `json:"length"`
}

// AlgorithmInfo describes one entry of GET /v1/algorithms.
type AlgorithmInfo struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Default bool   `json:"default"`
}

func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	var req PlaceRequest
	if err := httputil.DecodeJSON(w, r, &req, httputil.MaxBodyBytes); err != nil {
		s.fail(w, r, err)
		return
	}

	doc := &schema.Schema{
		Grid:       grid.New(req.Rows, req.Cols),
		Matrix:     req.Matrix,
		Directives: req.Directives,
	}
	res, err := s.runner.Place(r.Context(), doc, pipeline.Options{
		Algorithm: req.Algorithm,
		Seed:      req.Seed,
		Refresh:   req.Refresh,
		Logger:    s.logger,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, PlaceResponse{
		ID:        res.ID,
		Algorithm: res.Algorithm,
		Placement: res.Placement,
		Length:    res.Length,
		Steps:     res.Stats.Steps,
		Cached:    res.CacheHit,
	})
}

func (s *Server) handleLength(w http.ResponseWriter, r *http.Request) {
	var req LengthRequest
	if err := httputil.DecodeJSON(w, r, &req, httputil.MaxBodyBytes); err != nil {
		s.fail(w, r, err)
		return
	}

	n, err := s.runner.Length(&schema.Schema{
		Grid:      grid.New(req.Rows, req.Cols),
		Matrix:    req.Matrix,
		Placement: req.Placement,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, LengthResponse{Length: n})
}

func (s *Server) handleAlgorithms(w http.ResponseWriter, _ *http.Request) {
	names := placement.Names()
	out := make([]AlgorithmInfo, len(names))
	for i, n := range names {
		out[i] = AlgorithmInfo{Name: n, Title: placement.Title(n), Default: n == placement.DefaultAlgorithm}
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := httputil.StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", middleware.GetReqID(r.Context()), "path", r.URL.Path, "err", err)
	}
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	httputil.WriteError(w, err)
}
