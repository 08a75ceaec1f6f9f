// Package api - Thin HTTP layer over the pricing engine
// The API is only responsible for input ingestion, engine invocation,
// and output serialization. It never performs pricing logic.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"bangler/core/catalog"
	"bangler/core/engine"
	"bangler/core/geometry"
	"bangler/core/types"
	"bangler/internal/errors"
	"bangler/internal/logging"
)

// Server is the API server
type Server struct {
	engine  *engine.Engine
	index   *catalog.Index
	mux     *http.ServeMux
	version string
}

// NewServer creates an API server over a ready pricing engine
func NewServer(eng *engine.Engine, index *catalog.Index, version string) *Server {
	s := &Server{
		engine:  eng,
		index:   index,
		mux:     http.NewServeMux(),
		version: version,
	}
	s.registerRoutes()
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /quote", s.handleQuote)
	s.mux.HandleFunc("GET /options", s.handleOptions)
	s.mux.HandleFunc("GET /sizes", s.handleSizes)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
}

// QuoteRequest is the POST /quote body
type QuoteRequest struct {
	Size      int    `json:"size"`
	Shape     string `json:"shape"`
	Color     string `json:"color"`
	Quality   string `json:"quality,omitempty"`
	Width     string `json:"width"`
	Thickness string `json:"thickness"`

	// BaseFee optionally overrides the configured flat fee, as a
	// decimal string
	BaseFee string `json:"base_fee,omitempty"`
}

// QuoteResponse is the POST /quote reply
type QuoteResponse struct {
	Breakdown *types.PriceBreakdown `json:"breakdown"`
	Timestamp time.Time             `json:"timestamp"`
}

// ErrorResponse carries a classified failure to the caller
type ErrorResponse struct {
	Error *errors.Error `json:"error"`
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.InvalidInput("request body is not valid JSON").
			WithDetail("%v", err))
		return
	}

	spec := types.BangleSpec{
		Size:      req.Size,
		Shape:     types.Shape(req.Shape),
		Color:     types.Color(req.Color),
		Quality:   req.Quality,
		Width:     req.Width,
		Thickness: req.Thickness,
	}

	var opts []engine.RequestOption
	if req.BaseFee != "" {
		fee, err := decimal.NewFromString(req.BaseFee)
		if err != nil {
			s.writeError(w, errors.InvalidInput("base_fee is not a valid decimal amount").
				WithDetail("base_fee=%q", req.BaseFee))
			return
		}
		opts = append(opts, engine.WithBaseFee(fee))
	}

	breakdown, err := s.engine.Price(r.Context(), spec, opts...)
	if err != nil {
		s.writeError(w, errors.AsError(err))
		return
	}

	s.writeJSON(w, QuoteResponse{Breakdown: breakdown, Timestamp: time.Now().UTC()}, http.StatusOK)
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.index.AvailableOptions(), http.StatusOK)
}

func (s *Server) handleSizes(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"sizes": geometry.ValidSizes(),
	}, http.StatusOK)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":          "ok",
		"indexed_records": s.index.Size(),
	}, http.StatusOK)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"version": s.version}, http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("cannot encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, e *errors.Error) {
	s.writeJSON(w, ErrorResponse{Error: e}, statusFor(e.Type))
}

func statusFor(t errors.Type) int {
	switch t {
	case errors.TypeInvalidInput:
		return http.StatusBadRequest
	case errors.TypeSkuNotFound:
		return http.StatusNotFound
	case errors.TypePriceUnavailable, errors.TypeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
