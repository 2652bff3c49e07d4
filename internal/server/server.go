package server

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"fuzzyreg/internal/inference"
	"fuzzyreg/internal/metrics"
	"fuzzyreg/internal/storage"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Service exposes an engine over HTTP.
type Service struct {
	engine  *inference.Engine
	store   storage.RunStore // optional
	metrics *metrics.InferenceMetrics
	log     *zap.Logger
	handler http.Handler
}

// New wires the routes. store may be nil, in which case runs are not
// recorded and /runs answers 404.
func New(engine *inference.Engine, store storage.RunStore, reg *prometheus.Registry, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{
		engine:  engine,
		store:   store,
		metrics: metrics.NewInferenceMetrics(reg),
		log:     log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /infer", s.handleInfer)
	mux.HandleFunc("GET /rules", s.handleRules)
	mux.HandleFunc("GET /runs", s.handleRuns)
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	s.handler = mux

	return s
}

func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Service) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.log.Info("shutting down", zap.String("addr", addr))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.log.Info("listening", zap.String("addr", addr))
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "rules": len(s.engine.Rules())})
}

// InferResponse is the body of GET /infer.
type InferResponse struct {
	inference.Result
	RunID string `json:"run_id,omitempty"`
}

func (s *Service) handleInfer(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("x")
	if raw == "" {
		s.badRequest(w, "query parameter x is required")
		return
	}
	x, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		s.badRequest(w, "x must be a finite number: "+raw)
		return
	}

	res := s.engine.Infer(x)
	s.metrics.Observe(res)

	resp := InferResponse{Result: res}
	if s.store != nil {
		id, err := s.store.SaveRun(r.Context(), res)
		if err != nil {
			s.log.Error("save run", zap.Error(err), zap.Float64("input", x))
		} else {
			resp.RunID = id
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Service) handleRules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"rules":   s.engine.Rules(),
		"inputs":  s.engine.Inputs(),
		"outputs": s.engine.Outputs(),
	})
}

func (s *Service) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "run history is disabled"})
		return
	}
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.badRequest(w, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	runs, err := s.store.ListRuns(r.Context(), limit)
	if err != nil {
		s.log.Error("list runs", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if runs == nil {
		runs = []storage.Run{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Service) badRequest(w http.ResponseWriter, msg string) {
	s.metrics.BadRequest()
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
