// Package server exposes the comparison engine as a stateless HTTP API:
// request in, result out, with per-request IDs, rate limiting, metrics,
// tracing, and an evaluation cache shared across requests.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/sarandavies/london-house-buying/internal/breakeven"
	"github.com/sarandavies/london-house-buying/internal/cache"
	"github.com/sarandavies/london-house-buying/internal/config"
	"github.com/sarandavies/london-house-buying/internal/engine"
	"github.com/sarandavies/london-house-buying/internal/metrics"
	"github.com/sarandavies/london-house-buying/internal/tracing"
	"github.com/sarandavies/london-house-buying/pkg/constants"
	"github.com/sarandavies/london-house-buying/pkg/history"
	"github.com/sarandavies/london-house-buying/pkg/validation"
)

const (
	readTimeout  = 15 * time.Second
	writeTimeout = 15 * time.Second
	idleTimeout  = 60 * time.Second
	drainTimeout = 10 * time.Second

	serviceName = "london-house-buying"
)

// Server carries the wired handler plus the components with lifecycles of
// their own: the rate limiter's cleanup loop and the trace exporter.
type Server struct {
	logger         *zap.Logger
	conf           config.ServerConfig
	handler        http.Handler
	store          cache.Cache
	tracer         trace.Tracer
	tracerShutdown func(context.Context) error
	limiter        *RateLimiter
	maxBodySize    int64
	version        string
}

// New wires the API handlers, middleware, evaluation cache, and tracing for
// the configured server.
func New(logger *zap.Logger, conf config.ServerConfig, version string) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	maxBodySize := conf.RequestSizeBytes()
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxRequestSizeBytes
	}

	rate := conf.RateLimitPerMinute
	if rate <= 0 {
		rate = constants.DefaultRateLimitPerMinute
	}

	store, err := cache.New(logger, conf.Cache)
	if err != nil {
		return nil, fmt.Errorf("failed to build evaluation cache: %w", err)
	}

	tracer, tracerShutdown, err := tracing.Setup(logger, serviceName, trimmedVersion, conf.TracingEndpoint)
	if err != nil {
		return nil, err
	}

	s := &Server{
		logger:         logger,
		conf:           conf,
		store:          store,
		tracer:         tracer,
		tracerShutdown: tracerShutdown,
		limiter:        NewRateLimiter(rate, time.Minute),
		maxBodySize:    maxBodySize,
		version:        trimmedVersion,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/evaluate", s.handleEvaluate)
	mux.HandleFunc("/api/breakeven", s.handleBreakeven)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.Handle("/metrics", promhttp.Handler())

	s.handler = s.instrument(s.rateLimit(mux))
	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until SIGINT or SIGTERM, then drains in-flight requests before
// returning. A listener failure is returned immediately.
func (s *Server) Run() error {
	httpServer := &http.Server{
		Addr:         s.conf.Address,
		Handler:      s.handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("serving comparison API",
			zap.String("op", "server.Run"),
			zap.String("address", s.conf.Address),
			zap.String("version", s.version),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		s.limiter.Stop()
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		s.logger.Info("shutting down",
			zap.String("op", "server.Run"),
			zap.String("signal", sig.String()),
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	s.limiter.Stop()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	if s.tracerShutdown != nil {
		if err := s.tracerShutdown(ctx); err != nil {
			s.logger.Warn("failed to flush traces",
				zap.String("op", "server.Run"),
				zap.Error(err),
			)
		}
	}
	return nil
}

// evaluateRequest is the flat request body for /api/evaluate. Scenario and
// comparisonMode arrive as strings so the API accepts "random" alongside the
// explicit selections; the seed makes a random draw reproducible.
type evaluateRequest struct {
	Property       engine.LoanParameters   `json:"property"`
	Rent           engine.RentParameters   `json:"rent"`
	Fees           engine.FeeParameters    `json:"fees"`
	Market         engine.MarketParameters `json:"market"`
	Scenario       string                  `json:"scenario"`
	ComparisonMode string                  `json:"comparisonMode"`
	RandomSeed     int64                   `json:"randomSeed,omitempty"`
}

// toInput fixes the scenario selection and comparison mode, producing the
// immutable bundle the engine evaluates.
func (req evaluateRequest) toInput() (engine.Input, error) {
	selection, err := config.ResolveScenario(req.Scenario, req.RandomSeed)
	if err != nil {
		return engine.Input{}, err
	}
	mode, err := engine.ParseMode(req.ComparisonMode)
	if err != nil {
		return engine.Input{}, err
	}
	return engine.Input{
		Property: req.Property,
		Rent:     req.Rent,
		Fees:     req.Fees,
		Market:   req.Market,
		Scenario: selection,
		Mode:     mode,
	}, nil
}

type breakevenRequest struct {
	evaluateRequest
	LowerBound *float64 `json:"lowerBound"`
	UpperBound *float64 `json:"upperBound"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var req evaluateRequest
	if !s.decodeJSON(w, r, &req, "server.handleEvaluate") {
		return
	}

	input, err := req.toInput()
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error(), "server.handleEvaluate")
		return
	}

	_, span := s.tracer.Start(r.Context(), "api.evaluate")
	defer span.End()
	span.SetAttributes(
		attribute.String("scenario", string(input.Scenario)),
		attribute.String("comparisonMode", string(input.Mode)),
	)

	key := cache.Key(input)
	if key != "" {
		if cached, hit := s.store.Get(key); hit {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			metrics.Evaluations.WithLabelValues(string(input.Scenario), "success").Inc()
			s.logger.Debug("evaluation served from cache",
				zap.String("op", "server.handleEvaluate"),
				zap.String("key", key),
			)
			s.writeJSONBytes(w, http.StatusOK, []byte(cached))
			return
		}
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	result, err := engine.Evaluate(s.logger, input)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, validation.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		metrics.Evaluations.WithLabelValues(string(input.Scenario), "error").Inc()
		s.respondError(w, status, err.Error(), "server.handleEvaluate")
		return
	}
	metrics.Evaluations.WithLabelValues(string(input.Scenario), "success").Inc()

	payload, err := json.Marshal(result)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode result: %v", err), "server.handleEvaluate")
		return
	}
	if key != "" {
		if err := s.store.Set(key, string(payload)); err != nil {
			s.logger.Warn("failed to cache evaluation",
				zap.String("op", "server.handleEvaluate"),
				zap.Error(err),
			)
		}
	}
	s.writeJSONBytes(w, http.StatusOK, payload)
}

func (s *Server) handleBreakeven(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var req breakevenRequest
	if !s.decodeJSON(w, r, &req, "server.handleBreakeven") {
		return
	}

	input, err := req.toInput()
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error(), "server.handleBreakeven")
		return
	}

	lower := constants.DefaultBreakevenLowerBound
	if req.LowerBound != nil {
		lower = *req.LowerBound
	}
	upper := constants.DefaultBreakevenUpperBound
	if req.UpperBound != nil {
		upper = *req.UpperBound
	}

	_, span := s.tracer.Start(r.Context(), "api.breakeven")
	defer span.End()
	span.SetAttributes(attribute.String("scenario", string(input.Scenario)))

	solution, err := breakeven.Solve(s.logger, input, lower, upper)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, validation.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		s.respondError(w, status, err.Error(), "server.handleBreakeven")
		return
	}
	metrics.BreakevenSolves.WithLabelValues(strconv.FormatBool(solution.Converged)).Inc()

	s.writeJSON(w, http.StatusOK, solution)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"periods": history.LondonPeriods(),
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"version": s.version,
	})
}

// decodeJSON reads a body-limited JSON request into dst, answering the
// request itself when decoding fails.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", s.maxBodySize), op)
			return false
		}
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	return true
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string, op string) {
	s.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func (s *Server) writeJSONBytes(w http.ResponseWriter, status int, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(payload); err != nil {
		s.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
