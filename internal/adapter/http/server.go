package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/taf-decoder/internal/decoder"
	"github.com/couchcryptid/taf-decoder/internal/domain"
)

const (
	maxBodyBytes = 1 << 20
	maxBatchSize = 1000
)

// Decoders selects the decoder used for each mode of a decode request.
type Decoders struct {
	Lenient decoder.Decoder
	Strict  decoder.Decoder
	// Workers bounds the goroutines used by a batch request.
	Workers int
}

func (d Decoders) forMode(strict bool) decoder.Decoder {
	if strict {
		return d.Strict
	}
	return d.Lenient
}

// Server exposes health, readiness, metrics and synchronous decode endpoints.
type Server struct {
	httpServer *http.Server
	decoders   Decoders
	logger     *slog.Logger
}

type decodeRequest struct {
	Raw    string `json:"raw"`
	Strict bool   `json:"strict"`
}

type batchRequest struct {
	Reports []string `json:"reports"`
	Strict  bool     `json:"strict"`
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics and /v1/decode routes.
func NewServer(addr string, ready sharedobs.ReadinessChecker, decoders Decoders, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		decoders: decoders,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /v1/decode", s.handleDecode)
	mux.HandleFunc("POST /v1/decode/batch", s.handleDecodeBatch)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	var req decodeRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Raw) == "" {
		writeError(w, http.StatusBadRequest, errors.New("raw is required"))
		return
	}

	taf := s.decoders.forMode(req.Strict).Decode(req.Raw)
	sharedobs.WriteJSON(w, http.StatusOK, domain.NewDecodedReport(taf))
}

func (s *Server) handleDecodeBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(req.Reports) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("reports is required"))
		return
	}
	if len(req.Reports) > maxBatchSize {
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Errorf("at most %d reports per batch", maxBatchSize))
		return
	}

	tafs, err := decoder.DecodeAll(r.Context(), s.decoders.forMode(req.Strict), req.Reports, s.decoders.Workers)
	if err != nil {
		s.logger.Warn("batch decode aborted", "error", err, "reports", len(req.Reports))
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	out := make([]domain.DecodedReport, len(tafs))
	for i, taf := range tafs {
		out[i] = domain.NewDecodedReport(taf)
	}
	sharedobs.WriteJSON(w, http.StatusOK, out)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeError(w http.ResponseWriter, status int, err error) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": err.Error()})
}
