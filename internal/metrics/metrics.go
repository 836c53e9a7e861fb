// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 cql2go Contributors

// Package metrics tracks parse and serialize activity with Prometheus
// counters, and optionally exposes them over HTTP for long-running batch
// conversion jobs (adapted from internal/observability/server.go, which
// served the same role for HoloMUSH's gateway/core processes).
package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the counters the cql2 CLI records parse and serialize
// activity against.
type Metrics struct {
	ParseTotal     *prometheus.CounterVec
	SerializeTotal *prometheus.CounterVec
	OperatorTotal  *prometheus.CounterVec
}

// New creates and registers the cql2go metrics against reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ParseTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cql2_parse_total",
				Help: "Total number of parse_text/parse_json calls by syntax and result",
			},
			[]string{"syntax", "result"},
		),
		SerializeTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cql2_serialize_total",
				Help: "Total number of to_text/to_json calls by syntax",
			},
			[]string{"syntax"},
		),
		OperatorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cql2_operator_total",
				Help: "Total number of times each CQL2 operator appears in a parsed filter",
			},
			[]string{"operator"},
		),
	}

	reg.MustRegister(m.ParseTotal, m.SerializeTotal, m.OperatorTotal)
	return m
}

// RecordParse increments the parse counter for syntax ("text" or "json")
// keyed by whether err is nil.
func (m *Metrics) RecordParse(syntax string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.ParseTotal.WithLabelValues(syntax, result).Inc()
}

// RecordSerialize increments the serialize counter for syntax.
func (m *Metrics) RecordSerialize(syntax string) {
	m.SerializeTotal.WithLabelValues(syntax).Inc()
}

// RecordOperator increments the per-operator usage counter.
func (m *Metrics) RecordOperator(op string) {
	m.OperatorTotal.WithLabelValues(op).Inc()
}

// Server exposes Metrics over an HTTP /metrics endpoint, for use during
// long batch conversion runs where a caller wants to scrape progress.
type Server struct {
	addr       string
	listener   net.Listener
	httpServer *http.Server
	registry   *prometheus.Registry
	metrics    *Metrics
	running    atomic.Bool
}

// NewServer creates a metrics server bound to addr. It is not started
// until Start is called.
func NewServer(addr string) *Server {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &Server{
		addr:     addr,
		registry: registry,
		metrics:  New(registry),
	}
}

// Metrics returns the counters for recording parse/serialize activity.
func (s *Server) Metrics() *Metrics { return s.metrics }

// Start begins serving the /metrics endpoint.
func (s *Server) Start() error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("metrics server already running")
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.running.Store(false)
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.listener = listener

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{EnableOpenMetrics: true}))

	s.httpServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if serveErr := s.httpServer.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			slog.Error("metrics server error", "error", serveErr)
		}
	}()

	slog.Info("metrics server started", "addr", listener.Addr().String())
	return nil
}

// Stop gracefully shuts down the metrics server.
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.Load() {
		return nil
	}
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown metrics server: %w", err)
		}
	}
	s.running.Store(false)
	slog.Info("metrics server stopped")
	return nil
}

// Addr returns the address the server is listening on, or "" if not running.
func (s *Server) Addr() string {
	if s.running.Load() && s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}
