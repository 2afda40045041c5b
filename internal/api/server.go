// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package api exposes the chart operations over HTTP with JSON bodies.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/petar-djukic/go-dcharts/internal/provider"
	"github.com/petar-djukic/go-dcharts/pkg/types"
)

const maxBodyBytes = 1 << 20

// Service is the set of chart operations the handlers call.
type Service interface {
	All(ctx context.Context, req types.ChartRequest) (*types.AllChartsResult, error)
	Chart(ctx context.Context, req types.ChartRequest) (*types.ChartResult, error)
	Ashtakavarga(ctx context.Context, req types.ChartRequest) (*types.AshtakavargaResult, error)
}

// Options configures the HTTP handler.
type Options struct {
	Logger       *slog.Logger
	AllowOrigins []string // CORS origins; empty or "*" allows any
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Detail string `json:"detail"`
}

type server struct {
	svc Service
	log *slog.Logger
}

// NewHandler returns the routed handler wrapped in request ID, logging and
// CORS middleware.
func NewHandler(svc Service, opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &server{svc: svc, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /dcharts-parsed/all", s.handleAll)
	mux.HandleFunc("POST /dcharts-parsed", s.handleChart)
	mux.HandleFunc("POST /ashtakavarga", s.handleAshtakavarga)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	return withRequestID(withLogging(log, withCORS(opts.AllowOrigins, mux)))
}

func (s *server) handleAll(w http.ResponseWriter, r *http.Request) {
	var req types.ChartRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.svc.All(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) handleChart(w http.ResponseWriter, r *http.Request) {
	var req types.ChartRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.svc.Chart(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) handleAshtakavarga(w http.ResponseWriter, r *http.Request) {
	var req types.ChartRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.svc.Ashtakavarga(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decode reads a JSON request body into v, answering 400 on failure.
func (s *server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Detail: fmt.Sprintf("invalid JSON body: %v", err)})
		return false
	}
	return true
}

// writeError maps an operation error to its HTTP status.
func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *types.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Detail: ve.Error()})
	case errors.Is(err, provider.ErrProviderFailure):
		writeJSON(w, http.StatusBadGateway, errorBody{Detail: fmt.Sprintf("Provider error: %v", err)})
	default:
		s.log.Error("request failed", "path", r.URL.Path, "request_id", RequestID(r.Context()), "err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Detail: err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
