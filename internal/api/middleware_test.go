// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package api

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID_Generated(t *testing.T) {
	rec := do(t, NewHandler(&fakeService{}, Options{}), http.MethodGet, "/healthz", "")

	id := rec.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}

func TestRequestID_Propagated(t *testing.T) {
	var seen string
	h := withRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestLogging_RecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	rec := do(t, NewHandler(&fakeService{}, Options{Logger: log}), http.MethodPost, "/dcharts-parsed/all", "not json")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	out := buf.String()
	assert.Contains(t, out, "msg=\"http request\"")
	assert.Contains(t, out, "path=/dcharts-parsed/all")
	assert.Contains(t, out, "status=400")
	assert.Contains(t, out, "request_id=")
}

func TestCORS_AllowedOrigin(t *testing.T) {
	h := NewHandler(&fakeService{}, Options{AllowOrigins: []string{"https://app.example"}})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://app.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORS_AnyOriginWithoutCredentials(t *testing.T) {
	for _, origins := range [][]string{nil, {"*"}} {
		h := NewHandler(&fakeService{}, Options{AllowOrigins: origins})

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("Origin", "https://any.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"), "origins %v", origins)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"), "origins %v", origins)
	}
}
