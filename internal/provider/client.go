// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package provider fetches rendered chart SVGs from the Prokerala astrology
// API.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/petar-djukic/go-dcharts/pkg/types"
)

const (
	defaultBaseURL  = "https://api.prokerala.com"
	chartPath       = "/v2/astrology/chart"
	tokenPath       = "/token"
	defaultTimeout  = 60 * time.Second
	defaultAyanamsa = 1 // Lahiri
	maxErrorDetail  = 512
)

// ErrProviderFailure indicates the chart fetch failed (network, auth,
// rejected parameters, or a payload that is not SVG).
var ErrProviderFailure = errors.New("provider failure")

// Fetcher fetches a rendered chart. Implementations return the raw SVG
// bytes or an error wrapping ErrProviderFailure.
type Fetcher interface {
	FetchSVG(ctx context.Context, req types.ChartQuery) ([]byte, error)
}

// ClientConfig configures the Prokerala client.
type ClientConfig struct {
	ClientID     string        // OAuth client ID (required)
	ClientSecret string        // OAuth client secret (required)
	BaseURL      string        // API root (default https://api.prokerala.com)
	TokenURL     string        // Token endpoint (default BaseURL + /token)
	Ayanamsa     int           // Ayanamsa system sent with every request (default 1, Lahiri)
	Timeout      time.Duration // Per-request timeout (default 60s)
}

// HTTPDoer abstracts *http.Client for testing.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client calls the Prokerala chart endpoint.
type Client struct {
	http     HTTPDoer
	baseURL  string
	ayanamsa int
	timeout  time.Duration
}

// Verify interface compliance at compile time.
var _ Fetcher = (*Client)(nil)

// NewClient creates a client that authenticates with the OAuth2 client
// credentials grant. Tokens are fetched lazily and cached until expiry.
func NewClient(ctx context.Context, cfg ClientConfig) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("%w: client ID and client secret are required", ErrProviderFailure)
	}

	baseURL := baseURLOrDefault(cfg.BaseURL)
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = baseURL + tokenPath
	}

	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	return NewClientWithHTTP(cc.Client(ctx), cfg), nil
}

// NewClientWithHTTP creates a client over a pre-configured HTTP client.
// Used for testing and for callers that manage authentication themselves.
func NewClientWithHTTP(doer HTTPDoer, cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	ayanamsa := cfg.Ayanamsa
	if ayanamsa == 0 {
		ayanamsa = defaultAyanamsa
	}
	return &Client{
		http:     doer,
		baseURL:  baseURLOrDefault(cfg.BaseURL),
		ayanamsa: ayanamsa,
		timeout:  timeout,
	}
}

// FetchSVG requests one chart rendered as SVG. No retries are attempted.
func (c *Client) FetchSVG(ctx context.Context, req types.ChartQuery) ([]byte, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + chartPath + "?" + c.query(req).Encode()
	httpReq, err := http.NewRequestWithContext(callCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrProviderFailure, err)
	}
	httpReq.Header.Set("Accept", "image/svg+xml, application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, c.classifyError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.classifyError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s: %s", ErrProviderFailure, resp.Status, errorDetail(body))
	}
	if !looksLikeSVG(body) {
		return nil, fmt.Errorf("%w: unexpected response from provider (content-type %q)",
			ErrProviderFailure, resp.Header.Get("Content-Type"))
	}
	return body, nil
}

// query builds the chart endpoint parameters.
func (c *Client) query(req types.ChartQuery) url.Values {
	q := url.Values{}
	q.Set("ayanamsa", strconv.Itoa(c.ayanamsa))
	q.Set("coordinates", formatCoord(req.Birth.Lat)+","+formatCoord(req.Birth.Lon))
	q.Set("datetime", req.Birth.Datetime())
	q.Set("chart_type", req.ChartType)
	q.Set("chart_style", req.ChartStyle)
	q.Set("format", "svg")
	return q
}

// classifyError wraps transport errors into ErrProviderFailure with
// descriptive messages.
func (c *Client) classifyError(err error) error {
	var retrieve *oauth2.RetrieveError
	if errors.As(err, &retrieve) {
		return fmt.Errorf("%w: credential or permission issue: %v", ErrProviderFailure, err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: request timed out after %s", ErrProviderFailure, c.timeout)
	}

	return fmt.Errorf("%w: %v", ErrProviderFailure, err)
}

// errorDetail extracts a readable message from a provider error body.
// Prokerala reports errors as {"status":"error","errors":[{"title","detail"}]}.
func errorDetail(body []byte) string {
	var payload struct {
		Errors []struct {
			Title  string `json:"title"`
			Detail string `json:"detail"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Errors) > 0 {
		msgs := make([]string, 0, len(payload.Errors))
		for _, e := range payload.Errors {
			msg := e.Detail
			if msg == "" {
				msg = e.Title
			}
			msgs = append(msgs, msg)
		}
		return strings.Join(msgs, "; ")
	}

	detail := strings.TrimSpace(string(body))
	if len(detail) > maxErrorDetail {
		detail = detail[:maxErrorDetail] + "..."
	}
	return detail
}

// looksLikeSVG reports whether body is markup containing an <svg> element.
func looksLikeSVG(body []byte) bool {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(body, []byte("\xef\xbb\xbf")))
	if len(trimmed) == 0 || trimmed[0] != '<' {
		return false
	}
	return bytes.Contains(trimmed, []byte("<svg"))
}

// formatCoord renders a coordinate. Requests are validated before they
// reach the client, so a missing value only shows up in tests.
func formatCoord(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func baseURLOrDefault(base string) string {
	if base == "" {
		return defaultBaseURL
	}
	return strings.TrimRight(base, "/")
}
