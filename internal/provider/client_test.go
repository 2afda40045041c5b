// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/go-dcharts/pkg/types"
)

const sampleSVG = `<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"><text x="1" y="1">1</text></svg>`

var sampleRequest = types.ChartQuery{
	ChartType:  "navamsa",
	ChartStyle: "south-indian",
	Birth: types.Birth{
		DOB:    "1990-04-12",
		TOB:    "08:30:00",
		Offset: "+05:30",
		Lat:    types.Float64(12.9716),
		Lon:    types.Float64(77.5946),
	},
}

// chartServer returns a server that records the chart query and replies
// with the given status, content type and body.
func chartServer(t *testing.T, status int, contentType, body string, got *url.Values) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != chartPath {
			http.NotFound(w, r)
			return
		}
		if got != nil {
			*got = r.URL.Query()
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchSVG_SendsChartParameters(t *testing.T) {
	var got url.Values
	srv := chartServer(t, http.StatusOK, "image/svg+xml", sampleSVG, &got)

	c := NewClientWithHTTP(srv.Client(), ClientConfig{BaseURL: srv.URL, Ayanamsa: 5})
	svg, err := c.FetchSVG(context.Background(), sampleRequest)
	require.NoError(t, err)

	assert.Equal(t, sampleSVG, string(svg))
	assert.Equal(t, "5", got.Get("ayanamsa"))
	assert.Equal(t, "12.9716,77.5946", got.Get("coordinates"))
	assert.Equal(t, "1990-04-12T08:30:00+05:30", got.Get("datetime"))
	assert.Equal(t, "navamsa", got.Get("chart_type"))
	assert.Equal(t, "south-indian", got.Get("chart_style"))
	assert.Equal(t, "svg", got.Get("format"))
}

func TestFetchSVG_DefaultAyanamsa(t *testing.T) {
	var got url.Values
	srv := chartServer(t, http.StatusOK, "image/svg+xml", sampleSVG, &got)

	c := NewClientWithHTTP(srv.Client(), ClientConfig{BaseURL: srv.URL + "/"})
	_, err := c.FetchSVG(context.Background(), sampleRequest)
	require.NoError(t, err)
	assert.Equal(t, "1", got.Get("ayanamsa"))
}

func TestFetchSVG_ErrorStatus(t *testing.T) {
	body := `{"status":"error","errors":[{"title":"Validation Error","detail":"Invalid datetime"}]}`
	srv := chartServer(t, http.StatusBadRequest, "application/json", body, nil)

	c := NewClientWithHTTP(srv.Client(), ClientConfig{BaseURL: srv.URL})
	svg, err := c.FetchSVG(context.Background(), sampleRequest)
	assert.Nil(t, svg)
	require.ErrorIs(t, err, ErrProviderFailure)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "Invalid datetime")
}

func TestFetchSVG_NonSVGPayload(t *testing.T) {
	srv := chartServer(t, http.StatusOK, "application/json", `{"data":{}}`, nil)

	c := NewClientWithHTTP(srv.Client(), ClientConfig{BaseURL: srv.URL})
	_, err := c.FetchSVG(context.Background(), sampleRequest)
	require.ErrorIs(t, err, ErrProviderFailure)
	assert.Contains(t, err.Error(), "unexpected response")
}

func TestFetchSVG_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	c := NewClientWithHTTP(srv.Client(), ClientConfig{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := c.FetchSVG(context.Background(), sampleRequest)
	require.ErrorIs(t, err, ErrProviderFailure)
	assert.Contains(t, err.Error(), "timed out")
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	_, err := NewClient(context.Background(), ClientConfig{ClientID: "id"})
	assert.ErrorIs(t, err, ErrProviderFailure)
}

func TestNewClient_ClientCredentialsFlow(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(tokenPath, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.Form.Get("grant_type") != "client_credentials" || r.Form.Get("client_id") != "id" || r.Form.Get("client_secret") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error":"invalid_client"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"tok-123","token_type":"Bearer","expires_in":3600}`)
	})
	mux.HandleFunc(chartPath, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		fmt.Fprint(w, sampleSVG)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c, err := NewClient(context.Background(), ClientConfig{ClientID: "id", ClientSecret: "secret", BaseURL: srv.URL})
	require.NoError(t, err)

	svg, err := c.FetchSVG(context.Background(), sampleRequest)
	require.NoError(t, err)
	assert.Equal(t, sampleSVG, string(svg))
}

func TestNewClient_BadCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(tokenPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"invalid_client"}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c, err := NewClient(context.Background(), ClientConfig{ClientID: "id", ClientSecret: "wrong", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.FetchSVG(context.Background(), sampleRequest)
	require.ErrorIs(t, err, ErrProviderFailure)
	assert.Contains(t, err.Error(), "credential")
}

func TestLooksLikeSVG(t *testing.T) {
	assert.True(t, looksLikeSVG([]byte(sampleSVG)))
	assert.True(t, looksLikeSVG([]byte("\xef\xbb\xbf  <svg></svg>")))
	assert.False(t, looksLikeSVG([]byte(`{"svg":"<svg/>"}`)))
	assert.False(t, looksLikeSVG([]byte("<html><body/></html>")))
	assert.False(t, looksLikeSVG(nil))
}

func TestErrorDetail(t *testing.T) {
	assert.Equal(t, "bad; worse", errorDetail([]byte(`{"errors":[{"detail":"bad"},{"title":"worse"}]}`)))
	assert.Equal(t, "plain failure", errorDetail([]byte(" plain failure\n")))
}

// errDoer fails every request with err.
type errDoer struct{ err error }

func (d errDoer) Do(*http.Request) (*http.Response, error) { return nil, d.err }

func TestFetchSVG_TransportError(t *testing.T) {
	c := NewClientWithHTTP(errDoer{err: errors.New("connection refused")}, ClientConfig{})
	_, err := c.FetchSVG(context.Background(), sampleRequest)
	require.ErrorIs(t, err, ErrProviderFailure)
	assert.Contains(t, err.Error(), "connection refused")
}
