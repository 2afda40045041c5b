// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var (
	dobPattern    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	tobShort      = regexp.MustCompile(`^\d{2}:\d{2}$`)
	tobFull       = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)
	offsetPattern = regexp.MustCompile(`^[+-]\d{2}:\d{2}$`)
)

// ValidationError reports a request parameter that was rejected before any
// provider call.
type ValidationError struct {
	Field   string   // Request field name (JSON name)
	Message string   // What is wrong
	Allowed []string // Allowed values, when the field is an enumeration
}

func (e *ValidationError) Error() string {
	if len(e.Allowed) > 0 {
		return fmt.Sprintf("%s: %s. Supported: %s", e.Field, e.Message, strings.Join(e.Allowed, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Person identifies who a chart belongs to. All fields are echoed back in
// responses and used to name stored artifacts.
type Person struct {
	Name        string `json:"name" yaml:"name"`
	UserID      string `json:"user_id" yaml:"user_id"`
	PhoneNumber string `json:"phone_number" yaml:"phone_number"`
}

// Birth holds the birth moment and place sent to the provider.
type Birth struct {
	DOB    string   `json:"dob" yaml:"dob"`       // YYYY-MM-DD
	TOB    string   `json:"tob" yaml:"tob"`       // HH:MM or HH:MM:SS local time
	Offset string   `json:"offset" yaml:"offset"` // +05:30, -04:00
	Lat    *float64 `json:"lat" yaml:"lat"`
	Lon    *float64 `json:"lon" yaml:"lon"`
}

// Float64 returns a pointer to v, for filling Birth coordinates.
func Float64(v float64) *float64 {
	return &v
}

// ChartRequest asks for one or more charts in a given style.
type ChartRequest struct {
	Person
	Birth
	ChartStyle string `json:"chart_style" yaml:"chart_style"`
	ChartType  string `json:"chart_type,omitempty" yaml:"chart_type,omitempty"` // Single-chart requests only
}

// Normalize fills defaults, canonicalizes the time of birth to HH:MM:SS and
// validates every field. styles lists the chart styles the caller accepts.
// When requireType is true, ChartType must name a known divisional chart.
func (r *ChartRequest) Normalize(styles []string, requireType bool) error {
	if strings.TrimSpace(r.UserID) == "" {
		return &ValidationError{Field: "user_id", Message: "user_id is required"}
	}
	if err := r.Birth.normalize(); err != nil {
		return err
	}

	if r.ChartStyle == "" {
		r.ChartStyle = StyleSouthIndian
	}
	if !slices.Contains(styles, r.ChartStyle) {
		return &ValidationError{
			Field:   "chart_style",
			Message: fmt.Sprintf("unsupported chart_style %q", r.ChartStyle),
			Allowed: styles,
		}
	}

	if requireType && !slices.Contains(dchartTypes, r.ChartType) {
		return &ValidationError{
			Field:   "chart_type",
			Message: fmt.Sprintf("unsupported chart_type %q", r.ChartType),
			Allowed: DChartTypes(),
		}
	}
	return nil
}

func (b *Birth) normalize() error {
	if !dobPattern.MatchString(b.DOB) {
		return &ValidationError{Field: "dob", Message: "dob must be YYYY-MM-DD"}
	}

	switch {
	case tobShort.MatchString(b.TOB):
		b.TOB += ":00"
	case tobFull.MatchString(b.TOB):
	default:
		return &ValidationError{Field: "tob", Message: "tob must be HH:MM or HH:MM:SS"}
	}

	if !offsetPattern.MatchString(b.Offset) {
		return &ValidationError{Field: "offset", Message: "offset must be like +05:30 or -04:00"}
	}
	if b.Lat == nil {
		return &ValidationError{Field: "lat", Message: "lat is required"}
	}
	if *b.Lat < -90 || *b.Lat > 90 {
		return &ValidationError{Field: "lat", Message: "lat must be within [-90, 90]"}
	}
	if b.Lon == nil {
		return &ValidationError{Field: "lon", Message: "lon is required"}
	}
	if *b.Lon < -180 || *b.Lon > 180 {
		return &ValidationError{Field: "lon", Message: "lon must be within [-180, 180]"}
	}
	return nil
}

// Datetime renders the birth moment in the provider's ISO 8601 form,
// e.g. 1990-04-12T08:30:00+05:30.
func (b Birth) Datetime() string {
	return b.DOB + "T" + b.TOB + b.Offset
}

// ChartQuery is what the chart provider needs to render one chart.
type ChartQuery struct {
	ChartType  string
	ChartStyle string
	Birth      Birth
}
