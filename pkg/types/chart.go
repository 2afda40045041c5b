// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines shared types used across go-dcharts packages.
package types

import "fmt"

// signNames maps sign numbers 1..12 to their names. Index 0 is unused.
var signNames = [13]string{
	"",
	"Aries", "Taurus", "Gemini", "Cancer",
	"Leo", "Virgo", "Libra", "Scorpio",
	"Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// SignCount is the number of zodiac signs, and so the number of rows in
// every parsed chart.
const SignCount = 12

// SignName returns the name of sign number no (1..12). Out-of-range numbers
// get a generic "Sign N" label.
func SignName(no int) string {
	if no < 1 || no > SignCount {
		return fmt.Sprintf("Sign %d", no)
	}
	return signNames[no]
}

// planetNames maps the abbreviations rendered in chart SVGs to full names.
var planetNames = map[string]string{
	"Asc": "Ascendant",
	"Su":  "Sun",
	"Mo":  "Moon",
	"Ma":  "Mars",
	"Me":  "Mercury",
	"Ju":  "Jupiter",
	"Ve":  "Venus",
	"Sa":  "Saturn",
	"Ra":  "Rahu",
	"Ke":  "Ketu",
}

// PlanetName returns the full name for a planet abbreviation and whether
// the abbreviation is known.
func PlanetName(abbr string) (string, bool) {
	name, ok := planetNames[abbr]
	return name, ok
}

// OccupantLabel formats a planet abbreviation as "<Full Name> (<Abbr>)".
func OccupantLabel(abbr string) string {
	name, ok := planetNames[abbr]
	if !ok {
		name = abbr
	}
	return fmt.Sprintf("%s (%s)", name, abbr)
}

// PlanetRow is one sign of a planet-placement chart.
type PlanetRow struct {
	No       int      `json:"no" yaml:"no"`               // Sign number (1-12)
	SignName string   `json:"sign_name" yaml:"sign_name"` // Fixed sign name
	Planets  []string `json:"planets" yaml:"planets"`     // Occupant labels in encounter order
}

// TotalRow is one sign of an ashtakavarga point-total chart.
type TotalRow struct {
	No       int    `json:"no" yaml:"no"`
	SignName string `json:"sign_name" yaml:"sign_name"`
	Total    int    `json:"total" yaml:"total"`
}

// PointTotals holds the twelve per-sign totals and their sum.
type PointTotals struct {
	Rows       []TotalRow `json:"totals" yaml:"totals"`
	GrandTotal int        `json:"grand_total" yaml:"grand_total"`
}
