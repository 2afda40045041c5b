// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package store

import (
	"path"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/petar-djukic/go-dcharts/pkg/types"
)

const anonymousUser = "anon"

// Filename suffixes for per-user batch artifacts.
const (
	summarySuffix = "_ALL_dcharts_summary.txt"
	chartsSuffix  = "_ALL_dcharts.json"
)

var unsafeRun = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Slug folds accents and replaces every run of characters outside
// [A-Za-z0-9._-] with a single underscore, trimming underscores at the ends.
func Slug(s string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}
	return strings.Trim(unsafeRun.ReplaceAllString(folded, "_"), "_")
}

// userDir is the per-user directory. Users whose id slugs to nothing
// usable share the anonymous directory.
func userDir(userID string) string {
	dir := Slug(userID)
	if strings.Trim(dir, ".") == "" {
		return anonymousUser
	}
	return dir
}

// prefix joins the slugged person fields that start every filename.
func prefix(p types.Person) string {
	return strings.Join([]string{Slug(p.Name), Slug(p.UserID), Slug(p.PhoneNumber)}, "_")
}

// moment renders the birth date and time as filename parts, HH-MM-SS.
func moment(b types.Birth) string {
	return Slug(b.DOB) + "_" + Slug(strings.ReplaceAll(b.TOB, ":", "-"))
}

// ChartKey names the stored SVG of one divisional chart.
func ChartKey(p types.Person, b types.Birth, chartType, style string) string {
	name := strings.Join([]string{prefix(p), Slug(chartType), Slug(style), moment(b)}, "_") + ".svg"
	return path.Join(userDir(p.UserID), name)
}

// SummaryKey names the batch summary text file.
func SummaryKey(p types.Person) string {
	return path.Join(userDir(p.UserID), prefix(p)+summarySuffix)
}

// ChartsJSONKey names the batch JSON file holding every parsed chart.
func ChartsJSONKey(p types.Person) string {
	return path.Join(userDir(p.UserID), prefix(p)+chartsSuffix)
}

// AshtakavargaKey names the stored sarvashtakavarga SVG.
func AshtakavargaKey(p types.Person, b types.Birth, style string) string {
	name := strings.Join([]string{prefix(p), "sarvashtakavarga", Slug(style), moment(b)}, "_") + ".svg"
	return path.Join(userDir(p.UserID), name)
}
