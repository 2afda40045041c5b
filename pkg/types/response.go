// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Keys of AllChartsResult.Files.
const (
	FileSummaryText = "summary_txt"
	FileChartsJSON  = "json_txt"
)

// NamedChart is the parsed table of one chart kind.
type NamedChart struct {
	ChartType string
	Rows      []PlanetRow
}

// ChartSet is an ordered collection of parsed charts. It encodes as a JSON
// (or YAML) object keyed by chart type, preserving order.
type ChartSet []NamedChart

// Get returns the rows of the named chart.
func (s ChartSet) Get(chartType string) ([]PlanetRow, bool) {
	for _, c := range s {
		if c.ChartType == chartType {
			return c.Rows, true
		}
	}
	return nil, false
}

func (s ChartSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.ChartType)
		if err != nil {
			return nil, err
		}
		rows := c.Rows
		if rows == nil {
			rows = []PlanetRow{}
		}
		val, err := json.Marshal(rows)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *ChartSet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("chart set: expected object, got %v", tok)
	}

	var out ChartSet
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("chart set: expected chart name, got %v", tok)
		}
		var rows []PlanetRow
		if err := dec.Decode(&rows); err != nil {
			return fmt.Errorf("chart set %q: %w", name, err)
		}
		out = append(out, NamedChart{ChartType: name, Rows: rows})
	}
	*s = out
	return nil
}

func (s ChartSet) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, c := range s {
		var val yaml.Node
		rows := c.Rows
		if rows == nil {
			rows = []PlanetRow{}
		}
		if err := val.Encode(rows); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.ChartType},
			&val,
		)
	}
	return node, nil
}

// AllChartsResult is the outcome of parsing every divisional chart for one
// person.
type AllChartsResult struct {
	Person     `yaml:",inline"`
	ChartStyle string            `json:"chart_style" yaml:"chart_style"`
	DCharts    ChartSet          `json:"dcharts" yaml:"dcharts"`
	Simple     []string          `json:"simple" yaml:"simple"`
	Files      map[string]string `json:"files" yaml:"files"`
	Warnings   []string          `json:"warnings" yaml:"warnings"`
}

// ChartResult is the outcome of parsing a single divisional chart.
type ChartResult struct {
	Person     `yaml:",inline"`
	DChart     string      `json:"dchart" yaml:"dchart"`
	ChartStyle string      `json:"chart_style" yaml:"chart_style"`
	ChartCells []PlanetRow `json:"chart_cells" yaml:"chart_cells"`
	Simple     []string    `json:"simple" yaml:"simple"`
	FilePath   string      `json:"file_path" yaml:"file_path"`
	Warnings   []string    `json:"warnings" yaml:"warnings"`
}

// AshtakavargaResult is the outcome of parsing a sarvashtakavarga chart.
type AshtakavargaResult struct {
	Person     `yaml:",inline"`
	ChartStyle string     `json:"chart_style" yaml:"chart_style"`
	Totals     []TotalRow `json:"totals" yaml:"totals"`
	GrandTotal int        `json:"grand_total" yaml:"grand_total"`
	Simple     []string   `json:"simple" yaml:"simple"`
	FilePath   string     `json:"file_path" yaml:"file_path"`
	Warnings   []string   `json:"warnings" yaml:"warnings"`
}
