// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/petar-djukic/go-dcharts/internal/summary"
)

// Output formats.
const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatText = "text"
)

// writeResult prints v in the requested format. The text format prints the
// summary lines only.
func writeResult(w io.Writer, format string, v any, lines []string) error {
	switch format {
	case formatJSON:
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling result: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("marshaling result: %w", err)
		}
		return enc.Close()
	case formatText:
		_, err := fmt.Fprintln(w, summary.Text(lines))
		return err
	default:
		return fmt.Errorf("unknown format %q (want json, yaml or text)", format)
	}
}
