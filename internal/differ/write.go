// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/msgidx/msgidx/internal/index"
	"github.com/msgidx/msgidx/internal/log"
)

// Output formats of the differences report.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Encode serializes the report. JSON is indented; YAML keeps the JSON key
// order and renders absent differences as null.
func Encode(report Report, format string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return nil, err
	}

	switch format {
	case "", FormatJSON:
		return buf.Bytes(), nil
	case FormatYAML:
		// JSON is valid YAML, so decoding into a MapSlice keeps field order.
		var doc yaml.MapSlice
		if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
			return nil, err
		}
		return yaml.Marshal(doc)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// Write encodes the report and writes it to path, replacing any existing
// file.
func Write(path string, report Report, format string) error {
	data, err := Encode(report, format)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &index.OutputWriteError{Path: path, Err: err}
	}

	log.Debugf("wrote %d differences to %s", report.Total, path)
	return nil
}
