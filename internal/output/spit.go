// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/msgidx/msgidx/internal/attrs"
	"github.com/msgidx/msgidx/internal/config"
	"github.com/msgidx/msgidx/internal/filters"
	"github.com/msgidx/msgidx/internal/log"
)

// InterfaceToString converts supported primitive or composite values to a
// string. Only nil and empty strings or collections render as the empty
// value, so an unspecified id of 0 still prints as 0.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	switch value := value.(type) {
	case nil:
		return emptyValue[0]
	case string:
		if value == "" {
			return emptyValue[0]
		}
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		// Ids and totals are integral.
		return fmt.Sprintf("%.0f", value)
	case bool:
		return strconv.FormatBool(value)
	case []interface{}:
		if len(value) == 0 {
			return emptyValue[0]
		}
	case map[string]interface{}:
		if len(value) == 0 {
			return emptyValue[0]
		}
	}

	jsonBytes, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(jsonBytes)
}

// Rows returns the rows of an index or diff document. Index rows are its
// messages. Diff rows are its differences flattened to one row per
// version-tagged message.
func Rows(raw []byte) gjson.Result {
	doc := gjson.ParseBytes(raw)

	if differences := doc.Get("differences"); differences.Exists() {
		flat := flattenDifferences(differences)
		return gjson.ParseBytes(flat.Bytes())
	}

	return doc.Get("messages")
}

// SliceDiceSpit orchestrates filtering, transforming, sorting and rendering
// of a document's rows according to command flags and attribute
// specifications. The optional postProcess callback lets a command adjust the
// filtered dataset before it is rendered as a table.
func SliceDiceSpit(raw bytes.Buffer,
	attrs attrs.AttrList,
	cmd *cli.Command,
	w io.Writer,
	postProcess func([]map[string]interface{}) error) error {

	if w == nil {
		w = os.Stdout
	}

	// If raw, just dump it and go home.
	output := cmd.String("output")
	if output == "raw" {
		_, err := w.Write(raw.Bytes())
		return err
	}

	rows := Rows(raw.Bytes())

	if cmd.Bool("schema") {
		DumpSchema(rows, w)
		return nil
	}

	filtered := filters.FilterDataset(rows, attrs, cmd.String("filter"))
	log.Debugf("rows kept: %d of %d", len(filtered), len(rows.Array()))

	for _, row := range filtered {
		for _, attr := range attrs {
			if attr.TransformSpec != "" {
				row[attr.OutputKey] = attr.Transform(row[attr.OutputKey])
			}
		}
	}

	SortDataset(filtered, cmd.String("sort"))

	switch output {
	case "json":
		jsonOutput, err := json.Marshal(filtered)
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
		_, err = fmt.Fprintln(w, string(jsonOutput))
		return err
	case "yaml":
		yamlOutput, err := yaml.Marshal(filtered)
		if err != nil {
			return fmt.Errorf("yaml marshal: %w", err)
		}
		_, err = w.Write(yamlOutput)
		return err
	case "", "text":
		if postProcess != nil {
			if err := postProcess(filtered); err != nil {
				return err
			}
		}
		TableWriter(filtered, attrs, cmd, w)
		return nil
	default:
		return fmt.Errorf("unsupported output: %s", output)
	}
}

// TableWriter renders the result set in a tabular form honoring color,
// titles and padding options. If w is nil, os.Stdout is used.
func TableWriter(
	resultSet []map[string]interface{},
	attrs attrs.AttrList,
	cmd *cli.Command,
	w io.Writer) {

	if w == nil {
		w = os.Stdout
	}

	if len(resultSet) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if cmd.Bool("color") {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	var rows [][]string
	for _, result := range resultSet {
		row := make([]string, 0, len(result))
		for _, attr := range attrs {
			if !attr.Include {
				continue
			}
			row = append(row, InterfaceToString(result[attr.OutputKey], "-"))
		}
		rows = append(rows, row)
	}

	if header, ok := cmd.Metadata["header"].(string); ok {
		fmt.Fprintln(w, headerStyle.Render(header))
	}

	pad := cmd.Int("padding")
	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if cmd.Bool("titles") {
		var headers []string
		for _, attr := range attrs {
			if attr.Include {
				headers = append(headers, attr.OutputKey)
			}
		}

		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)

	if footer, ok := cmd.Metadata["footer"].(string); ok {
		fmt.Fprintln(w, headerStyle.Render(footer))
	}
}

// flattenDifferences turns each difference record into one row per message,
// the message entry merged with the record's id and the message's version.
func flattenDifferences(differences gjson.Result) bytes.Buffer {
	flat := []map[string]interface{}{}

	for _, difference := range differences.Array() {
		id := difference.Get("id").Value()

		for _, message := range difference.Get("messages").Array() {
			row := make(map[string]interface{})
			for key, value := range message.Get("value").Map() {
				row[key] = value.Value()
			}
			if _, ok := row["projectCode"]; !ok {
				row["projectCode"] = difference.Get("projectCode").String()
			}
			row["id"] = id
			row["version"] = message.Get("version").String()

			flat = append(flat, row)
		}
	}

	jsonBytes, err := json.Marshal(flat)
	if err != nil {
		log.Errorf("flattenDifferences marshal: %v", err)
		return *bytes.NewBuffer([]byte("[]"))
	}

	return *bytes.NewBuffer(jsonBytes)
}

// getColors returns configured color values for table rendering. Each color
// defaults to one suited to the terminal background.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
