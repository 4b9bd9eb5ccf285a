// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/msgidx/msgidx/internal/index"
)

// Explain writes a human readable account of every difference in report: the
// versions missing the id and an ASCII delta for each adjacent version pair
// whose entries are not equal.
func Explain(w io.Writer, report Report, coloring bool) error {
	if report.Total == 0 {
		_, err := fmt.Fprintln(w, "No differences found.")
		return err
	}

	all := report.Versions()
	for _, d := range report.Differences {
		text, err := ExplainDifference(d, all, coloring)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprint(w, text); err != nil {
			return err
		}
	}
	return nil
}

// ExplainDifference renders one difference. all is the full set of compared
// versions, used to report where the id is missing.
func ExplainDifference(d Difference, all []string, coloring bool) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s%d\n", d.ProjectCode, d.ID)

	present := d.Versions()
	var missing []string
	for _, v := range all {
		if !slices.Contains(present, v) {
			missing = append(missing, v)
		}
	}
	if len(missing) > 0 {
		fmt.Fprintf(&b, "  missing in: %s\n", strings.Join(missing, ", "))
	}

	byVersion := map[string][]index.Entry{}
	for _, m := range d.Messages {
		byVersion[m.Version] = append(byVersion[m.Version], m.Value)
	}

	for i := 1; i < len(present); i++ {
		from, to := present[i-1], present[i]
		prev, curr := byVersion[from], byVersion[to]

		if len(prev) != 1 || len(curr) != 1 {
			fmt.Fprintf(&b, "  %s -> %s: %d entries -> %d entries\n", from, to, len(prev), len(curr))
			continue
		}
		if Equal(prev[0], curr[0]) {
			continue
		}

		delta, err := Delta(prev[0], curr[0], coloring)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "  %s -> %s\n", from, to)
		for _, line := range strings.Split(strings.TrimRight(delta, "\n"), "\n") {
			fmt.Fprintf(&b, "    %s\n", line)
		}
	}

	return b.String(), nil
}

// Delta renders the structural difference between two entries in gojsondiff's
// ASCII form.
func Delta(left, right index.Entry, coloring bool) (string, error) {
	diff := gojsondiff.New().CompareObjects(left, right)

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       coloring,
	}
	return formatter.NewAsciiFormatter(map[string]interface{}(left), config).Format(diff)
}
