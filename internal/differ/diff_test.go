// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msgidx/msgidx/internal/index"
)

type fileSource string

func (f fileSource) Path() string { return string(f) }

func (f fileSource) Read(context.Context) ([]byte, error) { return os.ReadFile(string(f)) }

func sources(names ...string) []index.Source {
	out := make([]index.Source, len(names))
	for i, n := range names {
		out[i] = fileSource(filepath.Join("testdata", n))
	}
	return out
}

func generate(t *testing.T, collisionsOnly bool, names ...string) Report {
	t.Helper()
	report, err := Generate(context.Background(), sources(names...), collisionsOnly)
	require.NoError(t, err)
	return report
}

func entry(code string, id int, level string) index.Entry {
	return index.Entry{
		"projectCode": code,
		"log":         map[string]any{"level": level},
		"msg":         map[string]any{"id": float64(id), "value": "message", "format": "MESSAGE_FORMAT"},
	}
}

func doc(version, artifact string, entries ...index.Entry) index.Index {
	return index.Index{Version: version, Artifact: artifact, Total: len(entries), FilePath: version + ".json", Messages: entries}
}

func levels(d Difference, version string) []string {
	var out []string
	for _, m := range d.Messages {
		if m.Version == version {
			out = append(out, m.Value["log"].(map[string]any)["level"].(string))
		}
	}
	return out
}

func TestDiff_LevelChange(t *testing.T) {
	for _, collisionsOnly := range []bool{false, true} {
		report := generate(t, collisionsOnly, "core-3.0.0.json", "core-2.2.10.json")

		require.Len(t, report.Indexes, 2)
		assert.Equal(t, "2.2.10.Final", report.Indexes[0].Version)
		assert.Equal(t, "3.0.0-SNAPSHOT", report.Indexes[1].Version)
		assert.Equal(t, filepath.Join("testdata", "core-2.2.10.json"), report.Indexes[0].FilePath)
		assert.Equal(t, 2, report.Indexes[0].Total)
		assert.Equal(t, collisionsOnly, report.DetectCollisionsOnly)

		assert.Equal(t, 1, report.Total)
		require.Len(t, report.Differences, 1)
		d := report.Differences[0]
		assert.Equal(t, "WELD-", d.ProjectCode)
		assert.Equal(t, 600, d.ID)
		assert.Equal(t, []string{"INFO"}, levels(d, "2.2.10.Final"))
		assert.Equal(t, []string{"DEBUG"}, levels(d, "3.0.0-SNAPSHOT"))
	}
}

func TestDiff_NoDifferences(t *testing.T) {
	tests := []struct {
		name           string
		collisionsOnly bool
		files          []string
	}{
		{"level suppressed", false, []string{"core-2.2.10.json", "core-3.0.0-suppressed.json"}},
		{"level suppressed collisions", true, []string{"core-2.2.10.json", "core-3.0.0-suppressed.json"}},
		{"identical", true, []string{"coll-base.json", "coll-same.json"}},
		{"message value suppressed", true, []string{"coll-base.json", "coll-value-suppressed.json"}},
		{"log level suppressed", true, []string{"coll-base.json", "coll-level-suppressed.json"}},
		{"method signature suppressed", true, []string{"coll-base.json", "coll-sig-suppressed.json"}},
		{"message value suppressed full", false, []string{"coll-base.json", "coll-value-suppressed.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := generate(t, tt.collisionsOnly, tt.files...)
			assert.Zero(t, report.Total)
			assert.Nil(t, report.Differences)

			data, err := Encode(report, FormatJSON)
			require.NoError(t, err)
			assert.Contains(t, string(data), `"differences": null`)
		})
	}
}

func TestDiff_SuppressionsFieldIgnored(t *testing.T) {
	b := entry("WELD-", 1, "INFO")
	b["suppressions"] = []any{"weldlog:"}

	for _, collisionsOnly := range []bool{false, true} {
		report := Diff([]index.Index{
			doc("1.0", "core", entry("WELD-", 1, "INFO")),
			doc("2.0", "core", b),
		}, collisionsOnly)
		assert.Zero(t, report.Total)
		assert.Nil(t, report.Differences)
	}
}

func TestDiff_RepeatedUnspecifiedID(t *testing.T) {
	report := generate(t, false, "unspecified-2.2.10.json", "unspecified-3.0.0.json")
	assert.Equal(t, 1, report.Total)
	require.Len(t, report.Differences, 1)
	assert.Equal(t, index.IDUnspecified, report.Differences[0].ID)
	assert.Len(t, report.Differences[0].Messages, 4)

	// Multi-entry groups are not evaluated in collisions-only mode.
	report = generate(t, true, "unspecified-2.2.10.json", "unspecified-3.0.0.json")
	assert.Zero(t, report.Total)
}

func TestDiff_Coverage(t *testing.T) {
	indexes := []index.Index{
		doc("1.0", "core", entry("WELD-", 41, "INFO"), entry("WELD-", 42, "INFO")),
		doc("2.0", "core", entry("WELD-", 41, "INFO")),
		doc("3.0", "core", entry("WELD-", 41, "INFO"), entry("WELD-", 42, "INFO")),
	}

	report := Diff(indexes, false)
	require.Equal(t, 1, report.Total)
	assert.Equal(t, 42, report.Differences[0].ID)
	assert.Equal(t, []string{"1.0", "3.0"}, report.Differences[0].Versions())

	report = Diff(indexes, true)
	assert.Zero(t, report.Total)
}

func TestDiff_CoverageCountsDistinctVersions(t *testing.T) {
	indexes := []index.Index{
		doc("1.0", "core", entry("WELD-", 1, "INFO")),
		doc("1.0", "se", entry("WELD-SE", 1, "INFO")),
		doc("2.0", "core", entry("WELD-", 1, "INFO")),
		doc("2.0", "se", entry("WELD-SE", 1, "INFO")),
	}

	report := Diff(indexes, false)
	assert.Zero(t, report.Total)
}

func TestDiff_ChainContinuesPastEqualPairs(t *testing.T) {
	indexes := []index.Index{
		doc("1.0", "core", entry("WELD-", 7, "INFO")),
		doc("2.0", "core", entry("WELD-", 7, "INFO")),
		doc("3.0", "core", entry("WELD-", 7, "WARN")),
	}

	for _, collisionsOnly := range []bool{false, true} {
		report := Diff(indexes, collisionsOnly)
		require.Equal(t, 1, report.Total)
		assert.Equal(t, []string{"1.0", "2.0", "3.0"}, report.Differences[0].Versions())
	}
}

func TestDiff_EntryCountChange(t *testing.T) {
	indexes := []index.Index{
		doc("1.0", "core", entry("WELD-", -1, "INFO")),
		doc("2.0", "core", entry("WELD-", -1, "INFO"), entry("WELD-", -1, "DEBUG")),
	}

	assert.Equal(t, 1, Diff(indexes, false).Total)
	assert.Zero(t, Diff(indexes, true).Total)
}

func TestDiff_MultiEntryContainment(t *testing.T) {
	a, b := entry("WELD-", 0, "INFO"), entry("WELD-", 0, "DEBUG")

	same := []index.Index{doc("1.0", "core", a, b), doc("2.0", "core", b, a)}
	assert.Zero(t, Diff(same, false).Total, "order within a version does not matter")

	changed := []index.Index{doc("1.0", "core", a, b), doc("2.0", "core", a, entry("WELD-", 0, "WARN"))}
	assert.Equal(t, 1, Diff(changed, false).Total)
}

func TestDiff_Ordering(t *testing.T) {
	v1 := doc("1.0", "core",
		entry("WELD-SE", 3, "INFO"),
		entry("WELD-", 10, "INFO"),
		entry("WELD-", 9, "INFO"),
		entry("WELD-", -1, "INFO"),
	)
	v2 := doc("2.0", "core",
		entry("WELD-SE", 3, "WARN"),
		entry("WELD-", 10, "WARN"),
		entry("WELD-", 9, "WARN"),
		entry("WELD-", -1, "WARN"),
	)

	report := Diff([]index.Index{v1, v2}, false)
	require.Equal(t, 4, report.Total)

	assert.Equal(t, "WELD-", report.Differences[0].ProjectCode)
	assert.Equal(t, -1, report.Differences[0].ID)
	assert.Equal(t, 9, report.Differences[1].ID)
	assert.Equal(t, 10, report.Differences[2].ID)
	assert.Equal(t, "WELD-SE", report.Differences[3].ProjectCode)
}

func TestDiff_Deterministic(t *testing.T) {
	first := generate(t, false, "core-2.2.10.json", "core-3.0.0.json", "unspecified-2.2.10.json", "unspecified-3.0.0.json")
	second := generate(t, false, "unspecified-3.0.0.json", "core-3.0.0.json", "unspecified-2.2.10.json", "core-2.2.10.json")

	a, err := Encode(first, FormatJSON)
	require.NoError(t, err)
	b, err := Encode(second, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestDiff_DoesNotMutateEntries(t *testing.T) {
	suppressed := entry("WELD-", 1, "DEBUG")
	suppressed["suppressions"] = []any{"weldlog:log-level"}
	indexes := []index.Index{doc("1.0", "core", entry("WELD-", 1, "INFO")), doc("2.0", "core", suppressed)}

	assert.Zero(t, Diff(indexes, false).Total)
	assert.Equal(t, "DEBUG", suppressed["log"].(map[string]any)["level"])
	assert.Contains(t, suppressed, "suppressions")
}

func TestGenerate_Errors(t *testing.T) {
	_, err := Generate(context.Background(), sources("core-2.2.10.json"), false)
	var cfgErr *index.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)

	_, err = Generate(context.Background(), sources("core-2.2.10.json", "missing.json"), false)
	var loadErr *index.LoadError
	assert.ErrorAs(t, err, &loadErr)

	_, err = Generate(context.Background(), sources("core-2.2.10.json", "coll-base.json"), false)
	var dupErr *index.DuplicateKeyError
	assert.ErrorAs(t, err, &dupErr)
}
