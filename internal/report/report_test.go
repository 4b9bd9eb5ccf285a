// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msgidx/msgidx/internal/index"
)

var stamp = time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)

func render(t *testing.T, name, format string) (string, error) {
	t.Helper()
	path := filepath.Join("testdata", name)
	doc, err := os.ReadFile(path)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = Render(&buf, doc, path, format, stamp)
	return buf.String(), err
}

func TestDetect(t *testing.T) {
	tests := []struct {
		doc  string
		want Kind
	}{
		{`{"version": "1.0", "messages": []}`, KindIndex},
		{`{"indexes": [], "total": 0}`, KindDiff},
		{`{"version": "1.0", "indexes": []}`, KindIndex},
		{`{"name": "x"}`, KindUnknown},
		{`[1, 2]`, KindUnknown},
		{`{`, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.doc, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect([]byte(tt.doc)))
		})
	}
}

func TestRender_IndexText(t *testing.T) {
	got, err := render(t, "index.json", FormatText)
	require.NoError(t, err)

	want := `org.jboss.weld:weld-core-impl 3.0.0-SNAPSHOT
2 messages, generated from testdata/index.json at 2026-03-01T12:30:00Z

WELD-600 [DEBUG] Catching
    org.jboss.weld.logging.WeldLogger#catchingDebug(java.lang.Throwable)
    suppressions: weldlog:log-level

WELD-601 [WARN] Invalid <tag> in {0}
    org.jboss.weld.logging.BeanLogger#invalidTag(java.lang.Object)
`
	assert.Equal(t, want, got)
}

func TestRender_IndexHTML(t *testing.T) {
	got, err := render(t, "index.json", FormatHTML)
	require.NoError(t, err)

	assert.Contains(t, got, "<title>Log messages: org.jboss.weld:weld-core-impl 3.0.0-SNAPSHOT</title>")
	assert.Contains(t, got, "<td>WELD-600</td>")
	assert.Contains(t, got, `<td class="level-WARN">WARN</td>`)
	assert.Contains(t, got, "Invalid &lt;tag&gt; in {0}")
	assert.NotContains(t, got, "<tag>")
}

func TestRender_DiffText(t *testing.T) {
	got, err := render(t, "diff.json", FormatText)
	require.NoError(t, err)

	want := `Log message differences
1 differences, generated from testdata/diff.json at 2026-03-01T12:30:00Z

Compared indexes:
    2.2.10.Final org.jboss.weld:weld-core-impl (2 messages) core-2.2.10.json
    3.0.0-SNAPSHOT org.jboss.weld:weld-core-impl (2 messages) core-3.0.0.json

WELD-600
    2.2.10.Final [INFO] Catching
    3.0.0-SNAPSHOT [DEBUG] Catching
`
	assert.Equal(t, want, got)
}

func TestRender_EmptyDiff(t *testing.T) {
	got, err := render(t, "empty-diff.json", FormatText)
	require.NoError(t, err)
	assert.Contains(t, got, "Log message differences (collisions only)\n")
	assert.Contains(t, got, "\nNo differences found.\n")

	got, err = render(t, "empty-diff.json", FormatHTML)
	require.NoError(t, err)
	assert.Contains(t, got, "<p>No differences found.</p>")
	assert.NotContains(t, got, "<h2>Differences</h2>")
}

func TestRender_DiffHTML(t *testing.T) {
	got, err := render(t, "diff.json", "")
	require.NoError(t, err)
	assert.Contains(t, got, `<h3 id="WELD-600">WELD-600</h3>`)
	assert.Contains(t, got, "<td>3.0.0-SNAPSHOT</td>")
	assert.Contains(t, got, "<td>DEBUG</td>")
}

func TestRender_Errors(t *testing.T) {
	_, err := render(t, "unsupported.json", FormatHTML)
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = render(t, "index.json", "pdf")
	assert.ErrorContains(t, err, "unsupported report format")

	var buf bytes.Buffer
	err = Render(&buf, []byte(`{"version": "1.0"}`), "bad.json", FormatText, stamp)
	var loadErr *index.LoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, "out/diff.html", DefaultPath("out/diff.json", FormatHTML))
	assert.Equal(t, "out/diff.txt", DefaultPath("out/diff.json", FormatText))
	assert.Equal(t, "out/diff.data.html", DefaultPath("out/diff.data", ""))
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "diff.json")
	data, err := os.ReadFile(filepath.Join("testdata", "diff.json"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(in, data, 0o644))

	out, err := WriteFile(in, "", FormatHTML)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "diff.html"), out)

	html, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(html), "WELD-600")

	explicit := filepath.Join(dir, "report.txt")
	out, err = WriteFile(in, explicit, FormatText)
	require.NoError(t, err)
	assert.Equal(t, explicit, out)
}

func TestWriteFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := WriteFile(filepath.Join(dir, "missing.json"), "", FormatHTML)
	var loadErr *index.LoadError
	assert.ErrorAs(t, err, &loadErr)

	_, err = WriteFile(filepath.Join("testdata", "diff.json"), dir, FormatHTML)
	var outErr *index.OutputWriteError
	assert.ErrorAs(t, err, &outErr)
}
