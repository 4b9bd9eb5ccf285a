// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"io"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"

	"github.com/msgidx/msgidx/internal/differ"
	"github.com/msgidx/msgidx/internal/index"
	"github.com/msgidx/msgidx/internal/log"
)

// Output formats.
const (
	FormatHTML = "html"
	FormatText = "text"
)

// Kind is the shape of a document being rendered.
type Kind int

const (
	KindUnknown Kind = iota
	KindIndex
	KindDiff
)

func (k Kind) String() string {
	switch k {
	case KindIndex:
		return "index"
	case KindDiff:
		return "diff"
	default:
		return "unknown"
	}
}

// ErrUnsupported is returned for documents that are neither an index nor a
// differences report.
var ErrUnsupported = errors.New("unsupported index file format")

//go:embed templates/*.tmpl
var templates embed.FS

var funcs = map[string]any{
	"count": func(n int) string { return humanize.Comma(int64(n)) },
	"join":  strings.Join,
	"stamp": func(t time.Time) string { return t.Format(time.RFC3339) },
}

// Data is handed to the templates.
type Data struct {
	Index     *index.Index
	Diff      *differ.Report
	IndexFile string
	Timestamp time.Time
}

// Detect classifies a document by its top-level keys.
func Detect(doc []byte) Kind {
	if !gjson.ValidBytes(doc) {
		return KindUnknown
	}
	root := gjson.ParseBytes(doc)
	if !root.IsObject() {
		return KindUnknown
	}
	switch {
	case root.Get(index.KeyVersion).Exists():
		return KindIndex
	case root.Get("indexes").Exists():
		return KindDiff
	default:
		return KindUnknown
	}
}

// Render writes doc, read from sourcePath, to w in the given format.
func Render(w io.Writer, doc []byte, sourcePath, format string, now time.Time) error {
	data := Data{IndexFile: sourcePath, Timestamp: now}

	kind := Detect(doc)
	switch kind {
	case KindIndex:
		idx, err := index.Parse(doc)
		if err != nil {
			return &index.LoadError{Path: sourcePath, Err: err}
		}
		idx.FilePath = sourcePath
		data.Index = &idx
	case KindDiff:
		var rep differ.Report
		if err := json.Unmarshal(doc, &rep); err != nil {
			return &index.LoadError{Path: sourcePath, Err: err}
		}
		data.Diff = &rep
	default:
		return fmt.Errorf("%w: %s", ErrUnsupported, sourcePath)
	}

	name := kind.String()
	log.Debugf("rendering %s with the %s %s template", sourcePath, name, format)

	switch format {
	case "", FormatHTML:
		t, err := htmltemplate.New(name + ".html.tmpl").Funcs(funcs).ParseFS(templates, "templates/"+name+".html.tmpl")
		if err != nil {
			return err
		}
		return t.Execute(w, data)
	case FormatText:
		t, err := template.New(name + ".txt.tmpl").Funcs(funcs).ParseFS(templates, "templates/"+name+".txt.tmpl")
		if err != nil {
			return err
		}
		return t.Execute(w, data)
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
}

// DefaultPath derives the report path from the input path: a trailing .json
// is replaced, otherwise the extension is appended.
func DefaultPath(in, format string) string {
	ext := ".html"
	if format == FormatText {
		ext = ".txt"
	}
	return strings.TrimSuffix(in, ".json") + ext
}

// WriteFile renders the document at in into out. An empty out selects
// DefaultPath. The written path is returned.
func WriteFile(in, out, format string) (string, error) {
	doc, err := os.ReadFile(in)
	if err != nil {
		return "", &index.LoadError{Path: in, Err: err}
	}

	if out == "" {
		out = DefaultPath(in, format)
	}

	var buf bytes.Buffer
	if err := Render(&buf, doc, in, format, time.Now()); err != nil {
		return "", err
	}

	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return "", &index.OutputWriteError{Path: out, Err: err}
	}
	log.Debugf("report written to %s (%s)", out, humanize.Bytes(uint64(buf.Len())))
	return out, nil
}
