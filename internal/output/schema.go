// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/tidwall/gjson"

	"github.com/msgidx/msgidx/internal/log"
)

// maxSchemaDepth limits how deep object values are walked.
const maxSchemaDepth = 3

// DumpSchema writes the sorted set of attribute paths found across rows to
// w. If w is nil, os.Stdout is used.
func DumpSchema(rows gjson.Result, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	fmt.Fprintln(w,
		`Attributes found in the document rows. Any of them can be passed to
--attrs, --filter and --sort.`)
	fmt.Fprintln(w, "")

	for _, path := range SchemaPaths(rows) {
		fmt.Fprintln(w, path)
	}
}

// SchemaPaths returns the sorted, distinct leaf paths of every row. Arrays
// are leaves.
func SchemaPaths(rows gjson.Result) []string {
	seen := map[string]bool{}
	for _, row := range rows.Array() {
		schemaWalker("", row, 0, seen)
	}

	if len(seen) == 0 {
		log.Debugf("no attributes found in %d rows", len(rows.Array()))
	}

	paths := make([]string, 0, len(seen))
	for path := range seen {
		paths = append(paths, path)
	}
	slices.Sort(paths)
	return paths
}

func schemaWalker(holder string, value gjson.Result, depth int, seen map[string]bool) {
	value.ForEach(func(key, child gjson.Result) bool {
		path := key.String()
		if holder != "" {
			path = holder + "." + path
		}

		if child.IsObject() && depth < maxSchemaDepth {
			schemaWalker(path, child, depth+1, seen)
		} else {
			seen[path] = true
		}
		return true
	})
}
