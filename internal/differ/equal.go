// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"strings"

	"github.com/yudai/gojsondiff"

	"github.com/msgidx/msgidx/internal/index"
)

// Equal reports whether two entries are equal once every field path
// suppressed by either of them has been removed from both. The suppressions
// field itself never takes part. Neither entry is modified.
func Equal(a, b index.Entry) bool {
	paths := suppressedPaths(a, b)
	a, b = a.Clone(), b.Clone()
	for _, e := range []index.Entry{a, b} {
		delete(e, index.KeySuppressions)
		for _, p := range paths {
			removePath(e, p)
		}
	}

	return !gojsondiff.New().CompareObjects(a, b).Modified()
}

// SuppressionPath turns a token such as "weldlog:log-level" into the field
// path it names, here ["log", "level"]. Everything up to and including the
// first colon is the prefix.
func SuppressionPath(token string) []string {
	if _, rest, ok := strings.Cut(token, ":"); ok {
		token = rest
	}
	if token == "" {
		return nil
	}
	return strings.Split(token, "-")
}

// Without returns a copy of e with the field at path removed. A path that
// does not resolve leaves the copy unchanged.
func Without(e index.Entry, path []string) index.Entry {
	out := e.Clone()
	removePath(out, path)
	return out
}

// suppressedPaths returns the union of both entries' suppression paths.
func suppressedPaths(a, b index.Entry) [][]string {
	var paths [][]string
	seen := map[string]bool{}
	for _, e := range []index.Entry{a, b} {
		for _, token := range e.Suppressions() {
			p := SuppressionPath(token)
			key := strings.Join(p, "-")
			if len(p) == 0 || seen[key] {
				continue
			}
			seen[key] = true
			paths = append(paths, p)
		}
	}
	return paths
}

func removePath(obj map[string]any, path []string) {
	if len(path) == 0 {
		return
	}
	for _, segment := range path[:len(path)-1] {
		next, ok := obj[segment].(map[string]any)
		if !ok {
			return
		}
		obj = next
	}
	delete(obj, path[len(path)-1])
}
