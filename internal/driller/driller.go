// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// segment is one path element: a key optionally followed by [n] or [].
var segment = regexp.MustCompile(`^([a-zA-Z0-9_-]+)(\[(\d+)?\])?$`)

// Drill walks path through row. An array reached without an index collapses
// to its only element when it has exactly one and is returned whole
// otherwise. An invalid segment or an out of range index yields an empty
// result.
func Drill(row gjson.Result, path string) gjson.Result {
	current := row

	for _, p := range strings.Split(path, ".") {
		matches := segment.FindStringSubmatch(p)
		if matches == nil {
			return gjson.Result{}
		}

		val := current.Get(gjson.Escape(matches[1]))
		if val.IsArray() {
			arr := val.Array()
			if matches[3] != "" {
				i, err := strconv.Atoi(matches[3])
				if err != nil || i >= len(arr) {
					return gjson.Result{}
				}
				val = arr[i]
			} else if len(arr) == 1 {
				val = arr[0]
			}
		}

		current = val
	}

	return current
}

// DrillRaw is Drill over a raw JSON string.
func DrillRaw(json, path string) gjson.Result {
	return Drill(gjson.Parse(json), path)
}
