// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"cmp"
	"slices"
	"strings"
)

// sortKey is one field of a --sort spec. A leading - sorts descending and a
// leading ! compares text case sensitively.
type sortKey struct {
	field         string
	descending    bool
	caseSensitive bool
}

func parseSortSpec(spec string) []sortKey {
	var keys []sortKey
	for _, field := range strings.Split(spec, ",") {
		field = strings.TrimSpace(field)

		key := sortKey{}
		if rest, ok := strings.CutPrefix(field, "-"); ok {
			key.descending = true
			field = rest
		}
		if rest, ok := strings.CutPrefix(field, "!"); ok {
			key.caseSensitive = true
			field = rest
		}
		if field == "" {
			continue
		}

		key.field = field
		keys = append(keys, key)
	}
	return keys
}

// SortDataset stable-sorts rows by the comma separated fields of spec.
// Numbers compare numerically; anything else compares by its text form.
func SortDataset(resultSet []map[string]interface{}, spec string) {
	keys := parseSortSpec(spec)
	if len(keys) == 0 {
		return
	}

	slices.SortStableFunc(resultSet, func(one, two map[string]interface{}) int {
		for _, key := range keys {
			c := compareValues(one[key.field], two[key.field], key.caseSensitive)
			if c == 0 {
				continue
			}
			if key.descending {
				return -c
			}
			return c
		}
		return 0
	})
}

func compareValues(one, two interface{}, caseSensitive bool) int {
	oneNum, oneOk := one.(float64)
	twoNum, twoOk := two.(float64)
	if oneOk && twoOk {
		return cmp.Compare(oneNum, twoNum)
	}

	oneStr := InterfaceToString(one)
	twoStr := InterfaceToString(two)
	if !caseSensitive {
		oneStr = strings.ToLower(oneStr)
		twoStr = strings.ToLower(twoStr)
	}
	return strings.Compare(oneStr, twoStr)
}
