// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0

package index

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/tidwall/gjson"

	"github.com/msgidx/msgidx/internal/log"
)

// MinSources is the smallest number of documents a comparison accepts.
const MinSources = 2

// Source yields the raw bytes of one index document.
type Source interface {
	// Path is the location reported back in diff reports and errors.
	Path() string
	// Read returns the full document.
	Read(ctx context.Context) ([]byte, error)
}

// Load reads every source, validates and decodes it, and returns the
// documents ordered by version and then artifact. The whole load fails on the
// first unreadable or invalid document, or on a repeated (version, artifact)
// key.
func Load(ctx context.Context, sources []Source) ([]Index, error) {
	if len(sources) < MinSources {
		return nil, &ConfigurationError{
			Reason: fmt.Sprintf("at least %d index files are required to compare, got %d", MinSources, len(sources)),
		}
	}

	indexes := make([]Index, 0, len(sources))
	seen := make(map[Key]string, len(sources))

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := src.Read(ctx)
		if err != nil {
			return nil, &LoadError{Path: src.Path(), Err: err}
		}

		idx, err := Parse(data)
		if err != nil {
			return nil, &LoadError{Path: src.Path(), Err: err}
		}
		idx.FilePath = src.Path()

		if first, ok := seen[idx.Key()]; ok {
			return nil, &DuplicateKeyError{
				Version:  idx.Version,
				Artifact: idx.Artifact,
				First:    first,
				Second:   idx.FilePath,
			}
		}
		seen[idx.Key()] = idx.FilePath

		log.Debugf("loaded %s (%s, %s) with %d messages", idx.FilePath, idx.Version, idx.Artifact, len(idx.Messages))
		indexes = append(indexes, idx)
	}

	Sort(indexes)
	return indexes, nil
}

// Sort orders documents by version, then artifact, using plain string
// comparison.
func Sort(indexes []Index) {
	sort.SliceStable(indexes, func(i, j int) bool {
		return indexes[i].Key().Less(indexes[j].Key())
	})
}

// Parse validates a single index document and decodes it. FilePath is left
// empty for the caller to fill in.
func Parse(data []byte) (Index, error) {
	if !gjson.ValidBytes(data) {
		return Index{}, errors.New("invalid JSON")
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return Index{}, errors.New("document is not a JSON object")
	}

	for _, key := range []string{KeyVersion, KeyArtifact} {
		v := root.Get(key)
		if v.Type != gjson.String || v.Str == "" {
			return Index{}, fmt.Errorf("missing or empty %q", key)
		}
	}

	messages := root.Get(KeyMessages)
	if !messages.IsArray() {
		return Index{}, fmt.Errorf("missing %q array", KeyMessages)
	}

	var invalid error
	messages.ForEach(func(i, entry gjson.Result) bool {
		invalid = validateEntry(int(i.Int()), entry)
		return invalid == nil
	})
	if invalid != nil {
		return Index{}, invalid
	}

	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return Index{}, err
	}
	// A stray filePath in the document never survives; the loader owns it.
	idx.FilePath = ""

	return idx, nil
}

func validateEntry(pos int, entry gjson.Result) error {
	if !entry.IsObject() {
		return fmt.Errorf("message %d is not an object", pos)
	}

	if code := entry.Get(KeyProjectCode); code.Type != gjson.String {
		return fmt.Errorf("message %d has no string %q", pos, KeyProjectCode)
	}

	id := entry.Get(KeyMessage + "." + KeyID)
	if id.Type != gjson.Number || id.Num != math.Trunc(id.Num) {
		return fmt.Errorf("message %d has no integer %s.%s", pos, KeyMessage, KeyID)
	}
	if id.Num < math.MinInt32 || id.Num > math.MaxInt32 {
		return fmt.Errorf("message %d has %s.%s out of range: %s", pos, KeyMessage, KeyID, id.Raw)
	}

	if sup := entry.Get(KeySuppressions); sup.Exists() && !sup.IsArray() {
		return fmt.Errorf("message %d has a non-array %q", pos, KeySuppressions)
	}

	return nil
}
