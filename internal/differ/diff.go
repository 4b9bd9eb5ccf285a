// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"context"
	"maps"
	"slices"

	"github.com/msgidx/msgidx/internal/index"
	"github.com/msgidx/msgidx/internal/log"
)

// Generate loads the given sources and diffs them.
func Generate(ctx context.Context, sources []index.Source, collisionsOnly bool) (Report, error) {
	indexes, err := index.Load(ctx, sources)
	if err != nil {
		return Report{}, err
	}
	return Diff(indexes, collisionsOnly), nil
}

// Diff compares loaded index documents. The documents are expected in loader
// order (see index.Sort); that order fixes the version order of every group.
// Differences come out ordered by project code, then numeric id. A report
// without differences has a nil Differences slice.
func Diff(indexes []index.Index, collisionsOnly bool) Report {
	report := Report{
		Indexes:              make([]IndexInfo, 0, len(indexes)),
		DetectCollisionsOnly: collisionsOnly,
	}

	versions := map[string]bool{}
	codes := map[string]map[int]*group{}

	for _, idx := range indexes {
		report.Indexes = append(report.Indexes, IndexInfo{
			Version:  idx.Version,
			Artifact: idx.Artifact,
			Total:    idx.Total,
			FilePath: idx.FilePath,
		})
		versions[idx.Version] = true

		for _, entry := range idx.Messages {
			ids, ok := codes[entry.ProjectCode()]
			if !ok {
				ids = map[int]*group{}
				codes[entry.ProjectCode()] = ids
			}
			g, ok := ids[entry.ID()]
			if !ok {
				g = newGroup()
				ids[entry.ID()] = g
			}
			g.add(idx.Version, entry)
		}
	}

	log.Debugf("comparing %d documents over %d versions, collisionsOnly=%t", len(indexes), len(versions), collisionsOnly)

	for _, code := range slices.Sorted(maps.Keys(codes)) {
		ids := codes[code]
		for _, id := range slices.Sorted(maps.Keys(ids)) {
			g := ids[id]
			if !g.differs(len(versions), collisionsOnly) {
				continue
			}
			log.Tracef("difference %s%d in %v", code, id, g.versions)
			report.Differences = append(report.Differences, g.difference(code, id))
		}
	}

	report.Total = len(report.Differences)
	return report
}

// group collects the entries sharing one (projectCode, id) identity, keyed
// by version in order of first appearance.
type group struct {
	versions  []string
	byVersion map[string][]index.Entry
}

func newGroup() *group {
	return &group{byVersion: map[string][]index.Entry{}}
}

func (g *group) add(version string, entry index.Entry) {
	if _, ok := g.byVersion[version]; !ok {
		g.versions = append(g.versions, version)
	}
	g.byVersion[version] = append(g.byVersion[version], entry)
}

// differs walks adjacent version pairs and stops at the first pair that
// differs.
func (g *group) differs(versionCount int, collisionsOnly bool) bool {
	if !collisionsOnly && len(g.versions) != versionCount {
		return true
	}

	for i := 1; i < len(g.versions); i++ {
		prev := g.byVersion[g.versions[i-1]]
		curr := g.byVersion[g.versions[i]]

		if !collisionsOnly && len(prev) != len(curr) {
			return true
		}

		if len(prev) == 1 && len(curr) == 1 {
			if !Equal(prev[0], curr[0]) {
				return true
			}
			continue
		}

		// Multi-entry groups are only checked in full mode.
		if collisionsOnly {
			continue
		}
		for _, p := range prev {
			if !containsEqual(curr, p) {
				return true
			}
		}
	}

	return false
}

func (g *group) difference(code string, id int) Difference {
	d := Difference{ProjectCode: code, ID: id}
	for _, v := range g.versions {
		for _, e := range g.byVersion[v] {
			d.Messages = append(d.Messages, VersionedEntry{Version: v, Value: e})
		}
	}
	return d
}

func containsEqual(entries []index.Entry, target index.Entry) bool {
	for _, e := range entries {
		if Equal(e, target) {
			return true
		}
	}
	return false
}
