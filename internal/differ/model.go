// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0

package differ

import "github.com/msgidx/msgidx/internal/index"

// Report is the differences report written by "msgidx diff".
type Report struct {
	Indexes              []IndexInfo  `json:"indexes"`
	DetectCollisionsOnly bool         `json:"detectCollisionsOnly"`
	Total                int          `json:"total"`
	Differences          []Difference `json:"differences"`
}

// IndexInfo describes one compared document.
type IndexInfo struct {
	Version  string `json:"version"`
	Artifact string `json:"artifact"`
	Total    int    `json:"total"`
	FilePath string `json:"filePath"`
}

// Difference holds every entry, in every version, sharing one
// (projectCode, id) identity that was flagged as different.
type Difference struct {
	ProjectCode string           `json:"projectCode"`
	ID          int              `json:"id"`
	Messages    []VersionedEntry `json:"messages"`
}

// VersionedEntry is a message entry tagged with the version it came from.
type VersionedEntry struct {
	Version string      `json:"version"`
	Value   index.Entry `json:"value"`
}

// Versions returns the distinct versions of the difference in order.
func (d Difference) Versions() []string {
	var versions []string
	for _, m := range d.Messages {
		if len(versions) == 0 || versions[len(versions)-1] != m.Version {
			versions = append(versions, m.Version)
		}
	}
	return versions
}

// Versions returns the distinct versions of the compared documents in order.
func (r Report) Versions() []string {
	var versions []string
	seen := make(map[string]bool, len(r.Indexes))
	for _, i := range r.Indexes {
		if !seen[i.Version] {
			seen[i.Version] = true
			versions = append(versions, i.Version)
		}
	}
	return versions
}
