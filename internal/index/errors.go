// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0

package index

import "fmt"

// ConfigurationError reports unusable invocation parameters, such as too few
// index documents to compare. It is raised before any document is read.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// LoadError reports an index document that could not be read, parsed or
// validated.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("unable to load index file %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// DuplicateKeyError reports two documents sharing the same (version,
// artifact) composite key.
type DuplicateKeyError struct {
	Version  string
	Artifact string
	First    string
	Second   string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("unable to compare index files with the same version and artifact (%s, %s): %s and %s",
		e.Version, e.Artifact, e.First, e.Second)
}

// OutputWriteError reports a report destination that could not be written.
type OutputWriteError struct {
	Path string
	Err  error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("unable to write output file %s: %v", e.Path, e.Err)
}

func (e *OutputWriteError) Unwrap() error { return e.Err }
