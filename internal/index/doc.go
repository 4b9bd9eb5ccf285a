// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package index loads and normalizes log-message index documents. An index
// document catalogs the log messages of one (version, artifact) pair; the
// loader validates required fields, tags each document with the path it was
// read from, rejects duplicate (version, artifact) keys and orders the result
// so that downstream diffing is deterministic.
package index
