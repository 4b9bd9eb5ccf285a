// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output lists the rows of index and diff documents. Rows are
// filtered, transformed and sorted per command flags and emitted as a table,
// JSON, YAML or the raw document.
package output
