// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package report renders index documents and differences reports as HTML or
// plain text. The template is picked from the document shape: a top-level
// "version" means an index document, a top-level "indexes" a differences
// report.
package report
