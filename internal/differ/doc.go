// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ compares log-message index documents across versions and
// builds the differences report.
//
// Entries are grouped by project code, then message id, then version. Each
// group is checked for coverage (the id is present in every compared
// version) and then walked over adjacent version pairs, comparing entries
// with suppression-aware equality: every field path named by either entry's
// suppressions is dropped from copies of both entries before they are
// compared.
//
// In collisions-only mode the coverage check and the entry count check are
// skipped and only single-entry pairs are compared. Groups holding several
// entries for one version, which is normal for the unspecified (0) and
// inherited (-1) ids, are not evaluated in that mode.
package differ
