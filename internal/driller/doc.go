// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package driller resolves dotted attr paths, such as msg.value or
// suppressions[0], against rows of a JSON document.
package driller
