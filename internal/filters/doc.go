// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters selects rows of "msgidx ls" output.
//
// A filter spec is a comma delimited list of key-operator-target
// expressions. MSGIDX_FILTER_DELIM overrides the delimiter when targets
// contain commas. All expressions must hold for a row to be kept.
//
// Operators, each negatable with a leading !:
//
//   - = : equals (numeric for numbers)
//   - ~ : equals, ignoring case
//   - ^ : has prefix
//   - < and > : ordering (numeric for numbers)
//   - @ : contains (substring, or element of a list)
//   - / : matches a regular expression
//
// Examples:
//
//   - "level=WARN" : warnings only
//   - "id>1000" : ids above 1000
//   - "value@deprecated" : messages mentioning deprecated
//   - "suppressions@weldlog:log-level" : entries suppressing log.level
//   - "projectCode!^WELD-SE" : everything but the SE project
//
// A key names the output key of an attr (see package attrs). A key that is
// not an attr is resolved as a path into the row instead.
package filters
