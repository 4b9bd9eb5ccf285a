// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the msgidx CLI: the diff, ls, report and
// completion subcommands with their flags, validators and actions.
package command
