// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for msgidx's user
// configuration. The configuration is a YAML document named msgidx.yaml in the
// user's configuration directory, typically:
//   - Linux: $XDG_CONFIG_HOME/msgidx.yaml or $HOME/.config/msgidx.yaml
//   - macOS: $HOME/Library/Application Support/msgidx.yaml
//   - Windows: %APPDATA%/msgidx.yaml
//
// MSGIDX_CFG_FILE overrides the location.
package config
