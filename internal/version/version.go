// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0

// Do not import any other msgidx packages to avoid import cycles.

package version

import "runtime/debug"

// Version is the module version stamped by the Go toolchain, or "dev" for
// local builds.
var Version = func() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}()

// UserAgent identifies msgidx to remote services such as S3.
func UserAgent() string {
	return "msgidx/" + Version
}
