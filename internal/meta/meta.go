// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/msgidx/msgidx/internal/config"
)

// Meta contains runtime metadata shared by commands: the raw CLI arguments,
// the loaded configuration, the root context and the working directory the
// process started in. Relative input paths are resolved against StartingDir.
type Meta struct {
	Args        []string
	Config      config.Type
	Context     context.Context
	StartingDir string
}
