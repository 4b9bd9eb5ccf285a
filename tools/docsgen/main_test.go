// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func testApp() *cli.Command {
	return &cli.Command{
		Name:  "msgidx",
		Flags: []cli.Flag{&cli.BoolFlag{Name: "version", Aliases: []string{"v"}, Usage: "version info"}},
		Commands: []*cli.Command{
			{
				Name:      "diff",
				Usage:     "Compare indexes",
				UsageText: "msgidx diff PATH...",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Usage: "output format", Value: "json"},
					&cli.StringFlag{Name: "output-file", Aliases: []string{"o"}, Usage: "report file", Sources: cli.EnvVars("MSGIDX_OUTPUT_FILE")},
				},
			},
			{Name: "secret", Hidden: true},
		},
	}
}

func TestSubcommands(t *testing.T) {
	subs := subcommands(testApp())
	require.Len(t, subs, 1)

	sub := subs[0]
	assert.Equal(t, "diff", sub.ID)
	assert.Equal(t, "Compare indexes", sub.Short)
	require.Len(t, sub.Flags, 3)

	assert.Equal(t, "format", sub.Flags[0].ID)
	assert.Equal(t, "json", sub.Flags[0].Default)
	assert.Equal(t, "output-file", sub.Flags[1].ID)
	assert.Equal(t, "--output-file, -o", sub.Flags[1].Syntax)
	assert.Equal(t, "MSGIDX_OUTPUT_FILE", sub.Flags[1].Env)
	assert.Equal(t, "version", sub.Flags[2].ID)
	assert.Empty(t, sub.Flags[2].Default)
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	files, err := generate(dir, testApp(), "1.2.3", now)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "commands", "diff.md"),
		filepath.Join(dir, "man", "share", "man1", "msgidx-diff.1"),
	}, files)

	md, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(md), "# msgidx diff\n")
	assert.Contains(t, string(md), "| `--output-file, -o` | report file |  | MSGIDX_OUTPUT_FILE |\n")
	assert.Contains(t, string(md), "_Generated March 1, 2026 for msgidx 1.2.3._")

	man, err := os.ReadFile(files[1])
	require.NoError(t, err)
	assert.Contains(t, string(man), ".TH MSGIDX-DIFF 1")
	assert.Contains(t, string(man), "output format (default: json)")
}
