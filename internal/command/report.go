// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/msgidx/msgidx/internal/index"
	"github.com/msgidx/msgidx/internal/log"
	"github.com/msgidx/msgidx/internal/meta"
	"github.com/msgidx/msgidx/internal/report"
)

// reportCommandAction renders an index or diff document and prints the path
// of the written report.
func reportCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("executing action for %v", m.Args[1:])

	args := cmd.Args().Slice()
	switch len(args) {
	case 1, 2:
	default:
		return &index.ConfigurationError{Reason: "report takes an input file and an optional report file"}
	}

	var out string
	if len(args) == 2 {
		out = args[1]
	}

	written, err := report.WriteFile(args[0], out, cmd.String("format"))
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(writer(cmd), written)
	return err
}

// reportCommandBuilder constructs the cli.Command for "report".
func reportCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "render an index or diff file as HTML or text",
		UsageText: "msgidx report FILE [REPORT_FILE] [--format html|text]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NewFormatFlag("report", meta.Config.Source, report.FormatHTML, report.FormatText),
		},
		Action: reportCommandAction,
	}
}
