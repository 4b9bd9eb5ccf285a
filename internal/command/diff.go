// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/msgidx/msgidx/internal/differ"
	"github.com/msgidx/msgidx/internal/index"
	"github.com/msgidx/msgidx/internal/log"
	"github.com/msgidx/msgidx/internal/meta"
	"github.com/msgidx/msgidx/internal/picker"
	"github.com/msgidx/msgidx/internal/source"
)

// pickSources lets the user choose which sources to compare. Swapped in
// tests.
var pickSources = func(sources []index.Source) ([]index.Source, error) {
	if !isTerminal(os.Stdin) {
		return nil, &index.ConfigurationError{Reason: "--pick requires an interactive terminal"}
	}

	items := make([]string, len(sources))
	for i, s := range sources {
		items[i] = s.Path()
	}

	picked, err := picker.Pick(items, index.MinSources)
	if err != nil {
		return nil, err
	}

	selected := make([]index.Source, 0, len(picked))
	for _, i := range picked {
		selected = append(selected, sources[i])
	}
	return selected, nil
}

// expandsToMany reports whether a lone argument names a directory or an S3
// location, either of which may hold several index files.
func expandsToMany(args []string) bool {
	if len(args) != 1 {
		return false
	}
	if source.IsS3(args[0]) {
		return true
	}
	info, err := os.Stat(args[0])
	return err == nil && info.IsDir()
}

// diffCommandAction expands the inputs, compares them and writes the report.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("executing action for %v", m.Args[1:])

	out := cmd.String("output-file")
	if out == "" {
		return &index.ConfigurationError{Reason: "an output file is required (--output-file)"}
	}

	args := cmd.Args().Slice()
	if len(args) < index.MinSources && !expandsToMany(args) {
		return &index.ConfigurationError{
			Reason: fmt.Sprintf("at least %d index files are required to compare, got %d", index.MinSources, len(args)),
		}
	}

	sources, err := source.Expand(ctx, args)
	if err != nil {
		return err
	}

	if cmd.Bool("pick") {
		sources, err = pickSources(sources)
		if errors.Is(err, picker.ErrAborted) {
			log.Infof("selection aborted, nothing compared")
			return nil
		}
		if err != nil {
			return err
		}
	}

	report, err := differ.Generate(ctx, sources, cmd.Bool("collisions"))
	if err != nil {
		return err
	}

	if err := differ.Write(out, report, cmd.String("format")); err != nil {
		return err
	}
	log.Infof("%s differences across %d indexes written to %s",
		humanize.Comma(int64(report.Total)), len(report.Indexes), out)

	if cmd.Bool("explain") {
		w := writer(cmd)
		return differ.Explain(w, report, isTerminal(w))
	}

	return nil
}

// diffCommandBuilder constructs the cli.Command for "diff".
func diffCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "compare message index files",
		UsageText: "msgidx diff [-c] -o FILE [--format json|yaml] [--explain] [--pick] PATH...",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NewCollisionsFlag("diff", meta.Config.Source),
			NewFormatFlag("diff", meta.Config.Source, differ.FormatJSON, differ.FormatYAML),
			&cli.StringFlag{
				Name:    "output-file",
				Aliases: []string{"o"},
				Usage:   "file the differences report is written to",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("MSGIDX_OUTPUT_FILE"),
				),
			},
			&cli.BoolFlag{
				Name:  "explain",
				Usage: "print a readable delta of each difference",
			},
			&cli.BoolFlag{
				Name:  "pick",
				Usage: "choose the files to compare interactively",
			},
		},
		Action: diffCommandAction,
	}
}
