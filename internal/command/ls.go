// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"

	"github.com/msgidx/msgidx/internal/index"
	"github.com/msgidx/msgidx/internal/log"
	"github.com/msgidx/msgidx/internal/meta"
	"github.com/msgidx/msgidx/internal/output"
	"github.com/msgidx/msgidx/internal/report"
	"github.com/msgidx/msgidx/internal/source"
)

var (
	// lsIndexAttrs are the default columns for index documents.
	lsIndexAttrs = []string{"projectCode", "msg.id", "log.level", "msg.value"}

	// lsDiffAttrs are the default columns for diff documents.
	lsDiffAttrs = []string{"projectCode", "id", "version", "log.level", "msg.value"}
)

// lsCommandAction lists the messages of an index document or the flattened
// differences of a diff document.
func lsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("executing action for %v", m.Args[1:])

	if cmd.Args().Len() != 1 {
		return &index.ConfigurationError{Reason: "ls takes exactly one document"}
	}

	sources, err := source.Expand(ctx, cmd.Args().Slice())
	if err != nil {
		return err
	}
	if len(sources) != 1 {
		return &index.ConfigurationError{
			Reason: fmt.Sprintf("ls takes exactly one document, %s expands to %d", cmd.Args().First(), len(sources)),
		}
	}

	src := sources[0]
	doc, err := src.Read(ctx)
	if err != nil {
		return &index.LoadError{Path: src.Path(), Err: err}
	}

	var defaults []string
	switch report.Detect(doc) {
	case report.KindIndex:
		defaults = lsIndexAttrs
		parsed := gjson.ParseBytes(doc)
		cmd.Metadata["header"] = fmt.Sprintf("%s %s", parsed.Get("artifact").String(), parsed.Get("version").String())
	case report.KindDiff:
		defaults = lsDiffAttrs
	default:
		return fmt.Errorf("%w: %s", report.ErrUnsupported, src.Path())
	}

	if !cmd.Bool("titles") {
		delete(cmd.Metadata, "header")
	}

	attrs, err := BuildAttrs(cmd, defaults...)
	if err != nil {
		return err
	}
	log.Debugf("attrs: %v", attrs.String())

	footer := func(rows []map[string]interface{}) error {
		if cmd.Bool("titles") {
			cmd.Metadata["footer"] = humanize.Comma(int64(len(rows))) + " rows"
		}
		return nil
	}

	return output.SliceDiceSpit(*bytes.NewBuffer(doc), attrs, cmd, writer(cmd), footer)
}

// lsCommandBuilder constructs the cli.Command for "ls".
func lsCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "ls",
		Usage:     "list the entries of an index or diff file",
		UsageText: "msgidx ls FILE [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  append([]cli.Flag{NewSchemaFlag()}, NewGlobalFlags()...),
		Action: lsCommandAction,
	}
}
