// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0

// Command docsgen renders per-subcommand markdown and man pages from the live
// msgidx command tree.
package main

import (
	"context"
	"embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/msgidx/msgidx/internal/command"
)

//go:embed templates/*.tmpl
var templates embed.FS

type Subcommand struct {
	ID          string
	Short       string
	Description string
	Usage       string
	Flags       []Flag
}

type Flag struct {
	ID          string
	Syntax      string
	Description string
	Default     string
	Env         string
}

type TemplateData struct {
	Subcommand
	Date    string
	Version string
	IDUpper string
}

type Outputs struct {
	Template string
	Folder   string
	Prefix   string
	Suffix   string
}

var outputs = []Outputs{
	{Template: "templates/command.md.tmpl", Folder: "commands", Suffix: ".md"},
	{Template: "templates/command.man.tmpl", Folder: "man/share/man1", Prefix: "msgidx-", Suffix: ".1"},
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen DOCS_DIR")
		os.Exit(1)
	}

	app, err := command.InitApp(context.Background(), []string{"msgidx"})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	files, err := generate(os.Args[1], app, getVersion(), time.Now())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	for _, f := range files {
		fmt.Println("Generated", f)
	}
}

// generate writes one file per visible subcommand and output type under docs
// and returns the paths written.
func generate(docs string, app *cli.Command, version string, now time.Time) ([]string, error) {
	var written []string

	for _, sub := range subcommands(app) {
		data := TemplateData{
			Subcommand: sub,
			Date:       now.Format("January 2, 2006"),
			Version:    version,
			IDUpper:    strings.ToUpper(sub.ID),
		}

		for _, o := range outputs {
			folder := filepath.Join(docs, o.Folder)
			if err := os.MkdirAll(folder, 0o755); err != nil {
				return written, err
			}

			tmpl, err := template.ParseFS(templates, o.Template)
			if err != nil {
				return written, err
			}

			path := filepath.Join(folder, o.Prefix+sub.ID+o.Suffix)
			file, err := os.Create(path)
			if err != nil {
				return written, err
			}
			err = tmpl.Execute(file, data)
			file.Close()
			if err != nil {
				return written, fmt.Errorf("failed to render %s: %w", path, err)
			}
			written = append(written, path)
		}
	}

	return written, nil
}

// subcommands flattens the visible subcommands of app, merging the root's
// flags into each and sorting the result by flag name.
func subcommands(app *cli.Command) []Subcommand {
	common := flags(app.Flags)

	var subs []Subcommand
	for _, c := range app.Commands {
		if c.Hidden {
			continue
		}

		merged := append(append([]Flag{}, common...), flags(c.Flags)...)
		sort.Slice(merged, func(i, j int) bool {
			return merged[i].ID < merged[j].ID
		})

		subs = append(subs, Subcommand{
			ID:          c.Name,
			Short:       c.Usage,
			Description: c.Description,
			Usage:       c.UsageText,
			Flags:       merged,
		})
	}
	return subs
}

func flags(in []cli.Flag) []Flag {
	var out []Flag
	for _, f := range in {
		names := f.Names()
		if len(names) == 0 {
			continue
		}

		syntax := make([]string, len(names))
		for i, n := range names {
			if len(n) == 1 {
				syntax[i] = "-" + n
			} else {
				syntax[i] = "--" + n
			}
		}

		flag := Flag{ID: names[0], Syntax: strings.Join(syntax, ", ")}
		if d, ok := f.(cli.DocGenerationFlag); ok {
			flag.Description = d.GetUsage()
			if d.TakesValue() {
				flag.Default = d.GetDefaultText()
				if flag.Default == "" {
					flag.Default = strings.Trim(d.GetValue(), `"`)
				}
			}
			flag.Env = strings.Join(d.GetEnvVars(), ", ")
		}
		out = append(out, flag)
	}
	return out
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
