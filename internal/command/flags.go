// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"strings"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

// NewSchemaFlag constructs the --schema flag.
func NewSchemaFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "schema",
		Usage:       "list the attributes found in the document rows",
		HideDefault: true,
	}
}

// NewGlobalFlags returns the listing flags shared by commands that emit rows
// through the output pipeline.
func NewGlobalFlags() (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.IntFlag{
			Name:  "padding",
			Usage: "spaces between text columns",
			Value: 2,
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}

	return
}

// NewCollisionsFlag constructs the diff --collisions flag, defaulting from
// MSGIDX_COLLISIONS and then the config file.
func NewCollisionsFlag(ns string, path string) *cli.BoolFlag {
	flag := &cli.BoolFlag{
		Name:    "collisions",
		Aliases: []string{"c"},
		Usage:   "only report ids whose definitions collide across versions",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("MSGIDX_COLLISIONS"),
		),
	}
	NameSpacedValueChainFromConfigFile(ns, path, flag.Name, &flag.Sources)
	return flag
}

// NewFormatFlag constructs a --format flag accepting one of formats, the
// first being the default. The value may come from the config file.
func NewFormatFlag(ns string, path string, formats ...string) *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:  "format",
		Usage: "output format, one of " + strings.Join(formats, "|"),
		Value: formats[0],
		Validator: func(value string) error {
			return FlagValidators(value, OneOf(formats...))
		},
	}
	NameSpacedValueChainFromConfigFile(ns, path, flag.Name, &flag.Sources)
	return flag
}

// NameSpacedValueChainFromConfigFile adds namespaced and global config file
// sources for name to chain. Nothing is added without a config file.
func NameSpacedValueChainFromConfigFile(ns string, path string, name string, chain *cli.ValueSourceChain) {
	if path == "" {
		return
	}

	chain.Chain = append(chain.Chain,
		yaml.YAML(ns+"."+name, altsrc.StringSourcer(path)),
		yaml.YAML(name, altsrc.StringSourcer(path)),
	)
}
