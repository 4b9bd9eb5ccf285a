// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/msgidx/msgidx/internal/cacheutil"
	"github.com/msgidx/msgidx/internal/command"
	"github.com/msgidx/msgidx/internal/config"
	"github.com/msgidx/msgidx/internal/log"
	"github.com/msgidx/msgidx/internal/version"
)

var ctx = context.Background()

// boolFlags never take a separate value, so a following token is positional.
var boolFlags = map[string]bool{
	"-c":           true,
	"--collisions": true,
	"--color":      true,
	"--explain":    true,
	"--pick":       true,
	"--schema":     true,
	"-t":           true,
	"--titles":     true,
}

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs expands @set arguments and drops repeated flags.
func processCommandArgs(args []string) []string {
	if len(args) > 1 && args[1] == "completion" {
		return args
	}

	args = processSetOnly(args)
	log.Debugf("args after set processing: args=%v", args)

	return deduplicateFlags(args)
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	// Pre-create cache directory when caching is enabled.
	if _, ok, err := cacheutil.EnsureBaseDir(); err != nil && ok {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("cache ensure err: err=%v", err)
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}

// processSetOnly expands an @set argument into the arguments configured under
// <command>.<set>, at the position of the @set argument.
func processSetOnly(args []string) []string {
	if len(args) < 3 {
		return args
	}

	idx := 2
	set := "defaults"
	removeIdx := -1
	for i, a := range args[idx:] {
		if strings.HasPrefix(a, "@") {
			set = a[1:]
			removeIdx = idx + i
			break
		}
	}
	if removeIdx != -1 {
		args = append(args[:removeIdx], args[removeIdx+1:]...)
		setArgs, _ := config.GetStringSlice(args[1] + "." + set)
		for _, arg := range setArgs {
			parts := strings.Fields(arg)
			args = append(args[:removeIdx], append(parts, args[removeIdx:]...)...)
			removeIdx += len(parts)
		}
	}
	return args
}

// deduplicateFlags keeps only the last occurrence of each flag so that
// explicit arguments override those expanded from a set. A flag not written
// as name=value and not boolean takes the following non-flag token as its
// value.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 {
		return args
	}

	type unit struct {
		name   string
		tokens []string
	}

	var units []unit
	rest := args[2:]
	for i := 0; i < len(rest); i++ {
		tok := rest[i]
		if !strings.HasPrefix(tok, "-") || tok == "-" {
			units = append(units, unit{tokens: []string{tok}})
			continue
		}

		name, _, hasValue := strings.Cut(tok, "=")
		u := unit{name: name, tokens: []string{tok}}
		if !hasValue && !boolFlags[name] && i+1 < len(rest) && !strings.HasPrefix(rest[i+1], "-") {
			u.tokens = append(u.tokens, rest[i+1])
			i++
		}
		units = append(units, u)
	}

	last := map[string]int{}
	for i, u := range units {
		if u.name != "" {
			last[u.name] = i
		}
	}

	result := append([]string{}, args[:2]...)
	for i, u := range units {
		if u.name != "" && last[u.name] != i {
			continue
		}
		result = append(result, u.tokens...)
	}
	return result
}
