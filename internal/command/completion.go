// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/msgidx/msgidx/internal/meta"
)

const bashCompletionScript = `# bash completion for msgidx
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_msgidx()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "diff ls report completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}

    case "$cmd" in
        diff)
            local opts="--collisions -c --explain --format --output-file -o --pick"
            if [[ "$prev" == "--format" ]]; then
                COMPREPLY=( $(compgen -W "json yaml" -- "$cur") )
                return 0
            fi
            ;;
        ls)
            local opts="--attrs -a --color -c --filter -f --output -o --padding --schema --sort -s --titles -t"
            if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
                COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
                return 0
            fi
            ;;
        report)
            local opts="--format"
            if [[ "$prev" == "--format" ]]; then
                COMPREPLY=( $(compgen -W "html text" -- "$cur") )
                return 0
            fi
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts=""
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Otherwise complete index files and directories.
    COMPREPLY=( $(compgen -f -- "$cur") )
    return 0
}

complete -F _msgidx msgidx
`

const zshCompletionScript = `#compdef msgidx

_msgidx() {
  local -a cmds
  cmds=(
    'diff:compare message index files'
    'ls:list the entries of an index or diff file'
    'report:render an index or diff file as HTML or text'
    'completion:generate shell completion script'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'msgidx commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    diff)
      _arguments -C \
        '(-c --collisions)'{-c,--collisions}'[only report collisions]' \
        '--explain[print a readable delta of each difference]' \
        '--format[report format]:format:(json yaml)' \
        '(-o --output-file)'{-o,--output-file}'[report file]:file:_files' \
        '--pick[choose the files to compare interactively]' \
        '*:index:_files'
      ;;
    ls)
      _arguments -C \
        '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs' \
        '(-c --color)'{-c,--color}'[enable colored text]' \
        '(-f --filter)'{-f,--filter}'[filters to apply]:filters' \
        '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)' \
        '--padding[spaces between columns]:padding' \
        '--schema[list available attributes]' \
        '(-s --sort)'{-s,--sort}'[sort attributes]:attrs' \
        '(-t --titles)'{-t,--titles}'[show titles]' \
        '1:document:_files'
      ;;
    report)
      _arguments -C \
        '--format[report format]:format:(html text)' \
        '1:document:_files' \
        '2::report:_files'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _msgidx msgidx
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := writer(cmd)

	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		// Try to detect from SHELL or print usage.
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(w, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(w, bashCompletionScript)
		default:
			fmt.Fprintln(os.Stderr, "usage: msgidx completion [bash|zsh]")
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "msgidx completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
