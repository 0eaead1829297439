// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tzdiff/internal/meta"
)

const bashCompletionScript = `# bash completion for tzdiff
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_tzdiff()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "diff show versions zones completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--color -c --filter -f --output -o --padding --titles -t --source --region --profile --endpoint"

    case "$cmd" in
        diff)
            local opts="$common --pick -p --raw --released"
            ;;
        versions|zones)
            local opts="$common --sort -s"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
        return 0
    fi

    if [[ "$prev" == "--source" ]]; then
        COMPREPLY=( $(compgen -o dirnames -- "$cur") )
        return 0
    fi

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    fi
    return 0
}

complete -F _tzdiff tzdiff
`

const zshCompletionScript = `#compdef tzdiff

_tzdiff() {
  local -a cmds
  cmds=(
    'diff:offset changes between two zone versions'
    'show:offset timeline of one zone version'
    'versions:list tzdb releases'
    'zones:list the zones of a tzdb release'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)'
  '--padding[padding between text columns]:padding'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--source[dataset location]:source:_files -/'
  '--region[AWS region]:region'
  '--profile[AWS profile]:profile'
  '--endpoint[S3 endpoint]:endpoint'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'tzdiff commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    diff)
      _arguments -C \
        $common \
        '(-p --pick)'{-p,--pick}'[pick the two versions interactively]' \
        '--raw[structural diff of the raw version documents]' \
        '--released[include released_at in --raw diffs]' \
        '*:ref'
      ;;
    show)
      _arguments -C $common '*:ref'
      ;;
    versions)
      _arguments -C \
        $common \
        '(-s --sort)'{-s,--sort}'[sort columns]:columns' \
        '::zone'
      ;;
    zones)
      _arguments -C \
        $common \
        '(-s --sort)'{-s,--sort}'[sort columns]:columns' \
        ':version'
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
compdef _tzdiff tzdiff
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := Writer(cmd)
	if w == nil {
		w = os.Stdout
	}

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
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(w, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(w, bashCompletionScript)
		default:
			return fmt.Errorf("usage: tzdiff completion [bash|zsh]")
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "tzdiff completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
