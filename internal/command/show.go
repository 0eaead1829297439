// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/tzdiff/internal/meta"
	"github.com/tfctl/tzdiff/internal/output"
)

// showCommandAction renders the interval timeline of one zone version.
func showCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	args := cmd.Args().Slice()
	var ref Ref
	var err error
	switch len(args) {
	case 1:
		ref, err = ParseRef(args[0], "")
	case 2:
		ref = Ref{Zone: args[0], Version: args[1]}
	default:
		err = fmt.Errorf("expected ZONE@VERSION or ZONE VERSION")
	}
	if err != nil {
		return err
	}

	resolver, _, err := NewResolver(ctx, cmd)
	if err != nil {
		return err
	}

	v, err := resolver.Resolve(ctx, ref.Zone, ref.Version)
	if err != nil {
		return err
	}

	opts := OutputOptions(cmd)
	if opts.Titles {
		opts.Header = fmt.Sprintf("%s (%s)", v, v.ReleasedAt())
	}

	return output.Intervals(Writer(cmd), v.Intervals(), opts)
}

func showCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "show",
		Usage:     "offset timeline of one zone version",
		UsageText: "tzdiff show ZONE@VERSION\ntzdiff show ZONE VERSION",
		Action:    showCommandAction,
		Meta:      meta,
	}).Build()
}
