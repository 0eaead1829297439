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

// versionsCommandAction lists every release, or with a ZONE argument the
// releases carrying that zone.
func versionsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	args := cmd.Args().Slice()
	if len(args) > 1 {
		return fmt.Errorf("expected at most one ZONE")
	}

	resolver, _, err := NewResolver(ctx, cmd)
	if err != nil {
		return err
	}

	opts := OutputOptions(cmd)

	if len(args) == 1 {
		canonical, versions, err := resolver.ZoneVersions(ctx, args[0])
		if err != nil {
			return err
		}
		return output.ZoneVersions(Writer(cmd), args[0], canonical, versions, opts)
	}

	releases, err := resolver.Versions(ctx)
	if err != nil {
		return err
	}
	return output.Releases(Writer(cmd), releases, m.Clock(), opts)
}

func versionsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "versions",
		Usage:     "list tzdb releases",
		UsageText: "tzdiff versions [ZONE]",
		Sortable:  true,
		Action:    versionsCommandAction,
		Meta:      meta,
	}).Build()
}
