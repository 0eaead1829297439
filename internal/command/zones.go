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

func zonesCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	args := cmd.Args().Slice()
	if len(args) != 1 {
		return fmt.Errorf("expected one VERSION")
	}

	resolver, _, err := NewResolver(ctx, cmd)
	if err != nil {
		return err
	}

	zones, err := resolver.Zones(ctx, args[0])
	if err != nil {
		return err
	}

	return output.Zones(Writer(cmd), args[0], zones, OutputOptions(cmd))
}

func zonesCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "zones",
		Usage:     "list the zones of a tzdb release",
		UsageText: "tzdiff zones VERSION",
		Sortable:  true,
		Action:    zonesCommandAction,
		Meta:      meta,
	}).Build()
}
