// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tzdiff/internal/meta"
)

// CommandBuilder constructs a cli.Command for the dataset subcommands (diff,
// show, versions, zones) using a consistent pattern. The builder wires
// metadata, the source and s3 flags, the global output flags and validators.
type CommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Sortable  bool
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (cb *CommandBuilder) Build() *cli.Command {
	var globals []cli.Flag
	if cb.Sortable {
		globals = NewGlobalFlags("sortable")
	} else {
		globals = NewGlobalFlags()
	}

	flags := append([]cli.Flag{}, cb.Flags...)
	flags = append(flags, NewSourceFlag(cb.Name, cb.Meta.Config.Source))
	flags = append(flags, NewS3Flags(cb.Meta.Config.Source)...)
	flags = append(flags, globals...)

	return &cli.Command{
		Name:      cb.Name,
		Usage:     cb.Usage,
		UsageText: cb.UsageText,
		Metadata: map[string]any{
			"meta": cb.Meta,
		},
		Flags: flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: cb.Action,
	}
}
