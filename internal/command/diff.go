// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/tzdiff/internal/differ"
	"github.com/tfctl/tzdiff/internal/meta"
	"github.com/tfctl/tzdiff/internal/output"
	"github.com/tfctl/tzdiff/internal/tzversion"
)

// DiffRefs turns the diff arguments into a pair of refs. Accepted shapes are
// ZONE@V1 [ZONE@]V2 and ZONE V1 V2.
func DiffRefs(args []string) (Ref, Ref, error) {
	switch len(args) {
	case 2:
		left, err := ParseRef(args[0], "")
		if err != nil {
			return Ref{}, Ref{}, err
		}
		right, err := ParseRef(args[1], left.Zone)
		if err != nil {
			return Ref{}, Ref{}, err
		}
		return left, right, nil
	case 3:
		return Ref{Zone: args[0], Version: args[1]}, Ref{Zone: args[0], Version: args[2]}, nil
	default:
		return Ref{}, Ref{}, fmt.Errorf("expected ZONE@VERSION [ZONE@]VERSION or ZONE VERSION VERSION")
	}
}

func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	resolver, loader, err := NewResolver(ctx, cmd)
	if err != nil {
		return err
	}

	args := cmd.Args().Slice()

	var left, right Ref
	if cmd.Bool("pick") {
		if len(args) != 1 {
			return fmt.Errorf("--pick takes exactly one ZONE")
		}
		if left, right, err = pickRefs(ctx, resolver, args[0]); err != nil {
			return err
		}
	} else if left, right, err = DiffRefs(args); err != nil {
		return err
	}
	log.Debugf("diff %s %s", left, right)

	w := Writer(cmd)

	a, err := resolver.Resolve(ctx, left.Zone, left.Version)
	if err != nil {
		return err
	}
	b, err := resolver.Resolve(ctx, right.Zone, right.Version)
	if err != nil {
		return err
	}

	// --raw compares the documents themselves rather than their timelines.
	if cmd.Bool("raw") {
		ldoc, err := loader.LoadVersionRaw(ctx, a.Canonical, a.Version)
		if err != nil {
			return err
		}
		rdoc, err := loader.LoadVersionRaw(ctx, b.Canonical, b.Version)
		if err != nil {
			return err
		}

		opts := differ.RawOptions{Color: cmd.Bool("color")}
		if !cmd.Bool("released") {
			opts.Ignore = []string{"released_at"}
		}
		_, err = differ.Raw(w, ldoc, rdoc, opts)
		return err
	}

	opts := OutputOptions(cmd)
	if opts.Titles {
		opts.Header = fmt.Sprintf("%s (%s) -> %s (%s)", a, a.ReleasedAt(), b, b.ReleasedAt())
	}

	return output.Changes(w, a.Changes(b), opts)
}

// pickRefs lets the user choose two versions of zone from a terminal list.
func pickRefs(ctx context.Context, resolver *tzversion.Resolver, zone string) (Ref, Ref, error) {
	if !differ.Interactive() {
		return Ref{}, Ref{}, fmt.Errorf("--pick requires an interactive terminal")
	}

	canonical, versions, err := resolver.ZoneVersions(ctx, zone)
	if err != nil {
		return Ref{}, Ref{}, err
	}
	idx, err := resolver.VersionIndex(ctx)
	if err != nil {
		return Ref{}, Ref{}, err
	}

	items := make([]differ.Item, 0, len(versions))
	for _, v := range versions {
		items = append(items, differ.Item{Version: v, ReleasedAt: idx[v].ReleasedAt})
	}

	title := zone
	if canonical != zone {
		title = fmt.Sprintf("%s -> %s", zone, canonical)
	}

	picked, err := differ.Pick(title, items)
	if err != nil {
		return Ref{}, Ref{}, err
	}

	return Ref{Zone: zone, Version: picked[0].Version}, Ref{Zone: zone, Version: picked[1].Version}, nil
}

func diffCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "diff",
		Usage:     "offset changes between two zone versions",
		UsageText: "tzdiff diff ZONE@VERSION [ZONE@]VERSION\ntzdiff diff ZONE VERSION VERSION\ntzdiff diff --pick ZONE",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "pick",
				Aliases: []string{"p"},
				Usage:   "pick the two versions interactively",
			},
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "structural diff of the raw version documents",
			},
			&cli.BoolFlag{
				Name:  "released",
				Usage: "include released_at in --raw diffs",
			},
		},
		Action: diffCommandAction,
		Meta:   meta,
	}).Build()
}
