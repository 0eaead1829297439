// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/tzdiff/internal/cacheutil"
	"github.com/tfctl/tzdiff/internal/config"
	"github.com/tfctl/tzdiff/internal/meta"
	"github.com/tfctl/tzdiff/internal/output"
	"github.com/tfctl/tzdiff/internal/source"
	"github.com/tfctl/tzdiff/internal/tzdata"
	"github.com/tfctl/tzdiff/internal/tzversion"
)

// Ref is a parsed ZONE@VERSION argument.
type Ref struct {
	Zone    string
	Version string
}

func (r Ref) String() string {
	return r.Zone + "@" + r.Version
}

// ParseRef splits a ZONE@VERSION argument. A bare VERSION takes defaultZone,
// which must then be non-empty.
func ParseRef(arg, defaultZone string) (Ref, error) {
	zone, version := defaultZone, arg
	if i := strings.LastIndex(arg, "@"); i >= 0 {
		zone, version = arg[:i], arg[i+1:]
		if zone == "" {
			zone = defaultZone
		}
	}

	switch {
	case zone == "":
		return Ref{}, fmt.Errorf("%q: expected ZONE@VERSION", arg)
	case version == "":
		return Ref{}, fmt.Errorf("%q: missing version", arg)
	}
	return Ref{Zone: zone, Version: version}, nil
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// NewLoader resolves the --source location, and the s3 and http settings from
// flags and config, into a dataset Loader.
func NewLoader(ctx context.Context, cmd *cli.Command) (*tzdata.Loader, error) {
	retries, _ := config.GetInt("http.retries", 3)
	timeout, _ := config.GetInt("http.timeout", 30)
	clean, _ := config.GetInt("cache.clean", cacheutil.DefaultTTLHours)
	accessKey, _ := config.GetString("s3.access_key", "")
	secretKey, _ := config.GetString("s3.secret_key", "")

	location := cmd.String("source")
	log.Debugf("source: %s retries=%d timeout=%ds clean=%dh", location, retries, timeout, clean)

	src, err := source.New(ctx, location,
		source.WithRetries(retries),
		source.WithTimeout(time.Duration(timeout)*time.Second),
		source.WithCacheTTL(clean),
		source.WithRegion(cmd.String("region")),
		source.WithProfile(cmd.String("profile")),
		source.WithEndpoint(cmd.String("endpoint")),
		source.WithStaticCredentials(accessKey, secretKey),
	)
	if err != nil {
		return nil, err
	}

	return tzdata.NewLoader(src), nil
}

// NewResolver is NewLoader wrapped in a Resolver.
func NewResolver(ctx context.Context, cmd *cli.Command) (*tzversion.Resolver, *tzdata.Loader, error) {
	loader, err := NewLoader(ctx, cmd)
	if err != nil {
		return nil, nil, err
	}
	return tzversion.NewResolver(loader), loader, nil
}

// OutputOptions collects the rendering flags.
func OutputOptions(cmd *cli.Command) output.Options {
	return output.Options{
		Format:  cmd.String("output"),
		Color:   cmd.Bool("color"),
		Titles:  cmd.Bool("titles"),
		Padding: cmd.Int("padding"),
		Sort:    cmd.String("sort"),
		Filter:  cmd.String("filter"),
	}
}

// Writer returns the root command's writer.
func Writer(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return nil
}
