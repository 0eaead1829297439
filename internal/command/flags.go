// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/tzdiff/internal/source"
)

func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (text, json, yaml)",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to the rows",
		},
		&cli.IntFlag{
			Name:  "padding",
			Usage: "padding between text columns",
			Value: 2,
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}

	if len(params) > 0 && params[0] == "sortable" {
		flags = append(flags, &cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of columns to sort the results by",
		})
	}

	return
}

// NewSourceFlag constructs the "source" flag holding the dataset location.
// params[0] is the command namespace and params[1] the config file; when both
// are given the config file is consulted after the environment.
func NewSourceFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:  "source",
		Usage: "dataset location: directory, file://, http(s):// or s3:// URL",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("TZDIFF_SOURCE"),
		),
		Value: source.DefaultLocation,
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NewS3Flags constructs the flags tuning s3:// locations, each falling back to
// the s3 section of the config file.
func NewS3Flags(cfgFile string) []cli.Flag {
	region := &cli.StringFlag{
		Name:    "region",
		Usage:   "AWS region of an s3:// source",
		Sources: cli.NewValueSourceChain(cli.EnvVar("AWS_REGION")),
	}
	profile := &cli.StringFlag{
		Name:    "profile",
		Usage:   "AWS shared config profile of an s3:// source",
		Sources: cli.NewValueSourceChain(cli.EnvVar("AWS_PROFILE")),
	}
	endpoint := &cli.StringFlag{
		Name:    "endpoint",
		Usage:   "S3-compatible endpoint of an s3:// source",
		Sources: cli.NewValueSourceChain(cli.EnvVar("TZDIFF_S3_ENDPOINT")),
	}

	flags := []cli.Flag{}
	for _, f := range []*cli.StringFlag{region, profile, endpoint} {
		if cfgFile != "" {
			f.Sources.Chain = append(f.Sources.Chain, yaml.YAML("s3."+f.Name, altsrc.StringSourcer(cfgFile)))
		}
		flags = append(flags, f)
	}
	return flags
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	if path == "" {
		return flag
	}

	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
