// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// docsgen renders a markdown page per tzdiff subcommand from the CLI
// definition itself. Usage: go run ./tools/docsgen <docs-dir>
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tzdiff/internal/command"
)

type Flag struct {
	ID          string
	Syntax      string
	Description string
	Default     string
	Env         string
}

type TemplateData struct {
	ID      string
	IDUpper string
	Short   string
	Usage   string
	Flags   []Flag
	Date    string
	Version string
}

const pageTemplate = `# tzdiff {{ .ID }}

{{ .Short }}

## SYNOPSIS

` + "```" + `
{{ .Usage }}
` + "```" + `
{{ if .Flags }}
## OPTIONS
{{ range .Flags }}
` + "`{{ .Syntax }}`" + `
: {{ .Description }}{{ if .Default }} (default: {{ .Default }}){{ end }}{{ if .Env }} [{{ .Env }}]{{ end }}
{{ end }}{{ end }}
---
tzdiff {{ .Version }}, generated {{ .Date }}
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen <docs-dir>")
		os.Exit(1)
	}
	docs := os.Args[1]

	app, err := command.InitApp(context.Background(), []string{"tzdiff"})
	if err != nil {
		panic(err)
	}

	tmpl := template.Must(template.New("page").Parse(pageTemplate))

	folder := filepath.Join(docs, "commands")
	if err := os.MkdirAll(folder, 0755); err != nil {
		panic(err)
	}

	for _, sub := range app.Commands {
		metadata := TemplateData{
			ID:      sub.Name,
			IDUpper: strings.ToUpper(sub.Name),
			Short:   sub.Usage,
			Usage:   sub.UsageText,
			Flags:   flags(sub),
			Date:    time.Now().Format("January 2, 2006"),
			Version: getVersion(),
		}

		path := filepath.Join(folder, sub.Name+".md")
		fmt.Println("Generating", path)

		file, err := os.Create(path)
		if err != nil {
			panic(err)
		}
		if err := tmpl.Execute(file, metadata); err != nil {
			panic(err)
		}
		file.Close()
	}
}

// flags describes a command's flags in their --help order.
func flags(cmd *cli.Command) []Flag {
	var result []Flag
	for _, f := range cmd.Flags {
		names := f.Names()
		syntax := make([]string, 0, len(names))
		for _, n := range names {
			if len(n) == 1 {
				syntax = append(syntax, "-"+n)
			} else {
				syntax = append(syntax, "--"+n)
			}
		}

		flag := Flag{ID: names[0], Syntax: strings.Join(syntax, ", ")}
		if dg, ok := f.(cli.DocGenerationFlag); ok {
			flag.Description = dg.GetUsage()
			if dg.TakesValue() {
				flag.Syntax += " " + strings.ToUpper(names[0])
				flag.Default = dg.GetValue()
			}
			flag.Env = strings.Join(dg.GetEnvVars(), ", ")
		}
		result = append(result, flag)
	}
	return result
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
