// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tfctl/tzdiff/internal/command"
	"github.com/tfctl/tzdiff/internal/config"
	"github.com/tfctl/tzdiff/internal/log"
	"github.com/tfctl/tzdiff/internal/version"
)

var ctx = context.Background()

// boolFlags take no value, so deduplicateFlags must not consume the argument
// following them.
var boolFlags = map[string]bool{
	"c": true, "color": true,
	"h": true, "help": true,
	"p": true, "pick": true,
	"raw": true, "released": true,
	"t": true, "titles": true,
}

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string) []string {
	if len(args) > 1 && args[1] == "completion" {
		return args
	}

	args = processSetOnly(args)
	log.Debugf("args after set processing: args=%v", args)

	return deduplicateFlags(args)
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}

// processSetOnly expands an @set argument into the entries of the config key
// <command>.<set>. Without an explicit @set the "defaults" set, if configured,
// is inserted right after the command. An @word naming no configured set is
// left alone since @VERSION is a valid ref.
func processSetOnly(args []string) []string {
	if len(args) < 2 {
		return args
	}

	for i := 2; i < len(args); i++ {
		a := args[i]
		if !strings.HasPrefix(a, "@") {
			continue
		}
		entries, err := config.GetStringSlice(args[1] + "." + a[1:])
		if err != nil {
			continue
		}
		rest := append([]string{}, args[i+1:]...)
		return injectConfigSet(args[:i], entries, i, rest)
	}

	entries, _ := config.GetStringSlice(args[1]+".defaults", nil)
	return injectConfigSet(args, entries, 2, nil)
}

// injectConfigSet splits entries on whitespace and inserts them into args at
// insertIdx, followed by tail.
func injectConfigSet(args []string, entries []string, insertIdx int, tail []string) []string {
	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	out := make([]string, 0, len(args)+len(expanded)+len(tail))
	out = append(out, args[:insertIdx]...)
	out = append(out, expanded...)
	out = append(out, args[insertIdx:]...)
	return append(out, tail...)
}

// deduplicateFlags drops all but the last occurrence of each flag so that
// arguments typed after an expanded set override it. A flag not known to be
// boolean consumes the following argument as its value unless that argument
// is itself a flag.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 {
		return args
	}

	type occurrence struct {
		name  string
		parts []string
	}

	var items []occurrence
	for i := 2; i < len(args); i++ {
		a := args[i]
		if !strings.HasPrefix(a, "-") || a == "-" {
			items = append(items, occurrence{parts: []string{a}})
			continue
		}

		name := strings.TrimLeft(a, "-")
		if eq := strings.Index(name, "="); eq >= 0 {
			items = append(items, occurrence{name: name[:eq], parts: []string{a}})
			continue
		}

		parts := []string{a}
		if !boolFlags[name] && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			parts = append(parts, args[i+1])
			i++
		}
		items = append(items, occurrence{name: name, parts: parts})
	}

	last := map[string]int{}
	for i, it := range items {
		if it.name != "" {
			last[it.name] = i
		}
	}

	out := append([]string{}, args[:2]...)
	for i, it := range items {
		if it.name != "" && last[it.name] != i {
			continue
		}
		out = append(out, it.parts...)
	}
	return out
}
