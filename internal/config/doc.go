// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for tzdiff's user
// configuration. The configuration is a YAML document located in the user's
// configuration directory, typically:
//   - Linux: $XDG_CONFIG_HOME/tzdiff.yaml or $HOME/.config/tzdiff.yaml
//   - macOS: $HOME/Library/Application Support/tzdiff.yaml
//   - Windows: %APPDATA%/tzdiff.yaml
//
// TZDIFF_CFG_FILE overrides the location.
package config
