// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output renders change lists, interval lists and index listings as a
// text table, JSON or YAML.
package output
