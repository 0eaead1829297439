// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package timeline holds the in-memory transition table of one resolved
// timezone version and the diff engine that compares two of them. Everything
// here is pure and safe for concurrent use once constructed.
package timeline
