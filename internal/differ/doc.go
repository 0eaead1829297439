// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ holds the structural JSON diff of two raw version documents
// and the interactive picker used to choose two versions of a zone.
package differ
