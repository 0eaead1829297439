// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package tzdata decodes the published timezone dataset: the version index,
// the timezone index and the per-zone documents holding each version's
// transitions.
package tzdata
