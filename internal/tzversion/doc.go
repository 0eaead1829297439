// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package tzversion resolves (timezone, version) pairs against the dataset
// indices, following aliases one hop, and exposes each resolved pair as a
// TZVersion whose Changes against another TZVersion are the intervals where
// their UTC offsets disagree.
//
// A Resolver caches both indices and every loaded table for its lifetime.
// The table cache has no eviction.
package tzversion
