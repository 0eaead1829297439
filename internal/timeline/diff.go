// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package timeline

import (
	"sort"
)

// Change is one maximal interval where two tables disagree. Off is the
// offset of the second table minus the offset of the first, i.e. how far a
// wall clock moves when migrating from the first table to the second.
type Change struct {
	Ini    Instant `json:"ini" yaml:"ini"`
	Fin    Instant `json:"fin" yaml:"fin"`
	Off    int64   `json:"off" yaml:"off"`
	IniStr string  `json:"ini_str" yaml:"ini_str"`
	FinStr string  `json:"fin_str" yaml:"fin_str"`
	OffStr string  `json:"off_str" yaml:"off_str"`
}

// Diff returns the ordered intervals on which a and b have different
// effective offsets. Intervals are right-open, non-empty, never carry a zero
// Off, and touching intervals never share an Off. Diff(b, a) yields the same
// boundaries with every Off negated.
func Diff(a, b *Table) []Change {
	points := mergeBreakpoints(a.Breakpoints(), b.Breakpoints())

	bounds := make([]Instant, 0, len(points)+2)
	bounds = append(bounds, NegativeInfinity())
	for _, p := range points {
		bounds = append(bounds, At(p))
	}
	bounds = append(bounds, PositiveInfinity())

	changes := []Change{}
	for i := 0; i+1 < len(bounds); i++ {
		ini, fin := bounds[i], bounds[i+1]

		off := b.offsetFrom(ini) - a.offsetFrom(ini)
		if off == 0 {
			continue
		}

		if n := len(changes); n > 0 && changes[n-1].Fin.Equal(ini) && changes[n-1].Off == off {
			changes[n-1].Fin = fin
			continue
		}
		changes = append(changes, Change{Ini: ini, Fin: fin, Off: off})
	}

	for i := range changes {
		changes[i].IniStr = FormatInstant(changes[i].Ini)
		changes[i].FinStr = FormatInstant(changes[i].Fin)
		changes[i].OffStr = FormatOffset(changes[i].Off)
	}

	return changes
}

// mergeBreakpoints returns the sorted, deduplicated union of two increasing
// breakpoint lists.
func mergeBreakpoints(a, b []int64) []int64 {
	merged := make([]int64, 0, len(a)+len(b))
	merged = append(merged, a...)
	merged = append(merged, b...)
	sort.Slice(merged, func(i, j int) bool { return merged[i] < merged[j] })

	out := merged[:0]
	for _, p := range merged {
		if len(out) == 0 || p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}
