// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package timeline

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnordered is returned by NewTable when entry start instants are not
// strictly increasing.
var ErrUnordered = errors.New("transition entries are not strictly increasing")

// Entry is one breakpoint: from Start onwards, Offset seconds east of UTC are
// in effect until the next entry's Start.
type Entry struct {
	Start  int64 `json:"start"`
	Offset int64 `json:"offset"`
}

// Table is the immutable offset history of one timezone version. Instants
// before the first entry use the initial offset, and the last entry extends
// to +∞. A table without entries is constant at its initial offset.
type Table struct {
	initial int64
	entries []Entry
}

// Interval is one maximal span of a table where a single offset applies.
type Interval struct {
	Ini    Instant `json:"ini" yaml:"ini"`
	Fin    Instant `json:"fin" yaml:"fin"`
	Offset int64   `json:"offset" yaml:"offset"`
}

// NewTable validates entries and builds a Table. initial is the offset in
// effect before the first entry (or for all time if entries is empty). The
// entries slice is copied.
func NewTable(initial int64, entries []Entry) (*Table, error) {
	for i := 1; i < len(entries); i++ {
		if entries[i].Start <= entries[i-1].Start {
			return nil, fmt.Errorf("%w: entry %d starts at %d, entry %d at %d",
				ErrUnordered, i-1, entries[i-1].Start, i, entries[i].Start)
		}
	}

	t := &Table{initial: initial}
	if len(entries) > 0 {
		t.entries = append([]Entry(nil), entries...)
	}
	return t, nil
}

// Len returns the number of breakpoints.
func (t *Table) Len() int {
	return len(t.entries)
}

// Initial returns the offset in effect before the first breakpoint.
func (t *Table) Initial() int64 {
	return t.initial
}

// Entries returns a copy of the table's entries.
func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Breakpoints returns the start instants in increasing order.
func (t *Table) Breakpoints() []int64 {
	points := make([]int64, len(t.entries))
	for i, e := range t.entries {
		points[i] = e.Start
	}
	return points
}

// EffectiveOffsetAt returns the offset in effect at the epoch second sec.
func (t *Table) EffectiveOffsetAt(sec int64) int64 {
	// Index of the first entry starting after sec.
	n := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].Start > sec
	})
	if n == 0 {
		return t.initial
	}
	return t.entries[n-1].Offset
}

// offsetFrom returns the offset in effect on the right-open interval that
// starts at i. -∞ reads the initial offset and +∞ reads the last one.
func (t *Table) offsetFrom(i Instant) int64 {
	switch i.kind {
	case NegInf:
		return t.initial
	case PosInf:
		if len(t.entries) == 0 {
			return t.initial
		}
		return t.entries[len(t.entries)-1].Offset
	}
	return t.EffectiveOffsetAt(i.sec)
}

// Intervals expands the table into its spans, merging breakpoints that do not
// change the offset.
func (t *Table) Intervals() []Interval {
	intervals := []Interval{{Ini: NegativeInfinity(), Fin: PositiveInfinity(), Offset: t.initial}}
	for _, e := range t.entries {
		last := &intervals[len(intervals)-1]
		if e.Offset == last.Offset {
			continue
		}
		last.Fin = At(e.Start)
		intervals = append(intervals, Interval{Ini: At(e.Start), Fin: PositiveInfinity(), Offset: e.Offset})
	}
	return intervals
}
