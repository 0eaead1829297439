// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tzversion

import (
	"cmp"
	"strconv"

	"github.com/tfctl/tzdiff/internal/timeline"
	"github.com/tfctl/tzdiff/internal/tzdata"
)

// TZVersion is a resolved (name, version) pair. Name is as requested and
// Canonical is the zone owning the data. The underlying data is shared with
// the Resolver cache and must not be modified.
type TZVersion struct {
	Name      string
	Canonical string
	Version   string

	data  *tzdata.VersionData
	table *timeline.Table
}

// ReleasedAt returns the release timestamp recorded for the version.
func (v *TZVersion) ReleasedAt() string {
	return v.data.ReleasedAt
}

// VersionData returns the decoded version document.
func (v *TZVersion) VersionData() *tzdata.VersionData {
	return v.data
}

func (v *TZVersion) Table() *timeline.Table {
	return v.table
}

// Changes returns the intervals where other's offset differs from v's. Each
// Change.Off is other's offset minus v's.
func (v *TZVersion) Changes(other *TZVersion) []timeline.Change {
	return timeline.Diff(v.table, other.table)
}

// Intervals returns v's offset history as maximal constant spans.
func (v *TZVersion) Intervals() []timeline.Interval {
	return v.table.Intervals()
}

func (v *TZVersion) String() string {
	return v.Name + "@" + v.Version
}

// compareVersions orders tzdb labels ("2016j" < "2018c") by year then by the
// letter suffix, falling back to plain string order for odd labels.
func compareVersions(a, b string) int {
	ay, as, aok := splitVersion(a)
	by, bs, bok := splitVersion(b)
	if !aok || !bok {
		return cmp.Compare(a, b)
	}
	if c := cmp.Compare(ay, by); c != 0 {
		return c
	}
	if c := cmp.Compare(len(as), len(bs)); c != 0 {
		return c
	}
	return cmp.Compare(as, bs)
}

func splitVersion(v string) (int, string, bool) {
	if len(v) < 4 {
		return 0, "", false
	}
	year, err := strconv.Atoi(v[:4])
	if err != nil {
		return 0, "", false
	}
	return year, v[4:], true
}
