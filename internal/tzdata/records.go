// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tzdata

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/tfctl/tzdiff/internal/timeline"
)

// ErrInvalidRecord reports a timezone index record that is neither a version
// set nor an alias.
var ErrInvalidRecord = errors.New("invalid timezone record")

// VersionRecord is one entry of versions/00-index.json.
type VersionRecord struct {
	ReleasedAt string   `json:"released_at" yaml:"released_at"`
	Timezones  []string `json:"timezones" yaml:"timezones"`
}

// VersionIndex maps a version label to its record.
type VersionIndex map[string]VersionRecord

// TimezoneRecord is one entry of timezones/00-index.json. It either owns a
// set of versions or is an alias of another zone, never both.
type TimezoneRecord struct {
	versions []string
	linkTo   string
}

// Owned returns a record holding its own data for versions.
func Owned(versions ...string) TimezoneRecord {
	return TimezoneRecord{versions: slices.Clone(versions)}
}

// AliasOf returns a record sharing the data of canonical.
func AliasOf(canonical string) TimezoneRecord {
	return TimezoneRecord{linkTo: canonical}
}

// IsAlias reports whether the record points at another zone.
func (r TimezoneRecord) IsAlias() bool {
	return r.linkTo != ""
}

// Target returns the canonical name of an alias, or "" for an owned record.
func (r TimezoneRecord) Target() string {
	return r.linkTo
}

// Versions returns a copy of an owned record's versions.
func (r TimezoneRecord) Versions() []string {
	return slices.Clone(r.versions)
}

// HasVersion reports whether an owned record lists version.
func (r TimezoneRecord) HasVersion(version string) bool {
	return slices.Contains(r.versions, version)
}

func (r *TimezoneRecord) UnmarshalJSON(b []byte) error {
	var raw struct {
		Versions *[]string `json:"versions"`
		LinkTo   *string   `json:"link_to"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	switch {
	case raw.Versions != nil && raw.LinkTo != nil:
		return fmt.Errorf("%w: both versions and link_to present", ErrInvalidRecord)
	case raw.LinkTo != nil:
		if *raw.LinkTo == "" {
			return fmt.Errorf("%w: empty link_to", ErrInvalidRecord)
		}
		*r = AliasOf(*raw.LinkTo)
	case raw.Versions != nil:
		*r = Owned(*raw.Versions...)
	default:
		return fmt.Errorf("%w: neither versions nor link_to present", ErrInvalidRecord)
	}

	return nil
}

func (r TimezoneRecord) MarshalJSON() ([]byte, error) {
	if r.IsAlias() {
		return json.Marshal(map[string]string{"link_to": r.linkTo})
	}
	versions := r.versions
	if versions == nil {
		versions = []string{}
	}
	return json.Marshal(map[string][]string{"versions": versions})
}

// TimezoneIndex maps a timezone name to its record.
type TimezoneIndex map[string]TimezoneRecord

// Transition is one raw offset change as published.
type Transition struct {
	UTCTimestamp  int64  `json:"utc_timestamp" yaml:"utc_timestamp"`
	UTCPrevOffset *int64 `json:"utc_prev_offset,omitempty" yaml:"utc_prev_offset,omitempty"`
	UTCOffset     int64  `json:"utc_offset" yaml:"utc_offset"`
}

// VersionData is one version of a zone document.
type VersionData struct {
	ReleasedAt  string       `json:"released_at" yaml:"released_at"`
	UTCOffset   *int64       `json:"utc_offset,omitempty" yaml:"utc_offset,omitempty"`
	Transitions []Transition `json:"transitions" yaml:"transitions"`
}

// Table converts the raw transitions into a timeline.Table. The offset before
// the first transition is its utc_prev_offset, falling back to its utc_offset.
// Without transitions the table is constant at utc_offset, or 0 when absent.
func (d *VersionData) Table() (*timeline.Table, error) {
	var initial int64
	switch {
	case len(d.Transitions) > 0 && d.Transitions[0].UTCPrevOffset != nil:
		initial = *d.Transitions[0].UTCPrevOffset
	case len(d.Transitions) > 0:
		initial = d.Transitions[0].UTCOffset
	case d.UTCOffset != nil:
		initial = *d.UTCOffset
	}

	entries := make([]timeline.Entry, len(d.Transitions))
	for i, tr := range d.Transitions {
		entries[i] = timeline.Entry{Start: tr.UTCTimestamp, Offset: tr.UTCOffset}
	}

	return timeline.NewTable(initial, entries)
}
