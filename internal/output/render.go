// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tfctl/tzdiff/internal/filters"
	"github.com/tfctl/tzdiff/internal/timeline"
	"github.com/tfctl/tzdiff/internal/tzversion"
)

// ReleasedAtLayout is the layout of released_at values in the dataset.
const ReleasedAtLayout = "2006-01-02 15:04:05 -0700"

// NoChanges is printed in text mode when a diff is empty.
const NoChanges = "No changes."

var changeColumns = []Column{
	{Key: "ini", Title: "FROM"},
	{Key: "fin", Title: "UNTIL"},
	{Key: "off", Title: "SHIFT"},
}

// Changes emits a diff result.
func Changes(w io.Writer, changes []timeline.Change, opts Options) error {
	fs := filters.BuildFilters(opts.Filter)

	doc := make([]timeline.Change, 0, len(changes))
	rows := make([]map[string]interface{}, 0, len(changes))
	for _, c := range changes {
		row := map[string]interface{}{
			"ini": c.IniStr,
			"fin": c.FinStr,
			"off": c.OffStr,
		}
		if !filters.Match(row, fs) {
			continue
		}
		doc = append(doc, c)
		rows = append(rows, row)
	}

	if len(changes) == 0 && opts.Footer == "" {
		opts.Footer = NoChanges
	}
	return Spit(w, doc, rows, changeColumns, opts)
}

// interval is the emitted form of a timeline.Interval.
type interval struct {
	Ini       timeline.Instant `json:"ini" yaml:"ini"`
	Fin       timeline.Instant `json:"fin" yaml:"fin"`
	Offset    int64            `json:"offset" yaml:"offset"`
	IniStr    string           `json:"ini_str" yaml:"ini_str"`
	FinStr    string           `json:"fin_str" yaml:"fin_str"`
	OffsetStr string           `json:"offset_str" yaml:"offset_str"`
}

var intervalColumns = []Column{
	{Key: "ini", Title: "FROM"},
	{Key: "fin", Title: "UNTIL"},
	{Key: "offset", Title: "UTC OFFSET"},
}

// Intervals emits a zone's offset history.
func Intervals(w io.Writer, intervals []timeline.Interval, opts Options) error {
	fs := filters.BuildFilters(opts.Filter)

	doc := make([]interval, 0, len(intervals))
	rows := make([]map[string]interface{}, 0, len(intervals))
	for _, i := range intervals {
		v := interval{
			Ini:       i.Ini,
			Fin:       i.Fin,
			Offset:    i.Offset,
			IniStr:    timeline.FormatInstant(i.Ini),
			FinStr:    timeline.FormatInstant(i.Fin),
			OffsetStr: timeline.FormatOffset(i.Offset),
		}
		row := map[string]interface{}{
			"ini":    v.IniStr,
			"fin":    v.FinStr,
			"offset": v.OffsetStr,
		}
		if !filters.Match(row, fs) {
			continue
		}
		doc = append(doc, v)
		rows = append(rows, row)
	}

	return Spit(w, doc, rows, intervalColumns, opts)
}

var releaseColumns = []Column{
	{Key: "version", Title: "VERSION"},
	{Key: "released_at", Title: "RELEASED"},
	{Key: "age", Title: "AGE"},
	{Key: "zones", Title: "ZONES"},
}

// Releases emits the version index. The age column is relative to now.
func Releases(w io.Writer, releases []tzversion.Release, now time.Time, opts Options) error {
	fs := filters.BuildFilters(opts.Filter)

	doc := make([]tzversion.Release, 0, len(releases))
	rows := make([]map[string]interface{}, 0, len(releases))
	for _, r := range releases {
		age := ""
		if at, err := time.Parse(ReleasedAtLayout, r.ReleasedAt); err == nil {
			age = humanize.RelTime(at, now, "ago", "from now")
		}
		row := map[string]interface{}{
			"version":     r.Version,
			"released_at": r.ReleasedAt,
			"age":         age,
			"zones":       r.Zones,
		}
		if !filters.Match(row, fs) {
			continue
		}
		doc = append(doc, r)
		rows = append(rows, row)
	}

	return Spit(w, doc, rows, releaseColumns, opts)
}

// ZoneVersions emits the versions carried by a zone.
func ZoneVersions(w io.Writer, name, canonical string, versions []string, opts Options) error {
	versions, rows := column(versions, "version", opts.Filter)

	doc := struct {
		Name      string   `json:"name" yaml:"name"`
		Canonical string   `json:"canonical" yaml:"canonical"`
		Versions  []string `json:"versions" yaml:"versions"`
	}{name, canonical, versions}

	if opts.Header == "" && canonical != name {
		opts.Header = name + " -> " + canonical
	}
	return Spit(w, doc, rows, []Column{{Key: "version", Title: "VERSION"}}, opts)
}

// Zones emits the zone names present in a version.
func Zones(w io.Writer, version string, zones []string, opts Options) error {
	zones, rows := column(zones, "zone", opts.Filter)

	doc := struct {
		Version string   `json:"version" yaml:"version"`
		Zones   []string `json:"zones" yaml:"zones"`
	}{version, zones}

	return Spit(w, doc, rows, []Column{{Key: "zone", Title: "ZONE"}}, opts)
}

// column turns a list into single-column rows, dropping values the filter
// spec rejects. It returns the kept values alongside their rows.
func column(values []string, key, spec string) ([]string, []map[string]interface{}) {
	fs := filters.BuildFilters(spec)

	kept := make([]string, 0, len(values))
	rows := make([]map[string]interface{}, 0, len(values))
	for _, v := range values {
		row := map[string]interface{}{key: v}
		if !filters.Match(row, fs) {
			continue
		}
		kept = append(kept, v)
		rows = append(rows, row)
	}
	return kept, rows
}
