// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tzversion

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/apex/log"
	"golang.org/x/sync/singleflight"

	"github.com/tfctl/tzdiff/internal/timeline"
	"github.com/tfctl/tzdiff/internal/tzdata"
)

// Loader is the dataset access a Resolver needs. *tzdata.Loader satisfies it.
type Loader interface {
	LoadVersionIndex(ctx context.Context) (tzdata.VersionIndex, error)
	LoadTimezoneIndex(ctx context.Context) (tzdata.TimezoneIndex, error)
	LoadVersionData(ctx context.Context, name, version string) (*tzdata.VersionData, error)
}

// Resolver turns (name, version) pairs into TZVersions. It is safe for
// concurrent use; each index and each (canonical, version) table is loaded at
// most once while loads succeed. Failed loads are not cached. A shared load
// ignores cancellation of the caller that started it, since other callers may
// be waiting on the result.
type Resolver struct {
	loader Loader
	group  singleflight.Group

	mu       sync.RWMutex
	versions tzdata.VersionIndex
	zones    tzdata.TimezoneIndex
	tables   map[string]*loaded
}

// loaded is an immutable cache entry shared by every TZVersion built from it.
type loaded struct {
	data  *tzdata.VersionData
	table *timeline.Table
}

func NewResolver(loader Loader) *Resolver {
	return &Resolver{
		loader: loader,
		tables: map[string]*loaded{},
	}
}

// Resolve looks name up in the timezone index, follows an alias one hop and
// loads the canonical zone's table for version.
func (r *Resolver) Resolve(ctx context.Context, name, version string) (*TZVersion, error) {
	canonical, rec, err := r.Canonical(ctx, name)
	if err != nil {
		return nil, err
	}

	if !rec.HasVersion(version) {
		return nil, &UnknownVersionError{Version: version, Name: name}
	}

	entry, err := r.load(ctx, canonical, version)
	if err != nil {
		return nil, err
	}

	return &TZVersion{
		Name:      name,
		Canonical: canonical,
		Version:   version,
		data:      entry.data,
		table:     entry.table,
	}, nil
}

// Canonical returns the zone that owns name's data together with its record.
func (r *Resolver) Canonical(ctx context.Context, name string) (string, tzdata.TimezoneRecord, error) {
	zones, err := r.TimezoneIndex(ctx)
	if err != nil {
		return "", tzdata.TimezoneRecord{}, err
	}

	rec, ok := zones[name]
	if !ok {
		return "", tzdata.TimezoneRecord{}, &UnknownTimezoneError{Name: name}
	}
	if !rec.IsAlias() {
		return name, rec, nil
	}

	canonical := rec.Target()
	target, ok := zones[canonical]
	switch {
	case !ok:
		return "", tzdata.TimezoneRecord{}, fmt.Errorf("%w: %s is an alias of unknown zone %s", ErrInvariant, name, canonical)
	case target.IsAlias():
		return "", tzdata.TimezoneRecord{}, fmt.Errorf("%w: %s is an alias of alias %s", ErrInvariant, name, canonical)
	}

	log.Debugf("alias %s -> %s", name, canonical)
	return canonical, target, nil
}

// VersionIndex returns the cached version index, loading it on first use.
func (r *Resolver) VersionIndex(ctx context.Context) (tzdata.VersionIndex, error) {
	r.mu.RLock()
	idx := r.versions
	r.mu.RUnlock()
	if idx != nil {
		return idx, nil
	}

	v, err, _ := r.group.Do("index:versions", func() (any, error) {
		idx, err := r.loader.LoadVersionIndex(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.versions = idx
		r.mu.Unlock()
		return idx, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(tzdata.VersionIndex), nil
}

// TimezoneIndex returns the cached timezone index, loading it on first use.
func (r *Resolver) TimezoneIndex(ctx context.Context) (tzdata.TimezoneIndex, error) {
	r.mu.RLock()
	idx := r.zones
	r.mu.RUnlock()
	if idx != nil {
		return idx, nil
	}

	v, err, _ := r.group.Do("index:timezones", func() (any, error) {
		idx, err := r.loader.LoadTimezoneIndex(context.WithoutCancel(ctx))
		if errors.Is(err, tzdata.ErrInvalidRecord) {
			return nil, fmt.Errorf("%w: %w", ErrInvariant, err)
		}
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.zones = idx
		r.mu.Unlock()
		return idx, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(tzdata.TimezoneIndex), nil
}

func (r *Resolver) load(ctx context.Context, canonical, version string) (*loaded, error) {
	key := canonical + "@" + version

	r.mu.RLock()
	entry, ok := r.tables[key]
	r.mu.RUnlock()
	if ok {
		return entry, nil
	}

	v, err, shared := r.group.Do("table:"+key, func() (any, error) {
		data, err := r.loader.LoadVersionData(context.WithoutCancel(ctx), canonical, version)
		if err != nil {
			return nil, err
		}

		table, err := data.Table()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvariant, key, err)
		}

		entry := &loaded{data: data, table: table}
		r.mu.Lock()
		r.tables[key] = entry
		r.mu.Unlock()
		return entry, nil
	})
	if err != nil {
		return nil, err
	}
	log.Debugf("table %s: breakpoints=%d shared=%v", key, v.(*loaded).table.Len(), shared)

	return v.(*loaded), nil
}

// Release is one row of the version listing.
type Release struct {
	Version    string `json:"version" yaml:"version"`
	ReleasedAt string `json:"released_at" yaml:"released_at"`
	Zones      int    `json:"zones" yaml:"zones"`
}

// Versions lists every release in the version index ordered by label.
func (r *Resolver) Versions(ctx context.Context) ([]Release, error) {
	idx, err := r.VersionIndex(ctx)
	if err != nil {
		return nil, err
	}

	releases := make([]Release, 0, len(idx))
	for version, rec := range idx {
		releases = append(releases, Release{
			Version:    version,
			ReleasedAt: rec.ReleasedAt,
			Zones:      len(rec.Timezones),
		})
	}
	slices.SortFunc(releases, func(a, b Release) int {
		return compareVersions(a.Version, b.Version)
	})

	return releases, nil
}

// ZoneVersions returns the canonical zone behind name and the versions it
// carries, ordered by label.
func (r *Resolver) ZoneVersions(ctx context.Context, name string) (string, []string, error) {
	canonical, rec, err := r.Canonical(ctx, name)
	if err != nil {
		return "", nil, err
	}

	versions := rec.Versions()
	slices.SortFunc(versions, compareVersions)
	return canonical, versions, nil
}

// Zones lists the timezone names present in version, ordered by name.
func (r *Resolver) Zones(ctx context.Context, version string) ([]string, error) {
	idx, err := r.VersionIndex(ctx)
	if err != nil {
		return nil, err
	}

	rec, ok := idx[version]
	if !ok {
		return nil, &UnknownVersionError{Version: version}
	}

	zones := slices.Clone(rec.Timezones)
	slices.Sort(zones)
	return zones, nil
}
