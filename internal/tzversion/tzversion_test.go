// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package tzversion

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/tzdiff/internal/source"
	"github.com/tfctl/tzdiff/internal/timeline"
	"github.com/tfctl/tzdiff/internal/tzdata"
)

func fixtureResolver(t *testing.T) *Resolver {
	t.Helper()
	src, err := source.NewLocal("testdata/tzdb")
	require.NoError(t, err)
	return NewResolver(tzdata.NewLoader(src))
}

func resolve(t *testing.T, r *Resolver, name, version string) *TZVersion {
	t.Helper()
	v, err := r.Resolve(context.Background(), name, version)
	require.NoError(t, err)
	return v
}

func TestResolve_ReleasedAt(t *testing.T) {
	r := fixtureResolver(t)
	v := resolve(t, r, "America/Santiago", "2018e")

	assert.Equal(t, "2018-05-01 23:42:51 -0700", v.ReleasedAt())
	assert.Equal(t, "America/Santiago@2018e", v.String())
	assert.Equal(t, "America/Santiago", v.Canonical)
}

func TestResolve_Alias(t *testing.T) {
	r := fixtureResolver(t)
	alias := resolve(t, r, "Chile/Continental", "2016j")
	canonical := resolve(t, r, "America/Santiago", "2016j")

	assert.Equal(t, "Chile/Continental", alias.Name)
	assert.Equal(t, "America/Santiago", alias.Canonical)
	assert.Same(t, canonical.VersionData(), alias.VersionData())
	assert.Equal(t, canonical.Table().Entries(), alias.Table().Entries())
	assert.Empty(t, alias.Changes(canonical))
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name    string
		zone    string
		version string
		check   func(t *testing.T, err error)
	}{
		{
			name: "unknown version echoes requested name", zone: "America/Santiago", version: "1800a",
			check: func(t *testing.T, err error) {
				var uv *UnknownVersionError
				require.ErrorAs(t, err, &uv)
				assert.Equal(t, "Version 1800a not found for America/Santiago.", err.Error())
			},
		},
		{
			name: "unknown version through alias", zone: "Chile/Continental", version: "1800a",
			check: func(t *testing.T, err error) {
				assert.Equal(t, "Version 1800a not found for Chile/Continental.", err.Error())
			},
		},
		{
			name: "unknown zone", zone: "America/Santiagors", version: "2018e",
			check: func(t *testing.T, err error) {
				var uz *UnknownTimezoneError
				require.ErrorAs(t, err, &uz)
				assert.Equal(t, "America/Santiagors", uz.Name)
				var uv *UnknownVersionError
				assert.False(t, errors.As(err, &uv))
			},
		},
		{
			name: "alias chain", zone: "Test/Chain", version: "2018e",
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrInvariant) },
		},
		{
			name: "dangling alias", zone: "Test/Dangling", version: "2018e",
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrInvariant) },
		},
		{
			name: "unordered transitions", zone: "Test/Unsorted", version: "2018e",
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrInvariant)
				assert.ErrorIs(t, err, timeline.ErrUnordered)
			},
		},
		{
			name: "missing document", zone: "Test/NoData", version: "2018e",
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, tzdata.ErrFetch)
				assert.ErrorIs(t, err, source.ErrNotFound)
			},
		},
	}

	r := fixtureResolver(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(context.Background(), tt.zone, tt.version)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestChanges_KnownScenarios(t *testing.T) {
	tests := []struct {
		name string
		a, b [2]string
		want []timeline.Change
	}{
		{
			name: "caracas 2016c to 2016d",
			a:    [2]string{"America/Caracas", "2016c"},
			b:    [2]string{"America/Caracas", "2016d"},
			want: []timeline.Change{{
				Ini: timeline.At(1462086000), Fin: timeline.PositiveInfinity(), Off: 1800,
				IniStr: "2016-05-01 07:00:00 UTC", FinStr: "∞", OffStr: "+00:30:00",
			}},
		},
		{
			name: "abidjan vs utc",
			a:    [2]string{"Africa/Abidjan", "2018e"},
			b:    [2]string{"UTC", "2018e"},
			want: []timeline.Change{{
				Ini: timeline.NegativeInfinity(), Fin: timeline.At(-1830383032), Off: 968,
				IniStr: "-∞", FinStr: "1912-01-01 00:16:08 UTC", OffStr: "+00:16:08",
			}},
		},
		{
			name: "utc vs abidjan",
			a:    [2]string{"UTC", "2018e"},
			b:    [2]string{"Africa/Abidjan", "2018e"},
			want: []timeline.Change{{
				Ini: timeline.NegativeInfinity(), Fin: timeline.At(-1830383032), Off: -968,
				IniStr: "-∞", FinStr: "1912-01-01 00:16:08 UTC", OffStr: "-00:16:08",
			}},
		},
		{
			name: "utc across versions",
			a:    [2]string{"UTC", "2013c"},
			b:    [2]string{"UTC", "2018e"},
			want: []timeline.Change{},
		},
		{
			name: "santiago 2014i to 2014j",
			a:    [2]string{"America/Santiago", "2014i"},
			b:    [2]string{"America/Santiago", "2014j"},
			want: []timeline.Change{},
		},
		{
			name: "santiago vs punta arenas",
			a:    [2]string{"America/Santiago", "2016j"},
			b:    [2]string{"America/Punta_Arenas", "2017a"},
			want: []timeline.Change{{
				Ini: timeline.At(1494730800), Fin: timeline.At(1502596800), Off: 3600,
				IniStr: "2017-05-14 03:00:00 UTC", FinStr: "2017-08-13 04:00:00 UTC", OffStr: "+01:00:00",
			}},
		},
		{
			name: "fixed offset vs utc",
			a:    [2]string{"Etc/GMT+5", "2018e"},
			b:    [2]string{"Zulu", "2018e"},
			want: []timeline.Change{{
				Ini: timeline.NegativeInfinity(), Fin: timeline.PositiveInfinity(), Off: 18000,
				IniStr: "-∞", FinStr: "∞", OffStr: "+05:00:00",
			}},
		},
	}

	r := fixtureResolver(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := resolve(t, r, tt.a[0], tt.a[1])
			b := resolve(t, r, tt.b[0], tt.b[1])
			assert.Equal(t, tt.want, a.Changes(b))
		})
	}
}

func TestChanges_Inversion(t *testing.T) {
	r := fixtureResolver(t)
	versions := []string{"2013c", "2015a", "2016a", "2018e"}

	for _, va := range versions {
		for _, vb := range versions {
			t.Run(va+"-"+vb, func(t *testing.T) {
				a := resolve(t, r, "America/Santiago", va)
				b := resolve(t, r, "America/Santiago", vb)

				ab, ba := a.Changes(b), b.Changes(a)
				require.Len(t, ba, len(ab))
				for i := range ab {
					assert.Equal(t, ab[i].Ini, ba[i].Ini)
					assert.Equal(t, ab[i].Fin, ba[i].Fin)
					assert.Equal(t, ab[i].Off, -ba[i].Off)
				}
				if va == vb {
					assert.Empty(t, ab)
				} else {
					assert.NotEmpty(t, ab)
				}
			})
		}
	}
}

func TestIntervals(t *testing.T) {
	v := resolve(t, fixtureResolver(t), "Africa/Abidjan", "2018e")
	assert.Equal(t, []timeline.Interval{
		{Ini: timeline.NegativeInfinity(), Fin: timeline.At(-1830383032), Offset: -968},
		{Ini: timeline.At(-1830383032), Fin: timeline.PositiveInfinity(), Offset: 0},
	}, v.Intervals())
}

func TestListings(t *testing.T) {
	ctx := context.Background()
	r := fixtureResolver(t)

	releases, err := r.Versions(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, releases)
	assert.Equal(t, "2013c", releases[0].Version)
	last := releases[len(releases)-1]
	assert.Equal(t, "2018e", last.Version)
	assert.Equal(t, "2018-05-01 23:42:51 -0700", last.ReleasedAt)

	canonical, versions, err := r.ZoneVersions(ctx, "UTC")
	require.NoError(t, err)
	assert.Equal(t, "Etc/UTC", canonical)
	assert.Equal(t, []string{"2013c", "2018e"}, versions)

	zones, err := r.Zones(ctx, "2016d")
	require.NoError(t, err)
	assert.Equal(t, []string{"America/Caracas"}, zones)

	_, err = r.Zones(ctx, "1800a")
	var uv *UnknownVersionError
	require.ErrorAs(t, err, &uv)
	assert.Equal(t, "Version 1800a not found.", err.Error())

	_, _, err = r.ZoneVersions(ctx, "Nowhere/Zone")
	var uz *UnknownTimezoneError
	assert.ErrorAs(t, err, &uz)
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2016j", "2018c", -1},
		{"2018c", "2016j", 1},
		{"2014i", "2014j", -1},
		{"2014z", "2014za", -1},
		{"2018e", "2018e", 0},
		{"abc", "2018e", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, compareVersions(tt.a, tt.b))
		})
	}
}

// countingLoader wraps a Loader, counting calls and optionally failing.
type countingLoader struct {
	Loader
	versionData atomic.Int32
	zoneIndex   atomic.Int32
	fail        atomic.Bool
}

func (c *countingLoader) LoadTimezoneIndex(ctx context.Context) (tzdata.TimezoneIndex, error) {
	c.zoneIndex.Add(1)
	if c.fail.Load() {
		return nil, fmt.Errorf("%w: offline", tzdata.ErrFetch)
	}
	return c.Loader.LoadTimezoneIndex(ctx)
}

func (c *countingLoader) LoadVersionData(ctx context.Context, name, version string) (*tzdata.VersionData, error) {
	c.versionData.Add(1)
	return c.Loader.LoadVersionData(ctx, name, version)
}

func TestResolver_Caches(t *testing.T) {
	src, err := source.NewLocal("testdata/tzdb")
	require.NoError(t, err)
	loader := &countingLoader{Loader: tzdata.NewLoader(src)}
	r := NewResolver(loader)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Resolve(context.Background(), "Chile/Continental", "2018e")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	_, err = r.Resolve(context.Background(), "America/Santiago", "2018e")
	require.NoError(t, err)

	assert.LessOrEqual(t, loader.zoneIndex.Load(), int32(16))
	assert.GreaterOrEqual(t, loader.zoneIndex.Load(), int32(1))
	assert.LessOrEqual(t, loader.versionData.Load(), int32(16))

	before := loader.versionData.Load()
	for range 3 {
		_, err := r.Resolve(context.Background(), "America/Santiago", "2018e")
		require.NoError(t, err)
	}
	assert.Equal(t, before, loader.versionData.Load())
}

func TestResolver_FailedIndexLoadIsRetried(t *testing.T) {
	src, err := source.NewLocal("testdata/tzdb")
	require.NoError(t, err)
	loader := &countingLoader{Loader: tzdata.NewLoader(src)}
	loader.fail.Store(true)
	r := NewResolver(loader)

	_, err = r.Resolve(context.Background(), "Etc/UTC", "2018e")
	assert.ErrorIs(t, err, tzdata.ErrFetch)

	loader.fail.Store(false)
	_, err = r.Resolve(context.Background(), "Etc/UTC", "2018e")
	assert.NoError(t, err)
	assert.Equal(t, int32(2), loader.zoneIndex.Load())
}

// gatedLoader holds LoadTimezoneIndex until release closes, then fails if the
// context it was handed is done.
type gatedLoader struct {
	Loader
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedLoader) LoadTimezoneIndex(ctx context.Context) (tzdata.TimezoneIndex, error) {
	g.once.Do(func() { close(g.started) })
	<-g.release
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return g.Loader.LoadTimezoneIndex(ctx)
}

func TestResolver_SharedLoadSurvivesCallerCancel(t *testing.T) {
	src, err := source.NewLocal("testdata/tzdb")
	require.NoError(t, err)
	loader := &gatedLoader{
		Loader:  tzdata.NewLoader(src),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	r := NewResolver(loader)

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := r.Resolve(ctx, "Etc/UTC", "2018e")
		first <- err
	}()

	<-loader.started
	second := make(chan error, 1)
	go func() {
		_, err := r.Resolve(context.Background(), "UTC", "2018e")
		second <- err
	}()

	cancel()
	close(loader.release)

	assert.NoError(t, <-second)
	assert.NotErrorIs(t, <-first, context.Canceled)
}

func TestResolver_InvalidIndexRecord(t *testing.T) {
	r := NewResolver(stubLoader{err: fmt.Errorf("timezones/00-index.json: %w", tzdata.ErrInvalidRecord)})
	_, err := r.Resolve(context.Background(), "Etc/UTC", "2018e")
	assert.ErrorIs(t, err, ErrInvariant)
}

func TestResolver_BadLocation(t *testing.T) {
	_, err := source.NewLocal("testdata/does-not-exist")
	assert.ErrorIs(t, err, source.ErrLocation)
}

type stubLoader struct{ err error }

func (s stubLoader) LoadVersionIndex(context.Context) (tzdata.VersionIndex, error) {
	return nil, s.err
}

func (s stubLoader) LoadTimezoneIndex(context.Context) (tzdata.TimezoneIndex, error) {
	return nil, s.err
}

func (s stubLoader) LoadVersionData(context.Context, string, string) (*tzdata.VersionData, error) {
	return nil, s.err
}
