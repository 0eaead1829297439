// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package tzdata

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/tzdiff/internal/timeline"
)

func ptr(v int64) *int64 { return &v }

func TestTimezoneRecord_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    TimezoneRecord
		wantErr bool
	}{
		{name: "owned", raw: `{"versions":["2013c","2018e"]}`, want: Owned("2013c", "2018e")},
		{name: "owned empty", raw: `{"versions":[]}`, want: Owned()},
		{name: "alias", raw: `{"link_to":"America/Santiago"}`, want: AliasOf("America/Santiago")},
		{name: "both", raw: `{"versions":["2018e"],"link_to":"Etc/UTC"}`, wantErr: true},
		{name: "neither", raw: `{}`, wantErr: true},
		{name: "empty alias", raw: `{"link_to":""}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got TimezoneRecord
			err := json.Unmarshal([]byte(tt.raw), &got)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRecord)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.IsAlias(), got.IsAlias())
			assert.Equal(t, tt.want.Target(), got.Target())
			assert.ElementsMatch(t, tt.want.Versions(), got.Versions())
		})
	}
}

func TestTimezoneIndex_InvalidRecordFailsDecode(t *testing.T) {
	var idx TimezoneIndex
	err := json.Unmarshal([]byte(`{"A/B":{"versions":["1"]},"C/D":{"versions":["1"],"link_to":"A/B"}}`), &idx)
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestTimezoneRecord_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(TimezoneIndex{
		"Zulu":    AliasOf("Etc/UTC"),
		"Etc/UTC": Owned("2013c"),
		"Empty/X": {},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Zulu":{"link_to":"Etc/UTC"},"Etc/UTC":{"versions":["2013c"]},"Empty/X":{"versions":[]}}`, string(b))
}

func TestTimezoneRecord_Accessors(t *testing.T) {
	owned := Owned("2016c", "2016d")
	assert.False(t, owned.IsAlias())
	assert.True(t, owned.HasVersion("2016d"))
	assert.False(t, owned.HasVersion("2018e"))

	alias := AliasOf("America/Santiago")
	assert.True(t, alias.IsAlias())
	assert.Equal(t, "America/Santiago", alias.Target())
	assert.False(t, alias.HasVersion("2016d"))

	versions := owned.Versions()
	versions[0] = "mutated"
	assert.True(t, owned.HasVersion("2016c"))
}

func TestVersionData_Table(t *testing.T) {
	tests := []struct {
		name        string
		data        VersionData
		wantInitial int64
		wantEntries []timeline.Entry
		wantErr     error
	}{
		{
			name: "prev offset drives left extension",
			data: VersionData{Transitions: []Transition{
				{UTCTimestamp: -1830383032, UTCPrevOffset: ptr(-968), UTCOffset: 0},
			}},
			wantInitial: -968,
			wantEntries: []timeline.Entry{{Start: -1830383032, Offset: 0}},
		},
		{
			name: "missing prev offset falls back to first offset",
			data: VersionData{Transitions: []Transition{
				{UTCTimestamp: 100, UTCOffset: 3600},
				{UTCTimestamp: 200, UTCOffset: 0},
			}},
			wantInitial: 3600,
			wantEntries: []timeline.Entry{{Start: 100, Offset: 3600}, {Start: 200, Offset: 0}},
		},
		{
			name:        "fixed offset zone",
			data:        VersionData{UTCOffset: ptr(-18000)},
			wantInitial: -18000,
			wantEntries: []timeline.Entry{},
		},
		{
			name:        "empty defaults to zero",
			data:        VersionData{},
			wantInitial: 0,
			wantEntries: []timeline.Entry{},
		},
		{
			name: "unordered",
			data: VersionData{Transitions: []Transition{
				{UTCTimestamp: 1000, UTCOffset: 3600},
				{UTCTimestamp: 500, UTCOffset: 0},
			}},
			wantErr: timeline.ErrUnordered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := tt.data.Table()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantInitial, table.Initial())
			assert.Equal(t, len(tt.wantEntries), table.Len())
			if len(tt.wantEntries) > 0 {
				assert.Equal(t, tt.wantEntries, table.Entries())
			}
		})
	}
}
