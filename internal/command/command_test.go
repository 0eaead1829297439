// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/tzdiff/internal/config"
	"github.com/tfctl/tzdiff/internal/tzversion"
)

// setup isolates the test from the user's environment and points the config
// at testdata/tzdiff.yaml.
func setup(t *testing.T) {
	t.Helper()

	cfg, err := filepath.Abs(filepath.Join("testdata", "tzdiff.yaml"))
	require.NoError(t, err)
	t.Setenv("TZDIFF_CFG_FILE", cfg)
	t.Setenv("TZDIFF_CACHE_DIR", t.TempDir())

	// An empty variable still counts as set for the flag chain.
	for _, env := range []string{"TZDIFF_SOURCE", "AWS_REGION", "AWS_PROFILE", "TZDIFF_S3_ENDPOINT"} {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}

	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = config.Type{} })
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	args = append([]string{"tzdiff"}, args...)
	app, err := InitApp(context.Background(), args)
	require.NoError(t, err)

	var buf bytes.Buffer
	app.Writer = &buf
	app.ErrWriter = io.Discard

	err = app.Run(context.Background(), args)
	return buf.String(), err
}

func decode(t *testing.T, out string) []map[string]interface{} {
	t.Helper()

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &rows), out)
	return rows
}

func TestParseRef(t *testing.T) {
	tests := []struct {
		name        string
		arg         string
		defaultZone string
		want        Ref
		wantErr     bool
	}{
		{name: "full", arg: "America/Caracas@2016d", want: Ref{Zone: "America/Caracas", Version: "2016d"}},
		{name: "bare version", arg: "2016d", defaultZone: "America/Caracas", want: Ref{Zone: "America/Caracas", Version: "2016d"}},
		{name: "leading at", arg: "@2016d", defaultZone: "UTC", want: Ref{Zone: "UTC", Version: "2016d"}},
		{name: "zone wins over default", arg: "UTC@2018e", defaultZone: "Zulu", want: Ref{Zone: "UTC", Version: "2018e"}},
		{name: "last at splits", arg: "a@b@2018e", want: Ref{Zone: "a@b", Version: "2018e"}},
		{name: "no zone", arg: "2016d", wantErr: true},
		{name: "no version", arg: "UTC@", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRef(tt.arg, tt.defaultZone)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiffRefs(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantLeft  string
		wantRight string
		wantErr   bool
	}{
		{name: "two refs", args: []string{"UTC@2013c", "Etc/UTC@2018e"}, wantLeft: "UTC@2013c", wantRight: "Etc/UTC@2018e"},
		{name: "inherited zone", args: []string{"UTC@2013c", "2018e"}, wantLeft: "UTC@2013c", wantRight: "UTC@2018e"},
		{name: "zone and versions", args: []string{"UTC", "2013c", "2018e"}, wantLeft: "UTC@2013c", wantRight: "UTC@2018e"},
		{name: "bare first", args: []string{"2013c", "2018e"}, wantErr: true},
		{name: "one arg", args: []string{"UTC@2013c"}, wantErr: true},
		{name: "no args", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, right, err := DiffRefs(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLeft, left.String())
			assert.Equal(t, tt.wantRight, right.String())
		})
	}
}

func TestOutputValidator(t *testing.T) {
	for _, f := range []string{"text", "json", "yaml"} {
		assert.NoError(t, OutputValidator(f), f)
	}
	assert.Error(t, OutputValidator("raw"))
	assert.Error(t, OutputValidator(42))
}

func TestDiffCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []map[string]interface{}
	}{
		{
			name: "caracas 2016c to 2016d",
			args: []string{"America/Caracas@2016c", "2016d"},
			want: []map[string]interface{}{
				{"ini": float64(1462086000), "fin": "∞", "off": float64(1800)},
			},
		},
		{
			name: "caracas inverted",
			args: []string{"America/Caracas", "2016d", "2016c"},
			want: []map[string]interface{}{
				{"ini": float64(1462086000), "fin": "∞", "off": float64(-1800)},
			},
		},
		{
			name: "abidjan against utc",
			args: []string{"Africa/Abidjan@2018e", "Etc/UTC@2018e"},
			want: []map[string]interface{}{
				{"ini": "-∞", "fin": float64(-1830383032), "off": float64(968)},
			},
		},
		{
			name: "santiago against punta arenas",
			args: []string{"America/Santiago@2016j", "America/Punta_Arenas@2017a"},
			want: []map[string]interface{}{
				{"ini": float64(1494730800), "fin": float64(1502596800), "off": float64(3600)},
			},
		},
		{
			name: "fixed offset",
			args: []string{"Etc/GMT+5@2018e", "UTC@2018e"},
			want: []map[string]interface{}{
				{"ini": "-∞", "fin": "∞", "off": float64(18000)},
			},
		},
		{
			name: "utc across versions",
			args: []string{"UTC@2013c", "2018e"},
			want: []map[string]interface{}{},
		},
		{
			name: "alias",
			args: []string{"Chile/Continental", "2014i", "2014j"},
			want: []map[string]interface{}{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup(t)

			out, err := run(t, append([]string{"diff", "-o", "json"}, tt.args...)...)
			require.NoError(t, err)

			rows := decode(t, out)
			require.Len(t, rows, len(tt.want))
			for i, want := range tt.want {
				for k, v := range want {
					assert.Equal(t, v, rows[i][k], "row %d key %s", i, k)
				}
			}
		})
	}
}

func TestDiffCommandText(t *testing.T) {
	setup(t)

	out, err := run(t, "diff", "America/Santiago@2016j", "America/Punta_Arenas@2017a")
	require.NoError(t, err)
	assert.Contains(t, out, "2017-05-14 03:00:00 UTC")
	assert.Contains(t, out, "2017-08-13 04:00:00 UTC")
	assert.Contains(t, out, "+01:00:00")

	out, err = run(t, "diff", "UTC@2013c", "2018e")
	require.NoError(t, err)
	assert.Contains(t, out, "No changes.")
}

func TestDiffCommandErrors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(*testing.T, error)
	}{
		{
			name: "unknown timezone",
			args: []string{"Nowhere/Zone@2018e", "2018e"},
			check: func(t *testing.T, err error) {
				var tzErr *tzversion.UnknownTimezoneError
				require.True(t, errors.As(err, &tzErr))
				assert.Equal(t, "Timezone Nowhere/Zone not found.", err.Error())
			},
		},
		{
			name: "unknown version",
			args: []string{"Chile/Continental@2016j", "1999z"},
			check: func(t *testing.T, err error) {
				var vErr *tzversion.UnknownVersionError
				require.True(t, errors.As(err, &vErr))
				assert.Equal(t, "Version 1999z not found for Chile/Continental.", err.Error())
			},
		},
		{
			name: "alias chain",
			args: []string{"Test/Chain@2018e", "2018e"},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, tzversion.ErrInvariant)
			},
		},
		{
			name: "bad arguments",
			args: []string{"2018e"},
			check: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup(t)

			_, err := run(t, append([]string{"diff"}, tt.args...)...)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestDiffCommandRaw(t *testing.T) {
	setup(t)

	out, err := run(t, "diff", "--raw", "Africa/Abidjan@2013c", "2018e")
	require.NoError(t, err)
	assert.Contains(t, out, "The versions are identical.")

	out, err = run(t, "diff", "--raw", "--released", "Africa/Abidjan@2013c", "2018e")
	require.NoError(t, err)
	assert.Contains(t, out, "released_at")
	assert.NotContains(t, out, "The versions are identical.")
}

func TestDiffCommandRawResolvesRefs(t *testing.T) {
	setup(t)

	out, err := run(t, "diff", "--raw", "America/Santiago@2018e", "Chile/Continental@2018e")
	require.NoError(t, err)
	assert.Contains(t, out, "The versions are identical.")

	_, err = run(t, "diff", "--raw", "America/Santiago@2018e", "1800a")
	require.Error(t, err)
	var uv *tzversion.UnknownVersionError
	require.True(t, errors.As(err, &uv))
	assert.Equal(t, "Version 1800a not found for America/Santiago.", err.Error())

	_, err = run(t, "diff", "--raw", "Nowhere/Atlantis@2018e", "2018e")
	var uz *tzversion.UnknownTimezoneError
	assert.True(t, errors.As(err, &uz))
}

func TestDiffCommandPickNeedsTerminal(t *testing.T) {
	setup(t)

	_, err := run(t, "diff", "--pick", "America/Caracas")
	assert.Error(t, err)

	_, err = run(t, "diff", "--pick", "America/Caracas", "2016c")
	assert.Error(t, err)
}

func TestShowCommand(t *testing.T) {
	setup(t)

	out, err := run(t, "show", "-o", "json", "Etc/GMT+5@2018e")
	require.NoError(t, err)
	rows := decode(t, out)
	require.Len(t, rows, 1)
	assert.Equal(t, "-∞", rows[0]["ini"])
	assert.Equal(t, "∞", rows[0]["fin"])
	assert.Equal(t, float64(-18000), rows[0]["offset"])
	assert.Equal(t, "-05:00:00", rows[0]["offset_str"])

	out, err = run(t, "show", "--titles", "America/Caracas", "2016d")
	require.NoError(t, err)
	assert.Contains(t, out, "America/Caracas@2016d")
	assert.Contains(t, out, "2016-05-01 07:00:00 UTC")
}

func TestVersionsCommand(t *testing.T) {
	setup(t)

	out, err := run(t, "versions", "-o", "json")
	require.NoError(t, err)
	rows := decode(t, out)
	require.Len(t, rows, 11)
	assert.Equal(t, "2013c", rows[0]["version"])
	assert.Equal(t, "2018e", rows[10]["version"])
	assert.Equal(t, float64(11), rows[10]["zones"])

	out, err = run(t, "versions", "-o", "json", "Chile/Continental")
	require.NoError(t, err)
	var zv struct {
		Name      string   `json:"name"`
		Canonical string   `json:"canonical"`
		Versions  []string `json:"versions"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &zv))
	assert.Equal(t, "America/Santiago", zv.Canonical)
	assert.Equal(t, []string{"2013c", "2014i", "2014j", "2015a", "2016a", "2016j", "2018c", "2018e"}, zv.Versions)

	out, err = run(t, "versions", "Zulu")
	require.NoError(t, err)
	assert.Contains(t, out, "Zulu -> Etc/UTC")
}

func TestZonesCommand(t *testing.T) {
	setup(t)

	out, err := run(t, "zones", "-o", "json", "2016d")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"2016d","zones":["America/Caracas"]}`, out)

	out, err = run(t, "zones", "-o", "json", "--filter", "zone^Etc/", "2018e")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"2018e","zones":["Etc/GMT+5","Etc/UTC"]}`, out)

	_, err = run(t, "zones", "1999z")
	var vErr *tzversion.UnknownVersionError
	assert.True(t, errors.As(err, &vErr))

	_, err = run(t, "zones")
	assert.Error(t, err)
}

func TestSourceFlagChain(t *testing.T) {
	setup(t)

	abs, err := filepath.Abs(filepath.Join("..", "tzversion", "testdata", "tzdb"))
	require.NoError(t, err)

	// Environment beats the config file.
	t.Setenv("TZDIFF_SOURCE", filepath.Join(t.TempDir(), "missing"))
	_, err = run(t, "zones", "2016d")
	assert.Error(t, err)

	// The flag beats both.
	out, err := run(t, "zones", "--source", abs, "-o", "json", "2016d")
	require.NoError(t, err)
	assert.Contains(t, out, "America/Caracas")
}

func TestInvalidOutputFormat(t *testing.T) {
	setup(t)

	_, err := run(t, "zones", "-o", "xml", "2016d")
	assert.Error(t, err)

	_, err = run(t, "zones", "--padding=-1", "2016d")
	assert.Error(t, err)
}

func TestCompletionCommand(t *testing.T) {
	setup(t)

	out, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "complete -F _tzdiff tzdiff")

	out, err = run(t, "completion", "zsh")
	require.NoError(t, err)
	assert.Contains(t, out, "#compdef tzdiff")
}
