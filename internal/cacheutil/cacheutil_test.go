// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cacheutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDir(t *testing.T) {
	customDir := t.TempDir()
	t.Setenv("TZDIFF_CACHE_DIR", customDir)

	result, ok := Dir()
	assert.True(t, ok)
	assert.Equal(t, customDir, result)

	t.Setenv("TZDIFF_CACHE_DIR", "")
	if result, ok := Dir(); ok {
		assert.Equal(t, "tzdiff", filepath.Base(result))
	}
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"", true},
		{"1", true},
		{"true", true},
		{"0", false},
		{"false", false},
	}

	for _, tt := range tests {
		t.Run("value="+tt.value, func(t *testing.T) {
			t.Setenv("TZDIFF_CACHE", tt.value)
			assert.Equal(t, tt.expected, Enabled())
		})
	}
}

func TestWriteRead(t *testing.T) {
	t.Setenv("TZDIFF_CACHE_DIR", t.TempDir())
	t.Setenv("TZDIFF_CACHE", "")

	subdirs := []string{"remote", "example.test"}
	_, ok := Read(subdirs, "versions/00-index.json")
	assert.False(t, ok)

	require.NoError(t, Write(subdirs, "versions/00-index.json", []byte("{}\n")))

	entry, ok := Read(subdirs, "versions/00-index.json")
	require.True(t, ok)
	assert.Equal(t, []byte("{}"), entry.Data)
	assert.Equal(t, encodeKey("versions/00-index.json"), entry.EncodedKey)
	assert.Equal(t, "versions/00-index.json", entry.Key)
}

func TestEncodeKey(t *testing.T) {
	tests := []struct {
		key    string
		suffix string
	}{
		{"versions/00-index.json", "-00-index.json"},
		{"timezones/America/Santiago.json", "-Santiago.json"},
		{"https://tz.example.test/data/timezones/Etc/GMT+5.json?v=1", "-GMT_5.json"},
		{"tzdb/", "-tzdb"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			name := encodeKey(tt.key)
			assert.True(t, strings.HasSuffix(name, tt.suffix), name)
			assert.Len(t, name, 16+len(tt.suffix))
			assert.Equal(t, name, encodeKey(tt.key))
		})
	}

	assert.NotEqual(t, encodeKey("a/Santiago.json"), encodeKey("b/Santiago.json"))
	assert.Len(t, encodeKey("/"), 16)
}

func TestWrite_Disabled(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TZDIFF_CACHE_DIR", dir)
	t.Setenv("TZDIFF_CACHE", "0")

	require.NoError(t, Write([]string{"x"}, "k", []byte("v")))
	_, err := os.Stat(filepath.Join(dir, "x"))
	assert.True(t, os.IsNotExist(err))
}

func TestReadThrough(t *testing.T) {
	t.Setenv("TZDIFF_CACHE_DIR", t.TempDir())
	t.Setenv("TZDIFF_CACHE", "")

	calls := 0
	fill := func() ([]byte, error) {
		calls++
		return []byte(`{"name":"Etc/UTC"}`), nil
	}

	for range 3 {
		data, err := ReadThrough([]string{"s3"}, "timezones/Etc/UTC.json", fill)
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Etc/UTC"}`, string(data))
	}
	assert.Equal(t, 1, calls)

	boom := errors.New("boom")
	_, err := ReadThrough([]string{"s3"}, "other", func() ([]byte, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	_, ok := Read([]string{"s3"}, "other")
	assert.False(t, ok)
}

func TestPurge(t *testing.T) {
	t.Setenv("TZDIFF_CACHE_DIR", t.TempDir())
	t.Setenv("TZDIFF_CACHE", "")

	require.NoError(t, Write([]string{"remote"}, "old", []byte("1")))
	require.NoError(t, Write([]string{"remote"}, "new", []byte("2")))
	require.NoError(t, Write([]string{"s3"}, "old", []byte("3")))

	stale := time.Now().Add(-48 * time.Hour)
	for _, sub := range []string{"remote", "s3"} {
		p, ok := EntryPath([]string{sub}, "old")
		require.True(t, ok)
		require.NoError(t, os.Chtimes(p, stale, stale))
	}

	require.NoError(t, Purge([]string{"remote"}, 24))

	_, ok := EntryPath([]string{"remote"}, "old")
	assert.False(t, ok)
	_, ok = EntryPath([]string{"remote"}, "new")
	assert.True(t, ok)
	_, ok = EntryPath([]string{"s3"}, "old")
	assert.True(t, ok, "purge is scoped to its subdirs")

	assert.NoError(t, Purge([]string{"remote"}, 0))
}

func TestPurge_MissingDir(t *testing.T) {
	t.Setenv("TZDIFF_CACHE_DIR", filepath.Join(t.TempDir(), "never-created"))
	assert.NoError(t, Purge([]string{"remote"}, 1))
}
