// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cacheutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDir(t *testing.T) {
	customDir := t.TempDir()
	t.Setenv("MSGIDX_CACHE_DIR", customDir)

	got, ok := Dir()
	assert.True(t, ok)
	assert.Equal(t, customDir, got)
}

func TestDir_FallsBackToUserCacheDir(t *testing.T) {
	t.Setenv("MSGIDX_CACHE_DIR", "")

	got, ok := Dir()
	if ok {
		assert.True(t, filepath.IsAbs(got))
		assert.Equal(t, "msgidx", filepath.Base(got))
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
		{"yes", true},
		{"0", false},
		{"false", false},
	}

	for _, tt := range tests {
		t.Run("value="+tt.value, func(t *testing.T) {
			t.Setenv("MSGIDX_CACHE", tt.value)
			assert.Equal(t, tt.expected, Enabled())
		})
	}
}

func TestEnsureBaseDir(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		t.Setenv("MSGIDX_CACHE", "0")
		base, ok, err := EnsureBaseDir()
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, base)
	})

	t.Run("creates directory", func(t *testing.T) {
		cacheDir := filepath.Join(t.TempDir(), "cache", "nested")
		t.Setenv("MSGIDX_CACHE_DIR", cacheDir)
		t.Setenv("MSGIDX_CACHE", "1")

		base, ok, err := EnsureBaseDir()
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, cacheDir, base)
		assert.DirExists(t, cacheDir)
	})
}

func TestWriteRead(t *testing.T) {
	t.Setenv("MSGIDX_CACHE_DIR", t.TempDir())
	t.Setenv("MSGIDX_CACHE", "")

	sub := []string{"s3", "releases"}
	key := "weld-core/3.0.0.json@etag1"

	_, ok := Read(sub, key)
	assert.False(t, ok)

	require.NoError(t, Write(sub, key, []byte(" {\"version\":\"3.0.0\"}\n")))

	entry, ok := Read(sub, key)
	require.True(t, ok)
	assert.Equal(t, key, entry.Key)
	assert.Equal(t, encodeKey(key), entry.EncodedKey)
	assert.Equal(t, []byte(`{"version":"3.0.0"}`), entry.Data)

	p, exists := EntryPath(sub, key)
	assert.True(t, exists)
	assert.Equal(t, entry.Path, p)
}

func TestWrite_Disabled(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MSGIDX_CACHE_DIR", dir)
	t.Setenv("MSGIDX_CACHE", "false")

	require.NoError(t, Write([]string{"x"}, "k", []byte("data")))
	_, ok := Read([]string{"x"}, "k")
	assert.False(t, ok)
	assert.NoDirExists(t, filepath.Join(dir, "x"))
}

func TestPurge(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MSGIDX_CACHE_DIR", dir)
	t.Setenv("MSGIDX_CACHE", "")

	require.NoError(t, Write(nil, "old", []byte("old")))
	require.NoError(t, Write(nil, "new", []byte("new")))

	oldPath, _ := EntryPath(nil, "old")
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(oldPath, past, past))

	require.NoError(t, Purge(0))
	assert.FileExists(t, oldPath)

	require.NoError(t, Purge(24))
	assert.NoFileExists(t, oldPath)

	newPath, _ := EntryPath(nil, "new")
	assert.FileExists(t, newPath)
}

func TestEncodeKey(t *testing.T) {
	a := encodeKey("a")
	assert.Len(t, a, 64)
	assert.Equal(t, a, encodeKey("a"))
	assert.NotEqual(t, a, encodeKey("b"))
}
