// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/msgidx/msgidx/internal/log"
)

// Entry is a cached remote index document on disk. Key is the clear-text
// key, EncodedKey the hashed file name.
type Entry struct {
	Key        string
	EncodedKey string
	Path       string
	Data       []byte
}

// Dir resolves the base cache directory: MSGIDX_CACHE_DIR when set and
// non-empty, otherwise os.UserCacheDir()/msgidx. The bool is false when no
// base can be resolved, which callers treat as caching disabled.
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("MSGIDX_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "msgidx"), true
	}
	return "", false
}

// Enabled reports whether caching is on. MSGIDX_CACHE=0 or false turns it off.
func Enabled() bool {
	v := os.Getenv("MSGIDX_CACHE")
	return v != "0" && v != "false"
}

// EnsureBaseDir creates the base cache directory when caching is enabled. It
// returns the path, whether the cache is usable and any creation error.
func EnsureBaseDir() (string, bool, error) {
	if !Enabled() {
		return "", false, nil
	}

	base, ok := Dir()
	if !ok {
		return "", false, nil
	}

	if err := os.MkdirAll(base, 0o755); err != nil { //nolint:mnd
		return base, false, fmt.Errorf("failed to create cache base directory: %w", err)
	}
	return base, true, nil
}

// EntryPath returns where the entry for clearKey beneath subdirs lives and
// whether a file currently exists there.
func EntryPath(subdirs []string, clearKey string) (string, bool) {
	base, ok := Dir()
	if !ok {
		return "", false
	}
	parts := append([]string{base}, subdirs...)
	p := filepath.Join(append(parts, encodeKey(clearKey))...)
	if _, err := os.Stat(p); err == nil {
		return p, true
	}
	return p, false
}

// Purge removes cached files older than hours. hours <= 0 disables purging.
func Purge(hours int) error {
	if hours <= 0 {
		log.Debug("cache purge disabled")
		return nil
	}

	base, ok := Dir()
	if !ok {
		return nil
	}

	maxAge := time.Duration(hours) * time.Hour
	var freed uint64
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if os.IsNotExist(walkErr) {
				return nil
			}
			return walkErr
		}
		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil || time.Since(info.ModTime()) <= maxAge {
			return nil
		}
		if err := os.Remove(path); err != nil {
			log.WithError(err).Warnf("failed to remove cache file %s", path)
			return nil
		}
		freed += uint64(info.Size())
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}

	if freed > 0 {
		log.Debugf("cache purge freed %s", humanize.Bytes(freed))
	}
	return nil
}

// Read returns the cached entry for clearKey beneath subdirs, if present.
func Read(subdirs []string, clearKey string) (*Entry, bool) {
	if !Enabled() {
		return nil, false
	}
	p, ok := EntryPath(subdirs, clearKey)
	if !ok {
		return nil, false
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}
	log.Debugf("cache hit: key=%s size=%s", clearKey, humanize.Bytes(uint64(len(b))))
	return &Entry{
		Key:        clearKey,
		EncodedKey: encodeKey(clearKey),
		Path:       p,
		Data:       bytes.TrimSpace(b),
	}, true
}

// Write stores data for clearKey beneath subdirs, creating directories as
// needed. It is a no-op when caching is disabled.
func Write(subdirs []string, clearKey string, data []byte) error {
	if !Enabled() {
		return nil
	}
	base, ok := Dir()
	if !ok {
		return nil
	}

	dir := filepath.Join(append([]string{base}, subdirs...)...)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	p := filepath.Join(dir, encodeKey(clearKey))
	if err := os.WriteFile(p, data, 0o600); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Debugf("cache write: key=%s size=%s", clearKey, humanize.Bytes(uint64(len(data))))
	return nil
}

// encodeKey hashes a clear-text key into a file name.
func encodeKey(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}
