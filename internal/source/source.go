// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/msgidx/msgidx/internal/aws"
	"github.com/msgidx/msgidx/internal/cacheutil"
	"github.com/msgidx/msgidx/internal/config"
	"github.com/msgidx/msgidx/internal/index"
	"github.com/msgidx/msgidx/internal/log"
)

// Resolver expands paths into sources. The S3 client is created on first use
// of an s3:// path.
type Resolver struct {
	// NewS3 builds the S3 client. It defaults to one configured from the
	// s3.* config keys and the shell's AWS setup.
	NewS3 func(ctx context.Context) (S3API, error)

	s3     S3API
	purged bool
}

// New returns a Resolver using the default S3 client factory.
func New() *Resolver {
	return &Resolver{NewS3: defaultS3}
}

// Expand resolves every path in order. Directories and S3 prefixes expand in
// name order. No document is parsed here.
func Expand(ctx context.Context, paths []string) ([]index.Source, error) {
	return New().Expand(ctx, paths)
}

// Expand resolves every path in order.
func (r *Resolver) Expand(ctx context.Context, paths []string) ([]index.Source, error) {
	var sources []index.Source
	for _, p := range paths {
		var (
			found []index.Source
			err   error
		)
		if IsS3(p) {
			found, err = r.expandS3(ctx, p)
		} else {
			found, err = expandLocal(p)
		}
		if err != nil {
			return nil, err
		}
		log.Debugf("expanded %s into %d sources", p, len(found))
		sources = append(sources, found...)
	}
	return sources, nil
}

// Hidden reports whether a file or object name is hidden.
func Hidden(name string) bool {
	return strings.HasPrefix(filepath.Base(name), ".")
}

// File is a local index document.
type File struct {
	path string
}

// NewFile returns a source for the file at path.
func NewFile(path string) File {
	return File{path: path}
}

// Path implements index.Source.
func (f File) Path() string { return f.path }

// Read implements index.Source.
func (f File) Read(context.Context) ([]byte, error) {
	return os.ReadFile(f.path)
}

func expandLocal(path string) ([]index.Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &index.LoadError{Path: path, Err: err}
	}

	if !info.IsDir() {
		return []index.Source{NewFile(path)}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, &index.LoadError{Path: path, Err: err}
	}

	var sources []index.Source
	for _, e := range entries {
		if Hidden(e.Name()) {
			log.Tracef("skipping %s", e.Name())
			continue
		}
		// Stat follows symlinks, so a link to a regular file is kept.
		full := filepath.Join(path, e.Name())
		if fi, err := os.Stat(full); err != nil || !fi.Mode().IsRegular() {
			log.Tracef("skipping %s", e.Name())
			continue
		}
		sources = append(sources, NewFile(full))
	}
	return sources, nil
}

func (r *Resolver) client(ctx context.Context) (S3API, error) {
	if r.s3 != nil {
		return r.s3, nil
	}

	if !r.purged {
		r.purged = true
		hours, _ := config.GetInt("cache.clean", 0)
		if err := cacheutil.Purge(hours); err != nil {
			log.WithError(err).Warnf("cache purge failed")
		}
	}

	newS3 := r.NewS3
	if newS3 == nil {
		newS3 = defaultS3
	}
	c, err := newS3(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}
	r.s3 = c
	return c, nil
}

func defaultS3(ctx context.Context) (S3API, error) {
	opts := aws.OptionsFromConfig()
	cfg, err := aws.LoadAWSConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return aws.NewS3(cfg, opts...), nil
}
