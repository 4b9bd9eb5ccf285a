// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package source turns command-line paths into readable index sources.
//
// A local file is one source and a local directory contributes the
// non-hidden regular files directly inside it. An s3://bucket/key URI is one
// source; an s3://bucket/prefix/ URI contributes the non-hidden objects
// directly under the prefix. S3 bodies are cached on disk by bucket, key and
// ETag.
package source
