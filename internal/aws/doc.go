// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws builds AWS SDK v2 configuration and S3 clients used to fetch
// index documents published to S3 buckets (s3:// inputs).
package aws
