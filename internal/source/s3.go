// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"fmt"
	"io"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/msgidx/msgidx/internal/cacheutil"
	"github.com/msgidx/msgidx/internal/index"
	"github.com/msgidx/msgidx/internal/log"
)

const s3Scheme = "s3://"

// S3API is the part of the S3 client used to read index documents.
type S3API interface {
	GetObject(ctx context.Context, in *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
	HeadObject(ctx context.Context, in *s3v2.HeadObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.HeadObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3v2.ListObjectsV2Input, optFns ...func(*s3v2.Options)) (*s3v2.ListObjectsV2Output, error)
}

// IsS3 reports whether path is an s3:// URI.
func IsS3(path string) bool {
	return strings.HasPrefix(path, s3Scheme)
}

// ParseS3 splits an s3:// URI into bucket and key. A key that is empty or
// ends in "/" names a prefix.
func ParseS3(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, s3Scheme)
	if !ok {
		return "", "", fmt.Errorf("not an s3 URI: %s", uri)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("missing bucket in %s", uri)
	}
	return bucket, key, nil
}

// Object is an index document stored in S3.
type Object struct {
	client S3API
	bucket string
	key    string
	etag   string
}

// Path implements index.Source.
func (o *Object) Path() string {
	return s3Scheme + o.bucket + "/" + o.key
}

// Read implements index.Source. Bodies are served from the local cache when
// the object's ETag is unchanged.
func (o *Object) Read(ctx context.Context) ([]byte, error) {
	if o.etag == "" {
		head, err := o.client.HeadObject(ctx, &s3v2.HeadObjectInput{
			Bucket: awsv2.String(o.bucket),
			Key:    awsv2.String(o.key),
		})
		if err != nil {
			return nil, err
		}
		o.etag = awsv2.ToString(head.ETag)
	}

	subdirs := []string{"s3", o.bucket}
	cacheKey := o.key + "@" + o.etag
	if entry, ok := cacheutil.Read(subdirs, cacheKey); ok {
		return entry.Data, nil
	}

	out, err := o.client.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket: awsv2.String(o.bucket),
		Key:    awsv2.String(o.key),
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, err
	}

	if err := cacheutil.Write(subdirs, cacheKey, data); err != nil {
		log.WithError(err).Warnf("failed to cache %s", o.Path())
	}
	return data, nil
}

func (r *Resolver) expandS3(ctx context.Context, uri string) ([]index.Source, error) {
	bucket, key, err := ParseS3(uri)
	if err != nil {
		return nil, &index.LoadError{Path: uri, Err: err}
	}

	client, err := r.client(ctx)
	if err != nil {
		return nil, &index.LoadError{Path: uri, Err: err}
	}

	if key != "" && !strings.HasSuffix(key, "/") {
		return []index.Source{&Object{client: client, bucket: bucket, key: key}}, nil
	}

	var sources []index.Source
	paginator := s3v2.NewListObjectsV2Paginator(client, &s3v2.ListObjectsV2Input{
		Bucket:    awsv2.String(bucket),
		Prefix:    awsv2.String(key),
		Delimiter: awsv2.String("/"),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, &index.LoadError{Path: uri, Err: err}
		}
		for _, obj := range page.Contents {
			name := awsv2.ToString(obj.Key)
			if name == key || Hidden(name) {
				continue
			}
			sources = append(sources, &Object{
				client: client,
				bucket: bucket,
				key:    name,
				etag:   awsv2.ToString(obj.ETag),
			})
		}
	}
	return sources, nil
}
