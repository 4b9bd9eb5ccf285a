// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	msgcfg "github.com/msgidx/msgidx/internal/config"
	"github.com/msgidx/msgidx/internal/log"
	"github.com/msgidx/msgidx/internal/version"
)

// options holds optional overrides for AWS config loading and S3 client
// construction.
type options struct {
	profile  string
	region   string
	endpoint string
	retryer  func() awsv2.Retryer
}

// Option customizes how AWS config is loaded. With no options the shell's
// AWS setup is inherited (AWS_PROFILE, shared config, env, IMDS).
type Option func(*options)

// WithProfile sets the shared config profile.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion sets the region override.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithEndpoint points the S3 client at an S3-compatible store (MinIO, Ceph,
// localstack). Path-style addressing is enabled along with it.
func WithEndpoint(endpoint string) Option {
	return func(o *options) { o.endpoint = endpoint }
}

// WithRetryer injects a custom retryer; SDK defaults are used otherwise.
func WithRetryer(newRetryer func() awsv2.Retryer) Option {
	return func(o *options) { o.retryer = newRetryer }
}

// OptionsFromConfig reads s3.profile, s3.region and s3.endpoint from the
// msgidx config file. Missing keys produce no option.
func OptionsFromConfig() []Option {
	var opts []Option
	if p, _ := msgcfg.GetString("s3.profile", ""); p != "" {
		opts = append(opts, WithProfile(p))
	}
	if r, _ := msgcfg.GetString("s3.region", ""); r != "" {
		opts = append(opts, WithRegion(r))
	}
	if e, _ := msgcfg.GetString("s3.endpoint", ""); e != "" {
		opts = append(opts, WithEndpoint(e))
	}
	return opts
}

// LoadAWSConfig loads AWS SDK v2 config, applying the given overrides.
func LoadAWSConfig(ctx context.Context, opts ...Option) (awsv2.Config, error) {
	o := apply(opts)

	var loadOpts []func(*config.LoadOptions) error
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	if o.retryer != nil {
		loadOpts = append(loadOpts, config.WithRetryer(o.retryer))
	}
	loadOpts = append(loadOpts, config.WithAppID(version.UserAgent()))

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		log.Debugf("aws config load err: err=%v", err)
		return awsv2.Config{}, err
	}
	log.Debugf("aws config loaded: profile=%s region=%s", o.profile, cfg.Region)
	return cfg, nil
}

// NewS3 constructs an S3 client from cfg. An endpoint option switches the
// client to the given base endpoint with path-style addressing.
func NewS3(cfg awsv2.Config, opts ...Option) *s3v2.Client {
	o := apply(opts)
	client := s3v2.NewFromConfig(cfg, func(so *s3v2.Options) {
		if o.endpoint != "" {
			so.BaseEndpoint = awsv2.String(o.endpoint)
			so.UsePathStyle = true
		}
	})
	log.Debugf("s3 client created: endpoint=%q", o.endpoint)
	return client
}

func apply(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
