// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	awsx "github.com/tfctl/tzdiff/internal/aws"
	"github.com/tfctl/tzdiff/internal/cacheutil"
	"github.com/tfctl/tzdiff/internal/log"
)

// S3 reads documents from objects beneath a bucket prefix.
type S3 struct {
	Bucket   string
	Prefix   string
	client   *s3v2.Client
	cacheTTL int
}

// NewS3 returns an S3 source for bucket and key prefix. AWS settings come from
// the shell environment unless overridden by opts.
func NewS3(ctx context.Context, bucket, prefix string, opts ...Option) (*S3, error) {
	s := defaults()
	for _, opt := range opts {
		opt(&s)
	}
	return newS3(ctx, bucket, prefix, s)
}

func newS3(ctx context.Context, bucket, prefix string, s settings) (*S3, error) {
	attempts := s.retries + 1
	cfgOpts := []awsx.Option{
		awsx.WithRetryer(func() awsv2.Retryer {
			return retry.AddWithMaxAttempts(retry.NewStandard(), attempts)
		}),
		awsx.WithStaticCredentials(s.accessKey, s.secretKey),
	}
	if s.region != "" {
		cfgOpts = append(cfgOpts, awsx.WithRegion(s.region))
	}
	if s.profile != "" {
		cfgOpts = append(cfgOpts, awsx.WithProfile(s.profile))
	}

	cfg, err := awsx.LoadAWSConfig(ctx, cfgOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3{
		Bucket:   bucket,
		Prefix:   prefix,
		client:   awsx.NewS3(cfg, awsx.WithS3BaseEndpoint(s.endpoint)),
		cacheTTL: s.cacheTTL,
	}, nil
}

func (b *S3) Fetch(ctx context.Context, p string) ([]byte, error) {
	key := path.Join(b.Prefix, p)
	subdirs := []string{"s3", b.Bucket}

	if err := cacheutil.Purge(subdirs, b.cacheTTL); err != nil {
		log.WithError(err).Warn("failed to purge cache")
	}

	data, err := cacheutil.ReadThrough(subdirs, key, func() ([]byte, error) {
		return validJSON(b.get(ctx, key))
	})
	if err != nil {
		return nil, Friendly(err, ErrorContext{Location: b.String(), Path: p})
	}
	return data, nil
}

func (b *S3) get(ctx context.Context, key string) ([]byte, error) {
	result, err := b.client.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket: awsv2.String(b.Bucket),
		Key:    awsv2.String(key),
	})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get S3 object: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 object body: %w", err)
	}
	log.Debugf("fetched s3://%s/%s: bytes=%d", b.Bucket, key, len(data))

	return data, nil
}

func isNoSuchKey(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var re *awshttp.ResponseError
	return errors.As(err, &re) && re.HTTPStatusCode() == http.StatusNotFound
}

func (b *S3) String() string {
	if b.Prefix == "" {
		return "s3://" + b.Bucket
	}
	return "s3://" + b.Bucket + "/" + b.Prefix
}
