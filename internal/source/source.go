// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/tfctl/tzdiff/internal/cacheutil"
	"github.com/tfctl/tzdiff/internal/log"
)

// DefaultLocation is the published dataset used when nothing else is set.
const DefaultLocation = "https://a0.github.io/a0-tzmigration-ruby/data/"

var (
	// ErrNotFound reports a document absent from the location.
	ErrNotFound = errors.New("document not found")
	// ErrLocation reports a location string that cannot be turned into a Source.
	ErrLocation = errors.New("invalid data location")
	// ErrMalformed reports a fetched body that is not JSON. It is never cached.
	ErrMalformed = errors.New("malformed document")
)

// Source returns the raw bytes of a document addressed by a slash separated
// path relative to the base location, e.g. "timezones/00-index.json".
type Source interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
	String() string
}

type settings struct {
	retries      int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
	timeout      time.Duration
	cacheTTL     int

	region    string
	profile   string
	endpoint  string
	accessKey string
	secretKey string
}

func defaults() settings {
	return settings{
		retries:      3,
		retryWaitMin: 500 * time.Millisecond,
		retryWaitMax: 5 * time.Second,
		timeout:      30 * time.Second,
		cacheTTL:     cacheutil.DefaultTTLHours,
	}
}

// Option tunes how a Source talks to its location. Options that do not apply
// to the resolved kind of location are ignored.
type Option func(*settings)

// WithRetries sets how many times a failed remote fetch is retried.
func WithRetries(n int) Option {
	return func(s *settings) {
		if n >= 0 {
			s.retries = n
		}
	}
}

// WithRetryWait bounds the backoff between remote retries.
func WithRetryWait(minWait, maxWait time.Duration) Option {
	return func(s *settings) {
		s.retryWaitMin = minWait
		s.retryWaitMax = maxWait
	}
}

// WithTimeout caps a single HTTP attempt.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithCacheTTL sets the age in hours after which cached documents are purged.
func WithCacheTTL(hours int) Option {
	return func(s *settings) { s.cacheTTL = hours }
}

// WithRegion sets the AWS region of an s3:// location.
func WithRegion(region string) Option {
	return func(s *settings) { s.region = region }
}

// WithProfile selects the shared AWS config profile of an s3:// location.
func WithProfile(profile string) Option {
	return func(s *settings) { s.profile = profile }
}

// WithEndpoint points an s3:// location at an S3-compatible endpoint.
func WithEndpoint(endpoint string) Option {
	return func(s *settings) { s.endpoint = endpoint }
}

// WithStaticCredentials pins the key pair used for an s3:// location.
func WithStaticCredentials(accessKey, secretKey string) Option {
	return func(s *settings) {
		s.accessKey = accessKey
		s.secretKey = secretKey
	}
}

// New resolves location into a Source. An empty location means
// DefaultLocation.
func New(ctx context.Context, location string, opts ...Option) (Source, error) {
	if location == "" {
		location = DefaultLocation
	}

	s := defaults()
	for _, opt := range opts {
		opt(&s)
	}

	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLocation, location, err)
	}
	log.Debugf("source location: scheme=%s host=%s path=%s", u.Scheme, u.Host, u.Path)

	switch strings.ToLower(u.Scheme) {
	case "":
		return NewLocal(location)
	case "file":
		return NewLocal(u.Path)
	case "http", "https":
		return newRemote(u, s)
	case "s3":
		if u.Host == "" {
			return nil, fmt.Errorf("%w: %s: missing bucket", ErrLocation, location)
		}
		return newS3(ctx, u.Host, strings.Trim(u.Path, "/"), s)
	}

	// A drive letter parses as a one character scheme.
	if len(u.Scheme) == 1 {
		return NewLocal(location)
	}

	return nil, fmt.Errorf("%w: %s: unsupported scheme %q", ErrLocation, location, u.Scheme)
}
