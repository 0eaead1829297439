// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/tfctl/tzdiff/internal/cacheutil"
	"github.com/tfctl/tzdiff/internal/log"
)

// Remote reads documents over HTTP(S) relative to a base URL.
type Remote struct {
	base     *url.URL
	client   *retryablehttp.Client
	cacheTTL int
}

// NewRemote returns a Remote for an http:// or https:// base URL.
func NewRemote(base string, opts ...Option) (*Remote, error) {
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %s", ErrLocation, base)
	}

	s := defaults()
	for _, opt := range opts {
		opt(&s)
	}
	return newRemote(u, s)
}

func newRemote(u *url.URL, s settings) (*Remote, error) {
	client := retryablehttp.NewClient()
	client.RetryMax = s.retries
	client.RetryWaitMin = s.retryWaitMin
	client.RetryWaitMax = s.retryWaitMax
	client.HTTPClient.Timeout = s.timeout
	client.Logger = log.Leveled{}

	return &Remote{base: u, client: client, cacheTTL: s.cacheTTL}, nil
}

func (r *Remote) Fetch(ctx context.Context, p string) ([]byte, error) {
	target := r.base.JoinPath(p).String()
	subdirs := []string{"remote", r.base.Host}

	if err := cacheutil.Purge(subdirs, r.cacheTTL); err != nil {
		log.WithError(err).Warn("failed to purge cache")
	}

	data, err := cacheutil.ReadThrough(subdirs, target, func() ([]byte, error) {
		return validJSON(r.get(ctx, target))
	})
	if err != nil {
		return nil, Friendly(err, ErrorContext{Location: r.String(), Path: p})
	}
	return data, nil
}

func (r *Remote) get(ctx context.Context, target string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusGone:
		return nil, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("GET %s: %s", target, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	log.Debugf("fetched %s: bytes=%d", target, len(data))

	return data, nil
}

func (r *Remote) String() string {
	return r.base.String()
}
