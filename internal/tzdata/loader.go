// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tzdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/tfctl/tzdiff/internal/source"
)

// ErrFetch reports that index or transition data could not be produced:
// unreachable location, missing document or malformed payload.
var ErrFetch = errors.New("timezone data fetch failed")

const (
	versionIndexPath  = "versions/00-index.json"
	timezoneIndexPath = "timezones/00-index.json"
)

// Loader decodes dataset documents read from a Source.
type Loader struct {
	src source.Source
}

func NewLoader(src source.Source) *Loader {
	return &Loader{src: src}
}

// Source returns the underlying Source.
func (l *Loader) Source() source.Source {
	return l.src
}

// LoadVersionIndex reads versions/00-index.json.
func (l *Loader) LoadVersionIndex(ctx context.Context) (VersionIndex, error) {
	var idx VersionIndex
	if err := l.decode(ctx, versionIndexPath, &idx); err != nil {
		return nil, err
	}
	log.Debugf("version index: versions=%d", len(idx))
	return idx, nil
}

// LoadTimezoneIndex reads timezones/00-index.json. A record that is neither a
// version set nor an alias fails the load with ErrInvalidRecord.
func (l *Loader) LoadTimezoneIndex(ctx context.Context) (TimezoneIndex, error) {
	var idx TimezoneIndex
	if err := l.decode(ctx, timezoneIndexPath, &idx); err != nil {
		return nil, err
	}
	log.Debugf("timezone index: zones=%d", len(idx))
	return idx, nil
}

// LoadDocument returns the raw document of zone name.
func (l *Loader) LoadDocument(ctx context.Context, name string) ([]byte, error) {
	p, err := documentPath(name)
	if err != nil {
		return nil, err
	}

	data, err := l.src.Fetch(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: %s: malformed JSON", ErrFetch, p)
	}

	if got := gjson.GetBytes(data, "name"); got.Exists() && got.String() != name {
		return nil, fmt.Errorf("%w: %s: document is for %q", ErrFetch, p, got.String())
	}

	return data, nil
}

// LoadVersionRaw returns the raw JSON of one version of zone name.
func (l *Loader) LoadVersionRaw(ctx context.Context, name, version string) ([]byte, error) {
	doc, err := l.LoadDocument(ctx, name)
	if err != nil {
		return nil, err
	}

	var found gjson.Result
	gjson.GetBytes(doc, "versions").ForEach(func(key, value gjson.Result) bool {
		if key.String() == version {
			found = value
			return false
		}
		return true
	})

	if !found.Exists() || !found.IsObject() {
		return nil, fmt.Errorf("%w: %s: version %s missing from document", ErrFetch, name, version)
	}

	return []byte(found.Raw), nil
}

// LoadVersionData decodes one version of zone name.
func (l *Loader) LoadVersionData(ctx context.Context, name, version string) (*VersionData, error) {
	raw, err := l.LoadVersionRaw(ctx, name, version)
	if err != nil {
		return nil, err
	}

	var data VersionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %s@%s: %w", ErrFetch, name, version, err)
	}
	log.Debugf("loaded %s@%s: transitions=%d", name, version, len(data.Transitions))

	return &data, nil
}

func (l *Loader) decode(ctx context.Context, p string, v any) error {
	data, err := l.src.Fetch(ctx, p)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFetch, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		if errors.Is(err, ErrInvalidRecord) {
			return fmt.Errorf("%s: %w", p, err)
		}
		return fmt.Errorf("%w: %s: %w", ErrFetch, p, err)
	}
	return nil
}

// documentPath maps a zone name onto its document, refusing names that would
// leave the timezones directory.
func documentPath(name string) (string, error) {
	if name == "" || strings.HasPrefix(name, "/") || strings.Contains(name, "\\") {
		return "", fmt.Errorf("%w: invalid zone name %q", ErrFetch, name)
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return "", fmt.Errorf("%w: invalid zone name %q", ErrFetch, name)
		}
	}
	return "timezones/" + name + ".json", nil
}
