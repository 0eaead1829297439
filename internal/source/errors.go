// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrorContext carries input context for improving fetch error messages.
type ErrorContext struct {
	Location string
	Path     string
}

// Friendly wraps a fetch error with a contextual message while preserving the
// original error for errors.Is/As.
func Friendly(err error, ec ErrorContext) error {
	if err == nil {
		return nil
	}

	location := nonEmpty(ec.Location, "<unknown>")

	switch {
	case errors.Is(err, ErrNotFound):
		return fmt.Errorf("%s not found at %s: %w", nonEmpty(ec.Path, "document"), location, err)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("fetch %s from %s timed out: %w", ec.Path, location, err)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("fetch %s from %s canceled: %w", ec.Path, location, err)
	}

	return fmt.Errorf("fetch %s from %s: %w", ec.Path, location, err)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// validJSON passes data through when it is a JSON document, so that a proxy
// or portal page answering 200 never reaches the cache.
func validJSON(data []byte, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: %d bytes", ErrMalformed, len(data))
	}
	return data, nil
}
