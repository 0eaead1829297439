// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tfctl/tzdiff/internal/log"
)

// Local reads documents from a directory tree.
type Local struct {
	RootDir string
}

// NewLocal returns a Local rooted at rootDir, which must be an existing
// directory. Relative roots are resolved against the working directory.
func NewLocal(rootDir string) (*Local, error) {
	if !filepath.IsAbs(rootDir) {
		cwd, _ := os.Getwd()
		rootDir = filepath.Join(cwd, rootDir)
	}

	info, err := os.Stat(rootDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLocation, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrLocation, rootDir)
	}

	log.Debugf("local source: root=%s", rootDir)
	return &Local{RootDir: rootDir}, nil
}

func (l *Local) Fetch(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, Friendly(err, ErrorContext{Location: l.String(), Path: p})
	}

	rel := filepath.FromSlash(p)
	if !filepath.IsLocal(rel) {
		return nil, fmt.Errorf("%w: path %q escapes %s", ErrLocation, p, l.RootDir)
	}

	data, err := os.ReadFile(filepath.Join(l.RootDir, rel))
	if errors.Is(err, fs.ErrNotExist) {
		err = ErrNotFound
	}
	if err != nil {
		return nil, Friendly(err, ErrorContext{Location: l.String(), Path: p})
	}

	return data, nil
}

func (l *Local) String() string {
	return "file://" + filepath.ToSlash(l.RootDir)
}
