// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"
	"time"

	"github.com/tfctl/tzdiff/internal/config"
)

// Meta contains runtime metadata shared by commands. It carries CLI arguments,
// loaded configuration, context, the starting working directory and the clock
// used for relative dates.
type Meta struct {
	Args        []string
	Config      config.Type
	Context     context.Context
	StartingDir string
	Now         func() time.Time
}

// Clock returns m.Now, or time.Now when unset.
func (m Meta) Clock() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}
