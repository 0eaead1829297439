// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tzversion

import (
	"errors"
	"fmt"
)

// ErrInvariant reports dataset content that breaks resolution rules: alias
// chains, dangling aliases, ambiguous index records and unordered transitions.
var ErrInvariant = errors.New("timezone data invariant violated")

// UnknownTimezoneError reports a name absent from the timezone index.
type UnknownTimezoneError struct {
	Name string
}

func (e *UnknownTimezoneError) Error() string {
	return fmt.Sprintf("Timezone %s not found.", e.Name)
}

// UnknownVersionError reports a version absent for a zone. Name is the zone as
// requested, before alias resolution.
type UnknownVersionError struct {
	Version string
	Name    string
}

func (e *UnknownVersionError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("Version %s not found.", e.Version)
	}
	return fmt.Sprintf("Version %s not found for %s.", e.Version, e.Name)
}
