// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package timeline

import (
	"encoding/json"
	"fmt"
	"math"
)

// Kind tags an Instant as one of the two infinities or a finite second.
type Kind int8

const (
	NegInf Kind = iota - 1
	Finite
	PosInf
)

// Instant is an extended epoch second: -∞, a finite Unix second, or +∞. The
// zero value is the finite instant 0 (the Unix epoch).
type Instant struct {
	kind Kind
	sec  int64
}

// At returns the finite instant sec seconds after the Unix epoch.
func At(sec int64) Instant {
	return Instant{kind: Finite, sec: sec}
}

// NegativeInfinity returns -∞.
func NegativeInfinity() Instant {
	return Instant{kind: NegInf}
}

// PositiveInfinity returns +∞.
func PositiveInfinity() Instant {
	return Instant{kind: PosInf}
}

// Kind reports which variant the instant is.
func (i Instant) Kind() Kind {
	return i.kind
}

// IsFinite reports whether i is neither -∞ nor +∞.
func (i Instant) IsFinite() bool {
	return i.kind == Finite
}

// Seconds returns the epoch second of a finite instant. The second return
// value is false for either infinity.
func (i Instant) Seconds() (int64, bool) {
	if i.kind != Finite {
		return 0, false
	}
	return i.sec, true
}

// Compare returns -1, 0 or +1 following the total order
// -∞ < every finite instant < +∞.
func (i Instant) Compare(j Instant) int {
	switch {
	case i.kind < j.kind:
		return -1
	case i.kind > j.kind:
		return 1
	case i.kind != Finite:
		return 0
	case i.sec < j.sec:
		return -1
	case i.sec > j.sec:
		return 1
	}
	return 0
}

// Before reports whether i sorts strictly before j.
func (i Instant) Before(j Instant) bool {
	return i.Compare(j) < 0
}

// Equal reports whether i and j denote the same instant.
func (i Instant) Equal(j Instant) bool {
	return i.Compare(j) == 0
}

// String renders the instant with FormatInstant.
func (i Instant) String() string {
	return FormatInstant(i)
}

// MarshalJSON encodes finite instants as integers and infinities as the
// strings "-∞" and "∞".
func (i Instant) MarshalJSON() ([]byte, error) {
	switch i.kind {
	case Finite:
		return json.Marshal(i.sec)
	case NegInf, PosInf:
		return json.Marshal(FormatInstant(i))
	}
	return nil, fmt.Errorf("invalid instant kind %d", i.kind)
}

// UnmarshalJSON accepts what MarshalJSON produces.
func (i *Instant) UnmarshalJSON(data []byte) error {
	var sec int64
	if err := json.Unmarshal(data, &sec); err == nil {
		*i = At(sec)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("instant must be an integer or an infinity: %w", err)
	}
	switch s {
	case negInfLiteral:
		*i = NegativeInfinity()
	case posInfLiteral:
		*i = PositiveInfinity()
	default:
		return fmt.Errorf("unknown instant literal %q", s)
	}
	return nil
}

// MarshalYAML lets gopkg.in/yaml.v2 emit infinities as .inf and -.inf.
func (i Instant) MarshalYAML() (interface{}, error) {
	switch i.kind {
	case NegInf:
		return math.Inf(-1), nil
	case PosInf:
		return math.Inf(1), nil
	}
	return i.sec, nil
}
