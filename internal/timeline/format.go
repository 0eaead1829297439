// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package timeline

import (
	"fmt"
	"time"
)

const (
	negInfLiteral = "-∞"
	posInfLiteral = "∞"

	instantLayout = "2006-01-02 15:04:05 UTC"
)

// FormatInstant renders a finite instant as "YYYY-MM-DD HH:MM:SS UTC" and the
// infinities as "-∞" and "∞". An Instant with an unknown kind can only come
// from a programming error, so it panics.
func FormatInstant(i Instant) string {
	switch i.kind {
	case NegInf:
		return negInfLiteral
	case PosInf:
		return posInfLiteral
	case Finite:
		return time.Unix(i.sec, 0).UTC().Format(instantLayout)
	}
	panic(fmt.Sprintf("timeline: invalid instant kind %d", i.kind))
}

// FormatOffset renders a signed number of seconds as [+-]HH:MM:SS. Zero is
// rendered with a plus sign.
func FormatOffset(off int64) string {
	sign := '+'
	// Negate through uint64 so math.MinInt64 does not overflow.
	abs := uint64(off)
	if off < 0 {
		sign = '-'
		abs = -abs
	}
	return fmt.Sprintf("%c%02d:%02d:%02d", sign, abs/3600, abs/60%60, abs%60)
}
