// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters selects rows of a listing by column value.
//
// Filters are key-operator-target expressions joined by a delimiter (comma by
// default, TZDIFF_FILTER_DELIM overrides it). Keys name output columns.
//
// Operators, each negatable with a leading "!":
//
//   - = : exact match
//   - ~ : case-insensitive match
//   - ^ : prefix match
//   - < : less than (numeric for numbers, lexical for strings)
//   - > : greater than (numeric for numbers, lexical for strings)
//   - @ : contains substring or element
//   - / : regular expression match
//
// Examples:
//
//   - "zone^America/" : zones under America
//   - "version>2016" : releases after 2015
//   - "zones>5" : releases carrying more than five zones
//   - "off!=+01:00:00" : changes other than a one hour shift
//
// A key alone keeps rows where the column is not empty. Malformed expressions
// are logged and skipped.
package filters
