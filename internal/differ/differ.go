// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// Identical is printed when two documents do not differ.
const Identical = "The versions are identical."

// RawOptions tunes Raw.
type RawOptions struct {
	// Ignore lists top level keys left out of the comparison.
	Ignore []string
	Color  bool
}

// Raw writes an ASCII structural diff of two JSON objects to w and reports
// whether they differ. If w is nil, os.Stdout is used.
func Raw(w io.Writer, left, right []byte, opts RawOptions) (bool, error) {
	if w == nil {
		w = os.Stdout
	}
	log.Debugf("raw diff: left=%d right=%d bytes", len(left), len(right))

	ldoc, err := decodeObject(left)
	if err != nil {
		return false, fmt.Errorf("failed to unmarshal left document: %w", err)
	}
	rdoc, err := decodeObject(right)
	if err != nil {
		return false, fmt.Errorf("failed to unmarshal right document: %w", err)
	}

	for _, key := range opts.Ignore {
		delete(ldoc, key)
		delete(rdoc, key)
	}

	delta := gojsondiff.New().CompareObjects(ldoc, rdoc)
	if !delta.Modified() {
		fmt.Fprintln(w, Identical)
		return false, nil
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       opts.Color,
	}

	diffString, err := formatter.NewAsciiFormatter(ldoc, config).Format(delta)
	if err != nil {
		return true, err
	}

	fmt.Fprintln(w, diffString)
	return true, nil
}

// decodeObject unmarshals a JSON object keeping integers exact, so epoch
// seconds print as 1462086000 instead of 1.462086e+09.
func decodeObject(data []byte) (map[string]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc map[string]interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	for k, v := range doc {
		doc[k] = numbers(v)
	}
	return doc, nil
}

// numbers replaces every json.Number under v with an int64, or a float64
// when the value is not integral.
func numbers(v interface{}) interface{} {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		f, _ := t.Float64()
		return f
	case map[string]interface{}:
		for k, e := range t {
			t[k] = numbers(e)
		}
	case []interface{}:
		for i, e := range t {
			t[i] = numbers(e)
		}
	}
	return v
}
