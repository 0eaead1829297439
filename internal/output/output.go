// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"slices"
	"strconv"

	"github.com/apex/log"
	"gopkg.in/yaml.v2"
)

// Formats lists the accepted --output values.
var Formats = []string{"text", "json", "yaml"}

// Options controls how a dataset is emitted.
type Options struct {
	Format  string
	Color   bool
	Titles  bool
	Padding int
	Sort    string
	Filter  string
	Header  string
	Footer  string
}

// Column is one table column: Key selects the row value and Title heads it.
type Column struct {
	Key   string
	Title string
}

// ValidFormat reports whether format is one of Formats.
func ValidFormat(format string) bool {
	return slices.Contains(Formats, format)
}

// Spit emits a dataset. json and yaml marshal doc as is; text renders rows in
// the given columns, after sorting them by opts.Sort. If w is nil, os.Stdout is
// used.
func Spit(w io.Writer, doc any, rows []map[string]interface{}, columns []Column, opts Options) error {
	if w == nil {
		w = os.Stdout
	}

	switch opts.Format {
	case "json":
		jsonOutput, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
		_, err = fmt.Fprintln(w, string(jsonOutput))
		return err
	case "yaml":
		yamlOutput, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("yaml marshal: %w", err)
		}
		_, err = w.Write(yamlOutput)
		return err
	case "", "text":
		if opts.Sort != "" {
			SortDataset(rows, opts.Sort)
		}
		TableWriter(rows, columns, opts, w)
		return nil
	}

	log.Debugf("unknown format: %s", opts.Format)
	return fmt.Errorf("unknown output format %q", opts.Format)
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return fmt.Sprintf("%.0f", value)
	case bool:
		return strconv.FormatBool(value)
	case fmt.Stringer:
		return value.String()
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}
