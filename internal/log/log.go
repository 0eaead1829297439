// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

var traceEnabled bool

// levels maps TZDIFF_LOG values to apex levels. trace is debug plus the
// Tracef lines.
var levels = map[string]log.Level{
	"trace": log.DebugLevel,
	"debug": log.DebugLevel,
	"info":  log.InfoLevel,
	"warn":  log.WarnLevel,
	"error": log.ErrorLevel,
	"fatal": log.FatalLevel,
}

// ParseLevel reads a TZDIFF_LOG value. Unknown or empty names give error
// level and ok=false.
func ParseLevel(name string) (level log.Level, trace bool, ok bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	level, ok = levels[name]
	if !ok {
		return log.ErrorLevel, false, false
	}
	return level, name == "trace", true
}

// InitLogger installs CustomHandler on stderr, keeping log lines out of the
// json and yaml written to stdout, at the level named by TZDIFF_LOG.
func InitLogger() {
	raw := os.Getenv("TZDIFF_LOG")
	level, trace, ok := ParseLevel(raw)
	traceEnabled = trace
	log.SetHandler(&CustomHandler{W: os.Stderr})
	log.SetLevel(level)
	if !ok && raw != "" {
		log.Warnf("unknown TZDIFF_LOG level %q, using error", raw)
	}
}

// CustomHandler formats log messages and writes them to W (stderr if nil).
type CustomHandler struct {
	W io.Writer
}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	w := h.W
	if w == nil {
		w = os.Stderr
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := e.Message
	level := "?"
	if strings.HasPrefix(message, "TRACE: ") {
		level = "T"
		message = message[7:]
	} else {
		switch e.Level {
		case log.DebugLevel:
			level = "D"
		case log.InfoLevel:
			level = "I"
		case log.WarnLevel:
			level = "W"
		case log.ErrorLevel:
			level = "E"
		case log.FatalLevel:
			level = "F"
		}
	}

	for _, name := range e.Fields.Names() {
		message += fmt.Sprintf(" %s=%v", name, e.Fields.Get(name))
	}

	fmt.Fprintf(w, "%s %s %s\n", timestamp, level, message)
	return nil
}

// Tracef logs at Trace level (below Debug).
func Tracef(format string, args ...interface{}) {
	if traceEnabled {
		log.Debug("TRACE: " + fmt.Sprintf(format, args...))
	}
}

// Debugf logs at Debug level.
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Infof logs at Info level.
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// Errorf logs at Error level.
func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// Debug logs at Debug level.
func Debug(msg string) {
	log.Debug(msg)
}

// Warnf logs at Warn level.
func Warnf(format string, args ...interface{}) {
	log.Warn(fmt.Sprintf(format, args...))
}

// WithError returns an entry with error.
func WithError(err error) *log.Entry {
	return log.WithError(err)
}

// Leveled adapts the package logger to the four-method leveled interface
// used by go-retryablehttp. Key/value pairs are appended as key=value.
type Leveled struct{}

func (Leveled) Error(msg string, keysAndValues ...interface{}) {
	log.Error(msg + pairs(keysAndValues))
}

func (Leveled) Info(msg string, keysAndValues ...interface{}) {
	log.Info(msg + pairs(keysAndValues))
}

func (Leveled) Debug(msg string, keysAndValues ...interface{}) {
	log.Debug(msg + pairs(keysAndValues))
}

func (Leveled) Warn(msg string, keysAndValues ...interface{}) {
	log.Warn(msg + pairs(keysAndValues))
}

func pairs(keysAndValues []interface{}) string {
	var b strings.Builder
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fmt.Fprintf(&b, " %v=%v", keysAndValues[i], keysAndValues[i+1])
	}
	return b.String()
}
