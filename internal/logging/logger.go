// Package logging builds the slog logger used for diagnostics.
//
// Output is controlled by environment variables:
//
//	CAMUSAGE_DEBUG=1             enable debug level
//	CAMUSAGE_LOG_DEST=stderr     default
//	CAMUSAGE_LOG_DEST=file:<p>   log only to file p
//	CAMUSAGE_LOG_DEST=both:<p>   log to stderr and file p
//	CAMUSAGE_LOG_JSON=1          JSON records instead of text
//	CAMUSAGE_LOG_TIME=1          include timestamps in text output
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options configures New. Zero values fall back to the environment.
type Options struct {
	Getenv func(string) string
	Stderr io.Writer
}

// New creates a configured logger based on environment variables. The
// returned close function releases any log file that was opened.
func New(opts Options) (*slog.Logger, func() error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	level := slog.LevelWarn
	if getenv("CAMUSAGE_DEBUG") == "1" {
		level = slog.LevelDebug
	}

	var writers []io.Writer
	var file *os.File
	logDest := getenv("CAMUSAGE_LOG_DEST")

	switch {
	case strings.HasPrefix(logDest, "file:"):
		logPath := strings.TrimPrefix(logDest, "file:")
		if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644); err == nil {
			file = f
			writers = append(writers, f)
		} else {
			fmt.Fprintf(stderr, "camusage: failed to open log file %s: %v\n", logPath, err)
			writers = append(writers, stderr)
		}
	case strings.HasPrefix(logDest, "both:"):
		logPath := strings.TrimPrefix(logDest, "both:")
		writers = append(writers, stderr)
		if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644); err == nil {
			file = f
			writers = append(writers, f)
		} else {
			fmt.Fprintf(stderr, "camusage: failed to open log file %s: %v\n", logPath, err)
		}
	default:
		writers = append(writers, stderr)
	}

	var output io.Writer
	if len(writers) == 1 {
		output = writers[0]
	} else {
		output = io.MultiWriter(writers...)
	}

	var handler slog.Handler
	if getenv("CAMUSAGE_LOG_JSON") == "1" {
		handler = slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level})
	} else {
		showTime := getenv("CAMUSAGE_LOG_TIME") == "1"
		handler = slog.NewTextHandler(output, &slog.HandlerOptions{
			Level: level,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey && !showTime && len(groups) == 0 {
					return slog.Attr{}
				}
				return a
			},
		})
	}

	closeFn := func() error { return nil }
	if file != nil {
		closeFn = file.Close
	}
	return slog.New(handler).With("component", "camusage"), closeFn
}
