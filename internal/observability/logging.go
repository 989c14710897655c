// Package observability provides the logger used throughout traceplot.
package observability

import (
	"context"
	"io"
	"log/slog"

	"github.com/traceplot/traceplot/internal/sentryreport"
)

type Tags map[string]string

// NewTags creates a new Tags from a mix of slog.Attr and string key/value
// pairs. Incomplete pairs and other types are ignored.
func NewTags(args ...any) Tags {
	var done bool
	tags := Tags{}
	for len(args) > 0 && !done {
		switch x := args[0].(type) {
		case slog.Attr:
			tags[x.Key] = x.Value.String()
			args = args[1:]
		case string:
			if len(args) < 2 {
				done = true
				break
			}
			attr := slog.Any(x, args[1])
			tags[attr.Key] = attr.Value.String()
			args = args[2:]
		default:
			args = args[1:]
		}
	}
	return tags
}

const LevelFatal = slog.Level(12)

type CoreLoggerParams struct {
	Reporter *sentryreport.Client
	Tags     Tags
}

// CoreLogger wraps slog with tag bookkeeping and optional forwarding of
// captured errors to the crash reporter.
type CoreLogger struct {
	*slog.Logger
	baseTags Tags
	reporter *sentryreport.Client
}

func NewCoreLogger(logger *slog.Logger, params *CoreLoggerParams) *CoreLogger {
	if params == nil {
		params = &CoreLoggerParams{}
	}

	tags := Tags{}
	var args []any
	for key, value := range params.Tags {
		args = append(args, slog.String(key, value))
		tags[key] = value
	}

	return &CoreLogger{
		Logger:   logger.With(args...),
		reporter: params.Reporter,
		baseTags: tags,
	}
}

// withArgs merges the given args with the logger's base tags; base tags take
// precedence.
func (cl *CoreLogger) withArgs(args ...any) Tags {
	tags := NewTags(args...)
	for key, value := range cl.baseTags {
		tags[key] = value
	}
	return tags
}

// With returns a derived logger that includes the given tags in each message.
func (cl *CoreLogger) With(args ...any) *CoreLogger {
	return &CoreLogger{
		Logger:   cl.Logger.With(args...),
		baseTags: cl.baseTags,
		reporter: cl.reporter,
	}
}

// CaptureError logs an error and sends it to the crash reporter.
func (cl *CoreLogger) CaptureError(err error, args ...any) {
	cl.Error(err.Error(), args...)

	if cl.reporter != nil {
		cl.reporter.CaptureException(err, cl.withArgs(args...))
	}
}

// CaptureWarn logs a warning and sends it to the crash reporter.
func (cl *CoreLogger) CaptureWarn(msg string, args ...any) {
	cl.Warn(msg, args...)

	if cl.reporter != nil {
		cl.reporter.CaptureMessage(msg, cl.withArgs(args...))
	}
}

// CaptureFatal logs a fatal error and sends it to the crash reporter.
func (cl *CoreLogger) CaptureFatal(err error, args ...any) {
	cl.Log(context.Background(), LevelFatal, err.Error(), args...)

	if cl.reporter != nil {
		cl.reporter.CaptureException(err, cl.withArgs(args...))
	}
}

// Reraise reports recovered panics to the crash reporter.
func (cl *CoreLogger) Reraise(args ...any) {
	if val := recover(); val != nil {
		if cl.reporter != nil {
			cl.reporter.Reraise(val, cl.withArgs(args...))
		} else {
			panic(val)
		}
	}
}

// GetTags returns the tags associated with the logger.
//
// Used for testing.
func (cl *CoreLogger) GetTags() Tags {
	return cl.baseTags
}

// NewNoOpLogger returns a logger that discards all messages.
//
// Used for testing.
func NewNoOpLogger() *CoreLogger {
	return NewCoreLogger(
		slog.New(slog.NewJSONHandler(io.Discard, nil)),
		nil,
	)
}
