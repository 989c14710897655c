// Package sentryreport wraps the Sentry SDK for optional crash reporting.
//
// Without a DSN the client is effectively disabled and every capture is a
// cheap no-op on the Sentry side, so callers never need to branch on whether
// reporting is on.
package sentryreport

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
)

type Params struct {
	// DSN is the Data Source Name for the Sentry client. Empty disables
	// reporting.
	DSN string
	// AttachStacktrace attaches stack traces to captured events.
	AttachStacktrace bool
	// Release is the application version.
	Release string
	// Environment the application is running in.
	Environment string
	// BeforeSend modifies events before they are sent. Defaults to
	// RemoveLoggerFrames.
	BeforeSend func(*sentry.Event, *sentry.EventHint) *sentry.Event
	// LRUSize bounds the recent-error cache.
	LRUSize int
}

// Client deduplicates and forwards errors to Sentry.
type Client struct {
	// recent tracks errors sent recently so the same failure is not
	// reported on every repaint.
	recent *cache
}

// New initializes the Sentry client. Returns nil if the de-duplication
// cache cannot be created.
func New(params Params) *Client {
	if params.BeforeSend == nil {
		params.BeforeSend = RemoveLoggerFrames
	}
	if err := sentry.Init(
		sentry.ClientOptions{
			Dsn:              params.DSN,
			AttachStacktrace: params.AttachStacktrace,
			Release:          params.Release,
			BeforeSend:       params.BeforeSend,
			Environment:      params.Environment,
		}); err != nil {
		slog.Error("sentryreport: failed to initialize sentry", "err", err)
	}

	if params.DSN == "" {
		slog.Debug("sentryreport: disabled, no DSN provided")
	}

	cache, err := newCache(params.LRUSize)
	if err != nil {
		slog.Error("sentryreport: failed to create cache", "err", err)
		return nil
	}

	return &Client{recent: cache}
}

// CaptureException sends an error-level event enriched with the given tags.
func (s *Client) CaptureException(err error, tags map[string]string) {
	if !s.recent.shouldCapture(err) {
		return
	}

	localHub := sentry.CurrentHub().Clone()
	localHub.ConfigureScope(
		func(scope *sentry.Scope) {
			scope.SetTags(tags)
		},
	)
	localHub.CaptureException(err)
}

// CaptureMessage sends an info-level event enriched with the given tags.
func (s *Client) CaptureMessage(msg string, tags map[string]string) {
	if !s.recent.shouldCapture(errors.New(msg)) {
		return
	}

	localHub := sentry.CurrentHub().Clone()
	localHub.ConfigureScope(
		func(scope *sentry.Scope) {
			scope.SetTags(tags)
		},
	)
	localHub.CaptureMessage(msg)
}

// Reraise captures a recovered panic value and panics again. Used so
// unexpected panics in the TUI loop still reach Sentry before crashing.
func (s *Client) Reraise(val any, tags map[string]string) {
	if val == nil {
		return
	}
	err, ok := val.(error)
	if !ok {
		err = fmt.Errorf("%v", val)
	}
	s.CaptureException(err, tags)
	sentry.Flush(time.Second * 2)
	panic(val)
}

// Flush waits until the underlying transport has sent buffered events or
// the timeout elapses.
func (s *Client) Flush(timeout time.Duration) bool {
	return sentry.CurrentHub().Flush(timeout)
}
