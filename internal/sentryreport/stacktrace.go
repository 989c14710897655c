package sentryreport

import (
	"reflect"
	"strings"

	"github.com/getsentry/sentry-go"
)

var (
	// reportPackage is the import path of this package.
	reportPackage = reflect.TypeFor[Client]().PkgPath()

	// loggerPackage is the import path of the CoreLogger, derived from this
	// package's own path since importing it here would be a cycle.
	loggerPackage = strings.TrimSuffix(reportPackage, "sentryreport") + "observability"
)

// RemoveLoggerFrames is a [sentry.EventProcessor] that strips logging
// infrastructure frames from the top of each stack trace, so the top frame
// is the caller of the logger method rather than the logger itself.
func RemoveLoggerFrames(
	event *sentry.Event,
	hint *sentry.EventHint,
) *sentry.Event {
	for _, exception := range event.Exception {
		if exception.Stacktrace == nil {
			continue
		}

		// Frames are ordered caller-first (caller before callee).
		frames := exception.Stacktrace.Frames
		for len(frames) > 0 && shouldHideFrame(&frames[len(frames)-1]) {
			frames = frames[:len(frames)-1]
		}

		exception.Stacktrace.Frames = frames
	}

	return event
}

// shouldHideFrame reports whether a stack frame should be hidden.
//
// Accepts sentry.Frame by pointer as it is a large struct.
func shouldHideFrame(frame *sentry.Frame) bool {
	// Same strategy the Sentry SDK uses to filter out its own frames.
	return strings.HasPrefix(frame.Module, loggerPackage) ||
		strings.HasPrefix(frame.Module, reportPackage)
}
