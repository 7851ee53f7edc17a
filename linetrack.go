package linetrack

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// TrackerError is an error type for the linetrack module.
type TrackerError string

func (e TrackerError) Error() string {
	return string(e)
}

// ErrOutOfRange is flagged whenever an offset is outside of the text or a
// line number is outside of the text's lines. Errors returned by a Tracker
// wrap it together with the offending value.
const ErrOutOfRange = TrackerError("offset or line out of range")

// ErrRewriteSession is flagged when starting a rewrite session while
// another one is active.
const ErrRewriteSession = TrackerError("rewrite session already active")

// Region is a range of text.
type Region struct {
	Offset int
	Length int
}

// End returns the position after the region.
func (r Region) End() int {
	return r.Offset + r.Length
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
