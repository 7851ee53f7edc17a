/*
Package delimit provides line delimiter scanners.

A Scanner finds the next line delimiter in a run of text. Line trackers
consult a scanner to segment inserted text into lines, so the choice of
scanner decides what counts as a line break: a single newline, a fixed
string, a priority-ordered set of strings, the usual CR/LF family, or a
regular expression.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package delimit

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// DelimitError is an error type for the delimit module.
type DelimitError string

func (e DelimitError) Error() string {
	return string(e)
}

// ErrIllegalDelimiter is flagged for empty delimiters or for patterns matching
// the empty string.
const ErrIllegalDelimiter = DelimitError("illegal line delimiter")
