/*
Package document holds a text together with its lines.

A Document keeps its text in a gap buffer (see package gap) and reports
every modification to a line tracker (see package linetrack). Clients may
subscribe to change events, which are broadcast asynchronously.

	doc := document.FromString("Hello\nWorld", nil)
	doc.Insert(5, ",")
	line, _ := doc.Line(0) // "Hello,"

Documents are not safe for concurrent modification.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/
package document

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// DocumentError is an error type for the document package.
type DocumentError string

func (e DocumentError) Error() string {
	return string(e)
}

// ErrClosed is flagged when subscribing to a document which has been closed.
const ErrClosed = DocumentError("document closed")
