/*
Package textfile loads UTF-8 text files as documents.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.
*/
package textfile

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// FileError is an error type for the textfile package.
type FileError string

func (e FileError) Error() string {
	return string(e)
}

// ErrNotText is flagged for content which is not valid UTF-8.
const ErrNotText = FileError("not a UTF-8 text")

// ErrNotRegular is flagged for paths which do not name a regular file.
const ErrNotRegular = FileError("not a regular file")
