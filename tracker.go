package linetrack

import (
	"fmt"

	"github.com/npillmayer/linetrack/delimit"
)

// lineIndex is implemented by the two representations of lines a Tracker
// may use: *linearLines and *lineTree.
type lineIndex interface {
	numberOfLines() int
	length() int
	lineOfOffset(offset int) (int, error)
	lineAt(line int) (lineRecord, error)
	lineAtOffset(offset int) (lineRecord, error)
	replace(offset, length int, text string) error
}

var _ lineIndex = (*linearLines)(nil)
var _ lineIndex = (*lineTree)(nil)

// Tracker maps between byte offsets and line numbers of a text.
//
// A tracker does not hold the text itself. Clients have to report every
// modification of the text by calling Replace, or Set for a new text.
//
// A freshly set text is held as a sequence of lines, which is cheap to
// create. The first call to Replace converts this sequence into a balanced
// tree of lines, which supports modifications in O(log n).
//
// Lines are numbered starting with 0. Every line but the last one ends with
// a line delimiter, as found by the tracker's delimiter scanner. The last line
// has no delimiter and may be empty, i.e. a text always has at least one line.
//
// Trackers are not safe for concurrent use.
type Tracker struct {
	scan    delimit.Scanner
	index   lineIndex
	session *rewriteSession // non-nil during a rewrite session
}

// New creates a tracker for an empty text. Lines are delimited by scan,
// which defaults to delimit.Default() if nil.
func New(scan delimit.Scanner) *Tracker {
	if scan == nil {
		scan = delimit.Default()
	}
	return &Tracker{
		scan:  scan,
		index: newLinear(scan, ""),
	}
}

// Set replaces the tracked text. The tracker falls back to a linear sequence
// of lines until the next call to Replace.
func (t *Tracker) Set(text string) {
	t.index = newLinear(t.scan, text)
	if t.session != nil {
		t.session.reset(len(text))
	}
	T().Debugf("linetrack: set text of %d bytes with %d lines", len(text), t.index.numberOfLines())
}

// Replace reports a modification of the text: length bytes at offset are
// replaced by text.
func (t *Tracker) Replace(offset, length int, text string) error {
	if t.session != nil {
		return t.session.enqueue(offset, length, text)
	}
	return t.replace(offset, length, text)
}

func (t *Tracker) replace(offset, length int, text string) error {
	if offset < 0 || length < 0 || offset+length > t.index.length() {
		return fmt.Errorf("%w: range %d+%d", ErrOutOfRange, offset, length)
	}
	switch idx := t.index.(type) {
	case *linearLines:
		t.index = buildTree(t.scan, idx.lines)
		T().Debugf("linetrack: promoted %d lines to tree", len(idx.lines))
	}
	return t.index.replace(offset, length, text)
}

// ComputeNumberOfLines returns the number of lines text would have. It does
// not consider or change the tracked text.
func (t *Tracker) ComputeNumberOfLines(text string) int {
	return delimit.Count(t.scan, text) + 1
}

// LegalLineDelimiters returns the delimiters the tracker recognizes, or nil if
// these are not known in advance.
func (t *Tracker) LegalLineDelimiters() []string {
	return t.scan.LegalDelimiters()
}

// Len returns the length of the tracked text.
func (t *Tracker) Len() int {
	t.flush()
	return t.index.length()
}

// NumberOfLines returns the number of lines of the tracked text.
func (t *Tracker) NumberOfLines() int {
	t.flush()
	return t.index.numberOfLines()
}

// NumberOfLinesIn returns the number of lines a range of text touches.
// An empty range touches 1 line.
func (t *Tracker) NumberOfLinesIn(offset, length int) (int, error) {
	t.flush()
	if length < 0 {
		return 0, fmt.Errorf("%w: length %d", ErrOutOfRange, length)
	}
	start, err := t.index.lineOfOffset(offset)
	if err != nil {
		return 0, err
	}
	if length == 0 {
		return 1, nil
	}
	end, err := t.index.lineOfOffset(offset + length)
	if err != nil {
		return 0, err
	}
	return end - start + 1, nil
}

// LineNumberOfOffset returns the number of the line containing offset.
// An offset at the end of the text belongs to the last line.
func (t *Tracker) LineNumberOfOffset(offset int) (int, error) {
	t.flush()
	return t.index.lineOfOffset(offset)
}

// LineOffset returns the start position of a line.
func (t *Tracker) LineOffset(line int) (int, error) {
	t.flush()
	rec, err := t.index.lineAt(line)
	return rec.offset, err
}

// LineLength returns the length of a line, including its delimiter.
func (t *Tracker) LineLength(line int) (int, error) {
	t.flush()
	rec, err := t.index.lineAt(line)
	return rec.length, err
}

// LineDelimiter returns the delimiter of a line. The last line has no
// delimiter, which is reported as "".
func (t *Tracker) LineDelimiter(line int) (string, error) {
	t.flush()
	rec, err := t.index.lineAt(line)
	return rec.delim, err
}

// LineInformation returns the region of a line, excluding its delimiter.
//
// For compatibility with older clients, a line number one past the last line
// is accepted if the text has more than one line. The result is an empty
// region at the end of the text.
func (t *Tracker) LineInformation(line int) (Region, error) {
	t.flush()
	rec, err := t.index.lineAt(line)
	if err != nil {
		if line > 0 && line == t.index.numberOfLines() {
			return Region{Offset: t.index.length()}, nil
		}
		return Region{}, err
	}
	return Region{Offset: rec.offset, Length: rec.length - len(rec.delim)}, nil
}

// LineInformationOfOffset returns the region of the line containing offset,
// excluding the line's delimiter.
func (t *Tracker) LineInformationOfOffset(offset int) (Region, error) {
	t.flush()
	rec, err := t.index.lineAtOffset(offset)
	if err != nil {
		return Region{}, err
	}
	return Region{Offset: rec.offset, Length: rec.length - len(rec.delim)}, nil
}

// Check validates the internal invariants of the tracker. It walks all lines
// and is meant for tests and debugging.
func (t *Tracker) Check() error {
	t.flush()
	switch idx := t.index.(type) {
	case *linearLines:
		return idx.check()
	case *lineTree:
		return idx.check()
	}
	return nil
}
