package linetrack

import (
	"fmt"
	"sort"

	"github.com/npillmayer/linetrack/delimit"
)

// lineRecord is a line with an absolute position.
type lineRecord struct {
	offset int    // start position of the line
	length int    // length of the line, including its delimiter
	delim  string // line delimiter, empty for the last line
}

func (l lineRecord) end() int {
	return l.offset + l.length
}

// linearLines is a sequence of lines in document order. It is the line index
// for a freshly set text. Queries use binary search, modifications are O(n).
//
// The sequence is never empty: its last line has no delimiter and may be of
// length 0.
type linearLines struct {
	scan  delimit.Scanner
	lines []lineRecord
}

func newLinear(scan delimit.Scanner, text string) *linearLines {
	ll := &linearLines{scan: scan}
	ll.lines = ll.segment(text, 0, 0, 0, "", ll.lines)
	return ll
}

// segment appends the lines of text to recs. The first line starts at
// position pos and is prefixed by head bytes; the last line has tail
// additional bytes and delimiter tailDelim.
func (ll *linearLines) segment(text string, pos, head, tail int, tailDelim string,
	recs []lineRecord) []lineRecord {
	//
	consumed := 0
	for {
		info, ok := ll.scan.NextDelimiter(text, consumed)
		if !ok {
			break
		}
		length := head + info.End() - consumed
		recs = append(recs, lineRecord{offset: pos, length: length, delim: info.Delimiter})
		pos += length
		consumed, head = info.End(), 0
	}
	return append(recs, lineRecord{offset: pos, length: head + len(text) - consumed + tail, delim: tailDelim})
}

func (ll *linearLines) numberOfLines() int {
	return len(ll.lines)
}

func (ll *linearLines) length() int {
	return ll.lines[len(ll.lines)-1].end()
}

// lineOfOffset finds the line containing offset. The end of the text
// belongs to the last line.
func (ll *linearLines) lineOfOffset(offset int) (int, error) {
	if offset < 0 || offset > ll.length() {
		return 0, fmt.Errorf("%w: offset %d", ErrOutOfRange, offset)
	}
	i := sort.Search(len(ll.lines), func(i int) bool {
		return ll.lines[i].end() > offset
	})
	if i == len(ll.lines) {
		return i - 1, nil
	}
	return i, nil
}

func (ll *linearLines) lineAt(line int) (lineRecord, error) {
	if line < 0 || line >= len(ll.lines) {
		return lineRecord{}, fmt.Errorf("%w: line %d", ErrOutOfRange, line)
	}
	return ll.lines[line], nil
}

func (ll *linearLines) lineAtOffset(offset int) (lineRecord, error) {
	line, err := ll.lineOfOffset(offset)
	if err != nil {
		return lineRecord{}, err
	}
	return ll.lines[line], nil
}

// replace removes length bytes at offset and inserts text. It re-segments
// the affected lines in the same way the line tree does, and shifts the
// positions of all following lines.
func (ll *linearLines) replace(offset, length int, text string) error {
	offset, length, text, err := widen(ll, offset, length, text)
	if err != nil {
		return err
	}
	first, err := ll.lineOfOffset(offset)
	if err != nil {
		return err
	}
	last, err := ll.lineOfOffset(offset + length)
	if err != nil {
		return err
	}
	f, l := ll.lines[first], ll.lines[last]
	head := offset - f.offset
	tail := l.end() - (offset + length)
	repl := ll.segment(text, f.offset, head, tail, l.delim, nil)
	rest := ll.lines[last+1:]
	lines := make([]lineRecord, 0, first+len(repl)+len(rest))
	lines = append(lines, ll.lines[:first]...)
	lines = append(lines, repl...)
	delta := len(text) - length
	for _, r := range rest {
		r.offset += delta
		lines = append(lines, r)
	}
	ll.lines = lines
	return nil
}
