package delimit

import (
	"fmt"
	"strings"
)

// Info describes an occurrence of a line delimiter within a text.
type Info struct {
	Index     int    // byte position of the delimiter
	Length    int    // length of the delimiter in bytes
	Delimiter string // the delimiter text
}

// End returns the position just after the delimiter.
func (info Info) End() int {
	return info.Index + info.Length
}

// Scanner finds line delimiters.
//
// NextDelimiter returns the first delimiter found at or after position from.
// A delimiter will never be of length 0.
type Scanner interface {
	NextDelimiter(text string, from int) (Info, bool)
	LegalDelimiters() []string
}

// Func is an adapter to use ordinary functions as Scanners.
// The set of legal delimiters of a Func is unknown.
type Func func(text string, from int) (Info, bool)

// NextDelimiter calls f(text, from).
func (f Func) NextDelimiter(text string, from int) (Info, bool) {
	return f(text, from)
}

// LegalDelimiters returns nil.
func (f Func) LegalDelimiters() []string {
	return nil
}

// Count returns the number of delimiters s finds in text.
func Count(s Scanner, text string) int {
	cnt, pos := 0, 0
	for {
		info, ok := s.NextDelimiter(text, pos)
		if !ok {
			return cnt
		}
		cnt++
		pos = info.End()
	}
}

// --- Fixed delimiters ------------------------------------------------------

type fixed string

// Newline returns a scanner which recognizes "\n" only.
func Newline() Scanner {
	return fixed("\n")
}

// Fixed returns a scanner for a single fixed delimiter.
func Fixed(delim string) (Scanner, error) {
	if delim == "" {
		return nil, ErrIllegalDelimiter
	}
	return fixed(delim), nil
}

func (d fixed) NextDelimiter(text string, from int) (Info, bool) {
	if from >= len(text) {
		return Info{}, false
	}
	i := strings.Index(text[from:], string(d))
	if i < 0 {
		return Info{}, false
	}
	return Info{Index: from + i, Length: len(d), Delimiter: string(d)}, true
}

func (d fixed) LegalDelimiters() []string {
	return []string{string(d)}
}

// --- Sets of delimiters ----------------------------------------------------

type delimiterSet []string

// Set returns a scanner for a set of delimiters. If more than one delimiter
// matches, the one at the lowest position wins. For matches at the same
// position the longest one wins, and for equal lengths the one given first.
func Set(delims ...string) (Scanner, error) {
	if len(delims) == 0 {
		return nil, fmt.Errorf("%w: empty set of delimiters", ErrIllegalDelimiter)
	}
	set := make(delimiterSet, len(delims))
	for i, d := range delims {
		if d == "" {
			return nil, fmt.Errorf("%w: empty delimiter at position %d", ErrIllegalDelimiter, i)
		}
		set[i] = d
	}
	if len(set) == 1 {
		return fixed(set[0]), nil
	}
	return set, nil
}

func (set delimiterSet) NextDelimiter(text string, from int) (Info, bool) {
	if from >= len(text) {
		return Info{}, false
	}
	best := Info{Index: -1}
	for _, d := range set {
		i := strings.Index(text[from:], d)
		if i < 0 {
			continue
		}
		i += from
		if best.Index < 0 || i < best.Index || (i == best.Index && len(d) > best.Length) {
			best = Info{Index: i, Length: len(d), Delimiter: d}
		}
	}
	return best, best.Index >= 0
}

func (set delimiterSet) LegalDelimiters() []string {
	return append([]string(nil), set...)
}

// --- CR/LF -----------------------------------------------------------------

type crlf struct{}

var legalCRLF = []string{"\r", "\n", "\r\n"}

// Default returns a scanner which recognizes "\r", "\n" and "\r\n".
// A "\r" directly followed by "\n" is a single delimiter.
func Default() Scanner {
	return crlf{}
}

func (crlf) NextDelimiter(text string, from int) (Info, bool) {
	for i := from; i < len(text); i++ {
		switch text[i] {
		case '\n':
			return Info{Index: i, Length: 1, Delimiter: "\n"}, true
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				return Info{Index: i, Length: 2, Delimiter: "\r\n"}, true
			}
			return Info{Index: i, Length: 1, Delimiter: "\r"}, true
		}
	}
	return Info{}, false
}

func (crlf) LegalDelimiters() []string {
	return append([]string(nil), legalCRLF...)
}
