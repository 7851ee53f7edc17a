package delimit

import (
	"fmt"
	"regexp"
)

// pattern is a delimiter scanner driven by a regular expression.
type pattern struct {
	re *regexp.Regexp
}

// Pattern returns a scanner which treats every match of a regular expression
// as a line delimiter, e.g.
//
//	Pattern(`\r\n|\n|\x{2028}`)
//
// Expressions which match the empty string are rejected. The set of legal
// delimiters of a pattern scanner is unknown, i.e. LegalDelimiters returns nil.
func Pattern(expr string) (Scanner, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		T().Errorf("delimiter pattern: cannot compile regular expression input")
		return nil, fmt.Errorf("illegal delimiter pattern: %w", err)
	}
	if re.MatchString("") {
		T().Errorf("delimiter pattern: regular expression matches empty string")
		return nil, ErrIllegalDelimiter
	}
	return pattern{re: re}, nil
}

func (p pattern) NextDelimiter(text string, from int) (Info, bool) {
	if from >= len(text) {
		return Info{}, false
	}
	loc := p.re.FindStringIndex(text[from:])
	if loc == nil {
		return Info{}, false
	}
	return Info{
		Index:     from + loc[0],
		Length:    loc[1] - loc[0],
		Delimiter: text[from+loc[0] : from+loc[1]],
	}, true
}

func (p pattern) LegalDelimiters() []string {
	return nil
}
