package linetrack

import "fmt"

// widen extends an edit to the delimiters bordering it, and returns the
// extended edit. Bytes of these delimiters are known to the index and are
// re-inserted as part of text, so they are scanned together with the new
// content. Thus a line ending in "\r" followed by an inserted "\n" ends up
// with a single delimiter "\r\n", and a "\r\n" cut in half is re-scanned.
//
// widen checks the range of the edit.
func widen(ix lineIndex, offset, length int, text string) (int, int, string, error) {
	if offset < 0 || length < 0 || offset+length > ix.length() {
		return 0, 0, "", fmt.Errorf("%w: range %d+%d", ErrOutOfRange, offset, length)
	}
	line, err := ix.lineOfOffset(offset)
	if err != nil {
		return 0, 0, "", err
	}
	first, _ := ix.lineAt(line)
	// edit starts within a delimiter: keep its prefix in text
	if dstart := first.end() - len(first.delim); first.delim != "" && offset > dstart {
		text = first.delim[:offset-dstart] + text
		length += offset - dstart
		offset = dstart
	}
	// edit starts at the beginning of a line: the previous delimiter is adjacent
	if offset == first.offset && line > 0 {
		prev, _ := ix.lineAt(line - 1)
		text = prev.delim + text
		length += len(prev.delim)
		offset -= len(prev.delim)
	}
	// edit ends within or right before a delimiter: keep the rest of it in text
	end := offset + length
	last, err := ix.lineAtOffset(end)
	if err != nil {
		return 0, 0, "", err
	}
	if dstart := last.end() - len(last.delim); last.delim != "" && end >= dstart {
		text += last.delim[end-dstart:]
		length = last.end() - offset
	}
	return offset, length, text, nil
}
