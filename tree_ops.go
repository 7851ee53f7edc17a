package linetrack

import (
	"fmt"
)

// --- Queries ---------------------------------------------------------------

// nodeByOffset finds the line containing offset. The end of the text
// belongs to the last line. It returns the line's node, start position and
// line number.
func (t *lineTree) nodeByOffset(offset int) (nodeID, int, int, error) {
	if total := t.length(); offset == total {
		id, lines := t.root, 0
		for t.nodes[id].right != none {
			lines += t.nodes[id].line + 1
			id = t.nodes[id].right
		}
		return id, total - t.nodes[id].length, lines + t.nodes[id].line, nil
	}
	remaining, line := offset, 0
	id := t.root
	for id != none && offset >= 0 {
		n := &t.nodes[id]
		if remaining < n.offset {
			id = n.left
			continue
		}
		remaining -= n.offset
		line += n.line
		if remaining < n.length {
			return id, offset - remaining, line, nil
		}
		remaining -= n.length
		line++
		id = n.right
	}
	return none, 0, 0, fmt.Errorf("%w: offset %d", ErrOutOfRange, offset)
}

// nodeByLine finds a line by its number and returns its node and start position.
func (t *lineTree) nodeByLine(line int) (nodeID, int, error) {
	remaining, offset := line, 0
	id := t.root
	for id != none {
		n := &t.nodes[id]
		switch {
		case remaining == n.line:
			return id, offset + n.offset, nil
		case remaining < n.line:
			id = n.left
		default:
			remaining -= n.line + 1
			offset += n.offset + n.length
			id = n.right
		}
	}
	return none, 0, fmt.Errorf("%w: line %d", ErrOutOfRange, line)
}

func (t *lineTree) numberOfLines() int {
	lines := 0
	for id := t.root; id != none; id = t.nodes[id].right {
		lines += t.nodes[id].line + 1
	}
	return lines
}

func (t *lineTree) length() int {
	length := 0
	for id := t.root; id != none; id = t.nodes[id].right {
		length += t.nodes[id].offset + t.nodes[id].length
	}
	return length
}

func (t *lineTree) lineOfOffset(offset int) (int, error) {
	_, _, line, err := t.nodeByOffset(offset)
	return line, err
}

func (t *lineTree) lineAt(line int) (lineRecord, error) {
	id, start, err := t.nodeByLine(line)
	if err != nil {
		return lineRecord{}, err
	}
	return lineRecord{offset: start, length: t.nodes[id].length, delim: t.nodes[id].delim}, nil
}

func (t *lineTree) lineAtOffset(offset int) (lineRecord, error) {
	id, start, _, err := t.nodeByOffset(offset)
	if err != nil {
		return lineRecord{}, err
	}
	return lineRecord{offset: start, length: t.nodes[id].length, delim: t.nodes[id].delim}, nil
}

// --- Modification ----------------------------------------------------------

// replace removes length bytes at offset and inserts text.
//
// The lines containing the start and the end of the removed range are
// located first. Lines fully inside the range are deleted, the text is
// segmented into lines, and the first and last segment are merged with the
// remainders of the first and last affected line.
func (t *lineTree) replace(offset, length int, text string) error {
	offset, length, text, err := widen(t, offset, length, text)
	if err != nil {
		return err
	}
	first, firstStart, _, err := t.nodeByOffset(offset)
	if err != nil {
		return err
	}
	last := first
	firstEnd := firstStart + t.nodes[first].length
	if offset+length >= firstEnd {
		if last, _, _, err = t.nodeByOffset(offset + length); err != nil {
			return err
		}
	}
	firstRemainder := firstEnd - offset
	if first == last {
		t.replaceInLine(first, text, length, firstRemainder)
	} else {
		t.replaceLines(first, last, text, length, firstRemainder)
	}
	if debugChecks {
		assert(t.check() == nil, "lineTree: invariants violated after replace")
	}
	return nil
}

// replaceInLine handles a modification within a single line.
func (t *lineTree) replaceInLine(node nodeID, text string, length, firstRemainder int) {
	info, ok := t.scan.NextDelimiter(text, 0)
	if !ok {
		// no new lines, just a change of length
		t.updateLength(node, len(text)-length)
		return
	}
	// the line is split: the tail, after the removed range, goes to a new line
	remainder := firstRemainder - length
	remainderDelim := t.nodes[node].delim
	consumed := info.End()
	t.updateLength(node, consumed-firstRemainder)
	t.nodes[node].delim = info.Delimiter
	node, consumed = t.insertLines(node, text, consumed)
	t.insertAfter(node, remainder+len(text)-consumed, remainderDelim)
}

// replaceLines handles a modification spanning more than one line.
func (t *lineTree) replaceLines(node, last nodeID, text string, length, firstRemainder int) {
	for s := t.successor(node); s != last; {
		length -= t.nodes[s].length
		obsolete := s
		s = t.successor(s)
		t.updateLength(obsolete, -t.nodes[obsolete].length)
	}
	info, ok := t.scan.NextDelimiter(text, 0)
	if !ok {
		// no new lines: the first and the last line are joined
		t.join(node, last, len(text)-length)
		return
	}
	consumed := info.End()
	t.updateLength(node, consumed-firstRemainder)
	t.nodes[node].delim = info.Delimiter
	length -= firstRemainder
	_, consumed = t.insertLines(node, text, consumed)
	t.updateLength(last, len(text)-consumed-length)
}

// insertLines inserts every complete line of text, starting at position
// consumed, after node. It returns the last line inserted and the position
// after its delimiter.
func (t *lineTree) insertLines(node nodeID, text string, consumed int) (nodeID, int) {
	for {
		info, ok := t.scan.NextDelimiter(text, consumed)
		if !ok {
			return node, consumed
		}
		length := info.End() - consumed
		node = t.insertAfter(node, length, info.Delimiter)
		consumed += length
	}
}

// join merges line one into the following line two, changing the merged
// length by delta.
func (t *lineTree) join(one, two nodeID, delta int) {
	length := t.nodes[one].length
	t.updateLength(one, -length)
	t.updateLength(two, length+delta)
}
