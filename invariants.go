package linetrack

import "fmt"

// ErrCorrupted signals a violated invariant of a line index. It is reported
// by Check only; trackers never return it from regular operations.
const ErrCorrupted = TrackerError("line index corrupted")

// check validates the tree independently of the relative positions stored in
// its nodes: parent links, AVL balance, subtree counts and delimiters.
func (t *lineTree) check() error {
	if t == nil || t.root == none {
		return fmt.Errorf("%w: empty tree", ErrCorrupted)
	}
	if t.nodes[t.root].parent != none {
		return fmt.Errorf("%w: root has a parent", ErrCorrupted)
	}
	if _, _, _, err := t.checkNode(t.root); err != nil {
		return err
	}
	// every line but the last one needs a delimiter and a length > 0
	last := t.root
	for t.nodes[last].right != none {
		last = t.nodes[last].right
	}
	for id := t.leftmost(t.root); id != none; id = t.successor(id) {
		n := &t.nodes[id]
		if id == last {
			if n.delim != "" {
				return fmt.Errorf("%w: last line has delimiter %q", ErrCorrupted, n.delim)
			}
		} else if n.delim == "" || n.length == 0 {
			return fmt.Errorf("%w: line of length %d with delimiter %q", ErrCorrupted, n.length, n.delim)
		}
	}
	return nil
}

// checkNode returns height, number of lines and number of bytes of a subtree.
func (t *lineTree) checkNode(id nodeID) (height, lines, bytes int, err error) {
	if id == none {
		return 0, 0, 0, nil
	}
	n := &t.nodes[id]
	for _, child := range []nodeID{n.left, n.right} {
		if child != none && t.nodes[child].parent != id {
			return 0, 0, 0, fmt.Errorf("%w: broken parent link of node %d", ErrCorrupted, child)
		}
	}
	lh, ll, lb, err := t.checkNode(n.left)
	if err != nil {
		return 0, 0, 0, err
	}
	rh, rl, rb, err := t.checkNode(n.right)
	if err != nil {
		return 0, 0, 0, err
	}
	if int(n.balance) != rh-lh {
		return 0, 0, 0, fmt.Errorf("%w: node %d has balance %d, heights are %d/%d",
			ErrCorrupted, id, n.balance, lh, rh)
	}
	if n.balance < -1 || n.balance > 1 {
		return 0, 0, 0, fmt.Errorf("%w: node %d is unbalanced (%d)", ErrCorrupted, id, n.balance)
	}
	if n.line != ll || n.offset != lb {
		return 0, 0, 0, fmt.Errorf("%w: node %d has line=%d/offset=%d, left subtree has %d/%d",
			ErrCorrupted, id, n.line, n.offset, ll, lb)
	}
	if n.length < 0 {
		return 0, 0, 0, fmt.Errorf("%w: node %d has negative length", ErrCorrupted, id)
	}
	return max(lh, rh) + 1, ll + rl + 1, lb + rb + n.length, nil
}

// check validates a linear sequence of lines.
func (ll *linearLines) check() error {
	if len(ll.lines) == 0 {
		return fmt.Errorf("%w: no lines", ErrCorrupted)
	}
	pos := 0
	for i, l := range ll.lines {
		if l.offset != pos {
			return fmt.Errorf("%w: line %d starts at %d, expected %d", ErrCorrupted, i, l.offset, pos)
		}
		if i == len(ll.lines)-1 {
			if l.delim != "" {
				return fmt.Errorf("%w: last line has delimiter %q", ErrCorrupted, l.delim)
			}
		} else if l.delim == "" || l.length == 0 {
			return fmt.Errorf("%w: line %d of length %d with delimiter %q", ErrCorrupted, i, l.length, l.delim)
		}
		pos += l.length
	}
	return nil
}
