package linetrack

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"github.com/npillmayer/linetrack/delimit"
)

// nodeID addresses a node in the arena of a lineTree. ID 0 is reserved
// and stands for "no node".
type nodeID uint32

const none nodeID = 0

// lineNode is a line in a lineTree.
//
// Positions are stored relative to the node's subtree: line is the number of
// lines in the left subtree, offset the number of bytes in the left subtree.
// Absolute positions are found by summing up along the path from the root.
type lineNode struct {
	parent, left, right nodeID
	line                int    // number of lines left of this node, within its subtree
	offset              int    // number of bytes left of this node, within its subtree
	length              int    // length of the line, including its delimiter
	delim               string // line delimiter, empty for the last line
	balance             int8   // height(right) - height(left)
}

// lineTree is an AVL tree of lines, ordered by position. It is the line
// index in use after the first modification of a text.
type lineTree struct {
	scan  delimit.Scanner
	nodes []lineNode // arena, nodes[0] is the sentinel
	free  []nodeID
	root  nodeID
}

// buildTree creates a perfectly balanced tree from a sequence of lines.
func buildTree(scan delimit.Scanner, recs []lineRecord) *lineTree {
	t := &lineTree{
		scan:  scan,
		nodes: make([]lineNode, 1, len(recs)+1),
	}
	// build returns a subtree together with its height, line count and byte count
	var build func(lo, hi int) (nodeID, int, int, int)
	build = func(lo, hi int) (nodeID, int, int, int) {
		if lo >= hi {
			return none, 0, 0, 0
		}
		mid := (lo + hi) / 2
		id := t.alloc(recs[mid].length, recs[mid].delim)
		l, lh, ll, lb := build(lo, mid)
		r, rh, rl, rb := build(mid+1, hi)
		t.setChild(id, l, true)
		t.setChild(id, r, false)
		n := &t.nodes[id]
		n.line, n.offset = ll, lb
		n.balance = int8(rh - lh)
		return id, max(lh, rh) + 1, ll + rl + 1, lb + rb + n.length
	}
	t.root, _, _, _ = build(0, len(recs))
	return t
}

// --- Arena -----------------------------------------------------------------

func (t *lineTree) alloc(length int, delim string) nodeID {
	n := lineNode{length: length, delim: delim}
	if k := len(t.free); k > 0 {
		id := t.free[k-1]
		t.free = t.free[:k-1]
		t.nodes[id] = n
		return id
	}
	t.nodes = append(t.nodes, n)
	return nodeID(len(t.nodes) - 1)
}

func (t *lineTree) release(id nodeID) {
	assert(id != none, "lineTree: sentinel cannot be released")
	t.nodes[id] = lineNode{}
	t.free = append(t.free, id)
}

// --- Links -----------------------------------------------------------------

// setChild links child as the left or right child of parent. A parent of
// none makes child the root.
func (t *lineTree) setChild(parent, child nodeID, left bool) {
	switch {
	case parent == none:
		t.root = child
	case left:
		t.nodes[parent].left = child
	default:
		t.nodes[parent].right = child
	}
	if child != none {
		t.nodes[child].parent = parent
	}
}

// replaceChild puts child into the place of old below parent.
func (t *lineTree) replaceChild(parent, old, child nodeID) {
	t.setChild(parent, child, parent == none || t.nodes[parent].left == old)
}

func (t *lineTree) leftmost(id nodeID) nodeID {
	for t.nodes[id].left != none {
		id = t.nodes[id].left
	}
	return id
}

// successor returns the next line in document order.
func (t *lineTree) successor(id nodeID) nodeID {
	if r := t.nodes[id].right; r != none {
		return t.leftmost(r)
	}
	p := t.nodes[id].parent
	for p != none && id == t.nodes[p].right {
		id, p = p, t.nodes[p].parent
	}
	return p
}

// --- Relative positions ----------------------------------------------------

// updateParentChain adds deltas to every ancestor of from, up to but excluding
// to, which has from's line in its left subtree.
func (t *lineTree) updateParentChain(from, to nodeID, deltaLength, deltaLines int) {
	for p := t.nodes[from].parent; p != to; from, p = p, t.nodes[p].parent {
		if t.nodes[p].left == from {
			t.nodes[p].offset += deltaLength
			t.nodes[p].line += deltaLines
		}
	}
}

// updateLength changes the length of a line. A line which shrinks to zero
// length, and is not the last line, is removed from the tree.
func (t *lineTree) updateLength(id nodeID, delta int) {
	n := &t.nodes[id]
	n.length += delta
	assert(n.length >= 0, "lineTree: negative line length")
	remove := n.length == 0 && n.delim != ""
	lines := 0
	if remove {
		lines = -1
	}
	if delta != 0 || lines != 0 {
		t.updateParentChain(id, none, delta, lines)
	}
	if remove {
		t.delete(id)
	}
}

// --- Insertion and deletion ------------------------------------------------

// insertAfter creates a new line directly after line id.
func (t *lineTree) insertAfter(id nodeID, length int, delim string) nodeID {
	added := t.alloc(length, delim)
	if r := t.nodes[id].right; r == none {
		t.setChild(id, added, false)
	} else {
		t.setChild(t.leftmost(r), added, true)
	}
	t.updateParentChain(added, none, length, 1)
	t.rebalanceAfterInsertion(added)
	return added
}

// delete unlinks a line. Its length has to be zero and its ancestors have to
// be updated already.
func (t *lineTree) delete(id nodeID) {
	n := t.nodes[id]
	parent := n.parent
	isLeft := parent == none || t.nodes[parent].left == id
	var toUpdate nodeID // the node which lost height
	var lostLeft bool
	switch {
	case n.left == none || n.right == none:
		// at most one child: the child takes the place of the node
		child := n.left
		if child == none {
			child = n.right
		}
		t.setChild(parent, child, isLeft)
		toUpdate, lostLeft = parent, isLeft
	case t.nodes[n.right].left == none:
		// right child has no left child: it takes the place of the node
		replacement := n.right
		t.setChild(parent, replacement, isLeft)
		t.setChild(replacement, n.left, true)
		r := &t.nodes[replacement]
		r.line, r.offset, r.balance = n.line, n.offset, n.balance
		toUpdate, lostLeft = replacement, false
	default:
		// in-order successor takes the place of the node
		replacement := t.leftmost(n.right)
		t.updateParentChain(replacement, id, -t.nodes[replacement].length, -1)
		toUpdate, lostLeft = t.nodes[replacement].parent, true
		t.setChild(toUpdate, t.nodes[replacement].right, true)
		t.setChild(parent, replacement, isLeft)
		t.setChild(replacement, n.left, true)
		t.setChild(replacement, n.right, false)
		r := &t.nodes[replacement]
		r.line, r.offset, r.balance = n.line, n.offset, n.balance
	}
	t.release(id)
	t.rebalanceAfterDeletion(toUpdate, lostLeft)
}

// --- AVL balancing ---------------------------------------------------------

func (t *lineTree) rebalanceAfterInsertion(id nodeID) {
	for p := t.nodes[id].parent; p != none; id, p = p, t.nodes[p].parent {
		if t.nodes[p].left == id {
			t.nodes[p].balance--
		} else {
			t.nodes[p].balance++
		}
		switch t.nodes[p].balance {
		case 0:
			return
		case 2, -2:
			t.rebalance(p)
			return
		}
	}
}

func (t *lineTree) rebalanceAfterDeletion(p nodeID, lostLeft bool) {
	for p != none {
		if lostLeft {
			t.nodes[p].balance++
		} else {
			t.nodes[p].balance--
		}
		switch t.nodes[p].balance {
		case 1, -1:
			return // height of subtree unchanged
		case 2, -2:
			p = t.rebalance(p)
			if t.nodes[p].balance != 0 {
				return
			}
		}
		parent := t.nodes[p].parent
		if parent == none {
			return
		}
		lostLeft = t.nodes[parent].left == p
		p = parent
	}
}

// rebalance restores the AVL property of a node with balance ±2 and
// returns the new root of its subtree.
func (t *lineTree) rebalance(id nodeID) nodeID {
	switch t.nodes[id].balance {
	case 2:
		if r := t.nodes[id].right; t.nodes[r].balance < 0 {
			t.rotateRight(r)
		}
		return t.rotateLeft(id)
	case -2:
		if l := t.nodes[id].left; t.nodes[l].balance > 0 {
			t.rotateLeft(l)
		}
		return t.rotateRight(id)
	}
	return id
}

// rotateLeft lifts the right child of p into p's place. Only the lifted
// node's relative position changes, p keeps its left subtree.
func (t *lineTree) rotateLeft(p nodeID) nodeID {
	r := t.nodes[p].right
	t.nodes[r].offset += t.nodes[p].offset + t.nodes[p].length
	t.nodes[r].line += t.nodes[p].line + 1
	t.replaceChild(t.nodes[p].parent, p, r)
	t.setChild(p, t.nodes[r].left, false)
	t.setChild(r, p, true)
	pb := t.nodes[p].balance - 1 - max(t.nodes[r].balance, 0)
	t.nodes[r].balance += -1 + min(pb, 0)
	t.nodes[p].balance = pb
	return r
}

// rotateRight lifts the left child of p into p's place. p loses the lifted
// node and its left subtree from its relative position.
func (t *lineTree) rotateRight(p nodeID) nodeID {
	l := t.nodes[p].left
	t.nodes[p].offset -= t.nodes[l].offset + t.nodes[l].length
	t.nodes[p].line -= t.nodes[l].line + 1
	t.replaceChild(t.nodes[p].parent, p, l)
	t.setChild(p, t.nodes[l].right, true)
	t.setChild(l, p, false)
	pb := t.nodes[p].balance + 1 - min(t.nodes[l].balance, 0)
	t.nodes[l].balance += 1 + max(pb, 0)
	t.nodes[p].balance = pb
	return l
}
