package linetrack

import (
	"fmt"
	"io"
	"strings"
)

// Tracker2Dot outputs the internal structure of a Tracker in Graphviz DOT
// format (for debugging purposes). A tracker which has not been modified since
// its text was set is output as a chain of lines.
func Tracker2Dot(t *Tracker, w io.Writer) {
	t.flush()
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12];\n")
	var nodelist, edgelist strings.Builder
	switch idx := t.index.(type) {
	case *linearLines:
		for i, l := range idx.lines {
			fmt.Fprintf(&nodelist, "\"%d\" [label=\"%d @%d\\n%s\" %s];\n", i+1, l.length, l.offset,
				delimLabel(l.delim), nodeDotStyles(true))
			if i > 0 {
				fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\";\n", i, i+1)
			}
		}
	case *lineTree:
		idx.each(func(id nodeID, start, line int) {
			n := &idx.nodes[id]
			leaf := n.left == none && n.right == none
			label := fmt.Sprintf("#%d %d @%d\\n%s\\n%+d", line, n.length, start, delimLabel(n.delim), n.balance)
			fmt.Fprintf(&nodelist, "\"%d\" [label=\"%s\" %s];\n", id, label, nodeDotStyles(leaf))
			for i, child := range []nodeID{n.left, n.right} {
				switch {
				case child != none:
					fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\";\n", id, child)
				case !leaf:
					nilid := int(id) + (i+1)*10000
					fmt.Fprintf(&nodelist, "\"%d\" %s;\n", nilid, emptyNode())
					fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\";\n", id, nilid)
				}
			}
		})
	}
	io.WriteString(w, nodelist.String())
	io.WriteString(w, edgelist.String())
	io.WriteString(w, "}\n")
}

// each calls f for every line in document order, with its absolute start
// position and line number.
func (t *lineTree) each(f func(id nodeID, start, line int)) {
	start, line := 0, 0
	for id := t.leftmost(t.root); id != none; id = t.successor(id) {
		f(id, start, line)
		start += t.nodes[id].length
		line++
	}
}

func delimLabel(delim string) string {
	if delim == "" {
		return "⊣"
	}
	return strings.NewReplacer("\r", "\\\\r", "\n", "\\\\n").Replace(delim)
}

func emptyNode() string {
	return "[label=\"\",color=black,shape=circle,fixedsize=true,width=.4]"
}

func nodeDotStyles(isleaf bool) string {
	s := ",style=filled"
	if isleaf {
		s += ",shape=box"
	} else {
		s += ",color=black,fillcolor=\"#a3d7e4\""
		s += ",shape=circle"
	}
	return s
}
