package linetrack

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Dump writes a table of all lines to w (for debugging purposes). Output
// to a terminal is colored.
func (t *Tracker) Dump(w io.Writer) {
	t.flush()
	header := color.New(color.FgBlue, color.Bold)
	delim := color.New(color.FgRed)
	if !isTerminal(w) {
		header.DisableColor()
		delim.DisableColor()
	}
	switch idx := t.index.(type) {
	case *linearLines:
		header.Fprintf(w, "linear index of %d lines, %d bytes\n", idx.numberOfLines(), idx.length())
	case *lineTree:
		h, _, _, _ := idx.checkNode(idx.root)
		header.Fprintf(w, "tree index of %d lines, %d bytes, height %d\n", idx.numberOfLines(), idx.length(), h)
	}
	for line := 0; line < t.index.numberOfLines(); line++ {
		rec, _ := t.index.lineAt(line)
		fmt.Fprintf(w, "%6d @%8d len %6d ", line, rec.offset, rec.length)
		delim.Fprintf(w, "%q\n", rec.delim)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
