package linetrack

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/linetrack/delimit"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// lineOf returns offset and length of a line, including its delimiter.
func lineOf(t *testing.T, tr *Tracker, line int) (int, int) {
	t.Helper()
	offset, err := tr.LineOffset(line)
	if err != nil {
		t.Fatalf("line offset of line %d: %v", line, err)
	}
	length, err := tr.LineLength(line)
	if err != nil {
		t.Fatalf("line length of line %d: %v", line, err)
	}
	return offset, length
}

func TestEmptyTracker(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	tr := New(delimit.Newline())
	tr.Set("")
	if tr.NumberOfLines() != 1 {
		t.Errorf("expected empty text to have 1 line, has %d", tr.NumberOfLines())
	}
	r, err := tr.LineInformation(0)
	if err != nil || r != (Region{0, 0}) {
		t.Errorf("expected line 0 to be (0,0), is %v, err=%v", r, err)
	}
	if d, _ := tr.LineDelimiter(0); d != "" {
		t.Errorf("expected last line to have no delimiter, has %q", d)
	}
}

func TestSetLines(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	tr := New(delimit.Newline())
	tr.Set("a")
	if n := tr.NumberOfLines(); n != 1 {
		t.Errorf("expected 1 line for 'a', have %d", n)
	}
	if o, l := lineOf(t, tr, 0); o != 0 || l != 1 {
		t.Errorf("expected line 0 to be (0,1), is (%d,%d)", o, l)
	}
	tr.Set("\n")
	if n := tr.NumberOfLines(); n != 2 {
		t.Fatalf("expected 2 lines for '\\n', have %d", n)
	}
	if o, l := lineOf(t, tr, 0); o != 0 || l != 1 {
		t.Errorf("expected line 0 to be (0,1), is (%d,%d)", o, l)
	}
	if o, l := lineOf(t, tr, 1); o != 1 || l != 0 {
		t.Errorf("expected line 1 to be (1,0), is (%d,%d)", o, l)
	}
	if d, _ := tr.LineDelimiter(0); d != "\n" {
		t.Errorf("expected delimiter of line 0 to be newline, is %q", d)
	}
}

func TestInsertIntoLine(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	tr := New(delimit.Newline())
	tr.Set("a\nbc\n")
	if err := tr.Replace(2, 0, "X"); err != nil {
		t.Fatal(err)
	}
	expected := [][2]int{{0, 2}, {2, 4}, {6, 0}}
	if n := tr.NumberOfLines(); n != len(expected) {
		t.Fatalf("expected %d lines, have %d", len(expected), n)
	}
	for i, x := range expected {
		if o, l := lineOf(t, tr, i); o != x[0] || l != x[1] {
			t.Errorf("expected line %d to be %v, is (%d,%d)", i, x, o, l)
		}
	}
	if err := tr.Check(); err != nil {
		t.Error(err)
	}
}

func TestDeleteLine(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	tr := New(delimit.Newline())
	tr.Set("a\nb\nc\nd\ne\n")
	if n := tr.NumberOfLines(); n != 6 {
		t.Fatalf("expected 6 lines, have %d", n)
	}
	if err := tr.Replace(2, 2, ""); err != nil {
		t.Fatal(err)
	}
	if n := tr.NumberOfLines(); n != 5 {
		t.Errorf("expected 5 lines after deleting a line, have %d", n)
	}
	if o, l := lineOf(t, tr, 1); o != 2 || l != 2 {
		t.Errorf("expected line 1 to be 'c\\n' at (2,2), is (%d,%d)", o, l)
	}
	if err := tr.Check(); err != nil {
		t.Error(err)
	}
}

func TestPromotion(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	tr := New(nil)
	tr.Set("one\ntwo\r\nthree\rfour")
	if _, ok := tr.index.(*linearLines); !ok {
		t.Fatalf("expected fresh text to be held in a linear index")
	}
	if n := tr.NumberOfLines(); n != 4 {
		t.Errorf("expected 4 lines, have %d", n)
	}
	tr.Replace(0, 0, "")
	if _, ok := tr.index.(*lineTree); !ok {
		t.Fatalf("expected modified text to be held in a tree index")
	}
	if n := tr.NumberOfLines(); n != 4 {
		t.Errorf("expected promotion to keep 4 lines, have %d", n)
	}
	if d, _ := tr.LineDelimiter(1); d != "\r\n" {
		t.Errorf("expected delimiter of line 1 to be CR+LF, is %q", d)
	}
	tr.Set("x")
	if _, ok := tr.index.(*linearLines); !ok {
		t.Errorf("expected Set to fall back to a linear index")
	}
}

func TestOutOfRange(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	for _, promote := range []bool{false, true} {
		tr := New(delimit.Newline())
		tr.Set("ab\ncd")
		if promote {
			tr.Replace(0, 0, "")
		}
		if _, err := tr.LineNumberOfOffset(6); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("expected offset 6 to be out of range, err=%v", err)
		}
		if _, err := tr.LineNumberOfOffset(-1); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("expected offset -1 to be out of range, err=%v", err)
		}
		if _, err := tr.LineOffset(2); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("expected line 2 to be out of range, err=%v", err)
		}
		if _, err := tr.LineLength(-1); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("expected line -1 to be out of range, err=%v", err)
		}
		if err := tr.Replace(4, 2, "x"); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("expected replace beyond end to fail, err=%v", err)
		}
		if _, err := tr.NumberOfLinesIn(1, 5); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("expected range beyond end to fail, err=%v", err)
		}
		if line, err := tr.LineNumberOfOffset(5); err != nil || line != 1 {
			t.Errorf("expected end of text to belong to line 1, is %d, err=%v", line, err)
		}
	}
}

func TestFunnyLastLine(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	tr := New(delimit.Newline())
	tr.Set("ab\ncd")
	r, err := tr.LineInformation(2)
	if err != nil || r != (Region{Offset: 5, Length: 0}) {
		t.Errorf("expected line one past the end to be (5,0), is %v, err=%v", r, err)
	}
	if _, err = tr.LineInformation(3); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected line 3 to be out of range, err=%v", err)
	}
	tr.Set("ab")
	r, err = tr.LineInformation(1)
	if err != nil || r != (Region{Offset: 2, Length: 0}) {
		t.Errorf("expected line one past a single line to be (2,0), is %v, err=%v", r, err)
	}
	if _, err = tr.LineInformation(-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected line -1 to be out of range, err=%v", err)
	}
}

func TestLineInformation(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	tr := New(nil)
	tr.Set("Hello\r\nWorld\n!")
	tr.Replace(5, 0, ",")
	r, err := tr.LineInformation(0)
	if err != nil || r != (Region{0, 6}) {
		t.Errorf("expected line 0 without delimiter to be (0,6), is %v", r)
	}
	r, err = tr.LineInformationOfOffset(10)
	if err != nil || r != (Region{8, 5}) {
		t.Errorf("expected line at offset 10 to be (8,5), is %v", r)
	}
	if r.End() != 13 {
		t.Errorf("expected region to end at 13, ends at %d", r.End())
	}
}

func TestNumberOfLinesIn(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	tr := New(delimit.Newline())
	tr.Set("a\nb\nc\n")
	for _, x := range []struct{ offset, length, lines int }{
		{0, 0, 1},
		{0, 1, 1},
		{0, 2, 2},
		{1, 2, 2},
		{0, 6, 4},
		{6, 0, 1},
	} {
		n, err := tr.NumberOfLinesIn(x.offset, x.length)
		if err != nil || n != x.lines {
			t.Errorf("expected range %d+%d to touch %d lines, touches %d (err=%v)",
				x.offset, x.length, x.lines, n, err)
		}
	}
}

func TestComputeNumberOfLines(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	tr := New(nil)
	tr.Set("unchanged")
	if n := tr.ComputeNumberOfLines("a\r\nb\rc\nd"); n != 4 {
		t.Errorf("expected 4 lines, have %d", n)
	}
	if n := tr.ComputeNumberOfLines(""); n != 1 {
		t.Errorf("expected 1 line for empty text, have %d", n)
	}
	if tr.NumberOfLines() != 1 || tr.Len() != 9 {
		t.Errorf("expected tracked text to be unaffected")
	}
	if legal := tr.LegalLineDelimiters(); len(legal) != 3 {
		t.Errorf("expected 3 legal delimiters, have %v", legal)
	}
}

func TestRewriteSession(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	direct, session := New(delimit.Newline()), New(delimit.Newline())
	direct.Set("a\nb\nc")
	session.Set("a\nb\nc")
	if err := session.StartRewriteSession(); err != nil {
		t.Fatal(err)
	}
	if err := session.StartRewriteSession(); !errors.Is(err, ErrRewriteSession) {
		t.Errorf("expected second session to be rejected, err=%v", err)
	}
	edits := []request{{0, 1, "xx\n"}, {4, 0, "yy"}, {8, 1, ""}}
	for _, e := range edits {
		if err := session.Replace(e.offset, e.length, e.text); err != nil {
			t.Fatal(err)
		}
		direct.Replace(e.offset, e.length, e.text)
	}
	if err := session.Replace(100, 0, "z"); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected queued replace beyond end to fail, err=%v", err)
	}
	if n, m := session.NumberOfLines(), direct.NumberOfLines(); n != m {
		t.Errorf("expected session to have %d lines, has %d", m, n)
	}
	if !session.InRewriteSession() {
		t.Errorf("expected query to keep session active")
	}
	for line := 0; line < direct.NumberOfLines(); line++ {
		o1, l1 := lineOf(t, direct, line)
		o2, l2 := lineOf(t, session, line)
		if o1 != o2 || l1 != l2 {
			t.Errorf("line %d: expected (%d,%d), have (%d,%d)", line, o1, l1, o2, l2)
		}
	}
	session.Replace(0, 0, "ignored")
	session.StopRewriteSession("one\ntwo")
	if session.InRewriteSession() {
		t.Errorf("expected session to be stopped")
	}
	if n := session.NumberOfLines(); n != 2 || session.Len() != 7 {
		t.Errorf("expected final text with 2 lines of 7 bytes, have %d/%d", n, session.Len())
	}
}

func TestDumpAndDot(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	tr := New(nil)
	tr.Set(strings.Repeat("line\r\n", 20))
	var b bytes.Buffer
	Tracker2Dot(tr, &b)
	if !strings.HasPrefix(b.String(), "strict digraph {") {
		t.Errorf("expected DOT output, have %q", b.String())
	}
	tr.Replace(3, 4, "")
	b.Reset()
	Tracker2Dot(tr, &b)
	if strings.Count(b.String(), "label=\"#") != 20 {
		t.Errorf("expected 20 line nodes in DOT output:\n%s", b.String())
	}
	b.Reset()
	tr.Dump(&b)
	if strings.Count(b.String(), "\n") != 21 {
		t.Errorf("expected header and 20 lines in dump:\n%s", b.String())
	}
	t.Logf("\n%s", b.String())
}

func TestRejectedReplaceKeepsLinearIndex(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	tr := New(delimit.Newline())
	tr.Set("ab\ncd")
	for _, r := range [][2]int{{4, 2}, {-1, 0}, {0, -1}, {6, 0}} {
		if err := tr.Replace(r[0], r[1], "x"); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("expected replace of %d+%d to fail, err=%v", r[0], r[1], err)
		}
	}
	if _, ok := tr.index.(*linearLines); !ok {
		t.Errorf("expected rejected replaces to leave the linear index in place")
	}
}
