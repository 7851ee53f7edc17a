package document

import (
	"context"
	"fmt"
	"io"

	"github.com/guiguan/caster"
	"github.com/npillmayer/linetrack"
	"github.com/npillmayer/linetrack/delimit"
	"github.com/npillmayer/linetrack/gap"
)

// LineIndex is a read-only view of the lines of a document.
type LineIndex interface {
	NumberOfLines() int
	NumberOfLinesIn(offset, length int) (int, error)
	LineNumberOfOffset(offset int) (int, error)
	LineOffset(line int) (int, error)
	LineLength(line int) (int, error)
	LineDelimiter(line int) (string, error)
	LineInformation(line int) (linetrack.Region, error)
	LineInformationOfOffset(offset int) (linetrack.Region, error)
}

var _ LineIndex = (*linetrack.Tracker)(nil)

// Event describes a modification of a document: Length bytes at Offset
// have been replaced by Text. Subscribers receive events as values of type
// Event.
type Event struct {
	Offset      int
	Length      int
	Text        string
	LinesBefore int // number of lines before the modification
	LinesAfter  int // number of lines after the modification
}

// Document is a text with line information.
type Document struct {
	text      *gap.Text
	lines     *linetrack.Tracker
	cast      *caster.Caster
	rewriting bool
	before    rewriteState // state at the start of a rewrite
}

type rewriteState struct {
	length, lines int
}

// New creates an empty document. Lines are delimited by scan, which
// defaults to delimit.Default() if nil.
func New(scan delimit.Scanner) *Document {
	return newDocument(gap.New(), scan)
}

// NewConfigured creates an empty document with a custom gap buffer
// configuration.
func NewConfigured(scan delimit.Scanner, cfg gap.Config) (*Document, error) {
	text, err := gap.NewConfigured(cfg)
	if err != nil {
		return nil, err
	}
	return newDocument(text, scan), nil
}

// FromString creates a document for a text.
func FromString(text string, scan delimit.Scanner) *Document {
	doc := New(scan)
	doc.text.Set(text)
	doc.lines.Set(text)
	return doc
}

func newDocument(text *gap.Text, scan delimit.Scanner) *Document {
	return &Document{
		text:  text,
		lines: linetrack.New(scan),
		cast:  caster.New(nil),
	}
}

// Len returns the length of the document's text in bytes.
func (doc *Document) Len() int {
	return doc.text.Len()
}

// String returns the document's text.
func (doc *Document) String() string {
	return doc.text.String()
}

// WriteTo writes the document's text to w.
func (doc *Document) WriteTo(w io.Writer) (int64, error) {
	return doc.text.WriteTo(w)
}

// ByteAt returns the byte at offset.
func (doc *Document) ByteAt(offset int) (byte, error) {
	if offset < 0 || offset >= doc.text.Len() {
		return 0, fmt.Errorf("%w: offset %d", linetrack.ErrOutOfRange, offset)
	}
	return doc.text.ByteAt(offset), nil
}

// Get returns length bytes of text, starting at offset.
func (doc *Document) Get(offset, length int) (string, error) {
	if err := doc.checkRange(offset, length); err != nil {
		return "", err
	}
	return doc.text.Slice(offset, length), nil
}

// Lines returns the line information of the document.
func (doc *Document) Lines() LineIndex {
	return doc.lines
}

// Line returns the text of a line, without its delimiter.
func (doc *Document) Line(line int) (string, error) {
	if line < 0 || line >= doc.lines.NumberOfLines() {
		return "", fmt.Errorf("%w: line %d", linetrack.ErrOutOfRange, line)
	}
	r, err := doc.lines.LineInformation(line)
	if err != nil {
		return "", err
	}
	return doc.text.Slice(r.Offset, r.Length), nil
}

// Set replaces the document's text.
func (doc *Document) Set(text string) {
	ev := Event{Length: doc.text.Len(), Text: text}
	if !doc.rewriting {
		ev.LinesBefore = doc.lines.NumberOfLines()
	}
	doc.text.Set(text)
	doc.lines.Set(text)
	if !doc.rewriting {
		ev.LinesAfter = doc.lines.NumberOfLines()
		doc.publish(ev)
	}
}

// Replace replaces length bytes at offset by text.
func (doc *Document) Replace(offset, length int, text string) error {
	if err := doc.checkRange(offset, length); err != nil {
		return err
	}
	ev := Event{Offset: offset, Length: length, Text: text}
	if !doc.rewriting {
		ev.LinesBefore = doc.lines.NumberOfLines()
	}
	doc.text.Replace(offset, length, text)
	if err := doc.lines.Replace(offset, length, text); err != nil {
		// text and lines have been checked to be of equal length
		panic(fmt.Sprintf("document: line tracker out of sync: %v", err))
	}
	if !doc.rewriting {
		ev.LinesAfter = doc.lines.NumberOfLines()
		doc.publish(ev)
	}
	return nil
}

// Insert inserts text at offset.
func (doc *Document) Insert(offset int, text string) error {
	return doc.Replace(offset, 0, text)
}

// Delete removes length bytes at offset.
func (doc *Document) Delete(offset, length int) error {
	return doc.Replace(offset, length, "")
}

func (doc *Document) checkRange(offset, length int) error {
	if offset < 0 || length < 0 || offset+length > doc.text.Len() {
		return fmt.Errorf("%w: range %d+%d", linetrack.ErrOutOfRange, offset, length)
	}
	return nil
}

// --- Rewriting -------------------------------------------------------------

// StartRewrite prepares the document for a large number of modifications.
// Until StopRewrite is called, line information is updated lazily and no
// events are published.
func (doc *Document) StartRewrite() error {
	if err := doc.lines.StartRewriteSession(); err != nil {
		return err
	}
	doc.rewriting = true
	doc.before = rewriteState{length: doc.text.Len(), lines: doc.lines.NumberOfLines()}
	return nil
}

// StopRewrite ends a rewrite. Subscribers receive a single event, replacing
// the complete text. Without an active rewrite StopRewrite does nothing.
func (doc *Document) StopRewrite() {
	if !doc.rewriting {
		return
	}
	text := doc.text.String()
	doc.lines.StopRewriteSession(text)
	doc.rewriting = false
	T().Debugf("document: rewrite of %d bytes ends", len(text))
	doc.publish(Event{
		Length:      doc.before.length,
		Text:        text,
		LinesBefore: doc.before.lines,
		LinesAfter:  doc.lines.NumberOfLines(),
	})
}

// --- Events ----------------------------------------------------------------

// Subscribe returns a channel of change events. Events are of type Event.
// The channel is closed when ctx is done, on Unsubscribe or on Close.
func (doc *Document) Subscribe(ctx context.Context, capacity uint) (chan interface{}, error) {
	ch, ok := doc.cast.Sub(ctx, capacity)
	if !ok {
		return nil, ErrClosed
	}
	return ch, nil
}

func (doc *Document) publish(ev Event) {
	if !doc.cast.Pub(ev) {
		T().Debugf("document: event for range %d+%d not published, document closed", ev.Offset, ev.Length)
	}
}

// Unsubscribe stops sending events to a channel obtained by Subscribe.
func (doc *Document) Unsubscribe(ch chan interface{}) {
	doc.cast.Unsub(ch)
}

// Close stops publishing events and closes every subscribed channel. The
// document stays usable.
func (doc *Document) Close() {
	doc.cast.Close()
}
