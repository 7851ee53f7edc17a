/*
Package gap implements a gap buffer for text.

A gap buffer keeps all bytes of a text in a single array, with one unused
region, the gap, placed at the most recent edit position. Edits close to each
other, as produced by typing, only move the few bytes between the edit
position and the gap. The array is re-allocated if the gap would either
overflow or grow beyond a threshold.

Text does no bounds checking. Positions outside of the text will panic just
like out-of-range slice accesses do; callers have to validate positions in
advance.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package gap

import (
	"fmt"
	"io"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// GapError is an error type for the gap module.
type GapError string

func (e GapError) Error() string {
	return string(e)
}

// ErrInvalidConfig is flagged for gap configurations which violate
// 0 ≤ MinGapSize ≤ MaxGapSize or 0 ≤ MaxGapFactor < 1.
const ErrInvalidConfig = GapError("invalid gap configuration")

// Defaults for a gap buffer's configuration.
const (
	DefaultMinGapSize   = 256
	DefaultMaxGapSize   = 4096
	DefaultMaxGapFactor = 0.1
)

// Config configures the gap management of a Text.
type Config struct {
	MinGapSize   int     // minimum size of a gap after re-allocation
	MaxGapSize   int     // maximum size of a gap after re-allocation
	MaxGapFactor float64 // maximum share of the gap in the array after re-allocation
}

func (cfg Config) validate() error {
	if cfg.MinGapSize < 0 || cfg.MaxGapSize < cfg.MinGapSize {
		return fmt.Errorf("%w: gap size bounds [%d, %d]", ErrInvalidConfig, cfg.MinGapSize, cfg.MaxGapSize)
	}
	if cfg.MaxGapFactor < 0 || cfg.MaxGapFactor >= 1 {
		return fmt.Errorf("%w: gap factor %g", ErrInvalidConfig, cfg.MaxGapFactor)
	}
	return nil
}

// Text is a gap buffer.
//
// Logical position i < gapStart is found at content[i], position i ≥ gapStart
// at content[i+gapSize]. The zero value is not usable, create Text with New or
// NewConfigured.
type Text struct {
	content        []byte
	gapStart       int // first byte of the gap
	gapEnd         int // first byte after the gap
	minGapSize     int
	maxGapSize     int
	sizeMultiplier float64 // array size relative to text length on re-allocation
	threshold      int     // maximum gap size before the array shrinks
}

// New creates an empty text with a default configuration.
func New() *Text {
	t, err := NewConfigured(Config{
		MinGapSize:   DefaultMinGapSize,
		MaxGapSize:   DefaultMaxGapSize,
		MaxGapFactor: DefaultMaxGapFactor,
	})
	assert(err == nil, "gap.New: default configuration invalid")
	return t
}

// NewConfigured creates an empty text with a given configuration.
// If MaxGapFactor is f, a freshly re-allocated array will have a gap of
// f/2 of its size, unless this is out of bounds of [MinGapSize, MaxGapSize].
func NewConfigured(cfg Config) (*Text, error) {
	if err := cfg.validate(); err != nil {
		T().Errorf("gap: %v", err)
		return nil, err
	}
	return &Text{
		content:        []byte{},
		minGapSize:     cfg.MinGapSize,
		maxGapSize:     cfg.MaxGapSize,
		sizeMultiplier: 1 / (1 - cfg.MaxGapFactor/2),
	}, nil
}

// Len returns the length of the text in bytes.
func (t *Text) Len() int {
	return len(t.content) - t.gapSize()
}

// ByteAt returns the byte at offset.
func (t *Text) ByteAt(offset int) byte {
	if offset < t.gapStart {
		return t.content[offset]
	}
	return t.content[offset+t.gapSize()]
}

// Slice returns length bytes of text, starting at offset.
func (t *Text) Slice(offset, length int) string {
	if t.gapStart <= offset {
		start := offset + t.gapSize()
		return string(t.content[start : start+length])
	}
	end := offset + length
	if end <= t.gapStart {
		return string(t.content[offset:end])
	}
	buf := make([]byte, 0, length)
	buf = append(buf, t.content[offset:t.gapStart]...)
	buf = append(buf, t.content[t.gapEnd:t.gapEnd+end-t.gapStart]...)
	return string(buf)
}

// String returns the complete text.
func (t *Text) String() string {
	return t.Slice(0, t.Len())
}

// WriteTo writes the text to w. It is part of interface io.WriterTo.
func (t *Text) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(t.content[:t.gapStart])
	if err != nil {
		return int64(n), err
	}
	m, err := w.Write(t.content[t.gapEnd:])
	return int64(n + m), err
}

// Set replaces the complete text.
func (t *Text) Set(text string) {
	t.Replace(0, t.Len(), text)
}

// Replace removes remove bytes at offset and inserts text in their place.
// An empty text makes Replace a deletion.
func (t *Text) Replace(offset, remove int, text string) {
	t.adjustGap(offset, remove, len(text))
	copy(t.content[offset:], text)
}

func (t *Text) gapSize() int {
	return t.gapEnd - t.gapStart
}

// adjustGap moves the gap to offset+add, making room for add bytes at offset
// and dropping remove bytes. Afterwards content[offset:offset+add] is
// undefined and has to be filled by the caller.
func (t *Text) adjustGap(offset, remove, add int) {
	oldGapSize := t.gapSize()
	newGapSize := oldGapSize - add + remove
	newGapStart := offset + add
	var newGapEnd int
	if 0 <= newGapSize && newGapSize <= t.threshold {
		newGapEnd = t.moveGap(offset, remove, oldGapSize, newGapSize, newGapStart)
	} else {
		newGapEnd = t.reallocate(offset, remove, add, newGapStart)
	}
	t.gapStart, t.gapEnd = newGapStart, newGapEnd
}

// moveGap relocates the gap within the current array. Only the bytes between
// the edit position and the old gap are moved.
func (t *Text) moveGap(offset, remove, oldGapSize, newGapSize, newGapStart int) int {
	newGapEnd := newGapStart + newGapSize
	if offset < t.gapStart {
		if afterRemove := offset + remove; afterRemove < t.gapStart {
			copy(t.content[newGapEnd:], t.content[afterRemove:t.gapStart])
		}
		// otherwise the removed range covers the gap and nothing has to move
	} else {
		shifted := offset + oldGapSize
		copy(t.content[t.gapStart:], t.content[t.gapEnd:shifted])
	}
	return newGapEnd
}

// reallocate copies the text into a fresh array, leaving a gap after
// the edit position. At most three contiguous spans are copied.
func (t *Text) reallocate(offset, remove, add, newGapStart int) int {
	newLength := t.Len() - remove + add
	newArraySize := int(float64(newLength) * t.sizeMultiplier)
	newGapSize := newArraySize - newLength
	if newGapSize < t.minGapSize {
		newGapSize = t.minGapSize
	} else if newGapSize > t.maxGapSize {
		newGapSize = t.maxGapSize
	}
	newArraySize = newLength + newGapSize
	t.threshold = 2 * newGapSize
	T().Debugf("gap: re-allocating %d bytes, gap size %d", newArraySize, newGapSize)
	//
	newContent := make([]byte, newArraySize)
	newGapEnd := newGapStart + newGapSize
	t.copyLogical(newContent[:offset], 0)
	t.copyLogical(newContent[newGapEnd:], offset+remove)
	t.content = newContent
	return newGapEnd
}

// copyLogical fills dst with the text starting at logical position from.
func (t *Text) copyLogical(dst []byte, from int) {
	if len(dst) == 0 {
		return
	}
	if from >= t.gapStart {
		copy(dst, t.content[from+t.gapSize():])
		return
	}
	n := copy(dst, t.content[from:t.gapStart])
	copy(dst[n:], t.content[t.gapEnd:])
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
