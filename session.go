package linetrack

import "fmt"

// request is a modification deferred during a rewrite session.
type request struct {
	offset, length int
	text           string
}

// rewriteSession collects modifications. They are applied lazily, when the
// tracker is queried, or dropped altogether if the session ends with the
// complete rewritten text.
type rewriteSession struct {
	pending []request
	length  int // length of the text with all pending requests applied
}

func (s *rewriteSession) reset(length int) {
	s.pending = s.pending[:0]
	s.length = length
}

func (s *rewriteSession) enqueue(offset, length int, text string) error {
	if offset < 0 || length < 0 || offset+length > s.length {
		return fmt.Errorf("%w: range %d+%d", ErrOutOfRange, offset, length)
	}
	s.pending = append(s.pending, request{offset: offset, length: length, text: text})
	s.length += len(text) - length
	return nil
}

// StartRewriteSession starts collecting modifications instead of applying
// them one by one. Clients about to perform many modifications, e.g. a
// replace-all, should call StopRewriteSession with the final text when done.
// Queries during a session are answered correctly, at the cost of applying
// every pending modification.
func (t *Tracker) StartRewriteSession() error {
	if t.session != nil {
		return ErrRewriteSession
	}
	t.session = &rewriteSession{length: t.index.length()}
	return nil
}

// StopRewriteSession ends a rewrite session. Pending modifications are
// dropped and text is tracked as if set by Set. Without an active session
// StopRewriteSession does nothing.
func (t *Tracker) StopRewriteSession(text string) {
	if t.session == nil {
		return
	}
	T().Debugf("linetrack: rewrite session ends, dropping %d pending requests", len(t.session.pending))
	t.session = nil
	t.Set(text)
}

// InRewriteSession reports whether a rewrite session is active.
func (t *Tracker) InRewriteSession() bool {
	return t.session != nil
}

// flush applies pending modifications of a rewrite session. The session
// stays active.
func (t *Tracker) flush() {
	if t.session == nil || len(t.session.pending) == 0 {
		return
	}
	T().Debugf("linetrack: flushing %d pending requests", len(t.session.pending))
	for _, r := range t.session.pending {
		err := t.replace(r.offset, r.length, r.text)
		assert(err == nil, "linetrack: pending request out of range")
	}
	t.session.pending = t.session.pending[:0]
}
