package live

import (
	"fmt"
	"sync"
)

// Assoc is the bias of a sticky position: whether it sticks to the character
// before or after its boundary when concurrent edits land exactly on it.
type Assoc uint8

const (
	AssocBefore Assoc = iota
	AssocAfter
)

// Change describes one applied mutation, for observers such as render views.
type Change struct {
	Insert bool
	At     int    // rune offset of the edit
	Len    int    // runes inserted or deleted
	Text   string // inserted text, empty for deletes
}

// Text is a shared, positionally addressed text buffer. It supports
// positional insert, positional range delete, and sticky position creation.
// All offsets are rune offsets. Methods are safe for concurrent use;
// interleaved writers are resolved last-write-wins by the mutex, nothing more.
type Text struct {
	mu        sync.RWMutex
	runes     []rune
	sticky    []*StickyPosition
	observers []func(Change)
	closed    bool
}

// NewText creates a shared text with the given initial content.
func NewText(s string) *Text {
	return &Text{runes: []rune(s)}
}

// String returns the current content.
func (t *Text) String() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return string(t.runes)
}

// Len returns the current length in runes.
func (t *Text) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.runes)
}

// Insert places s at rune offset at, shifting sticky positions at or after
// the insertion point according to their bias.
func (t *Text) Insert(at int, s string) error {
	if s == "" {
		return nil
	}
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrTextClosed
	}
	if at < 0 || at > len(t.runes) {
		t.mu.Unlock()
		return fmt.Errorf("%w: insert at %d, length %d", ErrOffsetOutOfRange, at, len(t.runes))
	}

	ins := []rune(s)
	t.runes = append(t.runes[:at], append(append([]rune(nil), ins...), t.runes[at:]...)...)
	for _, p := range t.sticky {
		if p.offset > at || (p.offset == at && p.assoc == AssocAfter) {
			p.offset += len(ins)
		}
	}
	obs := t.snapshotObservers()
	t.mu.Unlock()

	t.notify(obs, Change{Insert: true, At: at, Len: len(ins), Text: s})
	return nil
}

// Delete removes the rune range [start, end). Sticky positions inside the
// range collapse to its start; positions after it shift left.
func (t *Text) Delete(start, end int) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrTextClosed
	}
	if start > end {
		t.mu.Unlock()
		return fmt.Errorf("%w: [%d,%d)", ErrRangeInvalid, start, end)
	}
	if start < 0 || end > len(t.runes) {
		t.mu.Unlock()
		return fmt.Errorf("%w: delete [%d,%d), length %d", ErrOffsetOutOfRange, start, end, len(t.runes))
	}
	if start == end {
		t.mu.Unlock()
		return nil
	}

	n := end - start
	t.runes = append(t.runes[:start], t.runes[end:]...)
	for _, p := range t.sticky {
		switch {
		case p.offset >= end:
			p.offset -= n
		case p.offset > start:
			p.offset = start
		}
	}
	obs := t.snapshotObservers()
	t.mu.Unlock()

	t.notify(obs, Change{At: start, Len: n})
	return nil
}

// StickyIndex binds a sticky position to the character boundary at the given
// rune offset. The position keeps tracking that boundary as edits land
// elsewhere in the text until it is released. Every position costs a scan on
// each edit, so short-lived positions should be released promptly.
func (t *Text) StickyIndex(at int, assoc Assoc) (*StickyPosition, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil, ErrTextClosed
	}
	if at < 0 || at > len(t.runes) {
		return nil, fmt.Errorf("%w: sticky at %d, length %d", ErrOffsetOutOfRange, at, len(t.runes))
	}
	p := &StickyPosition{text: t, offset: at, assoc: assoc}
	t.sticky = append(t.sticky, p)
	return p, nil
}

// Observe registers a callback invoked after every applied mutation.
// Callbacks run outside the text lock and must not retain the Change.
func (t *Text) Observe(fn func(Change)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.observers = append(t.observers, fn)
}

// Close invalidates the handle. Subsequent mutations fail with ErrTextClosed;
// reads keep working on the final content.
func (t *Text) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
}

func (t *Text) snapshotObservers() []func(Change) {
	if len(t.observers) == 0 {
		return nil
	}
	obs := make([]func(Change), len(t.observers))
	copy(obs, t.observers)
	return obs
}

func (t *Text) notify(obs []func(Change), c Change) {
	for _, fn := range obs {
		fn(c)
	}
}

// StickyPosition is a text offset bound to a character boundary. Its Offset
// stays meaningful as concurrent edits shift raw offsets around it, until
// Release detaches it from the text.
type StickyPosition struct {
	text   *Text
	offset int
	assoc  Assoc
}

// Offset returns the current rune offset of the boundary.
func (p *StickyPosition) Offset() int {
	p.text.mu.RLock()
	defer p.text.mu.RUnlock()
	return p.offset
}

// Assoc returns the position's bias.
func (p *StickyPosition) Assoc() Assoc { return p.assoc }

// Release detaches the position: it stops tracking edits and no longer costs
// a scan per mutation. Offset keeps returning the last tracked value.
// Release is idempotent.
func (p *StickyPosition) Release() {
	t := p.text
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, q := range t.sticky {
		if q == p {
			t.sticky = append(t.sticky[:i], t.sticky[i+1:]...)
			return
		}
	}
}
