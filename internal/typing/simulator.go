package typing

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/dshills/cellscribe/internal/diff"
)

// DefaultHighlightCap bounds how long a pending deletion stays highlighted.
const DefaultHighlightCap = 300 * time.Millisecond

// Handle is the mutable text surface a replay edits. Offsets are rune
// offsets. The handle is borrowed for the duration of one replay; the
// simulator never retains it.
type Handle interface {
	Insert(at int, s string) error
	Delete(start, end int) error
}

// Broadcaster receives cursor updates during a replay. Implementations are
// best-effort and must not fail.
type Broadcaster interface {
	Cursor(at int)
	Selection(head, anchor int)
}

// Pacer can adjust an individual delay before the simulator sleeps it.
type Pacer func(tag diff.OpTag, base time.Duration) time.Duration

// Option configures a Simulator.
type Option func(*Simulator)

// WithSleep replaces the suspension function. Tests inject a recorder.
func WithSleep(fn func(time.Duration)) Option {
	return func(s *Simulator) {
		if fn != nil {
			s.sleep = fn
		}
	}
}

// WithHighlightCap overrides the deletion highlight cap.
func WithHighlightCap(d time.Duration) Option {
	return func(s *Simulator) {
		if d >= 0 {
			s.highlightCap = d
		}
	}
}

// WithPacer installs a delay hook applied to every suspension.
func WithPacer(p Pacer) Option {
	return func(s *Simulator) {
		s.pacer = p
	}
}

// Simulator replays edit scripts with pacing. The zero value is not usable;
// construct with New.
type Simulator struct {
	sleep        func(time.Duration)
	highlightCap time.Duration
	pacer        Pacer
}

// New creates a simulator.
func New(opts ...Option) *Simulator {
	s := &Simulator{
		sleep:        time.Sleep,
		highlightCap: DefaultHighlightCap,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Replay transforms the handle's content from old to new by applying the
// planned edit script with pacing, broadcasting the cursor after each step.
// It returns the final cursor position (the rune length of new).
//
// Preconditions are checked before any mutation: handle and broadcaster must
// be non-nil and pace non-negative. When old already equals new, Replay
// returns immediately without touching the handle or the broadcaster and
// without suspending.
//
// A handle rejection mid-replay surfaces as ErrMutation; opcodes already
// applied remain applied and the buffer holds valid text that is not the
// requested content.
func (s *Simulator) Replay(h Handle, b Broadcaster, old, new string, pace time.Duration) (int, error) {
	if h == nil {
		return 0, fmt.Errorf("%w: nil handle", ErrInvalidArgs)
	}
	if b == nil {
		return 0, fmt.Errorf("%w: nil broadcaster", ErrInvalidArgs)
	}
	if pace < 0 {
		return 0, fmt.Errorf("%w: negative pace %v", ErrInvalidArgs, pace)
	}

	if old == new {
		return utf8.RuneCountInString(new), nil
	}

	newRunes := []rune(new)
	cursor := 0
	b.Cursor(cursor)

	for _, op := range diff.Plan(old, new) {
		var err error
		switch op.Tag {
		case diff.OpEqual:
			cursor += op.OldLen()
		case diff.OpDelete:
			err = s.deleteSpan(h, b, cursor, op.OldLen(), pace)
		case diff.OpInsert:
			cursor, err = s.insertSpan(h, b, cursor, string(newRunes[op.NewStart:op.NewEnd]), pace)
		case diff.OpReplace:
			if err = s.deleteSpan(h, b, cursor, op.OldLen(), pace); err != nil {
				break
			}
			s.pause(diff.OpReplace, 2*pace)
			cursor, err = s.insertSpan(h, b, cursor, string(newRunes[op.NewStart:op.NewEnd]), pace)
		}
		if err != nil {
			return cursor, err
		}
	}

	b.Cursor(len(newRunes))
	return len(newRunes), nil
}

// deleteSpan highlights then removes n runes at the cursor. The cursor does
// not move: the deleted text's successor slides into place under it.
func (s *Simulator) deleteSpan(h Handle, b Broadcaster, cursor, n int, pace time.Duration) error {
	b.Selection(cursor, cursor+n)
	s.pause(diff.OpDelete, min(s.highlightCap, 3*pace))

	if err := h.Delete(cursor, cursor+n); err != nil {
		return fmt.Errorf("%w: delete [%d,%d): %v", ErrMutation, cursor, cursor+n, err)
	}
	s.pause(diff.OpDelete, pace)
	b.Cursor(cursor)
	return nil
}

// insertSpan types text at the cursor word by word and returns the new
// cursor position.
func (s *Simulator) insertSpan(h Handle, b Broadcaster, cursor int, text string, pace time.Duration) (int, error) {
	steps, suffix := splitWords(text)

	// Whitespace-only and empty spans go in as a single unit.
	if len(steps) == 0 {
		if err := h.Insert(cursor, text); err != nil {
			return cursor, fmt.Errorf("%w: insert at %d: %v", ErrMutation, cursor, err)
		}
		cursor += utf8.RuneCountInString(text)
		b.Cursor(cursor)
		s.pause(diff.OpInsert, pace)
		return cursor, nil
	}

	for _, step := range steps {
		if step.sep != "" {
			if err := h.Insert(cursor, step.sep); err != nil {
				return cursor, fmt.Errorf("%w: insert at %d: %v", ErrMutation, cursor, err)
			}
			cursor += utf8.RuneCountInString(step.sep)
		}
		if err := h.Insert(cursor, step.word); err != nil {
			return cursor, fmt.Errorf("%w: insert at %d: %v", ErrMutation, cursor, err)
		}
		cursor += utf8.RuneCountInString(step.word)
		b.Cursor(cursor)
		s.pause(diff.OpInsert, pace)
	}

	if suffix != "" {
		if err := h.Insert(cursor, suffix); err != nil {
			return cursor, fmt.Errorf("%w: insert at %d: %v", ErrMutation, cursor, err)
		}
		cursor += utf8.RuneCountInString(suffix)
		b.Cursor(cursor)
	}
	return cursor, nil
}

// pause suspends for d, letting an installed pacer adjust it first.
// Zero and negative delays do not suspend.
func (s *Simulator) pause(tag diff.OpTag, d time.Duration) {
	if s.pacer != nil {
		d = s.pacer(tag, d)
	}
	if d > 0 {
		s.sleep(d)
	}
}
