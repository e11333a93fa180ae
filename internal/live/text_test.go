package live

import (
	"errors"
	"testing"
)

func TestTextInsertDelete(t *testing.T) {
	txt := NewText("hello world")

	if err := txt.Insert(5, ","); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if txt.String() != "hello, world" {
		t.Errorf("got %q, want %q", txt.String(), "hello, world")
	}

	if err := txt.Delete(0, 7); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if txt.String() != "world" {
		t.Errorf("got %q, want %q", txt.String(), "world")
	}
}

func TestTextRuneOffsets(t *testing.T) {
	txt := NewText("héllo")

	if txt.Len() != 5 {
		t.Fatalf("rune length = %d, want 5", txt.Len())
	}
	if err := txt.Insert(5, "!"); err != nil {
		t.Fatalf("insert at rune end failed: %v", err)
	}
	if txt.String() != "héllo!" {
		t.Errorf("got %q", txt.String())
	}
}

func TestTextInsertOutOfRange(t *testing.T) {
	txt := NewText("abc")

	if err := txt.Insert(4, "x"); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}
	if err := txt.Insert(-1, "x"); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}
}

func TestTextDeleteInvalidRange(t *testing.T) {
	txt := NewText("abc")

	if err := txt.Delete(2, 1); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}
	if err := txt.Delete(0, 9); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}
}

func TestStickyPositionTracksInsertions(t *testing.T) {
	txt := NewText("abcdef")

	p, err := txt.StickyIndex(3, AssocBefore)
	if err != nil {
		t.Fatalf("sticky failed: %v", err)
	}

	// Insert before the boundary shifts it right.
	if err := txt.Insert(0, "XY"); err != nil {
		t.Fatal(err)
	}
	if p.Offset() != 5 {
		t.Errorf("offset after insert before = %d, want 5", p.Offset())
	}

	// Insert after the boundary leaves it alone.
	if err := txt.Insert(6, "Z"); err != nil {
		t.Fatal(err)
	}
	if p.Offset() != 5 {
		t.Errorf("offset after insert behind = %d, want 5", p.Offset())
	}
}

func TestStickyPositionBiasAtBoundary(t *testing.T) {
	txt := NewText("ab")

	before, _ := txt.StickyIndex(1, AssocBefore)
	after, _ := txt.StickyIndex(1, AssocAfter)

	if err := txt.Insert(1, "--"); err != nil {
		t.Fatal(err)
	}
	if before.Offset() != 1 {
		t.Errorf("before-biased offset = %d, want 1", before.Offset())
	}
	if after.Offset() != 3 {
		t.Errorf("after-biased offset = %d, want 3", after.Offset())
	}
}

func TestStickyPositionCollapsesInDeletedRange(t *testing.T) {
	txt := NewText("0123456789")

	p, _ := txt.StickyIndex(5, AssocBefore)
	if err := txt.Delete(2, 8); err != nil {
		t.Fatal(err)
	}
	if p.Offset() != 2 {
		t.Errorf("offset after covering delete = %d, want 2", p.Offset())
	}
}

func TestStickyPositionRelease(t *testing.T) {
	txt := NewText("abcdef")

	p, err := txt.StickyIndex(3, AssocBefore)
	if err != nil {
		t.Fatalf("sticky failed: %v", err)
	}
	p.Release()
	p.Release() // idempotent

	if len(txt.sticky) != 0 {
		t.Fatalf("%d positions still registered after release", len(txt.sticky))
	}

	// A released position stops tracking; edits no longer move it.
	if err := txt.Insert(0, "XY"); err != nil {
		t.Fatal(err)
	}
	if p.Offset() != 3 {
		t.Errorf("released offset = %d, want frozen 3", p.Offset())
	}
}

func TestStickyPositionsDoNotAccumulate(t *testing.T) {
	txt := NewText("shared")

	for i := 0; i < 1000; i++ {
		p, err := txt.StickyIndex(0, AssocBefore)
		if err != nil {
			t.Fatal(err)
		}
		_ = p.Offset()
		p.Release()
	}
	if len(txt.sticky) != 0 {
		t.Errorf("%d positions registered after release cycle", len(txt.sticky))
	}
}

func TestTextClosedRejectsMutation(t *testing.T) {
	txt := NewText("content")
	txt.Close()

	if err := txt.Insert(0, "x"); !errors.Is(err, ErrTextClosed) {
		t.Errorf("expected ErrTextClosed, got %v", err)
	}
	if err := txt.Delete(0, 1); !errors.Is(err, ErrTextClosed) {
		t.Errorf("expected ErrTextClosed, got %v", err)
	}
	if txt.String() != "content" {
		t.Errorf("closed text content changed: %q", txt.String())
	}
}

func TestTextObserve(t *testing.T) {
	txt := NewText("")

	var changes []Change
	txt.Observe(func(c Change) { changes = append(changes, c) })

	if err := txt.Insert(0, "ab"); err != nil {
		t.Fatal(err)
	}
	if err := txt.Delete(0, 1); err != nil {
		t.Fatal(err)
	}

	if len(changes) != 2 {
		t.Fatalf("got %d changes, want 2", len(changes))
	}
	if !changes[0].Insert || changes[0].Text != "ab" {
		t.Errorf("first change = %+v", changes[0])
	}
	if changes[1].Insert || changes[1].Len != 1 {
		t.Errorf("second change = %+v", changes[1])
	}
}
