package awareness

import (
	"github.com/dshills/cellscribe/internal/live"
)

// cursorsField is the awareness state field collaborative clients render.
const cursorsField = "cursors"

// Position is the serialized form of a sticky cursor endpoint.
type Position struct {
	Item  int `json:"item"`  // current rune offset of the boundary
	Assoc int `json:"assoc"` // 0 = before, 1 = after
}

// CursorDescriptor is the published cursor/selection state. Empty is true
// iff head and anchor denote the same position.
type CursorDescriptor struct {
	Primary bool     `json:"primary"`
	Empty   bool     `json:"empty"`
	Head    Position `json:"head"`
	Anchor  Position `json:"anchor"`
}

// Publisher delivers awareness state to collaborators. Implementations may
// fail; the broadcaster discards those failures.
type Publisher interface {
	SetLocalStateField(field string, value any) error
}

// Broadcaster publishes cursor state for one shared text. It never returns
// errors: a cursor is a visual enhancement, not a correctness mechanism, and
// a failed publish must not interrupt the write that triggered it.
type Broadcaster struct {
	pub  Publisher
	text *live.Text
}

// NewBroadcaster binds a publisher to the text the cursor lives in.
// A nil publisher yields a broadcaster that silently drops everything.
func NewBroadcaster(pub Publisher, text *live.Text) *Broadcaster {
	return &Broadcaster{pub: pub, text: text}
}

// Cursor publishes a collapsed cursor at the given rune offset.
func (b *Broadcaster) Cursor(at int) {
	b.publish(at, at)
}

// Selection publishes a selection from head to anchor.
func (b *Broadcaster) Selection(head, anchor int) {
	b.publish(head, anchor)
}

// Clear removes the published cursor state.
func (b *Broadcaster) Clear() {
	if b.pub == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	_ = b.pub.SetLocalStateField(cursorsField, nil)
}

func (b *Broadcaster) publish(head, anchor int) {
	if b.pub == nil || b.text == nil {
		return
	}
	defer func() {
		// A panicking publisher must not take the write down with it.
		_ = recover()
	}()

	// Positions here are read once and released: the publish is a snapshot,
	// and unreleased positions would pile up on the shared text.
	hp, err := b.text.StickyIndex(head, live.AssocBefore)
	if err != nil {
		return
	}
	defer hp.Release()
	desc := CursorDescriptor{
		Primary: true,
		Empty:   true,
		Head:    Position{Item: hp.Offset()},
	}
	desc.Anchor = desc.Head

	if anchor != head {
		ap, err := b.text.StickyIndex(anchor, live.AssocBefore)
		if err != nil {
			return
		}
		defer ap.Release()
		desc.Anchor = Position{Item: ap.Offset()}
		desc.Empty = false
	}

	_ = b.pub.SetLocalStateField(cursorsField, []CursorDescriptor{desc})
}
