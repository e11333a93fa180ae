package diff

import "fmt"

// OpTag identifies the kind of edit an opcode performs.
type OpTag uint8

const (
	OpEqual   OpTag = iota // spans are identical, no edit
	OpDelete               // old span is removed
	OpInsert               // new span is added
	OpReplace              // old span is removed and new span added in its place
)

// String returns the string representation of the tag.
func (t OpTag) String() string {
	switch t {
	case OpEqual:
		return "equal"
	case OpDelete:
		return "delete"
	case OpInsert:
		return "insert"
	case OpReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Op is one unit of an edit script. OldStart/OldEnd bound a rune span in the
// old string, NewStart/NewEnd a rune span in the new string. For OpDelete the
// new span is empty; for OpInsert the old span is empty.
type Op struct {
	Tag      OpTag
	OldStart int
	OldEnd   int
	NewStart int
	NewEnd   int
}

// OldLen returns the length of the old span in runes.
func (o Op) OldLen() int { return o.OldEnd - o.OldStart }

// NewLen returns the length of the new span in runes.
func (o Op) NewLen() int { return o.NewEnd - o.NewStart }

// String returns a human-readable representation of the opcode.
func (o Op) String() string {
	return fmt.Sprintf("%s old[%d:%d) new[%d:%d)", o.Tag, o.OldStart, o.OldEnd, o.NewStart, o.NewEnd)
}
