package notebook

import (
	"strconv"

	"github.com/google/uuid"
)

// RefKind discriminates the parsed forms of a cell reference.
type RefKind uint8

const (
	RefByIndex RefKind = iota // numeric position in the cell list
	RefByID                   // UUID-shaped cell id
	RefOpaque                 // anything else, passed through as an id candidate
)

// String returns the string representation of the reference kind.
func (k RefKind) String() string {
	switch k {
	case RefByIndex:
		return "index"
	case RefByID:
		return "id"
	case RefOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}

// Reference is a cell reference parsed once at the boundary, so downstream
// code never re-sniffs the raw string.
type Reference struct {
	Kind  RefKind
	Index int    // valid when Kind == RefByIndex
	ID    string // valid otherwise
}

// ParseReference classifies a raw cell reference. A canonical dashed
// UUID becomes RefByID, a decimal integer becomes RefByIndex, and anything
// else passes through as RefOpaque. Existence is not checked here; Resolve
// validates against a snapshot.
func ParseReference(raw string) Reference {
	if isUUIDShaped(raw) {
		return Reference{Kind: RefByID, ID: raw}
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return Reference{Kind: RefByIndex, Index: n}
	}
	return Reference{Kind: RefOpaque, ID: raw}
}

// isUUIDShaped reports whether s is a canonical 8-4-4-4-12 dashed UUID.
// uuid.Parse also accepts braced, urn, and undashed forms; the length check
// restricts matching to the canonical shape cell ids use.
func isUUIDShaped(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
