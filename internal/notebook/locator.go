package notebook

import "fmt"

// Resolve turns a parsed reference into an identity against a cell snapshot.
//
// Index references must fall in [0, len(cells)) and the cell there must carry
// an id. ID and opaque references are matched by linear scan. The returned
// index is only valid against this snapshot.
func Resolve(cells []Cell, ref Reference) (Identity, error) {
	switch ref.Kind {
	case RefByIndex:
		if ref.Index < 0 || ref.Index >= len(cells) {
			return Identity{}, fmt.Errorf("%w: index %d out of range [0,%d)", ErrCellNotFound, ref.Index, len(cells))
		}
		cell := cells[ref.Index]
		if cell.ID == "" {
			return Identity{}, fmt.Errorf("%w: index %d", ErrNoCellID, ref.Index)
		}
		return Identity{ID: cell.ID, Index: ref.Index}, nil

	default:
		for i, cell := range cells {
			if cell.ID != "" && cell.ID == ref.ID {
				return Identity{ID: cell.ID, Index: i}, nil
			}
		}
		return Identity{}, fmt.Errorf("%w: id %q", ErrCellNotFound, ref.ID)
	}
}

// InsertIndex determines where a new cell should be inserted relative to a
// reference cell. A negative refIndex means no reference: append. Otherwise
// refIndex is clamped into [0, count]; the target is refIndex when addAbove,
// refIndex+1 when not. A target of count (or beyond) means append.
func InsertIndex(count, refIndex int, addAbove bool) int {
	if refIndex < 0 {
		return count
	}
	if refIndex > count {
		refIndex = count
	}
	if addAbove {
		return refIndex
	}
	return refIndex + 1
}
