package notebook

import "errors"

// Errors returned by cell resolution.
var (
	// ErrCellNotFound indicates a reference did not resolve against the snapshot.
	ErrCellNotFound = errors.New("cell not found")

	// ErrNoCellID indicates the cell at the requested index carries no id.
	// Callers should use index-based insertion instead of id references.
	ErrNoCellID = errors.New("cell has no id")
)
