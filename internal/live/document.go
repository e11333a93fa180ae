package live

import (
	"sync"

	"github.com/dshills/cellscribe/internal/notebook"
)

// Cell is one collaboratively editable notebook cell. Source is the shared
// text handle collaborators and the write engine both mutate.
type Cell struct {
	ID     string
	Type   notebook.CellType
	Source *Text
}

// Document is a live notebook: an ordered list of shared cells. It is the
// source of truth while open; every mutation is immediately visible to all
// holders of the document.
type Document struct {
	mu    sync.RWMutex
	cells []*Cell
}

// NewDocument creates a live document from cell snapshots.
func NewDocument(cells []notebook.Cell) *Document {
	d := &Document{}
	for _, c := range cells {
		d.cells = append(d.cells, &Cell{ID: c.ID, Type: c.Type, Source: NewText(c.Source)})
	}
	return d
}

// CellCount returns the number of cells.
func (d *Document) CellCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.cells)
}

// Cell returns the cell at index, or nil when out of range.
func (d *Document) Cell(index int) *Cell {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if index < 0 || index >= len(d.cells) {
		return nil
	}
	return d.cells[index]
}

// FindCell returns the index and cell with the given id, or (-1, nil).
func (d *Document) FindCell(id string) (int, *Cell) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for i, c := range d.cells {
		if c.ID == id {
			return i, c
		}
	}
	return -1, nil
}

// InsertCell places cell at index; index ≥ CellCount appends.
func (d *Document) InsertCell(index int, cell *Cell) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if index < 0 {
		index = 0
	}
	if index >= len(d.cells) {
		d.cells = append(d.cells, cell)
		return
	}
	d.cells = append(d.cells[:index], append([]*Cell{cell}, d.cells[index:]...)...)
}

// RemoveCell deletes the cell at index and closes its text handle.
// Out-of-range indexes are ignored.
func (d *Document) RemoveCell(index int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if index < 0 || index >= len(d.cells) {
		return
	}
	d.cells[index].Source.Close()
	d.cells = append(d.cells[:index], d.cells[index+1:]...)
}

// Snapshot returns the current cells as plain values. The snapshot is
// detached: later document edits do not affect it, and its indexes are not
// stable across mutating operations by other actors.
func (d *Document) Snapshot() []notebook.Cell {
	d.mu.RLock()
	defer d.mu.RUnlock()
	cells := make([]notebook.Cell, len(d.cells))
	for i, c := range d.cells {
		cells[i] = notebook.Cell{ID: c.ID, Type: c.Type, Source: c.Source.String()}
	}
	return cells
}
