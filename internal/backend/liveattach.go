package backend

import (
	"fmt"

	"github.com/dshills/cellscribe/internal/live"
	"github.com/dshills/cellscribe/internal/notebook"
)

// liveAttachment targets the in-memory shared document.
type liveAttachment struct {
	doc *live.Document
}

func (a *liveAttachment) Mode() Mode { return ModeLive }

func (a *liveAttachment) Cells() ([]notebook.Cell, error) {
	return a.doc.Snapshot(), nil
}

// SetSource replaces the whole cell text in one shot. Collaborative writes
// go through the typing replay against the cell's text handle instead; this
// path exists for callers that want the uniform mutate surface.
func (a *liveAttachment) SetSource(index int, content string) error {
	cell := a.doc.Cell(index)
	if cell == nil {
		return fmt.Errorf("%w: cell index %d", notebook.ErrCellNotFound, index)
	}
	if err := cell.Source.Delete(0, cell.Source.Len()); err != nil {
		return err
	}
	return cell.Source.Insert(0, content)
}

func (a *liveAttachment) InsertCell(index int, cell notebook.Cell) error {
	a.doc.InsertCell(index, &live.Cell{
		ID:     cell.ID,
		Type:   cell.Type,
		Source: live.NewText(cell.Source),
	})
	return nil
}

func (a *liveAttachment) RemoveCell(index int) error {
	if a.doc.Cell(index) == nil {
		return fmt.Errorf("%w: cell index %d", notebook.ErrCellNotFound, index)
	}
	a.doc.RemoveCell(index)
	return nil
}

func (a *liveAttachment) Document() (*live.Document, bool) {
	return a.doc, true
}
