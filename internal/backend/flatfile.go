package backend

import (
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/cellscribe/internal/live"
	"github.com/dshills/cellscribe/internal/notebook"
)

// fileAttachment targets the serialized notebook on disk. Every mutation is
// a whole-file read-modify-write with no locking: a concurrent external
// writer races with last-write-wins semantics.
type fileAttachment struct {
	path string
}

func (a *fileAttachment) Mode() Mode { return ModeFlatFile }

func (a *fileAttachment) Document() (*live.Document, bool) { return nil, false }

func (a *fileAttachment) Cells() ([]notebook.Cell, error) {
	data, err := a.read()
	if err != nil {
		return nil, err
	}
	var cells []notebook.Cell
	for _, c := range gjson.GetBytes(data, "cells").Array() {
		cells = append(cells, notebook.Cell{
			ID:     cellID(c),
			Type:   notebook.ParseCellType(c.Get("cell_type").String()),
			Source: cellSource(c),
		})
	}
	return cells, nil
}

func (a *fileAttachment) SetSource(index int, content string) error {
	data, err := a.read()
	if err != nil {
		return err
	}
	if index < 0 || index >= int(gjson.GetBytes(data, "cells.#").Int()) {
		return fmt.Errorf("%w: cell index %d", notebook.ErrCellNotFound, index)
	}
	out, err := sjson.SetBytes(data, fmt.Sprintf("cells.%d.source", index), content)
	if err != nil {
		return fmt.Errorf("updating cell %d: %w", index, err)
	}
	return a.write(out)
}

func (a *fileAttachment) InsertCell(index int, cell notebook.Cell) error {
	data, err := a.read()
	if err != nil {
		return err
	}
	raws := cellRaws(data)
	if index < 0 {
		index = 0
	}
	if index > len(raws) {
		index = len(raws)
	}

	newRaw, err := marshalCell(cell)
	if err != nil {
		return err
	}
	raws = append(raws[:index], append([]string{newRaw}, raws[index:]...)...)
	return a.writeCells(data, raws)
}

func (a *fileAttachment) RemoveCell(index int) error {
	data, err := a.read()
	if err != nil {
		return err
	}
	raws := cellRaws(data)
	if index < 0 || index >= len(raws) {
		return fmt.Errorf("%w: cell index %d", notebook.ErrCellNotFound, index)
	}
	raws = append(raws[:index], raws[index+1:]...)
	return a.writeCells(data, raws)
}

func (a *fileAttachment) read() ([]byte, error) {
	data, err := os.ReadFile(a.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !gjson.ValidBytes(data) || !gjson.GetBytes(data, "cells").IsArray() {
		return nil, fmt.Errorf("%w: %s", ErrMalformed, a.path)
	}
	return data, nil
}

func (a *fileAttachment) write(data []byte) error {
	return os.WriteFile(a.path, data, 0o644)
}

func (a *fileAttachment) writeCells(data []byte, raws []string) error {
	arr := "[" + strings.Join(raws, ",") + "]"
	out, err := sjson.SetRawBytes(data, "cells", []byte(arr))
	if err != nil {
		return fmt.Errorf("rewriting cell list: %w", err)
	}
	return a.write(out)
}

// cellRaws returns the raw JSON of each cell, for splicing.
func cellRaws(data []byte) []string {
	items := gjson.GetBytes(data, "cells").Array()
	raws := make([]string, len(items))
	for i, item := range items {
		raws[i] = item.Raw
	}
	return raws
}

// cellID extracts a cell's id: the nbformat 4.5 top-level field, falling
// back to the metadata field older formats used.
func cellID(c gjson.Result) string {
	if id := c.Get("id").String(); id != "" {
		return id
	}
	return c.Get("metadata.id").String()
}

// cellSource joins a multiline source array, or returns the plain string.
func cellSource(c gjson.Result) string {
	src := c.Get("source")
	if !src.IsArray() {
		return src.String()
	}
	var sb strings.Builder
	for _, part := range src.Array() {
		sb.WriteString(part.String())
	}
	return sb.String()
}

// marshalCell builds the nbformat JSON for a new cell.
func marshalCell(cell notebook.Cell) (string, error) {
	raw := `{"cell_type":"","metadata":{}}`
	raw, err := sjson.Set(raw, "cell_type", cell.Type.String())
	if err == nil {
		raw, err = sjson.Set(raw, "id", cell.ID)
	}
	if err == nil {
		raw, err = sjson.Set(raw, "source", cell.Source)
	}
	if err == nil && cell.Type == notebook.CellCode {
		raw, err = sjson.SetRaw(raw, "execution_count", "null")
		if err == nil {
			raw, err = sjson.SetRaw(raw, "outputs", "[]")
		}
	}
	if err != nil {
		return "", fmt.Errorf("building cell json: %w", err)
	}
	return raw, nil
}
