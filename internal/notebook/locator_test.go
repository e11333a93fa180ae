package notebook

import (
	"errors"
	"testing"
)

func fiveCells() []Cell {
	return []Cell{
		{ID: "0c6a2ec8-a6f4-4f21-bd1e-f88b80bb66a1", Type: CellMarkdown, Source: "# Title"},
		{ID: "5b1f7f46-9c0d-4e49-8a54-1af06bafef3d", Type: CellCode, Source: "import os"},
		{ID: "a7e62f51-3bde-43bb-9e1a-6c8f5f2a9c44", Type: CellCode, Source: "print('hi')"},
		{ID: "c90de0da-57e8-4f3c-92d4-90cf9f6a2ad7", Type: CellCode, Source: "x = 1"},
		{ID: "f4b3f0ee-2b6f-4f58-b0d9-6e51c7f0d815", Type: CellRaw, Source: "raw"},
	}
}

func TestParseReference(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want RefKind
	}{
		{"uuid", "a7e62f51-3bde-43bb-9e1a-6c8f5f2a9c44", RefByID},
		{"uuid uppercase", "A7E62F51-3BDE-43BB-9E1A-6C8F5F2A9C44", RefByID},
		{"index", "2", RefByIndex},
		{"index zero", "0", RefByIndex},
		{"negative index", "-1", RefByIndex},
		{"opaque", "my-custom-cell", RefOpaque},
		{"undashed hex is not a cell id", "a7e62f513bde43bb9e1a6c8f5f2a9c44", RefOpaque},
		{"empty", "", RefOpaque},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := ParseReference(tt.raw)
			if ref.Kind != tt.want {
				t.Errorf("ParseReference(%q).Kind = %v, want %v", tt.raw, ref.Kind, tt.want)
			}
		})
	}
}

func TestResolveByIndex(t *testing.T) {
	cells := fiveCells()

	id, err := Resolve(cells, ParseReference("2"))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if id.ID != cells[2].ID || id.Index != 2 {
		t.Errorf("got %+v, want id of cell 2", id)
	}
}

func TestResolveIndexOutOfRange(t *testing.T) {
	_, err := Resolve(fiveCells(), ParseReference("7"))
	if !errors.Is(err, ErrCellNotFound) {
		t.Errorf("expected ErrCellNotFound, got %v", err)
	}

	_, err = Resolve(fiveCells(), ParseReference("-1"))
	if !errors.Is(err, ErrCellNotFound) {
		t.Errorf("expected ErrCellNotFound for negative index, got %v", err)
	}
}

func TestResolveIndexWithoutID(t *testing.T) {
	cells := []Cell{{Source: "legacy cell, no id"}}

	_, err := Resolve(cells, ParseReference("0"))
	if !errors.Is(err, ErrNoCellID) {
		t.Errorf("expected ErrNoCellID, got %v", err)
	}
}

func TestResolveByID(t *testing.T) {
	cells := fiveCells()

	id, err := Resolve(cells, ParseReference(cells[3].ID))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if id.Index != 3 {
		t.Errorf("got index %d, want 3", id.Index)
	}
}

func TestResolveUnknownID(t *testing.T) {
	_, err := Resolve(fiveCells(), ParseReference("deadbeef-dead-beef-dead-beefdeadbeef"))
	if !errors.Is(err, ErrCellNotFound) {
		t.Errorf("expected ErrCellNotFound, got %v", err)
	}
}

func TestInsertIndex(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		refIndex int
		addAbove bool
		want     int
	}{
		{"no reference appends", 3, -1, false, 3},
		{"below reference", 3, 1, false, 2},
		{"above reference", 3, 1, true, 1},
		{"clamped then below is append", 3, 10, false, 4},
		{"clamped above", 3, 10, true, 3},
		{"empty notebook", 0, -1, false, 0},
		{"above first", 5, 0, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InsertIndex(tt.count, tt.refIndex, tt.addAbove)
			if got != tt.want {
				t.Errorf("InsertIndex(%d, %d, %v) = %d, want %d", tt.count, tt.refIndex, tt.addAbove, got, tt.want)
			}
		})
	}
}
