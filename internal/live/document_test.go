package live

import (
	"testing"

	"github.com/dshills/cellscribe/internal/notebook"
)

func testDocument() *Document {
	return NewDocument([]notebook.Cell{
		{ID: "cell-a", Type: notebook.CellMarkdown, Source: "# Notes"},
		{ID: "cell-b", Type: notebook.CellCode, Source: "x = 1"},
	})
}

func TestDocumentFindCell(t *testing.T) {
	doc := testDocument()

	i, cell := doc.FindCell("cell-b")
	if i != 1 || cell == nil {
		t.Fatalf("FindCell(cell-b) = %d, %v", i, cell)
	}
	if cell.Source.String() != "x = 1" {
		t.Errorf("source = %q", cell.Source.String())
	}

	if i, cell := doc.FindCell("missing"); i != -1 || cell != nil {
		t.Errorf("FindCell(missing) = %d, %v, want -1, nil", i, cell)
	}
}

func TestDocumentInsertCell(t *testing.T) {
	doc := testDocument()

	doc.InsertCell(1, &Cell{ID: "cell-new", Source: NewText("inserted")})
	if doc.CellCount() != 3 {
		t.Fatalf("count = %d, want 3", doc.CellCount())
	}
	if doc.Cell(1).ID != "cell-new" {
		t.Errorf("cell 1 id = %q", doc.Cell(1).ID)
	}

	// Index past the end appends.
	doc.InsertCell(99, &Cell{ID: "cell-tail", Source: NewText("")})
	if doc.Cell(3).ID != "cell-tail" {
		t.Errorf("cell 3 id = %q", doc.Cell(3).ID)
	}
}

func TestDocumentRemoveCellClosesHandle(t *testing.T) {
	doc := testDocument()
	cell := doc.Cell(0)

	doc.RemoveCell(0)
	if doc.CellCount() != 1 {
		t.Fatalf("count = %d, want 1", doc.CellCount())
	}
	if err := cell.Source.Insert(0, "x"); err == nil {
		t.Error("expected mutation on removed cell to fail")
	}
}

func TestDocumentSnapshotDetached(t *testing.T) {
	doc := testDocument()

	snap := doc.Snapshot()
	if err := doc.Cell(1).Source.Insert(0, "modified "); err != nil {
		t.Fatal(err)
	}
	if snap[1].Source != "x = 1" {
		t.Errorf("snapshot changed after edit: %q", snap[1].Source)
	}
}

func TestRegistryLiveness(t *testing.T) {
	reg := NewRegistry()

	if _, ok := reg.Lookup("nb.ipynb"); ok {
		t.Fatal("empty registry reported a live document")
	}

	doc := testDocument()
	reg.Open("nb.ipynb", doc)
	got, ok := reg.Lookup("nb.ipynb")
	if !ok || got != doc {
		t.Fatalf("Lookup = %v, %v", got, ok)
	}

	reg.Close("nb.ipynb")
	if _, ok := reg.Lookup("nb.ipynb"); ok {
		t.Error("closed file still reported live")
	}
}
