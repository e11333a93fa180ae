package notebook

// CellType identifies the kind of a notebook cell.
type CellType uint8

const (
	CellCode CellType = iota
	CellMarkdown
	CellRaw
)

// String returns the nbformat name of the cell type.
func (c CellType) String() string {
	switch c {
	case CellCode:
		return "code"
	case CellMarkdown:
		return "markdown"
	case CellRaw:
		return "raw"
	default:
		return "code"
	}
}

// ParseCellType maps an nbformat cell_type name to a CellType.
// Unknown names fall back to CellCode.
func ParseCellType(s string) CellType {
	switch s {
	case "markdown":
		return CellMarkdown
	case "raw":
		return CellRaw
	default:
		return CellCode
	}
}

// Cell is a point-in-time snapshot of one notebook cell. ID may be empty for
// cells written by older notebook formats.
type Cell struct {
	ID     string
	Type   CellType
	Source string
}

// Identity is a resolved cell reference. Index is valid only against the
// snapshot it was resolved from; other actors' mutations invalidate it.
type Identity struct {
	ID    string
	Index int
}
