package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/cellscribe/internal/awareness"
	"github.com/dshills/cellscribe/internal/backend"
	"github.com/dshills/cellscribe/internal/notebook"
	"github.com/dshills/cellscribe/internal/typing"
)

// Engine executes cell operations against whichever backend currently serves
// the file. The backend is probed per call; an engine outlives any
// individual live session.
type Engine struct {
	resolver *backend.Resolver
	sim      *typing.Simulator
	pub      awareness.Publisher
}

// Option configures an Engine.
type Option func(*Engine)

// WithPublisher installs the awareness publisher cursor updates go to.
// Without one, cursor broadcasting is silently disabled.
func WithPublisher(pub awareness.Publisher) Option {
	return func(e *Engine) {
		e.pub = pub
	}
}

// WithSimulator replaces the typing simulator. Tests inject one with a
// recorded sleep function.
func WithSimulator(sim *typing.Simulator) Option {
	return func(e *Engine) {
		if sim != nil {
			e.sim = sim
		}
	}
}

// New creates an engine over the given backend resolver.
func New(resolver *backend.Resolver, opts ...Option) *Engine {
	e := &Engine{
		resolver: resolver,
		sim:      typing.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WriteResult describes a completed cell write.
type WriteResult struct {
	Mode   backend.Mode // which backend served the write
	CellID string       // resolved id of the written cell
	Cursor int          // final cursor rune offset (live mode only)
}

// WriteCell replaces the content of the referenced cell. Against a live
// document the change is typed incrementally with cursor broadcasting;
// against a flat file it is a single byte-exact update. A write whose content
// already matches the cell is a no-op.
func (e *Engine) WriteCell(file, cellRef, content string, pace time.Duration) (WriteResult, error) {
	if pace < 0 {
		return WriteResult{}, fmt.Errorf("%w: negative pace %v", ErrValidation, pace)
	}

	att, cells, err := e.attach(file)
	if err != nil {
		return WriteResult{}, err
	}
	ident, err := notebook.Resolve(cells, notebook.ParseReference(cellRef))
	if err != nil {
		return WriteResult{}, classify(err)
	}

	doc, isLive := att.Document()
	if !isLive {
		if err := att.SetSource(ident.Index, content); err != nil {
			return WriteResult{}, classify(err)
		}
		return WriteResult{Mode: backend.ModeFlatFile, CellID: ident.ID}, nil
	}

	// Re-find by id: the snapshot index may already be stale against a
	// concurrently edited document.
	_, cell := doc.FindCell(ident.ID)
	if cell == nil {
		return WriteResult{}, fmt.Errorf("%w: id %q", ErrNotFound, ident.ID)
	}

	b := awareness.NewBroadcaster(e.pub, cell.Source)
	cursor, err := e.sim.Replay(cell.Source, b, cell.Source.String(), content, pace)
	if err != nil {
		return WriteResult{Mode: backend.ModeLive, CellID: ident.ID, Cursor: cursor}, classify(err)
	}
	return WriteResult{Mode: backend.ModeLive, CellID: ident.ID, Cursor: cursor}, nil
}

// AddCell creates a new cell and returns its generated id. The reference
// cell, when given, positions the insert: above it or below it. An empty or
// unresolvable reference appends. Against a live document the content is
// typed into the fresh cell collaboratively; against a flat file it is
// stored directly.
func (e *Engine) AddCell(file, content, cellRef string, addAbove bool, cellType notebook.CellType, pace time.Duration) (string, error) {
	att, cells, err := e.attach(file)
	if err != nil {
		return "", err
	}

	refIndex := -1
	if cellRef != "" {
		refIndex = referenceIndex(cells, notebook.ParseReference(cellRef))
	}
	target := notebook.InsertIndex(len(cells), refIndex, addAbove)

	cell := notebook.Cell{ID: uuid.NewString(), Type: cellType}
	_, isLive := att.Document()
	if !isLive {
		cell.Source = content
	}
	if err := att.InsertCell(target, cell); err != nil {
		return "", classify(err)
	}

	if isLive && content != "" {
		if _, err := e.WriteCell(file, cell.ID, content, pace); err != nil {
			return cell.ID, err
		}
	}
	return cell.ID, nil
}

// InsertCell creates a cell of the given type at an explicit index. Indexes
// past the end append. Like AddCell, a live document receives the content
// through the collaborative write; a flat file stores it directly. It
// returns the generated id.
func (e *Engine) InsertCell(file, content string, index int, cellType notebook.CellType, pace time.Duration) (string, error) {
	att, _, err := e.attach(file)
	if err != nil {
		return "", err
	}
	if index < 0 {
		return "", fmt.Errorf("%w: negative index %d", ErrValidation, index)
	}

	cell := notebook.Cell{ID: uuid.NewString(), Type: cellType}
	_, isLive := att.Document()
	if !isLive {
		cell.Source = content
	}
	if err := att.InsertCell(index, cell); err != nil {
		return "", classify(err)
	}

	if isLive && content != "" {
		if _, err := e.WriteCell(file, cell.ID, content, pace); err != nil {
			return cell.ID, err
		}
	}
	return cell.ID, nil
}

// DeleteCell removes the referenced cell.
func (e *Engine) DeleteCell(file, cellRef string) error {
	att, cells, err := e.attach(file)
	if err != nil {
		return err
	}
	ident, err := notebook.Resolve(cells, notebook.ParseReference(cellRef))
	if err != nil {
		return classify(err)
	}
	return classify(att.RemoveCell(ident.Index))
}

// ReadCell returns a snapshot of the referenced cell.
func (e *Engine) ReadCell(file, cellRef string) (notebook.Cell, error) {
	_, cells, err := e.attach(file)
	if err != nil {
		return notebook.Cell{}, err
	}
	ident, err := notebook.Resolve(cells, notebook.ParseReference(cellRef))
	if err != nil {
		return notebook.Cell{}, classify(err)
	}
	return cells[ident.Index], nil
}

// CellIDAt returns the id of the cell at index. A cell without an id resolves
// as not found: such cells cannot be addressed stably and should be recreated
// with AddCell.
func (e *Engine) CellIDAt(file string, index int) (string, error) {
	_, cells, err := e.attach(file)
	if err != nil {
		return "", err
	}
	ident, err := notebook.Resolve(cells, notebook.Reference{Kind: notebook.RefByIndex, Index: index})
	if err != nil {
		return "", classify(err)
	}
	return ident.ID, nil
}

// attach resolves the backend and takes a cell snapshot in one step.
func (e *Engine) attach(file string) (backend.Attachment, []notebook.Cell, error) {
	att, err := e.resolver.Attach(file)
	if err != nil {
		return nil, nil, classify(err)
	}
	cells, err := att.Cells()
	if err != nil {
		return nil, nil, classify(err)
	}
	return att, cells, nil
}

// referenceIndex finds the snapshot index of a reference cell for insertion
// positioning. Unresolvable references yield -1, which means append.
func referenceIndex(cells []notebook.Cell, ref notebook.Reference) int {
	if ref.Kind == notebook.RefByIndex {
		return ref.Index
	}
	for i, c := range cells {
		if c.ID != "" && c.ID == ref.ID {
			return i
		}
	}
	return -1
}
