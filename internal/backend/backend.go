package backend

import (
	"fmt"
	"os"

	"github.com/dshills/cellscribe/internal/live"
	"github.com/dshills/cellscribe/internal/notebook"
)

// Mode identifies which representation served an attach.
type Mode uint8

const (
	ModeLive Mode = iota
	ModeFlatFile
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeLive:
		return "live"
	case ModeFlatFile:
		return "flatfile"
	default:
		return "unknown"
	}
}

// Attachment is the per-call binding of a file to a backend. It is valid for
// the duration of one operation; callers re-attach for every call because
// liveness can change in between.
type Attachment interface {
	// Mode reports which backend serves this attachment.
	Mode() Mode

	// Cells returns a snapshot of the cell list.
	Cells() ([]notebook.Cell, error)

	// SetSource replaces the source of the cell at index. The stored
	// content is byte-exact; no incremental simulation happens here.
	SetSource(index int, content string) error

	// InsertCell places a new cell at index; index past the end appends.
	InsertCell(index int, cell notebook.Cell) error

	// RemoveCell deletes the cell at index.
	RemoveCell(index int) error

	// Document returns the live document when Mode is ModeLive.
	Document() (*live.Document, bool)
}

// Resolver chooses the backend for a file. The registry probe happens on
// every Attach, never cached.
type Resolver struct {
	registry *live.Registry
}

// NewResolver creates a resolver backed by the given live registry. A nil
// registry means no file is ever live.
func NewResolver(reg *live.Registry) *Resolver {
	return &Resolver{registry: reg}
}

// Attach probes for a live document first and falls back to the flat file.
// When neither representation is reachable it fails with ErrUnavailable.
func (r *Resolver) Attach(file string) (Attachment, error) {
	if r.registry != nil {
		if doc, ok := r.registry.Lookup(file); ok {
			return &liveAttachment{doc: doc}, nil
		}
	}
	info, err := os.Stat(file)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, file)
	}
	return &fileAttachment{path: file}, nil
}
