package engine

import (
	"errors"

	"github.com/dshills/cellscribe/internal/backend"
	"github.com/dshills/cellscribe/internal/live"
	"github.com/dshills/cellscribe/internal/notebook"
	"github.com/dshills/cellscribe/internal/typing"
)

// The four error kinds every engine operation resolves to. Callers branch on
// these with errors.Is; the wrapped chain keeps the component detail.
var (
	// ErrValidation indicates the caller's input was unusable: a negative
	// pace, an id-less cell addressed by index, a bad cell type.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates the referenced cell does not exist.
	ErrNotFound = errors.New("cell not found")

	// ErrMutation indicates an edit was rejected mid-write. The buffer holds
	// valid text that is not the requested content.
	ErrMutation = errors.New("mutation failed")

	// ErrBackendUnavailable indicates neither a live document nor a readable
	// notebook file could serve the operation.
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// classify maps component sentinels onto the four engine kinds. Errors that
// already carry a kind, and unrecognized errors, pass through unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrMutation),
		errors.Is(err, ErrBackendUnavailable):
		return err
	case errors.Is(err, backend.ErrUnavailable),
		errors.Is(err, backend.ErrMalformed):
		return errors.Join(ErrBackendUnavailable, err)
	case errors.Is(err, notebook.ErrCellNotFound),
		errors.Is(err, notebook.ErrNoCellID):
		// An id-less cell is unaddressable, which callers experience as the
		// cell not being there.
		return errors.Join(ErrNotFound, err)
	case errors.Is(err, typing.ErrInvalidArgs):
		return errors.Join(ErrValidation, err)
	case errors.Is(err, typing.ErrMutation),
		errors.Is(err, live.ErrOffsetOutOfRange),
		errors.Is(err, live.ErrRangeInvalid),
		errors.Is(err, live.ErrTextClosed):
		return errors.Join(ErrMutation, err)
	default:
		return err
	}
}
