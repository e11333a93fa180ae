package typing

import "errors"

// Errors returned by the simulator.
var (
	// ErrInvalidArgs indicates a precondition failed before any mutation.
	ErrInvalidArgs = errors.New("invalid replay arguments")

	// ErrMutation indicates the text handle rejected an edit mid-replay.
	// Opcodes applied before the failure remain applied.
	ErrMutation = errors.New("text handle rejected edit")
)
