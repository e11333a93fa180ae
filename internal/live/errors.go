package live

import "errors"

// Errors returned by shared text operations.
var (
	// ErrOffsetOutOfRange indicates an offset is outside the valid text range.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrRangeInvalid indicates an invalid range (e.g., end < start).
	ErrRangeInvalid = errors.New("invalid range")

	// ErrTextClosed indicates the text handle outlived its document.
	ErrTextClosed = errors.New("text handle is closed")
)
