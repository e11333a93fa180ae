package backend

import "errors"

// Errors returned by backend resolution and flat-file access.
var (
	// ErrUnavailable indicates neither a live document nor a notebook file
	// is reachable for the requested file.
	ErrUnavailable = errors.New("no live document or notebook file")

	// ErrMalformed indicates the serialized notebook could not be read as
	// notebook JSON.
	ErrMalformed = errors.New("malformed notebook")
)
