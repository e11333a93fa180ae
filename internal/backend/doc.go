// Package backend resolves which representation of a notebook a write should
// target: the live shared document (source of truth while open, edits
// immediately visible to collaborators) or the flat serialized file on disk
// (whole-file read-modify-write, no locking, last writer wins).
//
// The decision is made per call by probing the live registry — liveness can
// change between calls, so attachments are never cached. Both modes expose
// the same read/locate/mutate surface.
package backend
