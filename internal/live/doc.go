// Package live provides the in-memory shared document backend: a
// positionally addressed text structure with sticky positions and change
// notification, documents composed of collaboratively editable cells, and a
// registry that tracks which files currently have a live document open.
//
// Offsets are rune offsets throughout. The text structure resolves
// concurrent writers by simple interleaving under a mutex; it makes no
// conflict-free merge guarantees. Callers that need stronger semantics must
// bring their own shared structure — the write engine only requires the
// positional insert/delete/sticky surface.
package live
