// Package notebook defines the cell model shared by both persistence
// backends, and the locator that turns an opaque cell reference (UUID, index
// string, or pass-through id) into a position in a cell snapshot.
package notebook
