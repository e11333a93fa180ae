// Package tui renders a live cell during a typing replay. The view follows
// the shared text and the broadcast cursor, so a local terminal shows the
// same progression remote collaborators see.
package tui
