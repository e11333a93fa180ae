// Package engine is the facade over cell resolution, backend selection, and
// the collaborative typing replay. Callers hand it raw cell references and
// content; it classifies every failure into one of four error kinds so the
// command layer can report them uniformly.
package engine
