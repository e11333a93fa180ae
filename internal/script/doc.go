// Package script runs user-supplied Lua pacing hooks. A pace script exposes
// a global pace(op, base_ms) function that returns the delay in milliseconds
// for one typing step, letting users shape the replay rhythm per operation.
package script
