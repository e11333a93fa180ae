// Package diff computes character-level edit scripts between two strings.
//
// The planner produces an ordered, contiguous sequence of opcodes
// (Equal/Delete/Insert/Replace) whose old spans concatenate back to the old
// string and whose new spans concatenate to the new string. The matcher is a
// Ratcliff/Obershelp longest-match recursion, so Equal runs are maximal and
// the output is deterministic for a given input pair.
//
// Spans are rune offsets, not byte offsets. Replaying an edit script against
// a positionally addressed text buffer therefore works for any UTF-8 content.
package diff
