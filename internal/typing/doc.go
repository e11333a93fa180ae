// Package typing replays an edit script against a shared text handle with
// timed pacing, so collaborators watching the document see an incremental,
// human-plausible edit instead of an instantaneous replace.
//
// The replay is a deterministic sequence of cooperative suspension points:
// deletions highlight their span before removing it, insertions land word by
// word, replacements chain the two with a pause between. The final buffer
// content is byte-exact regardless of pacing. There is no rollback: if the
// handle rejects an edit mid-replay, everything already applied stays
// applied and the caller gets the mutation error.
package typing
