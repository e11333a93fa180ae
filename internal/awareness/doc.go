// Package awareness publishes ephemeral presence data — cursor and selection
// positions — to collaborators. It is a side channel, distinct from document
// content, and deliberately best-effort: every publish failure is swallowed
// inside this package so presence problems can never break a write operation.
package awareness
