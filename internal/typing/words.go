package typing

import "strings"

// wordStep is one unit of word-by-word insertion: the separator that
// precedes the word (possibly empty) plus the word itself.
type wordStep struct {
	sep  string
	word string
}

// splitWords decomposes an insertion span into word steps and a trailing
// suffix of whatever follows the last word. A span with no words (empty or
// all whitespace) yields no steps and an empty suffix; callers insert such
// spans as one unit.
func splitWords(text string) (steps []wordStep, suffix string) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, ""
	}

	cur := 0
	for _, word := range words {
		start := strings.Index(text[cur:], word) + cur
		steps = append(steps, wordStep{sep: text[cur:start], word: word})
		cur = start + len(word)
	}
	return steps, text[cur:]
}
