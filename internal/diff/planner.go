package diff

import "sort"

// minEqualRun is the shortest Equal run worth keeping between two change
// regions. Anything shorter is an accidental single-rune anchor (the "l"
// shared by "hello" and "world") and folds into one Replace.
const minEqualRun = 2

// Plan computes the edit script transforming old into new.
//
// The result is contiguous and ordered: every rune of the old string is
// covered by exactly one opcode's old span, every rune of the new string by
// exactly one opcode's new span. Calling Plan twice with the same pair yields
// an identical sequence. Equal input strings produce a single Equal opcode
// (or no opcodes when both are empty).
func Plan(old, new string) []Op {
	a := []rune(old)
	b := []rune(new)

	blocks := matchingBlocks(a, b)

	var ops []Op
	i, j := 0, 0
	for _, m := range blocks {
		var tag OpTag
		switch {
		case i < m.a && j < m.b:
			tag = OpReplace
		case i < m.a:
			tag = OpDelete
		case j < m.b:
			tag = OpInsert
		}
		if i < m.a || j < m.b {
			ops = append(ops, Op{Tag: tag, OldStart: i, OldEnd: m.a, NewStart: j, NewEnd: m.b})
		}
		i, j = m.a+m.size, m.b+m.size
		if m.size > 0 {
			ops = append(ops, Op{Tag: OpEqual, OldStart: m.a, OldEnd: i, NewStart: m.b, NewEnd: j})
		}
	}
	return coalesce(ops)
}

// coalesce folds Equal runs shorter than minEqualRun that sit between two
// change regions into a single Replace spanning the whole stretch. Edge
// Equal runs are always kept.
func coalesce(ops []Op) []Op {
	out := ops[:0]
	for k := 0; k < len(ops); k++ {
		op := ops[k]
		if op.Tag == OpEqual && op.OldLen() < minEqualRun &&
			len(out) > 0 && out[len(out)-1].Tag != OpEqual &&
			k+1 < len(ops) && ops[k+1].Tag != OpEqual {
			prev := out[len(out)-1]
			next := ops[k+1]
			out[len(out)-1] = Op{
				Tag:      OpReplace,
				OldStart: prev.OldStart,
				OldEnd:   next.OldEnd,
				NewStart: prev.NewStart,
				NewEnd:   next.NewEnd,
			}
			k++ // next is consumed by the merge
			continue
		}
		out = append(out, op)
	}
	return out
}

// match is a run of identical runes: a[a:a+size] == b[b:b+size].
type match struct {
	a, b, size int
}

// span is a pending sub-problem for the matcher.
type span struct {
	alo, ahi, blo, bhi int
}

// matchingBlocks finds all maximal matching runs between a and b, sorted by
// position, terminated by a zero-length sentinel at (len(a), len(b)).
func matchingBlocks(a, b []rune) []match {
	// Index every rune of b by value so longestMatch can walk candidate
	// positions in order.
	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}

	queue := []span{{0, len(a), 0, len(b)}}
	var matched []match
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		m := longestMatch(a, b2j, s)
		if m.size == 0 {
			continue
		}
		matched = append(matched, m)
		if s.alo < m.a && s.blo < m.b {
			queue = append(queue, span{s.alo, m.a, s.blo, m.b})
		}
		if m.a+m.size < s.ahi && m.b+m.size < s.bhi {
			queue = append(queue, span{m.a + m.size, s.ahi, m.b + m.size, s.bhi})
		}
	}

	sort.Slice(matched, func(x, y int) bool {
		if matched[x].a != matched[y].a {
			return matched[x].a < matched[y].a
		}
		return matched[x].b < matched[y].b
	})

	// Merge adjacent runs so Equal opcodes are maximal.
	var blocks []match
	for _, m := range matched {
		n := len(blocks)
		if n > 0 && blocks[n-1].a+blocks[n-1].size == m.a && blocks[n-1].b+blocks[n-1].size == m.b {
			blocks[n-1].size += m.size
			continue
		}
		blocks = append(blocks, m)
	}
	return append(blocks, match{len(a), len(b), 0})
}

// longestMatch finds the longest run of identical runes within the window.
// Ties break toward the earliest position in a, then the earliest in b, which
// keeps the overall plan stable across calls.
func longestMatch(a []rune, b2j map[rune][]int, s span) match {
	best := match{a: s.alo, b: s.blo}
	j2len := make(map[int]int)
	for i := s.alo; i < s.ahi; i++ {
		next := make(map[int]int)
		for _, j := range b2j[a[i]] {
			if j < s.blo {
				continue
			}
			if j >= s.bhi {
				break
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > best.size {
				best = match{a: i - k + 1, b: j - k + 1, size: k}
			}
		}
		j2len = next
	}
	return best
}
