package similarity

import (
	"sort"
	"strings"
)

// Ratio compares a submitted answer against the reference answer and returns
// a score in [0,1]. Both strings are lowercased and trimmed first; punctuation
// and internal whitespace differences count against the score.
//
// The measure is the Ratcliff-Obershelp matching-blocks ratio:
// 2*M / (len(a)+len(b)) where M is the total size of the longest matching
// blocks. Grading depends on exact score values, so this is a faithful port of
// the classic SequenceMatcher algorithm (including the popular-element
// heuristic for long sequences), not an edit-distance approximation.
func Ratio(candidate, reference string) float64 {
	a := []rune(strings.TrimSpace(strings.ToLower(candidate)))
	b := []rune(strings.TrimSpace(strings.ToLower(reference)))
	m := newMatcher(a, b)
	matched := 0
	for _, bl := range m.matchingBlocks() {
		matched += bl.size
	}
	total := len(a) + len(b)
	if total == 0 {
		return 1.0
	}
	return 2.0 * float64(matched) / float64(total)
}

// IsCorrect applies the grading threshold. Strictly greater than 0.80: a score
// of exactly 0.80 is not a correct answer.
func IsCorrect(score float64) bool {
	return score > 0.8
}

// Feedback returns the user-visible grading message for a score.
func Feedback(score float64) string {
	switch {
	case score >= 0.9:
		return "Tuyệt vời! Bản dịch của bạn rất chính xác!"
	case score >= 0.8:
		return "Tốt! Bản dịch của bạn khá chính xác!"
	case score >= 0.6:
		return "Khá tốt! Có một vài lỗi nhỏ."
	case score >= 0.4:
		return "Cần cải thiện! Bản dịch có nhiều lỗi."
	default:
		return "Cần cố gắng nhiều hơn! Hãy xem lại đáp án đúng."
	}
}

type block struct {
	a, b, size int
}

type matcher struct {
	a, b []rune
	b2j  map[rune][]int
}

func newMatcher(a, b []rune) *matcher {
	m := &matcher{a: a, b: b}
	m.chainB()
	return m
}

// chainB indexes every rune of b by position. For sequences of 200+ elements,
// runes accounting for more than 1% of b are treated as popular and left out
// of the index; they can still join a match through the extension passes in
// findLongestMatch.
func (m *matcher) chainB() {
	m.b2j = make(map[rune][]int, len(m.b))
	for j, r := range m.b {
		m.b2j[r] = append(m.b2j[r], j)
	}
	n := len(m.b)
	if n >= 200 {
		threshold := n/100 + 1
		popular := make([]rune, 0)
		for r, idxs := range m.b2j {
			if len(idxs) > threshold {
				popular = append(popular, r)
			}
		}
		for _, r := range popular {
			delete(m.b2j, r)
		}
	}
}

// findLongestMatch returns the longest block m.a[i:i+k] == m.b[j:j+k] with
// alo <= i < i+k <= ahi and blo <= j < j+k <= bhi. Ties resolve to the
// earliest block in a, then the earliest in b.
func (m *matcher) findLongestMatch(alo, ahi, blo, bhi int) (int, int, int) {
	besti, bestj, bestsize := alo, blo, 0
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newj2len := make(map[int]int)
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}

	// Extend the block over adjacent equal runes in both directions. Popular
	// runes are excluded from seeding only; they still join through extension,
	// so the seed search and these passes together find the full block.
	for besti > alo && bestj > blo && m.a[besti-1] == m.b[bestj-1] {
		besti, bestj, bestsize = besti-1, bestj-1, bestsize+1
	}
	for besti+bestsize < ahi && bestj+bestsize < bhi &&
		m.a[besti+bestsize] == m.b[bestj+bestsize] {
		bestsize++
	}

	return besti, bestj, bestsize
}

// matchingBlocks returns every maximal matching block in order, terminated by
// a zero-size sentinel, with adjacent blocks merged.
func (m *matcher) matchingBlocks() []block {
	type span struct {
		alo, ahi, blo, bhi int
	}
	queue := []span{{0, len(m.a), 0, len(m.b)}}
	var matched []block
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		i, j, k := m.findLongestMatch(s.alo, s.ahi, s.blo, s.bhi)
		if k > 0 {
			matched = append(matched, block{i, j, k})
			if s.alo < i && s.blo < j {
				queue = append(queue, span{s.alo, i, s.blo, j})
			}
			if i+k < s.ahi && j+k < s.bhi {
				queue = append(queue, span{i + k, s.ahi, j + k, s.bhi})
			}
		}
	}
	sort.Slice(matched, func(x, y int) bool {
		if matched[x].a != matched[y].a {
			return matched[x].a < matched[y].a
		}
		return matched[x].b < matched[y].b
	})

	var out []block
	i1, j1, k1 := 0, 0, 0
	for _, bl := range matched {
		if i1+k1 == bl.a && j1+k1 == bl.b {
			k1 += bl.size
		} else {
			if k1 > 0 {
				out = append(out, block{i1, j1, k1})
			}
			i1, j1, k1 = bl.a, bl.b, bl.size
		}
	}
	if k1 > 0 {
		out = append(out, block{i1, j1, k1})
	}
	out = append(out, block{len(m.a), len(m.b), 0})
	return out
}
