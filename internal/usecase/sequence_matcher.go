package usecase

// sequenceMatcher finds the longest contiguous matching blocks between two
// rune sequences, recursively on each side, and scores them as 2*M/T.
// Long second sequences drop "popular" runes from the match index, so the
// ratio of long texts leans on their rarer characters.
type sequenceMatcher struct {
	a, b []rune
	b2j  map[rune][]int
}

// autojunkMinLength is the size of b from which popular runes are ignored
const autojunkMinLength = 200

func newSequenceMatcher(a, b string) *sequenceMatcher {
	m := &sequenceMatcher{a: []rune(a), b: []rune(b)}
	m.indexB()
	return m
}

func (m *sequenceMatcher) indexB() {
	m.b2j = make(map[rune][]int)
	for j, r := range m.b {
		m.b2j[r] = append(m.b2j[r], j)
	}

	n := len(m.b)
	if n < autojunkMinLength {
		return
	}
	popular := n/100 + 1
	for r, idx := range m.b2j {
		if len(idx) > popular {
			delete(m.b2j, r)
		}
	}
}

type match struct {
	a, b, size int
}

// findLongestMatch returns the longest matching block in a[alo:ahi] and
// b[blo:bhi], preferring the earliest start in a, then in b.
func (m *sequenceMatcher) findLongestMatch(alo, ahi, blo, bhi int) match {
	best := match{a: alo, b: blo}
	j2len := map[int]int{}
	for i := alo; i < ahi; i++ {
		next := map[int]int{}
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
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

	// nothing is junk, so extend over equal neighbours the index skipped
	for best.a > alo && best.b > blo && m.a[best.a-1] == m.b[best.b-1] {
		best.a--
		best.b--
		best.size++
	}
	for best.a+best.size < ahi && best.b+best.size < bhi && m.a[best.a+best.size] == m.b[best.b+best.size] {
		best.size++
	}
	return best
}

// matchingRunes returns the total size of all matching blocks
func (m *sequenceMatcher) matchingRunes() int {
	type span struct{ alo, ahi, blo, bhi int }

	total := 0
	queue := []span{{0, len(m.a), 0, len(m.b)}}
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		x := m.findLongestMatch(s.alo, s.ahi, s.blo, s.bhi)
		if x.size == 0 {
			continue
		}
		total += x.size
		if s.alo < x.a && s.blo < x.b {
			queue = append(queue, span{s.alo, x.a, s.blo, x.b})
		}
		if x.a+x.size < s.ahi && x.b+x.size < s.bhi {
			queue = append(queue, span{x.a + x.size, s.ahi, x.b + x.size, s.bhi})
		}
	}
	return total
}

// ratio returns 2*M/T in [0, 1]; two empty sequences are identical
func (m *sequenceMatcher) ratio() float64 {
	t := len(m.a) + len(m.b)
	if t == 0 {
		return 1.0
	}
	return 2.0 * float64(m.matchingRunes()) / float64(t)
}

// similarityRatio compares two strings as-is
func similarityRatio(a, b string) float64 {
	return newSequenceMatcher(a, b).ratio()
}
