package checkin

// Ratio computes the matching-blocks similarity of two strings: twice the
// number of matched characters over the combined length, in [0,1]. It works
// on raw runes with no normalization, so case, whitespace and punctuation all
// count. Ratio(a, a) is 1.0 and Ratio(a, "") is 0.0 for non-empty a.
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra)+len(rb) == 0 {
		return 1.0
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0.0
	}
	m := newMatcher(ra, rb)
	matched := 0
	for _, bl := range m.matchingBlocks() {
		matched += bl.size
	}
	return 2.0 * float64(matched) / float64(len(ra)+len(rb))
}

type matchBlock struct {
	a, b, size int
}

type matcher struct {
	a, b []rune
	b2j  map[rune][]int
}

func newMatcher(a, b []rune) *matcher {
	m := &matcher{a: a, b: b, b2j: make(map[rune][]int)}
	for j, r := range b {
		m.b2j[r] = append(m.b2j[r], j)
	}
	return m
}

// longestMatch finds the longest block of equal runes in a[alo:ahi] and
// b[blo:bhi]. Ties resolve to the earliest block in a, then in b, because the
// scan goes left to right and only a strictly longer block replaces the best.
func (m *matcher) longestMatch(alo, ahi, blo, bhi int) matchBlock {
	best := matchBlock{a: alo, b: blo}
	j2len := map[int]int{}
	for i := alo; i < ahi; i++ {
		next := map[int]int{}
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break // positions are ascending
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > best.size {
				best = matchBlock{a: i - k + 1, b: j - k + 1, size: k}
			}
		}
		j2len = next
	}
	return best
}

// matchingBlocks returns every maximal matching block, found by recursively
// splitting around the longest match of each region.
func (m *matcher) matchingBlocks() []matchBlock {
	type region struct {
		alo, ahi, blo, bhi int
	}
	stack := []region{{0, len(m.a), 0, len(m.b)}}
	var blocks []matchBlock
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		bl := m.longestMatch(r.alo, r.ahi, r.blo, r.bhi)
		if bl.size == 0 {
			continue
		}
		blocks = append(blocks, bl)
		if r.alo < bl.a && r.blo < bl.b {
			stack = append(stack, region{r.alo, bl.a, r.blo, bl.b})
		}
		if bl.a+bl.size < r.ahi && bl.b+bl.size < r.bhi {
			stack = append(stack, region{bl.a + bl.size, r.ahi, bl.b + bl.size, r.bhi})
		}
	}
	return blocks
}
