package ctrie

import "container/heap"

// pmState is a partial match in the bounded-edit-distance fuzzy search
// (spec.md §4.5): a position in the query, a node in the trie, and the
// edit distance accumulated so far.
type pmState struct {
	queryPos  int
	nodeIdx   uint32
	dist      int
	matched   []int // trie letters consumed so far, for the eventual matched key
	prevQ     int   // previous step's mismatched query letter, or -1
	prevT     int   // previous step's mismatched trie letter, or -1
	shift     int   // queryPos - triePos, used for PM dedup (shift_class)
}

type pmHeap []pmState

func (h pmHeap) Len() int { return len(h) }
func (h pmHeap) Less(i, j int) bool {
	if h[i].dist != h[j].dist {
		return h[i].dist < h[j].dist
	}
	return h[i].queryPos > h[j].queryPos
}
func (h pmHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *pmHeap) Push(x interface{}) { *h = append(*h, x.(pmState)) }
func (h *pmHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// FuzzyQuery performs best-first bounded-edit-distance search, enqueuing
// match, substitution, right-shift (trie-letter skip), and down-shift
// (query-letter skip) transitions from every branch node visited, with
// Damerau transposition cancellation and PM deduplication by
// (queryPos, nodeIdx, shift_class) (spec.md §4.5).
func (t *Trie) FuzzyQuery(q string, maxDist int) []Match {
	if t.empty || q == "" || maxDist < 0 {
		return nil
	}
	letters, unknown := t.alphabet.EncodeQuery(q)
	if unknown > maxDist {
		return nil
	}

	h := &pmHeap{{nodeIdx: 0, prevQ: nullLetter, prevT: nullLetter}}
	heap.Init(h)

	type dedupKey struct {
		queryPos int
		nodeIdx  uint32
		shift    int
	}
	best := make(map[dedupKey]int)
	var results []Match

	for h.Len() > 0 {
		pm := heap.Pop(h).(pmState)
		if pm.dist > maxDist {
			continue
		}
		key := dedupKey{pm.queryPos, pm.nodeIdx, pm.shift}
		if d, ok := best[key]; ok && d <= pm.dist {
			continue
		}
		best[key] = pm.dist

		n := t.nodes[pm.nodeIdx]
		if n.IsTerminal() {
			suffix := t.suffixes[n.Index()]
			remaining := letters[pm.queryPos:]
			budget := maxDist - pm.dist
			if lengthCutoff(len(remaining), len(suffix), pm.dist, maxDist) {
				continue
			}
			extra, ok := bandedEditDistance(t.alphabet, remaining, suffix, budget)
			if !ok {
				continue
			}
			total := pm.dist + extra
			if total > maxDist {
				continue
			}
			full := append(append([]int{}, pm.matched...), suffix...)
			key := t.decode(full)
			length := len([]rune(key))
			score := 1.0
			if length > 0 {
				score = float64(length-total) / float64(length)
			}
			results = append(results, Match{Key: key, Distance: total, Score: score})
			continue
		}

		if n.IsKeyTerminating() && pm.queryPos == len(letters) {
			key := t.decode(pm.matched)
			length := len([]rune(key))
			score := 1.0
			if length > 0 {
				score = float64(length-pm.dist) / float64(length)
			}
			results = append(results, Match{Key: key, Distance: pm.dist, Score: score})
		}

		for _, c := range n.Children() {
			if pm.queryPos < len(letters) {
				ql := letters[pm.queryPos]
				switch {
				case ql == c.Letter || isCaseEquivalent(t.alphabet, ql, c.Letter):
					push(h, pmState{
						queryPos: pm.queryPos + 1, nodeIdx: c.NodeIndex, dist: pm.dist,
						matched: appendLetter(pm.matched, c.Letter),
						prevQ:   nullLetter, prevT: nullLetter, shift: pm.shift,
					})
				case pm.prevT == ql && pm.prevQ == c.Letter:
					// transposition cancellation: the pair was already
					// penalized one step ago, so this step is free.
					push(h, pmState{
						queryPos: pm.queryPos + 1, nodeIdx: c.NodeIndex, dist: pm.dist,
						matched: appendLetter(pm.matched, c.Letter),
						prevQ:   nullLetter, prevT: nullLetter, shift: pm.shift,
					})
				default:
					if pm.dist+1 <= maxDist {
						push(h, pmState{
							queryPos: pm.queryPos + 1, nodeIdx: c.NodeIndex, dist: pm.dist + 1,
							matched: appendLetter(pm.matched, c.Letter),
							prevQ:   ql, prevT: c.Letter, shift: pm.shift,
						})
					}
				}
			}
			// right-shift: skip a trie letter, query position unchanged.
			if pm.dist+1 <= maxDist {
				push(h, pmState{
					queryPos: pm.queryPos, nodeIdx: c.NodeIndex, dist: pm.dist + 1,
					matched: appendLetter(pm.matched, c.Letter),
					prevQ:   nullLetter, prevT: nullLetter, shift: pm.shift - 1,
				})
			}
		}
		// down-shift: skip a query letter, same trie node.
		if pm.queryPos < len(letters) && pm.dist+1 <= maxDist {
			push(h, pmState{
				queryPos: pm.queryPos + 1, nodeIdx: pm.nodeIdx, dist: pm.dist + 1,
				matched: pm.matched,
				prevQ:   nullLetter, prevT: nullLetter, shift: pm.shift + 1,
			})
		}
	}

	return SortByNearness(results)
}

func push(h *pmHeap, s pmState) { heap.Push(h, s) }

func appendLetter(matched []int, l int) []int {
	res := make([]int, len(matched)+1)
	copy(res, matched)
	res[len(matched)] = l
	return res
}

func isCaseEquivalent(a *Alphabet, ql, tl int) bool {
	eq, ok := a.Equivalent(ql)
	return ok && eq == tl
}

// lengthCutoff applies spec.md §4.5's length-difference pruning before
// running the banded DP.
func lengthCutoff(remainingLen, suffixLen, dist, maxDist int) bool {
	diff := remainingLen - suffixLen
	if diff < 0 {
		diff = -diff
	}
	return diff+dist > maxDist
}

// lettersEqual reports whether x and y are the same letter or
// case-equivalents of each other, so the suffix-scoring DP below treats
// a pure case difference as free, matching the branch-walk transitions
// in FuzzyQuery above (spec.md §4.5 testable property: fuzzy_query of an
// uppercased key at distance 0 must return the key).
func lettersEqual(alphabet *Alphabet, x, y int) bool {
	if x == y {
		return true
	}
	eq, ok := alphabet.Equivalent(x)
	return ok && eq == y
}

// bandedEditDistance computes the Damerau-Levenshtein distance between
// a and b, restricted to a band of width 2*budget+1 around the main
// diagonal, bailing out early if every entry of a row exceeds budget
// (spec.md §4.5 suffix scoring).
func bandedEditDistance(alphabet *Alphabet, a, b []int, budget int) (int, bool) {
	if budget < 0 {
		return 0, false
	}
	n, m := len(a), len(b)
	if n-m > budget || m-n > budget {
		return 0, false
	}

	const inf = 1 << 30
	prev2 := make([]int, m+1)
	prev1 := make([]int, m+1)
	cur := make([]int, m+1)
	for j := 0; j <= m; j++ {
		prev1[j] = j
	}

	for i := 1; i <= n; i++ {
		lo := i - budget
		if lo < 0 {
			lo = 0
		}
		hi := i + budget
		if hi > m {
			hi = m
		}
		rowMin := inf
		for j := 0; j <= m; j++ {
			cur[j] = inf
		}
		if lo == 0 {
			cur[0] = i
			rowMin = i
		}
		for j := lo; j <= hi; j++ {
			if j == 0 {
				continue
			}
			cost := 1
			if lettersEqual(alphabet, a[i-1], b[j-1]) {
				cost = 0
			}
			v := min3(prev1[j]+1, cur[j-1]+1, prev1[j-1]+cost)
			if i > 1 && j > 1 && lettersEqual(alphabet, a[i-1], b[j-2]) && lettersEqual(alphabet, a[i-2], b[j-1]) {
				v = min2(v, prev2[j-2]+1)
			}
			cur[j] = v
			if v < rowMin {
				rowMin = v
			}
		}
		if rowMin > budget {
			return 0, false
		}
		prev2, prev1, cur = prev1, cur, prev2
	}
	result := prev1[m]
	if result > budget {
		return 0, false
	}
	return result, true
}

func min2(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func min3(a, b, c int) int { return min2(min2(a, b), c) }
