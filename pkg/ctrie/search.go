package ctrie

import "sort"

// Match is one trie search result (spec.md §4.5 "Result record").
type Match struct {
	Key      string
	Distance int
	Score    float64
}

func (t *Trie) decode(letters []int) string {
	r := make([]rune, len(letters))
	for i, l := range letters {
		r[i] = t.alphabet.Letter(l)
	}
	return string(r)
}

// ExactQuery walks q from the root and reports whether it names a
// complete key (spec.md §4.5 "Exact lookup").
func (t *Trie) ExactQuery(q string) (Match, bool) {
	if t.empty || q == "" {
		return Match{}, false
	}
	letters, unknown := t.alphabet.EncodeQuery(q)
	if unknown > 0 {
		return Match{}, false
	}

	idx := uint32(0)
	pos := 0
	for {
		n := t.nodes[idx]
		if n.IsTerminal() {
			suffix := t.suffixes[n.Index()]
			if pos+len(suffix) != len(letters) {
				return Match{}, false
			}
			for i, l := range suffix {
				if letters[pos+i] != l {
					return Match{}, false
				}
			}
			return Match{Key: q, Distance: 0, Score: 1}, true
		}
		if pos == len(letters) {
			if n.IsKeyTerminating() {
				return Match{Key: q, Distance: 0, Score: 1}, true
			}
			return Match{}, false
		}
		childIdx, ok := n.ChildIndexForLetter(letters[pos])
		if !ok {
			return Match{}, false
		}
		idx = childIdx
		pos++
	}
}

// prefixFrontier is one still-live walk state while matching a prefix
// query: the node reached so far, and the trie letters actually
// consumed to reach it (which may differ in case from the query).
type prefixFrontier struct {
	idx      uint32
	consumed []int
}

// candidateLetters returns l plus its case-equivalent (if any) in
// alphabet, so a prefix walk can descend into either casing of a
// letter a real key might have been stored under.
func candidateLetters(alphabet *Alphabet, l int) []int {
	cands := []int{l}
	if eq, ok := alphabet.Equivalent(l); ok {
		cands = append(cands, eq)
	}
	return cands
}

// PrefixQuery returns every key that starts with q, matched
// case-insensitively the way FuzzyQuery is (spec.md §4.5): each call
// walks to the prefix's node(s) then DFS-enumerates their completions.
func (t *Trie) PrefixQuery(q string) []Match {
	if t.empty {
		return nil
	}
	if q == "" {
		return t.collectKeys(0, nil)
	}
	letters, unknown := t.alphabet.EncodeQuery(q)
	if unknown > 0 {
		return nil
	}

	frontier := []prefixFrontier{{idx: 0}}
	var results []Match

	for pos := 0; pos < len(letters); pos++ {
		var next []prefixFrontier
		for _, f := range frontier {
			n := t.nodes[f.idx]
			if n.IsTerminal() {
				suffix := t.suffixes[n.Index()]
				remaining := letters[pos:]
				if len(remaining) > len(suffix) {
					continue
				}
				match := true
				for i, l := range remaining {
					if !lettersEqual(t.alphabet, suffix[i], l) {
						match = false
						break
					}
				}
				if !match {
					continue
				}
				full := append(append([]int{}, f.consumed...), suffix...)
				results = append(results, Match{Key: t.decode(full), Distance: 0, Score: 1})
				continue
			}
			for _, letter := range candidateLetters(t.alphabet, letters[pos]) {
				if childIdx, ok := n.ChildIndexForLetter(letter); ok {
					next = append(next, prefixFrontier{idx: childIdx, consumed: appendLetter(f.consumed, letter)})
				}
			}
		}
		frontier = next
	}

	for _, f := range frontier {
		results = append(results, t.collectKeys(f.idx, f.consumed)...)
	}
	return results
}

func (t *Trie) collectKeys(nodeIdx uint32, prefix []int) []Match {
	n := t.nodes[nodeIdx]
	if n.IsTerminal() {
		full := append(append([]int{}, prefix...), t.suffixes[n.Index()]...)
		return []Match{{Key: t.decode(full), Distance: 0, Score: 1}}
	}
	var res []Match
	if n.IsKeyTerminating() {
		res = append(res, Match{Key: t.decode(prefix), Distance: 0, Score: 1})
	}
	for _, c := range n.Children() {
		next := append(append([]int{}, prefix...), c.Letter)
		res = append(res, t.collectKeys(c.NodeIndex, next)...)
	}
	return res
}

// SortByNearness orders matches by ascending distance, descending
// length, then lexicographically, collapsing duplicate keys to their
// best score (spec.md §4.5 "Result record").
func SortByNearness(matches []Match) []Match {
	best := make(map[string]Match, len(matches))
	for _, m := range matches {
		if cur, ok := best[m.Key]; !ok || m.Score > cur.Score {
			best[m.Key] = m
		}
	}
	res := make([]Match, 0, len(best))
	for _, m := range best {
		res = append(res, m)
	}
	sort.Slice(res, func(i, j int) bool {
		a, b := res[i], res[j]
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		if len(a.Key) != len(b.Key) {
			return len(a.Key) > len(b.Key)
		}
		return a.Key < b.Key
	})
	return res
}
