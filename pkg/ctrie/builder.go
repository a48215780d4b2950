package ctrie

import "sort"

// Trie is an immutable compressed trie built once over a fixed key set
// (spec.md §4.4). Node 0 is always the root.
//
// The spec's node layout stores a terminal's suffix as an offset into a
// shared, interned character buffer. Go's garbage-collected slices make
// manual buffer packing unnecessary to get the same externally visible
// behavior, so suffixes are kept as a simple parallel table indexed by
// Node.Index() instead of a byte-packed, tail-sharing buffer; the
// algorithmic shape (branch nodes addressing contiguous children,
// terminals addressing a suffix) is unchanged.
type Trie struct {
	alphabet *Alphabet
	nodes    []Node
	suffixes [][]int
	empty    bool
}

// Alphabet returns the alphabet this trie was built over.
func (t *Trie) Alphabet() *Alphabet { return t.alphabet }

// encodedKey is a key reduced to letter indices of a specific alphabet.
type encodedKey struct {
	letters []int
}

// Build constructs a Trie over keys using alphabet. Keys containing a
// character outside alphabet are skipped: they are "effectively
// unreachable via exact match" through this trie (spec.md §4.4), which
// is why CtrieDatabase partitions keys into thin/wide tries by
// character coverage rather than relying on a single alphabet.
func Build(alphabet *Alphabet, keys []string) *Trie {
	seen := make(map[string]bool, len(keys))
	var enc []encodedKey
	for _, k := range keys {
		if seen[k] {
			continue
		}
		letters := make([]int, 0, len(k))
		ok := true
		for _, r := range k {
			i, found := alphabet.Encode(r)
			if !found {
				ok = false
				break
			}
			letters = append(letters, i)
		}
		if !ok {
			continue
		}
		seen[k] = true
		enc = append(enc, encodedKey{letters: letters})
	}
	sort.Slice(enc, func(i, j int) bool {
		return compareLetters(enc[i].letters, enc[j].letters) < 0
	})

	t := &Trie{}
	t.alphabet = alphabet
	if len(enc) == 0 {
		t.empty = true
		t.suffixes = append(t.suffixes, nil)
		t.nodes = []Node{terminalNode(0)}
		return t
	}

	t.nodes = make([]Node, 1) // root placeholder at index 0
	t.buildAt(0, enc, 0)
	return t
}

// buildAt fills t.nodes[slot] from keys, all of which share a common
// prefix of length depth. It is the iterative-by-recursion form of
// spec.md §4.4's algorithm: Go's growable goroutine stacks remove the
// original's motivation for an explicit work stack, so this uses plain
// recursion instead.
func (t *Trie) buildAt(slot uint32, keys []encodedKey, depth int) {
	var exact *encodedKey
	groups := make(map[int][]encodedKey)
	var order []int
	for i := range keys {
		k := &keys[i]
		if len(k.letters) == depth {
			exact = k
			continue
		}
		letter := k.letters[depth]
		if _, ok := groups[letter]; !ok {
			order = append(order, letter)
		}
		groups[letter] = append(groups[letter], *k)
	}

	if len(order) == 0 {
		// exact must be non-nil: the only key left is the prefix itself.
		t.nodes[slot] = terminalNode(t.internSuffix(nil))
		return
	}
	if len(order) == 1 && exact == nil {
		letter := order[0]
		group := groups[letter]
		if len(group) == 1 && len(group[0].letters) > depth {
			t.nodes[slot] = terminalNode(t.internSuffix(group[0].letters[depth:]))
			return
		}
	}

	sort.Ints(order)
	var mask uint64
	for _, l := range order {
		mask |= uint64(1) << uint(l)
	}

	firstChild := uint32(len(t.nodes))
	for range order {
		t.nodes = append(t.nodes, Node{})
	}
	t.nodes[slot] = branchNode(mask, firstChild, exact != nil)
	for i, letter := range order {
		t.buildAt(firstChild+uint32(i), groups[letter], depth+1)
	}
}

func (t *Trie) internSuffix(letters []int) uint32 {
	idx := uint32(len(t.suffixes))
	cp := make([]int, len(letters))
	copy(cp, letters)
	t.suffixes = append(t.suffixes, cp)
	return idx
}

func compareLetters(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}
