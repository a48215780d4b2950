// Package invariants re-checks the structural invariants a built
// Taxonomy is supposed to already satisfy, grounded on
// original_source/tools/assertinvariants.cpp's check_tree_invariants: an
// offline auditor run against an on-disk taxonomy.tsv/synonyms.tsv pair
// independently of taxonomy.Build's own construction-time checks, so a
// corrupt artifact that happens to survive Build (e.g. hand-edited after
// the fact) is still caught.
package invariants

import (
	"fmt"
	"sort"

	"github.com/opentreeoflife/gntaxdb/pkg/taxonid"
	"github.com/opentreeoflife/gntaxdb/pkg/taxonomy"
)

// Violation is one failed invariant, named after the check that found it.
type Violation struct {
	Check   string
	TaxonId taxonid.Id
	Detail  string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: taxon %s: %s", v.Check, v.TaxonId, v.Detail)
}

// Check runs every invariant against tax and returns every violation
// found, in a deterministic order. A nil/empty result means tax is sound.
func Check(tax *taxonomy.Taxonomy) []Violation {
	var v []Violation
	v = append(v, checkSingleRoot(tax)...)
	v = append(v, checkParentChildConsistency(tax)...)
	v = append(v, checkDescendantIdsMonotonic(tax)...)
	v = append(v, checkUniqnamesUnique(tax)...)
	sort.Slice(v, func(i, j int) bool {
		if v[i].Check != v[j].Check {
			return v[i].Check < v[j].Check
		}
		return v[i].TaxonId < v[j].TaxonId
	})
	return v
}

// checkSingleRoot verifies every taxon's ancestor chain terminates at
// tax.Root, i.e. there is exactly one node with no parent and every other
// node reaches it (original_source's "a tree has one root").
func checkSingleRoot(tax *taxonomy.Taxonomy) []Violation {
	var v []Violation
	root := tax.Root()
	tax.Root().Preorder(func(n *taxonomy.TaxonNode) bool {
		if n == root {
			return true
		}
		reached := false
		for p := n.Parent; p != nil; p = p.Parent {
			if p == root {
				reached = true
				break
			}
		}
		if !reached {
			v = append(v, Violation{Check: "single_root", TaxonId: n.Id, Detail: "ancestor chain does not reach the root"})
		}
		return true
	})
	return v
}

// checkParentChildConsistency verifies the Children slice and Parent
// pointer agree with each other in both directions.
func checkParentChildConsistency(tax *taxonomy.Taxonomy) []Violation {
	var v []Violation
	tax.Root().Preorder(func(n *taxonomy.TaxonNode) bool {
		for _, c := range n.Children {
			if c.Parent != n {
				v = append(v, Violation{Check: "parent_child_consistency", TaxonId: c.Id,
					Detail: fmt.Sprintf("child of %s does not point back to it", n.Id)})
			}
		}
		return true
	})
	return v
}

// checkDescendantIdsMonotonic verifies that n's descendant-id set is
// exactly the union of n itself and its children's descendant-id sets,
// catching a corrupted Children slice that DescendantIds's memoized
// result wouldn't otherwise reveal.
func checkDescendantIdsMonotonic(tax *taxonomy.Taxonomy) []Violation {
	var v []Violation
	tax.Root().Postorder(func(n *taxonomy.TaxonNode) {
		want := map[taxonid.Id]struct{}{n.Id: {}}
		for _, c := range n.Children {
			for id := range c.DescendantIds() {
				want[id] = struct{}{}
			}
		}
		got := n.DescendantIds()
		if len(got) != len(want) {
			v = append(v, Violation{Check: "descendant_ids_monotonic", TaxonId: n.Id,
				Detail: fmt.Sprintf("descendant set size %d, expected %d", len(got), len(want))})
			return
		}
		for id := range want {
			if _, ok := got[id]; !ok {
				v = append(v, Violation{Check: "descendant_ids_monotonic", TaxonId: n.Id,
					Detail: fmt.Sprintf("descendant set missing id %s", id)})
				break
			}
		}
	})
	return v
}

// checkUniqnamesUnique verifies assignUniqnames's own guarantee: every
// taxon's disambiguated display name is unique across the taxonomy
// (original_source/otc/taxonomy/taxonomy.cpp's uniqname invariant).
func checkUniqnamesUnique(tax *taxonomy.Taxonomy) []Violation {
	var v []Violation
	seen := make(map[string]taxonid.Id)
	tax.Root().Preorder(func(n *taxonomy.TaxonNode) bool {
		name := n.Uniqname
		if name == "" {
			name = n.Name
		}
		if owner, dup := seen[name]; dup {
			v = append(v, Violation{Check: "uniqname_unique", TaxonId: n.Id,
				Detail: fmt.Sprintf("uniqname %q already used by taxon %s", name, owner)})
			return true
		}
		seen[name] = n.Id
		return true
	})
	return v
}
