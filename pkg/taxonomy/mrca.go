package taxonomy

import "github.com/opentreeoflife/gntaxdb/pkg/taxonid"

// Mrca returns the most recent common ancestor of ids (spec.md §4.3
// "mrca"). Depths were assigned once at Build time, so each pairwise step
// equalizes depth then walks both nodes toward the root together — no
// descendant-set materialization needed.
func (t *Taxonomy) Mrca(ids []taxonid.Id) (*TaxonNode, error) {
	if len(ids) == 0 {
		return nil, EmptyInputError("mrca")
	}
	nodes := make([]*TaxonNode, 0, len(ids))
	for _, id := range ids {
		n, ok := t.byId[id]
		if !ok {
			return nil, UnknownIdError(id)
		}
		nodes = append(nodes, n)
	}

	cur := nodes[0]
	for _, n := range nodes[1:] {
		cur = pairwiseMrca(cur, n)
	}
	return cur, nil
}

func pairwiseMrca(a, b *TaxonNode) *TaxonNode {
	for a.depth > b.depth {
		a = a.Parent
	}
	for b.depth > a.depth {
		b = b.Parent
	}
	for a != b {
		a = a.Parent
		b = b.Parent
	}
	return a
}
