package taxonomy

import "github.com/opentreeoflife/gntaxdb/pkg/taxonid"

// Ancestors returns n's ancestors from its parent up to the root,
// nearest first. The root's Ancestors is empty.
func (n *TaxonNode) Ancestors() []*TaxonNode {
	var res []*TaxonNode
	for p := n.Parent; p != nil; p = p.Parent {
		res = append(res, p)
	}
	return res
}

// IsAncestorOf reports whether n lies on other's path to the root.
func (n *TaxonNode) IsAncestorOf(other *TaxonNode) bool {
	for p := other.Parent; p != nil; p = p.Parent {
		if p == n {
			return true
		}
	}
	return false
}

// IsDescendantOf reports whether anc lies on n's path to the root.
func (n *TaxonNode) IsDescendantOf(anc *TaxonNode) bool {
	return anc.IsAncestorOf(n)
}

// Preorder walks the subtree rooted at n, calling visit on each node
// before its children. visit returning false prunes that node's
// children from the walk.
func (n *TaxonNode) Preorder(visit func(*TaxonNode) bool) {
	if !visit(n) {
		return
	}
	for _, c := range n.Children {
		c.Preorder(visit)
	}
}

// Postorder walks the subtree rooted at n, calling visit on each node
// after all of its children.
func (n *TaxonNode) Postorder(visit func(*TaxonNode)) {
	for _, c := range n.Children {
		c.Postorder(visit)
	}
	visit(n)
}

// DescendantIds returns the set of taxon ids in the subtree rooted at n,
// including n itself. The set is computed once and cached: the taxonomy
// is immutable after Build, so the result never goes stale.
func (n *TaxonNode) DescendantIds() map[taxonid.Id]struct{} {
	n.descOnce.Do(func() {
		set := map[taxonid.Id]struct{}{n.Id: {}}
		for _, c := range n.Children {
			for id := range c.DescendantIds() {
				set[id] = struct{}{}
			}
		}
		n.descIds = set
	})
	return n.descIds
}
