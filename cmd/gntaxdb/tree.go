package main

import (
	"strconv"
	"strings"

	"github.com/opentreeoflife/gntaxdb/internal/ionewick"
	"github.com/opentreeoflife/gntaxdb/pkg/taxonid"
	"github.com/opentreeoflife/gntaxdb/pkg/taxonomy"
)

// resolveTree converts a parsed Newick tree into a taxonomy.TreeNode,
// resolving each label against tax: a "ott<id>" label or a bare decimal
// id resolves by id; labels of any other form, taxon names included, are
// not resolved.
// Unresolvable leaf labels are kept as unattached (Taxon == nil) tips so
// the tree's topology still round-trips even over a source tree that
// references taxa outside tax.
func resolveTree(n *ionewick.Node, tax *taxonomy.Taxonomy) *taxonomy.TreeNode {
	tn := &taxonomy.TreeNode{Label: n.Label}
	if id, ok := resolveLabel(n.Label, tax); ok {
		tn.Taxon, _ = tax.TaxonById(id)
	}
	for _, c := range n.Children {
		tn.Children = append(tn.Children, resolveTree(c, tax))
	}
	return tn
}

func resolveLabel(label string, tax *taxonomy.Taxonomy) (taxonid.Id, bool) {
	digits := strings.TrimPrefix(label, "ott")
	if v, err := strconv.ParseUint(digits, 10, 64); err == nil {
		id := taxonid.Id(v)
		if _, ok := tax.TaxonById(id); ok {
			return id, true
		}
	}
	return 0, false
}
