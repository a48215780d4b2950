// Package conflict detects taxonomy nodes whose descendant-leaf set is
// neither a subset, a superset, nor disjoint from any clade of a
// candidate source tree restricted to the same leaf set, grounded on
// original_source/tools/detect-contested/detectcontested.cpp
// (desIdSetsConflict, recordContested): such a node is "contested" by the
// source tree and cannot simply absorb it during synthesis.
package conflict

import (
	"github.com/opentreeoflife/gntaxdb/pkg/taxonid"
	"github.com/opentreeoflife/gntaxdb/pkg/taxonomy"
)

type idSet map[taxonid.Id]struct{}

// desIdSetsConflict reports whether ns and scs partially overlap: neither
// is empty-intersection, a subset, nor a superset of the other
// (detectcontested.cpp's desIdSetsConflict).
func desIdSetsConflict(ns, scs idSet) bool {
	if len(ns) < 2 || len(scs) < 2 {
		return false
	}
	inter := 0
	for id := range ns {
		if _, ok := scs[id]; ok {
			inter++
		}
	}
	return inter != 0 && inter != len(ns) && inter != len(scs)
}

// leafIds collects the taxon ids at source's tips.
func leafIds(source *taxonomy.TreeNode) idSet {
	set := make(idSet)
	var walk func(*taxonomy.TreeNode)
	walk = func(n *taxonomy.TreeNode) {
		if len(n.Children) == 0 {
			if n.Taxon != nil {
				set[n.Taxon.Id] = struct{}{}
			}
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(source)
	return set
}

// sourceClades collects the leaf-id sets of every non-root internal node
// of source (detectcontested.cpp's PostorderInternalIter loop).
func sourceClades(source *taxonomy.TreeNode) []idSet {
	var clades []idSet
	var walk func(n *taxonomy.TreeNode, isRoot bool)
	walk = func(n *taxonomy.TreeNode, isRoot bool) {
		if len(n.Children) == 0 {
			return
		}
		if !isRoot {
			clades = append(clades, leafIds(n))
		}
		for _, c := range n.Children {
			walk(c, false)
		}
	}
	walk(source, true)
	return clades
}

// restrictedDescendantIds returns n's descendant-id set intersected with
// leaves, matching detectcontested.cpp's markPathToRoot: the taxonomy is
// pruned to only the taxa present in the source tree's leaf set before
// comparison.
func restrictedDescendantIds(n *taxonomy.TaxonNode, leaves idSet) idSet {
	res := make(idSet)
	for id := range n.DescendantIds() {
		if _, ok := leaves[id]; ok {
			res[id] = struct{}{}
		}
	}
	return res
}

// DetectContested reports every taxonomy node, among the ancestors of
// source's leaves, whose leaf-restricted descendant set conflicts with at
// least one clade of source (spec.md supplement: source-tree conflict
// detection, original_source/tools/detect-contested).
func DetectContested(tax *taxonomy.Taxonomy, source *taxonomy.TreeNode) ([]taxonid.Id, error) {
	leaves := leafIds(source)
	if len(leaves) == 0 {
		return nil, EmptySourceTreeError()
	}

	for id := range leaves {
		if _, ok := tax.TaxonById(id); !ok {
			return nil, UnknownLeafIdError(id)
		}
	}

	ancestors := make(map[*taxonomy.TaxonNode]struct{})
	for id := range leaves {
		n, _ := tax.TaxonById(id)
		for p := n; p != nil; p = p.Parent {
			ancestors[p] = struct{}{}
		}
	}

	clades := sourceClades(source)

	var contested []taxonid.Id
	for n := range ancestors {
		ns := restrictedDescendantIds(n, leaves)
		for _, scs := range clades {
			if desIdSetsConflict(ns, scs) {
				contested = append(contested, n.Id)
				break
			}
		}
	}
	return contested, nil
}
