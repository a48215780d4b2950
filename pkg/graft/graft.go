// Package graft splices a solved subproblem tree into a larger synthesis
// tree at the node it resolves, grounded on
// original_source/tools/graft-solutions.cpp and
// original_source/tools/unprune-solution.cpp: a synthesis pipeline solves
// contested regions of the taxonomy independently (the "subproblems") and
// then grafts each solution back into the full tree in place of the
// unresolved polytomy it replaces.
package graft

import "github.com/opentreeoflife/gntaxdb/pkg/taxonomy"

// leafLabels collects the set of tip labels under n, used to verify a
// solution's leaf set exactly matches the node it is replacing
// (graft-solutions.cpp requires an exact leaf-set match before grafting).
func leafLabels(n *taxonomy.TreeNode) map[string]struct{} {
	set := make(map[string]struct{})
	var walk func(*taxonomy.TreeNode)
	walk = func(n *taxonomy.TreeNode) {
		if len(n.Children) == 0 {
			set[tipKey(n)] = struct{}{}
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(n)
	return set
}

func tipKey(n *taxonomy.TreeNode) string {
	if n.Taxon != nil {
		return n.Taxon.Id.String()
	}
	return n.Label
}

func sameLeafSet(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// findNode returns the unique node of n labeled nodeLabel (a taxon name,
// a TreeNode.Label, or an MrcaName placeholder), or nil.
func findNode(n *taxonomy.TreeNode, nodeLabel string) *taxonomy.TreeNode {
	if n.Label == nodeLabel || tipKey(n) == nodeLabel {
		return n
	}
	for _, c := range n.Children {
		if found := findNode(c, nodeLabel); found != nil {
			return found
		}
	}
	return nil
}

// Graft finds the node of target labeled nodeLabel and replaces its
// children with solution's, provided the two subtrees span exactly the
// same leaf set; target is not mutated, a new tree is returned.
func Graft(target *taxonomy.TreeNode, nodeLabel string, solution *taxonomy.TreeNode) (*taxonomy.TreeNode, error) {
	site := findNode(target, nodeLabel)
	if site == nil {
		return nil, UnresolvedNodeNotFoundError(nodeLabel)
	}
	if !sameLeafSet(leafLabels(site), leafLabels(solution)) {
		return nil, MismatchedLeafSetError(nodeLabel)
	}
	return cloneReplacing(target, site, solution), nil
}

// cloneReplacing deep-copies target's shape, substituting solution's
// children wherever the original site node is encountered.
func cloneReplacing(n, site, solution *taxonomy.TreeNode) *taxonomy.TreeNode {
	clone := &taxonomy.TreeNode{Taxon: n.Taxon, Label: n.Label}
	if n == site {
		clone.Children = solution.Children
		return clone
	}
	for _, c := range n.Children {
		clone.Children = append(clone.Children, cloneReplacing(c, site, solution))
	}
	return clone
}
