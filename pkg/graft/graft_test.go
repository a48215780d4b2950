package graft_test

import (
	"testing"

	"github.com/opentreeoflife/gntaxdb/pkg/graft"
	"github.com/opentreeoflife/gntaxdb/pkg/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(label string) *taxonomy.TreeNode { return &taxonomy.TreeNode{Label: label} }

func TestGraftReplacesMatchingPolytomy(t *testing.T) {
	// target: root(unresolved(A,B,C), D)
	unresolved := &taxonomy.TreeNode{Label: "unresolved", Children: []*taxonomy.TreeNode{leaf("A"), leaf("B"), leaf("C")}}
	target := &taxonomy.TreeNode{Label: "root", Children: []*taxonomy.TreeNode{unresolved, leaf("D")}}

	solution := &taxonomy.TreeNode{Label: "solved", Children: []*taxonomy.TreeNode{
		{Label: "ab", Children: []*taxonomy.TreeNode{leaf("A"), leaf("B")}},
		leaf("C"),
	}}

	grafted, err := graft.Graft(target, "unresolved", solution)
	require.NoError(t, err)
	require.Len(t, grafted.Children, 2)
	assert.Equal(t, solution.Children, grafted.Children[0].Children)
	// target itself must be unmutated
	assert.Len(t, target.Children[0].Children, 3)
}

func TestGraftRejectsLeafSetMismatch(t *testing.T) {
	unresolved := &taxonomy.TreeNode{Label: "unresolved", Children: []*taxonomy.TreeNode{leaf("A"), leaf("B")}}
	target := &taxonomy.TreeNode{Label: "root", Children: []*taxonomy.TreeNode{unresolved}}
	solution := &taxonomy.TreeNode{Label: "solved", Children: []*taxonomy.TreeNode{leaf("A"), leaf("Z")}}

	_, err := graft.Graft(target, "unresolved", solution)
	assert.Error(t, err)
}

func TestGraftRejectsUnknownLabel(t *testing.T) {
	target := &taxonomy.TreeNode{Label: "root", Children: []*taxonomy.TreeNode{leaf("A")}}
	_, err := graft.Graft(target, "nope", leaf("A"))
	assert.Error(t, err)
}
