package conflict_test

import (
	"testing"

	"github.com/opentreeoflife/gntaxdb/pkg/conflict"
	"github.com/opentreeoflife/gntaxdb/pkg/flagset"
	"github.com/opentreeoflife/gntaxdb/pkg/taxonid"
	"github.com/opentreeoflife/gntaxdb/pkg/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildSample builds:
//
//	1 Life
//	└─ 2 Mammalia
//	   ├─ 3 Primates
//	   │  ├─ 4 Homo
//	   │  └─ 5 Pan
//	   └─ 6 Carnivora
//	      └─ 7 Felis
func buildSample(t *testing.T) *taxonomy.Taxonomy {
	t.Helper()
	records := []taxonomy.TaxonRecord{
		{Id: 1, HasParent: false, Name: "Life"},
		{Id: 2, ParentId: 1, HasParent: true, Name: "Mammalia"},
		{Id: 3, ParentId: 2, HasParent: true, Name: "Primates"},
		{Id: 4, ParentId: 3, HasParent: true, Name: "Homo"},
		{Id: 5, ParentId: 3, HasParent: true, Name: "Pan"},
		{Id: 6, ParentId: 2, HasParent: true, Name: "Carnivora"},
		{Id: 7, ParentId: 6, HasParent: true, Name: "Felis"},
	}
	tax, err := taxonomy.Build(records, nil, flagset.Default, "v1", "1")
	require.NoError(t, err)
	return tax
}

// leaf builds a tip TreeNode directly naming a taxon.
func leaf(tax *taxonomy.Taxonomy, id taxonid.Id) *taxonomy.TreeNode {
	n, _ := tax.TaxonById(id)
	return &taxonomy.TreeNode{Taxon: n, Label: n.Name}
}

func TestDetectContestedAgreeingTreeHasNoContested(t *testing.T) {
	tax := buildSample(t)
	// Source tree mirrors taxonomy's own grouping: (Homo,Pan) groups with
	// Felis outside it, same as Primates vs Carnivora.
	primates := &taxonomy.TreeNode{Label: "Primates", Children: []*taxonomy.TreeNode{leaf(tax, 4), leaf(tax, 5)}}
	root := &taxonomy.TreeNode{Label: "Mammalia", Children: []*taxonomy.TreeNode{primates, leaf(tax, 7)}}

	contested, err := conflict.DetectContested(tax, root)
	require.NoError(t, err)
	assert.Empty(t, contested)
}

func TestDetectContestedDisagreeingTreeFlagsConflict(t *testing.T) {
	tax := buildSample(t)
	// Source tree groups Homo with Felis instead of Pan, conflicting with
	// the taxonomy's Primates grouping.
	group := &taxonomy.TreeNode{Label: "x", Children: []*taxonomy.TreeNode{leaf(tax, 4), leaf(tax, 7)}}
	root := &taxonomy.TreeNode{Label: "root", Children: []*taxonomy.TreeNode{group, leaf(tax, 5)}}

	contested, err := conflict.DetectContested(tax, root)
	require.NoError(t, err)
	assert.Contains(t, contested, taxonid.Id(3)) // Primates conflicts with {Homo, Felis}
}
