// Package taxonomy implements the rooted taxonomy tree of spec.md §3-§4.1:
// nodes with bidirectional id indexes, junior synonyms, flag-bitset
// semantics, foreign-id maps, and the tree algorithms (MRCA, induced
// subtree, descendant-id sets) every other component is built on.
package taxonomy

import (
	"sync"

	"github.com/opentreeoflife/gntaxdb/pkg/flagset"
	"github.com/opentreeoflife/gntaxdb/pkg/taxonid"
)

// ForeignPrefixes lists the five external taxonomies recognized by
// TaxonByForeign (spec.md §3, §4.1).
var ForeignPrefixes = map[string]bool{
	"ncbi":  true,
	"gbif":  true,
	"worms": true,
	"if":    true, // Index Fungorum
	"irmng": true,
}

// SourceId is one (prefix, external id) pair attached to a taxon.
type SourceId struct {
	Prefix   string
	ExternId string
}

// Synonym is a junior name attached to a taxon: a common name, orthographic
// variant, or otherwise non-primary label (spec.md §3 "Synonym").
type Synonym struct {
	Name  string
	Kind  string
	Owner *TaxonNode
}

// TaxonNode is one node of the rooted taxonomy tree (spec.md §3
// "TaxonNode"). Nodes are allocated once by the taxonomy builder and never
// mutated after Taxonomy.Build returns; descendant-id sets are the lone
// exception, computed lazily and cached.
type TaxonNode struct {
	Id             taxonid.Id
	Parent         *TaxonNode
	Children       []*TaxonNode
	Name           string
	Uniqname       string
	Rank           string
	Flags          flagset.FlagSet
	SourceIds      []SourceId
	JuniorSynonyms []*Synonym

	depth uint32

	descOnce sync.Once
	descIds  map[taxonid.Id]struct{}
}

// Depth is the number of edges from the root to this node; the root has
// depth 0.
func (n *TaxonNode) Depth() uint32 { return n.depth }

// IsRoot reports whether n has no parent.
func (n *TaxonNode) IsRoot() bool { return n.Parent == nil }

// IsLeaf reports whether n has no children.
func (n *TaxonNode) IsLeaf() bool { return len(n.Children) == 0 }
