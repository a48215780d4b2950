package taxonomy

import (
	"fmt"
	"strings"

	"github.com/opentreeoflife/gntaxdb/pkg/taxonid"
)

// TreeNode is one node of an induced subtree result (spec.md §4.4
// "induced_subtree"). It mirrors a real TaxonNode for every labeled node;
// Taxon is nil only for a synthetic node introduced to name an otherwise
// unnamed branch point (see MrcaName).
type TreeNode struct {
	Taxon    *TaxonNode
	Label    string
	Children []*TreeNode
}

// MrcaName builds the conventional placeholder label for an unnamed
// branch point defined by two of its descendants, following
// original_source/otc/node_naming.h's make_mrca_name: "mrcaott<id1>ott<id2>".
func MrcaName(id1, id2 taxonid.Id) string {
	return fmt.Sprintf("mrcaott%sott%s", id1, id2)
}

// InducedSubtree builds the minimal subtree of the taxonomy connecting
// the given ids (spec.md §4.4). When preserveMonotypic is false,
// out-degree-1 internal nodes that are not themselves one of the input
// ids are spliced out of the result, matching how a synthetic tree
// export collapses non-branching taxonomy chains.
func (t *Taxonomy) InducedSubtree(ids []taxonid.Id, preserveMonotypic bool) (*TreeNode, error) {
	if len(ids) == 0 {
		return nil, EmptyInputError("induced_subtree")
	}

	leaves := make([]*TaxonNode, 0, len(ids))
	wanted := make(map[taxonid.Id]struct{}, len(ids))
	for _, id := range ids {
		n, ok := t.byId[id]
		if !ok {
			return nil, UnknownIdError(id)
		}
		leaves = append(leaves, n)
		wanted[id] = struct{}{}
	}

	mrca, err := t.Mrca(ids)
	if err != nil {
		return nil, err
	}

	keep := make(map[*TaxonNode]bool)
	for _, n := range leaves {
		for p := n; p != nil; p = p.Parent {
			keep[p] = true
			if p == mrca {
				break
			}
		}
	}

	root := buildKeptSubtree(mrca, keep, wanted)
	if !preserveMonotypic {
		root = contractMonotypic(root, wanted)
	}
	return root, nil
}

func buildKeptSubtree(n *TaxonNode, keep map[*TaxonNode]bool, wanted map[taxonid.Id]struct{}) *TreeNode {
	tn := &TreeNode{Taxon: n, Label: UniqnameOrName(n)}
	for _, c := range n.Children {
		if keep[c] {
			tn.Children = append(tn.Children, buildKeptSubtree(c, keep, wanted))
		}
	}
	return tn
}

// contractMonotypic splices out internal nodes with exactly one child,
// unless that node is one of the queried ids, preserving the root.
func contractMonotypic(n *TreeNode, wanted map[taxonid.Id]struct{}) *TreeNode {
	for _, c := range n.Children {
		*c = *contractMonotypic(c, wanted)
	}
	if len(n.Children) == 1 {
		_, isWanted := wanted[n.Taxon.Id]
		if !isWanted && n.Taxon.Parent != nil {
			return n.Children[0]
		}
	}
	return n
}

// LabelStyle selects how Newick renders a node (spec.md §6).
type LabelStyle int

const (
	LabelName LabelStyle = iota
	LabelId
	LabelNameAndId
)

// Newick renders t as a Newick string using the given label style.
func (t *TreeNode) Newick(style LabelStyle) string {
	var b strings.Builder
	t.writeNewick(&b, style)
	b.WriteByte(';')
	return b.String()
}

func (t *TreeNode) writeNewick(b *strings.Builder, style LabelStyle) {
	if len(t.Children) > 0 {
		b.WriteByte('(')
		for i, c := range t.Children {
			if i > 0 {
				b.WriteByte(',')
			}
			c.writeNewick(b, style)
		}
		b.WriteByte(')')
	}
	b.WriteString(sanitizeLabel(t.label(style)))
}

// UniqnameOrName returns n's disambiguated uniqname (spec.md §6: the
// name_and_id / name label styles render the uniqname, since two
// taxa can share a plain Name), falling back to Name only if Uniqname
// was never assigned.
func UniqnameOrName(n *TaxonNode) string {
	if n.Uniqname != "" {
		return n.Uniqname
	}
	return n.Name
}

func (t *TreeNode) label(style LabelStyle) string {
	label := t.Label
	var id string
	if t.Taxon != nil {
		id = t.Taxon.Id.String()
		if label == "" {
			label = UniqnameOrName(t.Taxon)
		}
	}
	switch style {
	case LabelId:
		if id != "" {
			return "ott" + id
		}
		return label
	case LabelNameAndId:
		if id != "" {
			return label + " ott" + id
		}
		return label
	default:
		return label
	}
}

// sanitizeLabel replaces characters Newick reserves for syntax with
// underscores, matching how flat-text tree exports escape taxon names.
func sanitizeLabel(s string) string {
	r := strings.NewReplacer(
		"(", "_", ")", "_", ",", "_", ";", "_",
		":", "_", " ", "_", "'", "_",
	)
	return r.Replace(s)
}
