package taxonomy

import (
	"sort"
	"strings"

	"github.com/opentreeoflife/gntaxdb/pkg/flagset"
	"github.com/opentreeoflife/gntaxdb/pkg/taxonid"
)

// TaxonRecord is one parsed row of taxonomy.tsv (spec.md §6), already
// decoded from text by the loader but not yet wired into a tree. Building
// a Taxonomy is pure computation over records; reading taxonomy.tsv itself
// is the loader's (internal/ioload) job.
type TaxonRecord struct {
	Id         taxonid.Id
	ParentId   taxonid.Id
	HasParent  bool
	Name       string
	Rank       string
	SourceInfo string // "prefix:extern_id,prefix:extern_id"
	Uniqname   string // empty means "derive at build time"
	FlagsCsv   string
}

// SynonymRecord is one parsed row of synonyms.tsv.
type SynonymRecord struct {
	OwnerId taxonid.Id
	Name    string
	Kind    string
}

// Taxonomy is the built, immutable rooted taxonomy tree (spec.md §3
// "Taxonomy").
type Taxonomy struct {
	nodes         []*TaxonNode
	byId          map[taxonid.Id]*TaxonNode
	byForeign     map[string]map[string]*TaxonNode
	root          *TaxonNode
	version       string
	versionNumber string
	suppressTnrs  map[taxonid.Id]struct{}
	flags         *flagset.Registry
}

// Version returns the taxonomy version string loaded from the `version`
// file (spec.md §6).
func (t *Taxonomy) Version() string { return t.version }

// Root returns the taxonomy's single root node.
func (t *Taxonomy) Root() *TaxonNode { return t.root }

// Len returns the number of taxa in the taxonomy.
func (t *Taxonomy) Len() int { return len(t.nodes) }

// TaxonById is O(1) average (spec.md §4.1).
func (t *Taxonomy) TaxonById(id taxonid.Id) (*TaxonNode, bool) {
	n, ok := t.byId[id]
	return n, ok
}

// TaxonByForeign looks up a taxon by (source_prefix, extern_id). It fails
// with UnknownSourcePrefixError if prefix is not one of the five
// recognized external taxonomies, and returns (nil, false) if the id is
// not mapped (spec.md §4.1).
func (t *Taxonomy) TaxonByForeign(prefix, externId string) (*TaxonNode, bool, error) {
	if !ForeignPrefixes[prefix] {
		return nil, false, UnknownSourcePrefixError(prefix)
	}
	m, ok := t.byForeign[prefix]
	if !ok {
		return nil, false, nil
	}
	n, ok := m[externId]
	return n, ok, nil
}

// IsSuppressedFromTnrs reports whether id is in the precomputed
// suppress-from-tnrs set derived from flags at load time (spec.md §4.1
// "Flag semantics").
func (t *Taxonomy) IsSuppressedFromTnrs(id taxonid.Id) bool {
	_, ok := t.suppressTnrs[id]
	return ok
}

// Build constructs an immutable Taxonomy from parsed taxon and synonym
// records. Parsing errors are fatal: no partial taxonomy is ever
// published (spec.md §4.1 "Failure model").
func Build(
	records []TaxonRecord,
	synonyms []SynonymRecord,
	reg *flagset.Registry,
	version, versionNumber string,
) (*Taxonomy, error) {
	nodes := make([]*TaxonNode, 0, len(records))
	byId := make(map[taxonid.Id]*TaxonNode, len(records))

	for _, rec := range records {
		if _, dup := byId[rec.Id]; dup {
			return nil, DuplicateIdError(rec.Id)
		}
		n := &TaxonNode{
			Id:   rec.Id,
			Name: rec.Name,
			Rank: rec.Rank,
		}
		n.Flags = reg.Parse(rec.FlagsCsv)
		n.SourceIds = parseSourceInfo(rec.SourceInfo)
		byId[rec.Id] = n
		nodes = append(nodes, n)
	}

	var root *TaxonNode
	for i, rec := range records {
		n := nodes[i]
		if !rec.HasParent {
			if root != nil {
				return nil, ParseError(0, "more than one taxon with no parent")
			}
			root = n
			continue
		}
		parent, ok := byId[rec.ParentId]
		if !ok {
			return nil, OrphanParentError(rec.Id, rec.ParentId)
		}
		n.Parent = parent
		parent.Children = append(parent.Children, n)
	}
	if root == nil {
		return nil, ParseError(0, "no root taxon found (every record has a parent)")
	}

	if err := assignDepthsAndCheckCycles(root, byId); err != nil {
		return nil, err
	}

	byForeign := make(map[string]map[string]*TaxonNode, len(ForeignPrefixes))
	for prefix := range ForeignPrefixes {
		byForeign[prefix] = make(map[string]*TaxonNode)
	}
	for _, n := range nodes {
		for _, sid := range n.SourceIds {
			if m, ok := byForeign[sid.Prefix]; ok {
				m[sid.ExternId] = n
			}
		}
	}

	for _, syn := range synonyms {
		owner, ok := byId[syn.OwnerId]
		if !ok {
			return nil, SynonymUnknownOwnerError(syn.OwnerId)
		}
		s := &Synonym{Name: syn.Name, Kind: syn.Kind, Owner: owner}
		owner.JuniorSynonyms = append(owner.JuniorSynonyms, s)
	}

	for i, rec := range records {
		if rec.Uniqname != "" {
			nodes[i].Uniqname = rec.Uniqname
		}
	}
	assignUniqnames(nodes)

	suppress := make(map[taxonid.Id]struct{})
	for _, n := range nodes {
		if reg.SuppressedFromTnrs(n.Flags) {
			suppress[n.Id] = struct{}{}
		}
	}

	t := &Taxonomy{
		nodes:         nodes,
		byId:          byId,
		byForeign:     byForeign,
		root:          root,
		version:       version,
		versionNumber: versionNumber,
		suppressTnrs:  suppress,
		flags:         reg,
	}
	return t, nil
}

func parseSourceInfo(s string) []SourceId {
	if s == "" {
		return nil
	}
	toks := strings.Split(s, ",")
	res := make([]SourceId, 0, len(toks))
	for _, tok := range toks {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		idx := strings.IndexByte(tok, ':')
		if idx < 0 {
			continue
		}
		res = append(res, SourceId{
			Prefix:   tok[:idx],
			ExternId: tok[idx+1:],
		})
	}
	return res
}

// assignDepthsAndCheckCycles walks the tree breadth-first from root,
// assigning Depth, then checks that every node was reached: a node whose
// parent chain was validated to exist (§Build) but never reaches root
// indicates a cycle among non-root nodes.
func assignDepthsAndCheckCycles(root *TaxonNode, byId map[taxonid.Id]*TaxonNode) error {
	root.depth = 0
	queue := []*TaxonNode{root}
	visited := make(map[taxonid.Id]struct{}, len(byId))
	visited[root.Id] = struct{}{}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, c := range n.Children {
			c.depth = n.depth + 1
			visited[c.Id] = struct{}{}
			queue = append(queue, c)
		}
	}

	if len(visited) == len(byId) {
		return nil
	}

	ids := make([]taxonid.Id, 0, len(byId)-len(visited))
	for id := range byId {
		if _, ok := visited[id]; !ok {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return CycleError(ids[0])
}
