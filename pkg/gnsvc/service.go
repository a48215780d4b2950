// Package gnsvc wires a loaded Taxonomy, CtrieDatabase, context registry,
// flag registry and TNRS pipeline behind the single external operation
// surface of spec.md §4.8 "C9": about, taxon_info, taxon_subtree,
// taxon_mrca, tnrs_match_names, tnrs_autocomplete_name, tnrs_contexts,
// tnrs_infer_context, flags. Every operation is pure with respect to the
// immutable taxonomy and tries (the incremental trie's writer lock
// aside), so a collaborator (HTTP handler, CLI command) can call them
// concurrently without further synchronization, grounded on the
// teacher's thin service-layer pattern of fanning a handful of read-only
// query methods out over shared, pre-built state.
package gnsvc

import (
	gncontext "github.com/opentreeoflife/gntaxdb/pkg/context"
	"github.com/opentreeoflife/gntaxdb/pkg/ctriedb"
	"github.com/opentreeoflife/gntaxdb/pkg/flagset"
	"github.com/opentreeoflife/gntaxdb/pkg/gntaxdb"
	"github.com/opentreeoflife/gntaxdb/pkg/taxonid"
	"github.com/opentreeoflife/gntaxdb/pkg/taxonomy"
	"github.com/opentreeoflife/gntaxdb/pkg/tnrs"
)

// Service is the root object spec.md §5 calls ServiceState: it owns
// every dependent structure and exposes the C9 operation surface over
// them. The zero value is not usable; construct with New.
type Service struct {
	tax    *taxonomy.Taxonomy
	db     *ctriedb.CtrieDatabase
	ctxReg *gncontext.Registry
	flags  *flagset.Registry
	tnrs   *tnrs.Pipeline
}

// New wires a Service from already-loaded dependent objects (internal/
// ioload built tax, a command or server bootstrap built db and parser).
func New(tax *taxonomy.Taxonomy, db *ctriedb.CtrieDatabase, ctxReg *gncontext.Registry, flags *flagset.Registry, pipeline *tnrs.Pipeline) *Service {
	return &Service{tax: tax, db: db, ctxReg: ctxReg, flags: flags, tnrs: pipeline}
}

// AboutResult answers the about() operation (spec.md §4.8).
type AboutResult struct {
	Version               string
	TaxonomyVersion       string
	TaxonCount            int
	SuppressSynthesisMask flagset.FlagSet
	SuppressTnrsMask      flagset.FlagSet
}

// About returns version and taxonomy metadata plus the two derived
// suppression policy masks.
func (s *Service) About() AboutResult {
	return AboutResult{
		Version:               gntaxdb.Version,
		TaxonomyVersion:       s.tax.Version(),
		TaxonCount:            s.tax.Len(),
		SuppressSynthesisMask: s.flags.SuppressSynthesisMask(),
		SuppressTnrsMask:      s.flags.SuppressTnrsMask(),
	}
}

// TaxonInfoOptions selects which derived fields taxon_info computes in
// addition to the bare record (spec.md §4.8).
type TaxonInfoOptions struct {
	Lineage             bool
	Children            bool
	TerminalDescendants bool
}

// TaxonInfoResult is the taxon record plus whichever optional derived
// fields were requested.
type TaxonInfoResult struct {
	Taxon               *taxonomy.TaxonNode
	Lineage             []*taxonomy.TaxonNode
	Children            []*taxonomy.TaxonNode
	TerminalDescendants []taxonid.Id
}

// TaxonInfo looks up id and computes the requested derived fields.
// Returns (nil, false) for an unknown id (spec.md §7 "UnknownEntity").
func (s *Service) TaxonInfo(id taxonid.Id, opts TaxonInfoOptions) (TaxonInfoResult, bool) {
	n, ok := s.tax.TaxonById(id)
	if !ok {
		return TaxonInfoResult{}, false
	}
	res := TaxonInfoResult{Taxon: n}
	if opts.Lineage {
		res.Lineage = n.Ancestors()
	}
	if opts.Children {
		res.Children = n.Children
	}
	if opts.TerminalDescendants {
		for descId := range n.DescendantIds() {
			if desc, ok := s.tax.TaxonById(descId); ok && desc.IsLeaf() {
				res.TerminalDescendants = append(res.TerminalDescendants, descId)
			}
		}
	}
	return res, true
}

// TaxonSubtree renders the full subtree rooted at id as a newick-like
// string in the requested label style (spec.md §4.8, §6). Returns
// ("", false) for an unknown id.
func (s *Service) TaxonSubtree(id taxonid.Id, style taxonomy.LabelStyle) (string, bool) {
	n, ok := s.tax.TaxonById(id)
	if !ok {
		return "", false
	}
	return buildTreeNode(n).Newick(style), true
}

func buildTreeNode(n *taxonomy.TaxonNode) *taxonomy.TreeNode {
	tn := &taxonomy.TreeNode{Taxon: n, Label: taxonomy.UniqnameOrName(n)}
	for _, c := range n.Children {
		tn.Children = append(tn.Children, buildTreeNode(c))
	}
	return tn
}

// TaxonMrca answers taxon_mrca(ids): the taxonomy error contract already
// distinguishes empty input from an unknown id (spec.md §7 requires
// "mrca" to surface UnknownEntity as an error, not None).
func (s *Service) TaxonMrca(ids []taxonid.Id) (*taxonomy.TaxonNode, error) {
	return s.tax.Mrca(ids)
}

// TnrsMatchNames runs the full name-resolution pipeline (spec.md §4.7,
// §4.8).
func (s *Service) TnrsMatchNames(names []string, opts tnrs.Options) ([]tnrs.MatchResult, error) {
	opts.AllowFuzzy = true
	return s.tnrs.ResolveNames(names, opts)
}

// TnrsMatchNamesExact runs the pipeline with fuzzy matching disabled,
// the higher-input-limit mode of spec.md §4.7.
func (s *Service) TnrsMatchNamesExact(names []string, opts tnrs.Options) ([]tnrs.MatchResult, error) {
	opts.AllowFuzzy = false
	return s.tnrs.ResolveNames(names, opts)
}

// AutocompleteMatch is one ranked autocomplete suggestion.
type AutocompleteMatch struct {
	Name  string
	Taxon *taxonomy.TaxonNode
}

// TnrsAutocompleteName implements tnrs_autocomplete_name: prefix search
// against the trie database, resolved back to taxa and filtered by the
// TNRS-suppression policy unless includeSuppressed is set (spec.md
// §4.8).
func (s *Service) TnrsAutocompleteName(prefix string, contextName string, includeSuppressed bool) ([]AutocompleteMatch, error) {
	if contextName != "" {
		if _, ok := s.ctxReg.ByName(contextName); !ok {
			return nil, tnrs.UnknownContextError(contextName)
		}
	}
	hits := s.db.PrefixQuery(tnrs.Normalize(prefix))
	var res []AutocompleteMatch
	for _, m := range hits {
		for _, id := range s.db.TaxonIdsForKey(m.Key) {
			n, ok := s.tax.TaxonById(id)
			if !ok {
				continue
			}
			if s.tax.IsSuppressedFromTnrs(id) && !includeSuppressed {
				continue
			}
			res = append(res, AutocompleteMatch{Name: m.Key, Taxon: n})
		}
	}
	return res, nil
}

// TnrsContexts answers tnrs_contexts(): the closed set of context names
// grouped by super-group (spec.md §4.8, §6).
func (s *Service) TnrsContexts() []gncontext.Context {
	return s.ctxReg.All()
}

// TnrsInferContext answers tnrs_infer_context(names): context inference
// only, without running full resolution (spec.md §4.7 step 2, §4.8).
func (s *Service) TnrsInferContext(names []string) (*gncontext.Context, []string) {
	resolve := func(name string) []*taxonomy.TaxonNode {
		matches := s.db.FuzzyQuery(tnrs.Normalize(name), 0)
		var nodes []*taxonomy.TaxonNode
		for _, m := range matches {
			for _, id := range s.db.TaxonIdsForKey(m.Key) {
				if n, ok := s.tax.TaxonById(id); ok && !s.tax.IsSuppressedFromTnrs(id) {
					nodes = append(nodes, n)
				}
			}
		}
		return nodes
	}
	return s.ctxReg.InferContextAndAmbiguousNames(s.tax, names, resolve)
}

// Flags answers flags(): every recognized flag token (spec.md §4.8).
func (s *Service) Flags() []string {
	return s.flags.All()
}

// Database returns the underlying trie database, for callers (the
// add-key CLI command) that need direct write access the read-only C9
// surface above doesn't expose.
func (s *Service) Database() *ctriedb.CtrieDatabase { return s.db }

// Taxonomy returns the underlying taxonomy.
func (s *Service) Taxonomy() *taxonomy.Taxonomy { return s.tax }
