// Package tnrs implements the taxonomic name resolution pipeline of
// spec.md §4.7: normalize, infer context, resolve against the trie
// database, then score, rank and cap matches, grounded on
// original_source/ws/tnrs/context.cpp and the distance-threshold and
// scoring policy of spec.md §4.5/§4.7.
package tnrs

import (
	"strings"
	"unicode"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/opentreeoflife/gntaxdb/pkg/config"
	gncontext "github.com/opentreeoflife/gntaxdb/pkg/context"
	"github.com/opentreeoflife/gntaxdb/pkg/ctrie"
	"github.com/opentreeoflife/gntaxdb/pkg/ctriedb"
	"github.com/opentreeoflife/gntaxdb/pkg/parserpool"
	"github.com/opentreeoflife/gntaxdb/pkg/taxonomy"
	"golang.org/x/text/unicode/norm"
)

// Pipeline resolves free-text names against a taxonomy's trie database
// (spec.md §4.7 "C8").
type Pipeline struct {
	tax    *taxonomy.Taxonomy
	db     *ctriedb.CtrieDatabase
	ctxReg *gncontext.Registry
	parser parserpool.Pool
	cfg    config.TnrsConfig
}

func New(tax *taxonomy.Taxonomy, db *ctriedb.CtrieDatabase, ctxReg *gncontext.Registry, parser parserpool.Pool, cfg config.TnrsConfig) *Pipeline {
	return &Pipeline{tax: tax, db: db, ctxReg: ctxReg, parser: parser, cfg: cfg}
}

// Normalize trims, collapses internal whitespace, and NFC-normalizes a
// query name for matching purposes; the original form is retained
// separately by the caller for the response (spec.md §4.7 step 1).
func Normalize(s string) string {
	s = norm.NFC.String(s)
	s = strings.TrimSpace(s)
	var b strings.Builder
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte(' ')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

// distanceThreshold implements spec.md §4.5's query-length policy table.
func distanceThreshold(queryLen int) int {
	switch {
	case queryLen < 9:
		return 1
	case queryLen < 14:
		return 2
	case queryLen < 19:
		return 3
	default:
		return 4
	}
}

// ToNomCode maps a taxonomy context's four-valued nomenclatural code
// onto gnparser's two-valued nomcode.Code (Botanical/Zoological): ICN
// and ICNP taxa parse under botanical rules, ICZN under zoological, and
// Undefined falls back to zoological, gnparser's own default code. This
// resolves the Open Question of how spec.md §3's four codes map onto
// gnlib's two, recorded in DESIGN.md since nothing in the example pack
// parses under more than two codes.
func ToNomCode(c gncontext.NomCode) nomcode.Code {
	switch c {
	case gncontext.ICN, gncontext.ICNP:
		return nomcode.Botanical
	default:
		return nomcode.Zoological
	}
}

// Candidate is one ranked match for a single query name (spec.md §4.7
// step 4).
type Candidate struct {
	Taxon              *taxonomy.TaxonNode
	MatchedName        string
	IsSynonym          bool
	Score              float64
	Distance           int
	IsApproximateMatch bool
}

// MatchResult is the ranked, capped result set for one input query name.
type MatchResult struct {
	QueryName string
	Matches   []Candidate
}

// Options controls one ResolveNames call (spec.md §4.7, §6).
type Options struct {
	ContextName       string // empty infers context from the batch
	IncludeSuppressed bool
	AllowFuzzy        bool
}

// ResolveNames runs the full pipeline over a batch of free-text names
// (spec.md §4.7). Input limits are enforced per §4.7: 10,000 names when
// fuzzy matching is disabled, 250 when enabled.
func (p *Pipeline) ResolveNames(names []string, opts Options) ([]MatchResult, error) {
	limit := p.cfg.MaxNamesExact
	if opts.AllowFuzzy {
		limit = p.cfg.MaxNamesFuzzy
	}
	if len(names) > limit {
		return nil, InputTooLargeError(len(names), limit)
	}

	ctx, err := p.resolveContext(names, opts.ContextName)
	if err != nil {
		return nil, err
	}

	results := make([]MatchResult, len(names))
	for i, raw := range names {
		cands := p.resolveOne(p.canonicalize(raw, ctx), ctx, opts)
		results[i] = MatchResult{QueryName: raw, Matches: cands}
	}
	return results, nil
}

// canonicalize normalizes raw and, when it parses as a scientific name
// under ctx's nomenclatural code, replaces it with gnparser's simple
// canonical form so a query carrying authorship or rank markers ("Homo
// sapiens L.") still matches the bare name stored in the trie database
// (grounded on the teacher's own Canonical.Simple usage in
// internal/iopopulate/hierarchy.go). Unparseable input, including
// single-word higher-taxon names, falls back to plain normalization.
func (p *Pipeline) canonicalize(raw string, ctx *gncontext.Context) string {
	normalized := Normalize(raw)
	if p.parser == nil {
		return normalized
	}
	result, err := p.parser.Parse(raw, ToNomCode(ctx.Code))
	if err != nil || !result.Parsed || result.Canonical == nil || result.Canonical.Simple == "" {
		return normalized
	}
	return Normalize(result.Canonical.Simple)
}

// exactQuery looks up name with zero tolerance for substitutions,
// insertions, or deletions, but case-insensitively: normalized query
// text is always lowercased (Normalize), while keys are indexed in the
// trie database under their original display casing, so a literal
// ctrie.Trie.ExactQuery would miss every taxon whose name carries any
// uppercase letter. FuzzyQuery at maxDist 0 only ever takes the match or
// case-equivalent-match transition (spec.md §4.5's testable property
// that fuzzy_query(uppercase(k), 0) returns k at distance 0), so it is
// the database's actual case-insensitive exact-match primitive.
func (p *Pipeline) exactQuery(name string) []ctrie.Match {
	return p.db.FuzzyQuery(name, 0)
}

func (p *Pipeline) resolveContext(names []string, contextName string) (*gncontext.Context, error) {
	if contextName != "" {
		c, ok := p.ctxReg.ByName(contextName)
		if !ok {
			return nil, UnknownContextError(contextName)
		}
		return c, nil
	}
	resolve := func(name string) []*taxonomy.TaxonNode {
		matches := p.exactQuery(Normalize(name))
		var nodes []*taxonomy.TaxonNode
		for _, m := range matches {
			for _, id := range p.db.TaxonIdsForKey(m.Key) {
				if n, ok := p.tax.TaxonById(id); ok && !p.tax.IsSuppressedFromTnrs(id) {
					nodes = append(nodes, n)
				}
			}
		}
		return nodes
	}
	ctx, _ := p.ctxReg.InferContextAndAmbiguousNames(p.tax, names, resolve)
	return ctx, nil
}

// resolveOne scores every candidate taxon the trie database surfaces for
// normalized against ctx (spec.md §4.7 step 3): 1.0 if the candidate is
// a primary name of a taxon lying within ctx's subtree, 0.8 for a
// synonym or for a primary name outside ctx's subtree (the spec names
// only these two base modifiers), further discounted by half if the
// taxon is in the TNRS-suppression set and the caller did not request
// include_suppressed.
func (p *Pipeline) resolveOne(normalized string, ctx *gncontext.Context, opts Options) []Candidate {
	var hits []ctrie.Match
	hits = append(hits, p.exactQuery(normalized)...)
	if opts.AllowFuzzy && len(hits) == 0 {
		d := distanceThreshold(len([]rune(normalized)))
		hits = append(hits, p.db.FuzzyQuery(normalized, d)...)
	}

	ctxNode, hasCtxNode := p.tax.TaxonById(ctx.OttId)

	var cands []Candidate
	for _, m := range hits {
		for _, id := range p.db.TaxonIdsForKey(m.Key) {
			n, ok := p.tax.TaxonById(id)
			if !ok {
				continue
			}
			suppressed := p.tax.IsSuppressedFromTnrs(id) && !opts.IncludeSuppressed
			isSynonym := !strings.EqualFold(m.Key, n.Name)
			inContext := hasCtxNode && (n == ctxNode || n.IsDescendantOf(ctxNode))
			modifier := 0.8
			if !isSynonym && inContext {
				modifier = 1.0
			}
			if suppressed {
				modifier *= 0.5
			}
			cands = append(cands, Candidate{
				Taxon:       n,
				MatchedName: m.Key,
				IsSynonym:   isSynonym,
				Score:       m.Score * modifier,
				Distance:    m.Distance,
			})
		}
	}

	sortCandidates(cands)
	if len(cands) > p.cfg.DefaultMatchesPerName {
		cands = cands[:p.cfg.DefaultMatchesPerName]
	}
	for i := range cands {
		cands[i].IsApproximateMatch = !(len(cands) == 1 && cands[i].Score == 1.0)
	}
	return cands
}

func sortCandidates(cands []Candidate) {
	for i := 1; i < len(cands); i++ {
		for j := i; j > 0 && cands[j].Score > cands[j-1].Score; j-- {
			cands[j], cands[j-1] = cands[j-1], cands[j]
		}
	}
}
