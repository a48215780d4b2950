// Package context implements the TNRS context table of spec.md §5
// "Context": the ~50 named higher taxa (LIFE/MICROBES/ANIMALS/FUNGI/
// PLANTS groups) that bound a TNRS query to a nomenclatural code and a
// narrower search space, transcribed from
// original_source/ws/tnrs/context.cpp (all_contexts).
package context

import (
	_ "embed"

	"github.com/opentreeoflife/gntaxdb/pkg/taxonid"
	"github.com/opentreeoflife/gntaxdb/pkg/taxonomy"
	"gopkg.in/yaml.v3"
)

//go:embed contexts.yaml
var contextsYAML []byte

// NomCode is a taxon's governing nomenclatural code (spec.md §3 "Context").
type NomCode string

const (
	ICN       NomCode = "ICN"  // algae, fungi, plants
	ICNP      NomCode = "ICNP" // prokaryotes
	ICZN      NomCode = "ICZN" // animals
	Undefined NomCode = "Undefined"
)

// Context is one named, code-bound taxonomic scope.
type Context struct {
	Name  string     `yaml:"name"`
	Group string     `yaml:"group"`
	OttId taxonid.Id `yaml:"ott_id"`
	Code  NomCode    `yaml:"code"`
}

type contextsFile struct {
	Contexts []Context `yaml:"contexts"`
}

// Registry is the loaded, indexed context table.
type Registry struct {
	all     []Context
	byName  map[string]*Context
	byOttId map[taxonid.Id]*Context
	lifeCtx *Context
}

// Load parses the context table from raw YAML. A malformed table is a
// data/programmer error, so Load panics rather than forcing every
// caller to handle a load-time error for data compiled into the binary.
func Load(data []byte) *Registry {
	var f contextsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		panic("context: cannot parse contexts.yaml: " + err.Error())
	}

	reg := &Registry{
		all:     f.Contexts,
		byName:  make(map[string]*Context, len(f.Contexts)),
		byOttId: make(map[taxonid.Id]*Context, len(f.Contexts)),
	}
	for i := range reg.all {
		c := &reg.all[i]
		if _, dup := reg.byName[c.Name]; dup {
			panic("context: duplicate context name " + c.Name)
		}
		reg.byName[c.Name] = c
		reg.byOttId[c.OttId] = c
	}
	reg.lifeCtx = reg.byName["All life"]
	if reg.lifeCtx == nil {
		panic("context: contexts.yaml has no \"All life\" entry")
	}
	return reg
}

// Default is the registry loaded from the bundled context table.
var Default = Load(contextsYAML)

// All returns every context, in table order, for the tnrs_contexts()
// external operation (spec.md §6).
func (r *Registry) All() []Context {
	res := make([]Context, len(r.all))
	copy(res, r.all)
	return res
}

// ByName looks up a context by its display name, e.g. "Asterales".
func (r *Registry) ByName(name string) (*Context, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// ByOttId looks up a context by the ott id of its defining taxon.
func (r *Registry) ByOttId(id taxonid.Id) (*Context, bool) {
	c, ok := r.byOttId[id]
	return c, ok
}

// LeastInclusiveContext walks from mrca up to the root, returning the
// first ancestor (inclusive) that is a registered context; every
// taxonomy's root is expected to carry the "All life" context's ott id,
// guaranteeing termination (original_source/ws/tnrs/context.cpp
// least_inclusive_context).
func (r *Registry) LeastInclusiveContext(mrca *taxonomy.TaxonNode) *Context {
	for n := mrca; n != nil; n = n.Parent {
		if c, ok := r.byOttId[n.Id]; ok {
			return c
		}
	}
	return r.lifeCtx
}

// InferContextAndAmbiguousNames implements spec.md §6
// "tnrs_infer_context": resolve maps each input name to zero, one, or
// many exact taxon matches; names with exactly one match contribute to
// the context inference, and names with zero or multiple matches are
// reported back as ambiguous (original_source/ws/tnrs/context.cpp
// infer_context_and_ambiguous_names).
func (r *Registry) InferContextAndAmbiguousNames(
	tax *taxonomy.Taxonomy,
	names []string,
	resolve func(name string) []*taxonomy.TaxonNode,
) (*Context, []string) {
	var unique []taxonid.Id
	var ambiguous []string

	for _, name := range names {
		hits := resolve(name)
		if len(hits) == 1 {
			unique = append(unique, hits[0].Id)
		} else {
			ambiguous = append(ambiguous, name)
		}
	}

	if len(unique) == 0 {
		return r.lifeCtx, ambiguous
	}

	mrca, err := tax.Mrca(unique)
	if err != nil {
		return r.lifeCtx, ambiguous
	}
	return r.LeastInclusiveContext(mrca), ambiguous
}
