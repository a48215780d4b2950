// Package flagset implements the taxon flag bitset of spec.md §3: a
// fixed-width set of boolean taxon properties parsed from a
// comma-separated token list, with two policy masks (suppress-from-
// synthesis, suppress-from-tnrs) derived once from the recognized-flags
// table.
package flagset

import (
	_ "embed"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed flags.yaml
var flagsYAML []byte

// FlagSet is a bitmask of recognized taxon flags. The zero value has no
// flags set.
type FlagSet uint64

type flagDef struct {
	Token                  string `yaml:"token"`
	SuppressFromSynthesis  bool   `yaml:"suppress_from_synthesis"`
	SuppressFromTnrs       bool   `yaml:"suppress_from_tnrs"`
}

type flagsFile struct {
	Flags []flagDef `yaml:"flags"`
}

// Registry holds the recognized-flags vocabulary and the two derived
// policy masks.
type Registry struct {
	bitOf             map[string]uint
	tokens            []string
	suppressSynthesis FlagSet
	suppressTnrs      FlagSet
}

// Load parses the recognized-flags table from raw YAML (spec.md §3,
// supplemented vocabulary: see SPEC_FULL.md). A malformed or duplicate
// table is a programmer/data error, not a user-input error, so Load
// panics rather than returning one more error type every caller must
// check.
func Load(data []byte) *Registry {
	var f flagsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		panic("flagset: cannot parse flags.yaml: " + err.Error())
	}

	reg := &Registry{bitOf: make(map[string]uint, len(f.Flags))}
	for i, d := range f.Flags {
		if i >= 64 {
			panic("flagset: more than 64 recognized flags, FlagSet cannot represent them")
		}
		if _, dup := reg.bitOf[d.Token]; dup {
			panic("flagset: duplicate flag token " + d.Token)
		}
		bit := uint(i)
		reg.bitOf[d.Token] = bit
		reg.tokens = append(reg.tokens, d.Token)
		if d.SuppressFromSynthesis {
			reg.suppressSynthesis |= 1 << bit
		}
		if d.SuppressFromTnrs {
			reg.suppressTnrs |= 1 << bit
		}
	}
	sort.Strings(reg.tokens)
	return reg
}

// Default is the registry loaded from the bundled flags.yaml.
var Default = Load(flagsYAML)

// All returns every recognized flag token, sorted, for the flags()
// external operation (spec.md §6).
func (r *Registry) All() []string {
	res := make([]string, len(r.tokens))
	copy(res, r.tokens)
	return res
}

// Parse converts a comma-separated token list into a FlagSet. Unknown
// tokens are ignored rather than rejected: taxonomy.tsv is produced by
// an upstream curation pipeline that may introduce new flag tokens
// before this service's registry is updated, and a record should not
// become unloadable because of a flag it doesn't otherwise need.
func (r *Registry) Parse(csv string) FlagSet {
	var fs FlagSet
	if csv == "" {
		return fs
	}
	for _, tok := range strings.Split(csv, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if bit, ok := r.bitOf[tok]; ok {
			fs |= 1 << bit
		}
	}
	return fs
}

// Has reports whether token is set in fs. Unknown tokens are never set.
func (r *Registry) Has(fs FlagSet, token string) bool {
	bit, ok := r.bitOf[token]
	if !ok {
		return false
	}
	return fs&(1<<bit) != 0
}

// String renders fs back as a sorted comma-separated token list.
func (r *Registry) String(fs FlagSet) string {
	var toks []string
	for _, tok := range r.tokens {
		if r.Has(fs, tok) {
			toks = append(toks, tok)
		}
	}
	return strings.Join(toks, ",")
}

// SuppressedFromSynthesis reports whether any flag in fs is marked
// suppress-from-synthesis.
func (r *Registry) SuppressedFromSynthesis(fs FlagSet) bool {
	return fs&r.suppressSynthesis != 0
}

// SuppressedFromTnrs reports whether any flag in fs is marked
// suppress-from-tnrs (spec.md §4.2 "Flag semantics").
func (r *Registry) SuppressedFromTnrs(fs FlagSet) bool {
	return fs&r.suppressTnrs != 0
}

// SuppressSynthesisMask returns the precomputed suppress-from-synthesis
// policy mask, for reporting in the about() operation (spec.md §4.8).
func (r *Registry) SuppressSynthesisMask() FlagSet { return r.suppressSynthesis }

// SuppressTnrsMask returns the precomputed suppress-from-tnrs policy
// mask, for reporting in the about() operation (spec.md §4.8).
func (r *Registry) SuppressTnrsMask() FlagSet { return r.suppressTnrs }
