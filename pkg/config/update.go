package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for gntaxdb.yaml.
// Excludes runtime-only fields (HomeDir, Incremental.*).
// Used for round-tripping gntaxdb.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int

	s = c.Taxonomy.TaxonomyPath
	if s != "" {
		res = append(res, OptTaxonomyPath(s))
	}
	s = c.Taxonomy.SynonymsPath
	if s != "" {
		res = append(res, OptSynonymsPath(s))
	}
	s = c.Taxonomy.VersionPath
	if s != "" {
		res = append(res, OptVersionPath(s))
	}
	i = c.Taxonomy.IdBits
	if i > 0 {
		res = append(res, OptIdBits(i))
	}

	i = c.Trie.ThinAlphabetMax
	if i > 0 {
		res = append(res, OptThinAlphabetMax(i))
	}
	i = c.Trie.WideAlphabetMax
	if i > 0 {
		res = append(res, OptWideAlphabetMax(i))
	}

	i = c.Tnrs.DefaultMatchesPerName
	if i > 0 {
		res = append(res, OptDefaultMatchesPerName(i))
	}
	i = c.Tnrs.MaxNamesExact
	if i > 0 {
		res = append(res, OptMaxNamesExact(i))
	}
	i = c.Tnrs.MaxNamesFuzzy
	if i > 0 {
		res = append(res, OptMaxNamesFuzzy(i))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	i = c.JobsNumber
	if i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidEnumInt(name string, val int) bool {
	data := map[string]map[int]struct{}{
		"Taxonomy.IdBits": {32: {}, 64: {}},
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn("<em>%s</em> does not support '%d' as a value. Ignoring...", name, val)
	return false
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	} else {
		gn.Warn(
			"<em>%s</em> does not support '%s' as a value. "+
				"Valid values are: \n%s\nIgnoring...",
			[]string{name, val, strings.Join(lines, "\n")},
		)
		return false
	}
}
