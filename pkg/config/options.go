package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptTaxonomyPath sets the path to the taxonomy.tsv file.
func OptTaxonomyPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Taxonomy Path", s) {
			c.Taxonomy.TaxonomyPath = s
		}
	}
}

// OptSynonymsPath sets the path to the synonyms.tsv file.
func OptSynonymsPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Synonyms Path", s) {
			c.Taxonomy.SynonymsPath = s
		}
	}
}

// OptVersionPath sets the path to the taxonomy version file.
func OptVersionPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Version Path", s) {
			c.Taxonomy.VersionPath = s
		}
	}
}

// OptIdBits sets the bit width of TaxonId. Valid values: 32, 64.
func OptIdBits(i int) Option {
	return func(c *Config) {
		if isValidEnumInt("Taxonomy.IdBits", i) {
			c.Taxonomy.IdBits = i
		}
	}
}

// OptThinAlphabetMax sets the maximum alphabet size for the thin trie.
func OptThinAlphabetMax(i int) Option {
	return func(c *Config) {
		if isValidInt("Trie Thin Alphabet Max", i) {
			c.Trie.ThinAlphabetMax = i
		}
	}
}

// OptWideAlphabetMax sets the maximum alphabet size for the wide trie.
func OptWideAlphabetMax(i int) Option {
	return func(c *Config) {
		if isValidInt("Trie Wide Alphabet Max", i) {
			c.Trie.WideAlphabetMax = i
		}
	}
}

// OptDefaultMatchesPerName sets the per-name match cap (K in spec.md §4.7).
func OptDefaultMatchesPerName(i int) Option {
	return func(c *Config) {
		if isValidInt("Tnrs Default Matches Per Name", i) {
			c.Tnrs.DefaultMatchesPerName = i
		}
	}
}

// OptMaxNamesExact sets the input limit for exact-only TNRS requests.
func OptMaxNamesExact(i int) Option {
	return func(c *Config) {
		if isValidInt("Tnrs Max Names Exact", i) {
			c.Tnrs.MaxNamesExact = i
		}
	}
}

// OptMaxNamesFuzzy sets the input limit for fuzzy-enabled TNRS requests.
func OptMaxNamesFuzzy(i int) Option {
	return func(c *Config) {
		if isValidInt("Tnrs Max Names Fuzzy", i) {
			c.Tnrs.MaxNamesFuzzy = i
		}
	}
}

// OptIncrementalPersist enables or disables the SQLite journal for the
// incremental trie. Runtime-only field - not in ToOptions().
func OptIncrementalPersist(b bool) Option {
	return func(c *Config) {
		c.Incremental.Persist = b
	}
}

// OptIncrementalJournalPath sets the journal database path.
// Runtime-only field - not in ToOptions().
func OptIncrementalJournalPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Incremental Journal Path", s) {
			c.Incremental.JournalPath = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel operations.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
