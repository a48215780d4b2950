// Package config provides configuration management for gntaxdb.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via
// gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > gntaxdb.yaml > defaults
//
// # Design Principles
//
//   - Default config (from New()) is always valid - no validation needed
//   - All mutations go through Option functions - the only way to modify Config
//   - Invalid options are rejected with gn.Warn() - config remains in valid state
//   - ToOptions() converts persistent fields (those in gntaxdb.yaml)
//   - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, gntaxdb.yaml, and env vars):
//   - Taxonomy: taxonomy_path, synonyms_path, version_path, id_bits
//   - Trie: thin_alphabet_max, wide_alphabet_max
//   - Tnrs: default_matches_per_name, max_names_exact, max_names_fuzzy
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - HomeDir (set once at startup)
//   - Incremental.Persist, Incremental.JournalPath (per-command, opt-in)
//
// # Environment Variables
//
// Use GNTAXDB_ prefix with underscores for nesting:
//
//	GNTAXDB_TAXONOMY_TAXONOMY_PATH=/data/taxonomy.tsv
//	GNTAXDB_TRIE_WIDE_ALPHABET_MAX=62
//	GNTAXDB_LOG_LEVEL=info
//	GNTAXDB_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete gntaxdb configuration.
type Config struct {
	// Taxonomy describes where the on-disk taxonomy artifact lives and
	// structural limits applied while loading it.
	Taxonomy TaxonomyConfig `mapstructure:"taxonomy" yaml:"taxonomy"`

	// Trie contains alphabet-size limits for the thin/wide compressed tries.
	Trie TrieConfig `mapstructure:"trie" yaml:"trie"`

	// Tnrs contains policy knobs for the name-resolution pipeline.
	Tnrs TnrsConfig `mapstructure:"tnrs" yaml:"tnrs"`

	// Incremental configures the optional durable journal for the
	// CtrieDatabase's incremental ("new-keys") trie.
	Incremental IncrementalConfig `mapstructure:"incremental" yaml:"incremental"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers used when building the
	// thin and wide tries in parallel. Defaults to the number of available
	// threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// TaxonomyConfig locates the taxonomy artifact and bounds its identifier
// space (see spec.md §3, §6).
type TaxonomyConfig struct {
	// TaxonomyPath is the path to the taxonomy.tsv file.
	TaxonomyPath string `mapstructure:"taxonomy_path" yaml:"taxonomy_path"`

	// SynonymsPath is the path to the synonyms.tsv file.
	SynonymsPath string `mapstructure:"synonyms_path" yaml:"synonyms_path"`

	// VersionPath is the path to the plain-text version file.
	VersionPath string `mapstructure:"version_path" yaml:"version_path"`

	// IdBits is the bit width of TaxonId; build fails with IdTooLarge if
	// any parsed id exceeds it. Valid values: 32, 64.
	IdBits int `mapstructure:"id_bits" yaml:"id_bits"`
}

// TrieConfig bounds the alphabet size of the thin and wide compressed
// tries (spec.md §4.4: AlphabetTooLarge if |alphabet| >= 62).
type TrieConfig struct {
	// ThinAlphabetMax is the maximum alphabet size for the thin (ASCII
	// allow-list) trie.
	ThinAlphabetMax int `mapstructure:"thin_alphabet_max" yaml:"thin_alphabet_max"`

	// WideAlphabetMax is the maximum alphabet size for the wide trie; the
	// builder keeps only the most frequent characters up to this count.
	WideAlphabetMax int `mapstructure:"wide_alphabet_max" yaml:"wide_alphabet_max"`
}

// TnrsConfig holds name-resolution policy (spec.md §4.7).
type TnrsConfig struct {
	// DefaultMatchesPerName caps the number of ranked matches kept per
	// query name.
	DefaultMatchesPerName int `mapstructure:"default_matches_per_name" yaml:"default_matches_per_name"`

	// MaxNamesExact is the input limit when fuzzy matching is disabled.
	MaxNamesExact int `mapstructure:"max_names_exact" yaml:"max_names_exact"`

	// MaxNamesFuzzy is the input limit when fuzzy matching is enabled.
	MaxNamesFuzzy int `mapstructure:"max_names_fuzzy" yaml:"max_names_fuzzy"`
}

// IncrementalConfig controls whether additions to the incremental trie
// are journaled to a local SQLite database so they survive a restart.
// Runtime-only: not round-tripped through ToOptions/gntaxdb.yaml.
type IncrementalConfig struct {
	// Persist enables the SQLite-backed journal.
	Persist bool `mapstructure:"-" yaml:"-"`

	// JournalPath is the location of the journal database file.
	JournalPath string `mapstructure:"-" yaml:"-"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Taxonomy: TaxonomyConfig{
			TaxonomyPath: "taxonomy.tsv",
			SynonymsPath: "synonyms.tsv",
			VersionPath:  "version",
			IdBits:       32,
		},
		Trie: TrieConfig{
			ThinAlphabetMax: 62,
			WideAlphabetMax: 62,
		},
		Tnrs: TnrsConfig{
			DefaultMatchesPerName: 30,
			MaxNamesExact:         10_000,
			MaxNamesFuzzy:         250,
		},
		Log: LogConfig{
			Format: "tint",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "stderr",
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}
