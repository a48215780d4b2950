package config_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/opentreeoflife/gntaxdb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "gntaxdb"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "gntaxdb"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "gntaxdb", "logs"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		assert.Equal(t, "taxonomy.tsv", cfg.Taxonomy.TaxonomyPath)
		assert.Equal(t, "synonyms.tsv", cfg.Taxonomy.SynonymsPath)
		assert.Equal(t, 32, cfg.Taxonomy.IdBits)

		assert.Equal(t, 62, cfg.Trie.ThinAlphabetMax)
		assert.Equal(t, 62, cfg.Trie.WideAlphabetMax)

		assert.Equal(t, 30, cfg.Tnrs.DefaultMatchesPerName)
		assert.Equal(t, 10_000, cfg.Tnrs.MaxNamesExact)
		assert.Equal(t, 250, cfg.Tnrs.MaxNamesFuzzy)

		assert.Equal(t, "tint", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "stderr", cfg.Log.Destination)

		assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
	})
}

func TestOptionTaxonomyPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "sets valid path", input: "/data/taxonomy.tsv", expected: "/data/taxonomy.tsv"},
		{name: "trims whitespace", input: "  /data/taxonomy.tsv  ", expected: "/data/taxonomy.tsv"},
		{name: "ignores empty string", input: "", expected: "taxonomy.tsv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptTaxonomyPath(tt.input)})
			assert.Equal(t, tt.expected, cfg.Taxonomy.TaxonomyPath)
		})
	}
}

func TestOptionIdBits(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{name: "sets 64", input: 64, expected: 64},
		{name: "ignores unsupported width", input: 16, expected: 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptIdBits(tt.input)})
			assert.Equal(t, tt.expected, cfg.Taxonomy.IdBits)
		})
	}
}

func TestOptionLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "sets valid log level - debug", input: "debug", expected: "debug"},
		{name: "normalizes to lowercase", input: "DEBUG", expected: "debug"},
		{name: "ignores invalid value", input: "trace", expected: "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptLogLevel(tt.input)})
			assert.Equal(t, tt.expected, cfg.Log.Level)
		})
	}
}

func TestOptionJobsNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{name: "sets valid jobs number", input: 8, expected: 8},
		{name: "ignores zero", input: 0, expected: runtime.NumCPU()},
		{name: "ignores negative", input: -5, expected: runtime.NumCPU()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptJobsNumber(tt.input)})
			assert.Equal(t, tt.expected, cfg.JobsNumber)
		})
	}
}

func TestMultipleOptions(t *testing.T) {
	t.Run("applies multiple options in order", func(t *testing.T) {
		cfg := config.New()

		opts := []config.Option{
			config.OptTaxonomyPath("/data/taxonomy.tsv"),
			config.OptWideAlphabetMax(50),
			config.OptLogLevel("debug"),
			config.OptJobsNumber(16),
		}

		cfg.Update(opts)

		assert.Equal(t, "/data/taxonomy.tsv", cfg.Taxonomy.TaxonomyPath)
		assert.Equal(t, 50, cfg.Trie.WideAlphabetMax)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, 16, cfg.JobsNumber)

		// Unchanged fields keep defaults
		assert.Equal(t, 62, cfg.Trie.ThinAlphabetMax)
		assert.Equal(t, "tint", cfg.Log.Format)
	})

	t.Run("later options override earlier ones", func(t *testing.T) {
		cfg := config.New()

		opts := []config.Option{
			config.OptTaxonomyPath("first.tsv"),
			config.OptTaxonomyPath("second.tsv"),
		}

		cfg.Update(opts)

		assert.Equal(t, "second.tsv", cfg.Taxonomy.TaxonomyPath)
	})
}

func TestToOptions(t *testing.T) {
	t.Run("converts config to options correctly", func(t *testing.T) {
		original := config.New()
		opts := []config.Option{
			config.OptTaxonomyPath("/data/taxonomy.tsv"),
			config.OptSynonymsPath("/data/synonyms.tsv"),
			config.OptIdBits(64),
			config.OptWideAlphabetMax(50),
			config.OptDefaultMatchesPerName(10),
			config.OptLogLevel("debug"),
			config.OptLogFormat("text"),
			config.OptLogDestination("stdout"),
			config.OptJobsNumber(8),
		}
		original.Update(opts)

		convertedOpts := original.ToOptions()
		newCfg := config.New()
		newCfg.Update(convertedOpts)

		assert.Equal(t, original.Taxonomy.TaxonomyPath, newCfg.Taxonomy.TaxonomyPath)
		assert.Equal(t, original.Taxonomy.SynonymsPath, newCfg.Taxonomy.SynonymsPath)
		assert.Equal(t, original.Taxonomy.IdBits, newCfg.Taxonomy.IdBits)
		assert.Equal(t, original.Trie.WideAlphabetMax, newCfg.Trie.WideAlphabetMax)
		assert.Equal(t, original.Tnrs.DefaultMatchesPerName, newCfg.Tnrs.DefaultMatchesPerName)
		assert.Equal(t, original.Log.Level, newCfg.Log.Level)
		assert.Equal(t, original.Log.Format, newCfg.Log.Format)
		assert.Equal(t, original.Log.Destination, newCfg.Log.Destination)
		assert.Equal(t, original.JobsNumber, newCfg.JobsNumber)
	})

	t.Run("excludes runtime-only fields", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptHomeDir("/custom/home"),
			config.OptIncrementalPersist(true),
			config.OptIncrementalJournalPath("/custom/incremental.db"),
		})

		opts := cfg.ToOptions()
		newCfg := config.New()
		newCfg.Update(opts)

		assert.Equal(t, "", newCfg.HomeDir)
		assert.False(t, newCfg.Incremental.Persist)
		assert.Equal(t, "", newCfg.Incremental.JournalPath)
	})
}
