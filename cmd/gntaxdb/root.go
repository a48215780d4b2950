package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/opentreeoflife/gntaxdb/internal/iofs"
	"github.com/opentreeoflife/gntaxdb/internal/iologger"
	"github.com/opentreeoflife/gntaxdb/pkg/config"
	"github.com/opentreeoflife/gntaxdb/pkg/gntaxdb"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd creates and returns the root command.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", gntaxdb.Version, gntaxdb.Build),
		Use:     "gntaxdb",
		Short:   "gntaxdb queries a reference taxonomy and synthetic phylogenetic trees",
		Long: `gntaxdb is a command-line toolbox operating on a reference taxonomy
(taxonomy.tsv/synonyms.tsv, OTT format) and the synthetic trees built on
top of it.

It can:

- Resolve free-text names to taxa (TNRS) with exact and fuzzy matching
- Check structural invariants of the loaded taxonomy
- Compute induced subtrees over sets of taxon ids
- Detect contested nodes between a candidate tree and the taxonomy
- Graft a solved subproblem tree back into the full synthesis
- Add a single name/id pair to the running incremental trie

Configuration is managed through a gntaxdb.yaml file, environment
variables (with GNTAXDB_ prefix), and command-line flags.`,
		PersistentPreRunE: bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for gntaxdb")

	rootCmd.PersistentFlags().String("taxonomy", "", "path to taxonomy.tsv")
	rootCmd.PersistentFlags().String("synonyms", "", "path to synonyms.tsv")
	rootCmd.PersistentFlags().Int("jobs", 0, "number of concurrent workers (0 = all CPUs)")

	rootCmd.AddCommand(getCheckInvariantsCmd())
	rootCmd.AddCommand(getInducedSubtreeCmd())
	rootCmd.AddCommand(getDetectContestedCmd())
	rootCmd.AddCommand(getGraftCmd())
	rootCmd.AddCommand(getTnrsMatchCmd())
	rootCmd.AddCommand(getAddKeyCmd())

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error

	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("bootstrap started")

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		slog.Error("failed to ensure config file", "error", err)
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		slog.Error("failed to initialize configuration", "error", err)
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	applyFlagOverrides(cmd)

	if err = reconfigureLogging(cfg); err != nil {
		slog.Error("failed to reconfigure logging", "error", err)
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("configuration loaded",
		"taxonomy_path", cfg.Taxonomy.TaxonomyPath,
		"synonyms_path", cfg.Taxonomy.SynonymsPath,
		"log_level", cfg.Log.Level,
		"jobs_number", cfg.JobsNumber)

	return nil
}

// applyFlagOverrides layers persistent flags explicitly set on the
// command line over the config loaded from file/env.
func applyFlagOverrides(cmd *cobra.Command) {
	var flagOpts []config.Option

	if v, _ := cmd.Flags().GetString("taxonomy"); v != "" {
		flagOpts = append(flagOpts, config.OptTaxonomyPath(v))
	}
	if v, _ := cmd.Flags().GetString("synonyms"); v != "" {
		flagOpts = append(flagOpts, config.OptSynonymsPath(v))
	}
	if v, _ := cmd.Flags().GetInt("jobs"); v > 0 {
		flagOpts = append(flagOpts, config.OptJobsNumber(v))
	}

	cfg.Update(flagOpts)
}

func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	err := iologger.Init(logDir, cfg.Log, true)
	if err != nil {
		slog.Error("failed to reconfigure logger", "error", err, "log_dir", logDir)
		return err
	}
	return nil
}

func initConfig(home string) (*config.Config, error) {
	cfgPath := config.ConfigFilePath(home)

	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err := v.ReadInConfig(); err != nil {
		slog.Error("failed to read config file", "error", err, "config_path", cfgPath)
		return nil, iofs.CopyFileError(cfgPath, err)
	}

	var res config.Config
	if err := v.Unmarshal(&res); err != nil {
		slog.Error("failed to unmarshal config", "error", err, "config_path", cfgPath)
		return nil, iofs.CopyFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	v.SetEnvPrefix("GNTAXDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = v.BindEnv("taxonomy.taxonomy_path", "TAXONOMY_TAXONOMY_PATH")
	_ = v.BindEnv("taxonomy.synonyms_path", "TAXONOMY_SYNONYMS_PATH")
	_ = v.BindEnv("taxonomy.version_path", "TAXONOMY_VERSION_PATH")
	_ = v.BindEnv("taxonomy.id_bits", "TAXONOMY_ID_BITS")

	_ = v.BindEnv("trie.thin_alphabet_max", "TRIE_THIN_ALPHABET_MAX")
	_ = v.BindEnv("trie.wide_alphabet_max", "TRIE_WIDE_ALPHABET_MAX")

	_ = v.BindEnv("tnrs.default_matches_per_name", "TNRS_DEFAULT_MATCHES_PER_NAME")
	_ = v.BindEnv("tnrs.max_names_exact", "TNRS_MAX_NAMES_EXACT")
	_ = v.BindEnv("tnrs.max_names_fuzzy", "TNRS_MAX_NAMES_FUZZY")

	_ = v.BindEnv("log.level", "LOG_LEVEL")
	_ = v.BindEnv("log.format", "LOG_FORMAT")
	_ = v.BindEnv("log.destination", "LOG_DESTINATION")

	_ = v.BindEnv("jobs_number", "JOBS_NUMBER")

	v.AutomaticEnv()
}
