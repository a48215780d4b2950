package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/opentreeoflife/gntaxdb/pkg/tnrs"
	"github.com/spf13/cobra"
)

func getTnrsMatchCmd() *cobra.Command {
	var contextName string
	var includeSuppressed bool
	var exact bool
	var namesFile string

	cmd := &cobra.Command{
		Use:   "tnrs-match [name...]",
		Short: "Resolve free-text names to taxa",
		Long: `Runs the TNRS pipeline over the given names (and the names in
--file, one per line) and prints, for each input name, its ranked
candidate matches as tab-separated "query\tmatched_name\ttaxon_id\tscore"
rows.

Fuzzy matching is attempted by default when a name has no exact match;
pass --exact to disable it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := collectNames(args, namesFile)
			if err != nil {
				return err
			}
			return runTnrsMatch(names, tnrs.Options{
				ContextName:       contextName,
				IncludeSuppressed: includeSuppressed,
				AllowFuzzy:        !exact,
			})
		},
	}

	cmd.Flags().StringVar(&contextName, "context", "", "taxonomic context to resolve against (empty infers from the batch)")
	cmd.Flags().BoolVar(&includeSuppressed, "include-suppressed", false, "include taxa flagged suppressed-from-tnrs")
	cmd.Flags().BoolVar(&exact, "exact", false, "disable fuzzy matching")
	cmd.Flags().StringVar(&namesFile, "file", "", "read names from this file, one per line, in addition to any given on the command line")

	return cmd
}

func collectNames(args []string, namesFile string) ([]string, error) {
	if namesFile == "" {
		return args, nil
	}

	f, err := os.Open(namesFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", namesFile, err)
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			names = append(names, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", namesFile, err)
	}
	return append(names, args...), nil
}

func runTnrsMatch(names []string, opts tnrs.Options) error {
	ctx := context.Background()

	svc, cleanup, err := buildService(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	match := svc.TnrsMatchNames
	if !opts.AllowFuzzy {
		match = svc.TnrsMatchNamesExact
	}
	results, err := match(names, opts)
	if err != nil {
		return err
	}

	for _, r := range results {
		if len(r.Matches) == 0 {
			fmt.Printf("%s\t\t\t\n", r.QueryName)
			continue
		}
		for _, m := range r.Matches {
			fmt.Printf("%s\t%s\t%s\t%.3f\n", r.QueryName, m.MatchedName, m.Taxon.Id.String(), m.Score)
		}
	}
	return nil
}
