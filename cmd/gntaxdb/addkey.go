package main

import (
	"context"
	"fmt"

	"github.com/opentreeoflife/gntaxdb/pkg/ctriedb"
	"github.com/opentreeoflife/gntaxdb/pkg/taxonid"
	"github.com/spf13/cobra"
)

func getAddKeyCmd() *cobra.Command {
	var journalPath string

	cmd := &cobra.Command{
		Use:   "add-key <name> <taxon-id>",
		Short: "Add a single name/taxon-id pair to the incremental trie",
		Long: `Adds name as a searchable key resolving to taxon-id in the
incremental trie, durably journaling the addition to a local SQLite
database (--journal) so it survives a restart of the service process.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAddKey(args[0], args[1], journalPath)
		},
	}

	cmd.Flags().StringVar(&journalPath, "journal", "", "path to the incremental trie's journal database (required)")
	_ = cmd.MarkFlagRequired("journal")

	return cmd
}

func runAddKey(name, idArg, journalPath string) error {
	ctx := context.Background()

	id, err := taxonid.Parse(idArg, cfg.Taxonomy.IdBits)
	if err != nil {
		return err
	}

	cfg.Incremental.Persist = true
	cfg.Incremental.JournalPath = journalPath

	svc, cleanup, err := buildService(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svc.Database().AddKey(ctx, ctriedb.Key{Text: name, TaxonId: id}); err != nil {
		return err
	}

	fmt.Printf("added %q -> %s\n", name, id.String())
	return nil
}
