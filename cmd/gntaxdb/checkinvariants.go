package main

import (
	"context"
	"fmt"

	"github.com/opentreeoflife/gntaxdb/internal/ioload"
	"github.com/opentreeoflife/gntaxdb/pkg/invariants"
	"github.com/spf13/cobra"
)

func getCheckInvariantsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check-invariants",
		Short: "Audit a taxonomy for structural invariant violations",
		Long: `Loads taxonomy.tsv/synonyms.tsv and re-checks every structural
invariant a built taxonomy is supposed to satisfy: a single root every
taxon's ancestor chain reaches, parent/child pointer consistency,
descendant-set monotonicity, and uniqname uniqueness.

Exits non-zero and prints one line per violation if any are found.`,
		RunE: runCheckInvariants,
	}
	return cmd
}

func runCheckInvariants(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	tax, err := ioload.Load(ctx, cfg)
	if err != nil {
		return err
	}

	violations := invariants.Check(tax)
	if len(violations) == 0 {
		fmt.Println("no invariant violations found")
		return nil
	}

	for _, v := range violations {
		fmt.Println(v.String())
	}
	return fmt.Errorf("%d invariant violations found", len(violations))
}
