package main

import (
	"context"
	"fmt"
	"os"

	"github.com/opentreeoflife/gntaxdb/internal/ioload"
	"github.com/opentreeoflife/gntaxdb/internal/ionewick"
	"github.com/opentreeoflife/gntaxdb/pkg/conflict"
	"github.com/spf13/cobra"
)

func getDetectContestedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect-contested <source.tre>",
		Short: "Find taxonomy nodes contested by a candidate source tree",
		Long: `Loads the taxonomy and a candidate source tree (newick, leaf labels
of the form "ottNNN"), restricts the taxonomy to the source tree's leaf
set, and reports every taxonomy node whose descendant set conflicts
with a clade of the source tree.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetectContested(args[0])
		},
	}
	return cmd
}

func runDetectContested(sourcePath string) error {
	ctx := context.Background()

	raw, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", sourcePath, err)
	}
	root, err := ionewick.Parse(string(raw))
	if err != nil {
		return err
	}

	tax, err := ioload.Load(ctx, cfg)
	if err != nil {
		return err
	}
	source := resolveTree(root, tax)

	contested, err := conflict.DetectContested(tax, source)
	if err != nil {
		return err
	}

	if len(contested) == 0 {
		fmt.Println("no contested nodes found")
		return nil
	}
	for _, id := range contested {
		fmt.Println(id.String())
	}
	return nil
}
