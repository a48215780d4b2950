package main

import (
	"context"
	"fmt"
	"os"

	"github.com/opentreeoflife/gntaxdb/internal/ioload"
	"github.com/opentreeoflife/gntaxdb/internal/ionewick"
	"github.com/opentreeoflife/gntaxdb/pkg/graft"
	"github.com/spf13/cobra"
)

func getGraftCmd() *cobra.Command {
	var labelStyle string

	cmd := &cobra.Command{
		Use:   "graft <target.tre> <node-label> <solution.tre>",
		Short: "Splice a solved subproblem tree into a target tree at a matching node",
		Long: `Reads target.tre and solution.tre (newick), finds the node in
target.tre labeled node-label, and replaces it with solution.tre —
provided the two share the exact same leaf set. Prints the resulting
tree as newick.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraft(args[0], args[1], args[2], labelStyle)
		},
	}

	cmd.Flags().StringVar(&labelStyle, "label-style", "name", "newick label style: name, id, or name_and_id")

	return cmd
}

func runGraft(targetPath, nodeLabel, solutionPath, labelStyleArg string) error {
	ctx := context.Background()

	style, err := parseLabelStyle(labelStyleArg)
	if err != nil {
		return err
	}

	targetRaw, err := os.ReadFile(targetPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", targetPath, err)
	}
	solutionRaw, err := os.ReadFile(solutionPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", solutionPath, err)
	}

	targetRoot, err := ionewick.Parse(string(targetRaw))
	if err != nil {
		return err
	}
	solutionRoot, err := ionewick.Parse(string(solutionRaw))
	if err != nil {
		return err
	}

	tax, err := ioload.Load(ctx, cfg)
	if err != nil {
		return err
	}

	target := resolveTree(targetRoot, tax)
	solution := resolveTree(solutionRoot, tax)

	result, err := graft.Graft(target, nodeLabel, solution)
	if err != nil {
		return err
	}

	fmt.Println(result.Newick(style))
	return nil
}
