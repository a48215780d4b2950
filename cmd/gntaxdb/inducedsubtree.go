package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/opentreeoflife/gntaxdb/internal/ioload"
	"github.com/opentreeoflife/gntaxdb/pkg/taxonid"
	"github.com/opentreeoflife/gntaxdb/pkg/taxonomy"
	"github.com/spf13/cobra"
)

func getInducedSubtreeCmd() *cobra.Command {
	var labelStyle string
	var preserveMonotypic bool

	cmd := &cobra.Command{
		Use:   "induced-subtree <id>[,<id>...]",
		Short: "Print the minimal subtree of the taxonomy connecting a set of taxon ids",
		Long: `Loads the taxonomy and computes the minimal subtree connecting the
given comma-separated taxon ids, printed as a newick string. By default
out-degree-1 internal nodes that are not themselves one of the given ids
are spliced out; pass --preserve-monotypic to keep them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInducedSubtree(args[0], labelStyle, preserveMonotypic)
		},
	}

	cmd.Flags().StringVar(&labelStyle, "label-style", "name", "newick label style: name, id, or name_and_id")
	cmd.Flags().BoolVar(&preserveMonotypic, "preserve-monotypic", false, "keep non-branching internal nodes instead of splicing them out")

	return cmd
}

func parseLabelStyle(s string) (taxonomy.LabelStyle, error) {
	switch s {
	case "name":
		return taxonomy.LabelName, nil
	case "id":
		return taxonomy.LabelId, nil
	case "name_and_id":
		return taxonomy.LabelNameAndId, nil
	default:
		return 0, fmt.Errorf("unknown label style %q: expected name, id, or name_and_id", s)
	}
}

func parseIds(csv string) ([]taxonid.Id, error) {
	toks := strings.Split(csv, ",")
	ids := make([]taxonid.Id, 0, len(toks))
	for _, tok := range toks {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		id, err := taxonid.Parse(tok, cfg.Taxonomy.IdBits)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func runInducedSubtree(idsArg, labelStyleArg string, preserveMonotypic bool) error {
	ctx := context.Background()

	style, err := parseLabelStyle(labelStyleArg)
	if err != nil {
		return err
	}
	ids, err := parseIds(idsArg)
	if err != nil {
		return err
	}

	tax, err := ioload.Load(ctx, cfg)
	if err != nil {
		return err
	}

	tree, err := tax.InducedSubtree(ids, preserveMonotypic)
	if err != nil {
		return err
	}

	fmt.Println(tree.Newick(style))
	return nil
}
