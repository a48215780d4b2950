package main

import (
	"context"

	"github.com/opentreeoflife/gntaxdb/internal/ioincr"
	"github.com/opentreeoflife/gntaxdb/internal/ioload"
	"github.com/opentreeoflife/gntaxdb/pkg/config"
	gncontext "github.com/opentreeoflife/gntaxdb/pkg/context"
	"github.com/opentreeoflife/gntaxdb/pkg/ctriedb"
	"github.com/opentreeoflife/gntaxdb/pkg/flagset"
	"github.com/opentreeoflife/gntaxdb/pkg/gnsvc"
	"github.com/opentreeoflife/gntaxdb/pkg/parserpool"
	"github.com/opentreeoflife/gntaxdb/pkg/taxonomy"
	"github.com/opentreeoflife/gntaxdb/pkg/tnrs"
)

// buildKeys collects every primary name and synonym in tax as a trie
// database key, each paired with the taxon id it resolves to (spec.md
// §4.6: the trie indexes both primary names and synonyms of every
// taxon).
func buildKeys(tax *taxonomy.Taxonomy) []ctriedb.Key {
	var keys []ctriedb.Key
	tax.Root().Preorder(func(n *taxonomy.TaxonNode) bool {
		keys = append(keys, ctriedb.Key{Text: n.Name, TaxonId: n.Id})
		for _, syn := range n.JuniorSynonyms {
			keys = append(keys, ctriedb.Key{Text: syn.Name, TaxonId: n.Id})
		}
		return true
	})
	return keys
}

// buildService loads the configured taxonomy, builds the thin/wide trie
// database over it, optionally wires a durable journal for the
// incremental trie, and assembles the TNRS pipeline into a single
// gnsvc.Service, for the commands that need the full query surface.
func buildService(ctx context.Context, cfg *config.Config) (*gnsvc.Service, func(), error) {
	tax, err := ioload.Load(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	db, err := ctriedb.Build(ctx, buildKeys(tax), cfg.Trie, cfg.JobsNumber)
	if err != nil {
		return nil, nil, err
	}

	var closers []func()
	if cfg.Incremental.Persist {
		op := ioincr.NewSqliteOperator()
		if err := op.Connect(ctx, cfg.Incremental.JournalPath); err != nil {
			return nil, nil, err
		}
		db.UseJournal(op)
		if err := db.ReplayJournal(ctx); err != nil {
			op.Close()
			return nil, nil, err
		}
		closers = append(closers, func() { op.Close() })
	}

	parser := parserpool.NewPool(cfg.JobsNumber)
	closers = append(closers, parser.Close)

	pipeline := tnrs.New(tax, db, gncontext.Default, parser, cfg.Tnrs)
	svc := gnsvc.New(tax, db, gncontext.Default, flagset.Default, pipeline)

	cleanup := func() {
		for _, c := range closers {
			c()
		}
	}
	return svc, cleanup, nil
}
