// Package ctriedb implements the trie database of spec.md §4.6: two
// immutable tries (thin, wide) built at load time over a partitioned key
// set, plus a third mutable-by-rebuild incremental trie for
// administratively added keys, fanned out behind single exact/prefix/
// fuzzy query surfaces, grounded on original_source/otc/ctrie/ctrie_db.h.
package ctriedb

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/opentreeoflife/gntaxdb/pkg/config"
	"github.com/opentreeoflife/gntaxdb/pkg/ctrie"
	"github.com/opentreeoflife/gntaxdb/pkg/journal"
	"github.com/opentreeoflife/gntaxdb/pkg/taxonid"
	"golang.org/x/sync/errgroup"
)

// thinAllowList is the 59-character ASCII set a key must be built
// entirely from to qualify for the thin partition (spec.md §4.6): digits,
// space, lowercase letters, and a handful of punctuation marks common in
// scientific names. No literal allow-list survives in original_source/,
// so this exact 59-character set is a documented reconstruction (see
// DESIGN.md).
const thinAllowList = `abcdefghijklmnopqrstuvwxyz0123456789 ()[]'.,-:;_&+"!?/\*%#@`

// Key is one indexed string paired with the taxon it names, so a query
// hit can be resolved straight back to a taxon without a second lookup.
type Key struct {
	Text    string
	TaxonId taxonid.Id
}

// CtrieDatabase is the thin/wide/incremental trie triad (spec.md §4.6).
type CtrieDatabase struct {
	thin *ctrie.Trie
	wide *ctrie.Trie

	mu          sync.RWMutex
	incremental *ctrie.Trie
	addedKeys   []string

	byKey map[string][]taxonid.Id

	journal journal.Operator
}

func isThinKey(k string) bool {
	for _, r := range k {
		if !strings.ContainsRune(thinAllowList, r) {
			return false
		}
	}
	return true
}

func charFrequency(keys []string) map[rune]int {
	freq := make(map[rune]int)
	for _, k := range keys {
		for _, r := range k {
			freq[r]++
		}
	}
	return freq
}

// Build partitions keys into thin/wide sets and builds both tries
// concurrently (spec.md §4.6, §5 concurrency: jobsNumber bounds how many
// trie builds run at once via golang.org/x/sync/errgroup, following the
// same worker-pool idiom the teacher uses for parallel batch work).
func Build(ctx context.Context, keys []Key, cfg config.TrieConfig, jobsNumber int) (*CtrieDatabase, error) {
	db := &CtrieDatabase{
		byKey:   make(map[string][]taxonid.Id, len(keys)),
		journal: journal.Noop{},
	}

	var thinTexts, wideTexts []string
	for _, k := range keys {
		db.byKey[k.Text] = append(db.byKey[k.Text], k.TaxonId)
		if isThinKey(k.Text) {
			thinTexts = append(thinTexts, k.Text)
		} else {
			wideTexts = append(wideTexts, k.Text)
		}
	}

	thinAlphabet, err := ctrie.NewAlphabet([]rune(thinAllowList))
	if err != nil {
		return nil, err
	}

	wideLimit := cfg.WideAlphabetMax
	if wideLimit > ctrie.MaxLetters-1 {
		wideLimit = ctrie.MaxLetters - 1
	}
	wideLetters := ctrie.TopFrequent(charFrequency(wideTexts), wideLimit)
	wideAlphabet, err := ctrie.NewAlphabet(wideLetters)
	if err != nil {
		return nil, err
	}

	g, _ := errgroup.WithContext(ctx)
	if jobsNumber > 0 {
		g.SetLimit(jobsNumber)
	}
	g.Go(func() error {
		db.thin = ctrie.Build(thinAlphabet, thinTexts)
		return nil
	})
	g.Go(func() error {
		db.wide = ctrie.Build(wideAlphabet, wideTexts)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	db.incremental = ctrie.Build(wideAlphabet, nil)
	return db, nil
}

// UseJournal wires a durable journal used to persist and replay
// administrative AddKey calls across restarts (internal/ioincr).
func (db *CtrieDatabase) UseJournal(j journal.Operator) { db.journal = j }

// ExactQuery fans out to all three tries and returns the union (spec.md
// §4.6). Each trie owns its own alphabet, so the query is encoded
// separately against each.
func (db *CtrieDatabase) ExactQuery(q string) []ctrie.Match {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var res []ctrie.Match
	for _, t := range db.tries() {
		if m, ok := t.ExactQuery(q); ok {
			res = append(res, m)
		}
	}
	return ctrie.SortByNearness(res)
}

// PrefixQuery fans out to all three tries and returns the union.
func (db *CtrieDatabase) PrefixQuery(q string) []ctrie.Match {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var res []ctrie.Match
	for _, t := range db.tries() {
		res = append(res, t.PrefixQuery(q)...)
	}
	return ctrie.SortByNearness(res)
}

// FuzzyQuery fans out to all three tries and returns the union ordered
// by nearness (spec.md §4.6).
func (db *CtrieDatabase) FuzzyQuery(q string, maxDist int) []ctrie.Match {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var res []ctrie.Match
	for _, t := range db.tries() {
		res = append(res, t.FuzzyQuery(q, maxDist)...)
	}
	return ctrie.SortByNearness(res)
}

// TaxonIdsForKey returns every taxon a matched key string was indexed
// under (a name can be shared by a primary name and a synonym of
// distinct taxa).
func (db *CtrieDatabase) TaxonIdsForKey(key string) []taxonid.Id {
	db.mu.RLock()
	defer db.mu.RUnlock()
	ids := db.byKey[key]
	res := make([]taxonid.Id, len(ids))
	copy(res, ids)
	return res
}

func (db *CtrieDatabase) tries() []*ctrie.Trie {
	return []*ctrie.Trie{db.thin, db.wide, db.incremental}
}

// AddKey inserts k into the backing set and rebuilds the incremental
// trie from scratch under the single-writer lock; concurrent readers see
// either the old or new trie atomically, never a partially built one
// (spec.md §4.6, §5 "single-writer/multi-reader").
func (db *CtrieDatabase) AddKey(ctx context.Context, k Key) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.addedKeys = append(db.addedKeys, k.Text)
	db.byKey[k.Text] = append(db.byKey[k.Text], k.TaxonId)
	sort.Strings(db.addedKeys)

	alphabet, err := ctrie.NewAlphabet(ctrie.TopFrequent(charFrequency(db.addedKeys), ctrie.MaxLetters-1))
	if err != nil {
		return err
	}
	db.incremental = ctrie.Build(alphabet, db.addedKeys)

	return db.journal.Append(ctx, journal.Entry{Key: k.Text, TaxonId: k.TaxonId, Source: "add-key"})
}

// ReplayJournal reloads previously journaled AddKey calls, rebuilding
// the incremental trie once after all entries are collected rather than
// once per entry.
func (db *CtrieDatabase) ReplayJournal(ctx context.Context) error {
	entries, err := db.journal.Replay(ctx)
	if err != nil {
		return err
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, e := range entries {
		db.addedKeys = append(db.addedKeys, e.Key)
		db.byKey[e.Key] = append(db.byKey[e.Key], e.TaxonId)
	}
	sort.Strings(db.addedKeys)
	alphabet, err := ctrie.NewAlphabet(ctrie.TopFrequent(charFrequency(db.addedKeys), ctrie.MaxLetters-1))
	if err != nil {
		return err
	}
	db.incremental = ctrie.Build(alphabet, db.addedKeys)
	return nil
}
