// Package journal defines the contract for durably recording additions to
// the incremental ("new-keys") compressed trie so they survive a process
// restart (spec.md §3 Lifecycle, §5 concurrency model: the incremental trie
// is the only structure mutated after load).
package journal

import (
	"context"

	"github.com/opentreeoflife/gntaxdb/pkg/taxonid"
)

// Entry records a single key added to the incremental trie at runtime.
type Entry struct {
	// Key is the name string as it was inserted into the trie.
	Key string

	// TaxonId is the taxon the key resolves to.
	TaxonId taxonid.Id

	// Source distinguishes how the key was added, e.g. "add-key" CLI,
	// "tnrs-add-synonym". Informational only.
	Source string
}

// Operator persists and replays journal entries for a single incremental
// trie. Implementations are single-writer: the CtrieDatabase already
// serializes writers with its own lock (spec.md §5), so Operator need not
// be safe for concurrent Append calls.
type Operator interface {
	// Connect opens (creating if absent) the journal store at path.
	Connect(ctx context.Context, path string) error

	// Close releases any resources held by the journal store.
	Close() error

	// Append records one entry. A no-op Operator (persistence disabled)
	// returns nil without storing anything.
	Append(ctx context.Context, e Entry) error

	// Replay returns every entry previously appended, in insertion order,
	// so the incremental trie can be rebuilt on startup.
	Replay(ctx context.Context) ([]Entry, error)
}

// Noop is an Operator that discards everything. Used when
// config.IncrementalConfig.Persist is false.
type Noop struct{}

func (Noop) Connect(context.Context, string) error { return nil }
func (Noop) Close() error                          { return nil }
func (Noop) Append(context.Context, Entry) error   { return nil }
func (Noop) Replay(context.Context) ([]Entry, error) {
	return nil, nil
}
