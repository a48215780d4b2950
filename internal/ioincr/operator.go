// Package ioincr implements the journal.Operator contract with a local
// SQLite file, durably recording keys added to the incremental trie at
// runtime (spec.md §3 Lifecycle, §5). This is an impure I/O package that
// implements the contract defined in pkg/journal, grounded on the
// teacher's own direct use of modernc.org/sqlite via database/sql
// (internal/iopopulate/sfga.go) rather than its Postgres-only GORM path.
package ioincr

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite" // pure Go SQLite driver (no CGo)

	"github.com/opentreeoflife/gntaxdb/pkg/journal"
	"github.com/opentreeoflife/gntaxdb/pkg/taxonid"
)

const schema = `
CREATE TABLE IF NOT EXISTS journal_entries (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	key      TEXT NOT NULL,
	taxon_id INTEGER NOT NULL,
	source   TEXT NOT NULL
);
`

// SqliteOperator implements journal.Operator on top of a single SQLite
// file opened via database/sql and the pure-Go modernc.org/sqlite driver.
type SqliteOperator struct {
	db *sql.DB
}

// NewSqliteOperator creates a journal operator (without connecting).
func NewSqliteOperator() journal.Operator {
	return &SqliteOperator{}
}

// Connect opens (and migrates) the SQLite journal file at path.
func (o *SqliteOperator) Connect(ctx context.Context, path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return ConnectionError(path, err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return ConnectionError(path, err)
	}

	o.db = db
	return nil
}

// Close releases the underlying *sql.DB connection.
func (o *SqliteOperator) Close() error {
	if o.db == nil {
		return nil
	}
	return o.db.Close()
}

// Append records one journal entry.
func (o *SqliteOperator) Append(ctx context.Context, e journal.Entry) error {
	if o.db == nil {
		return NotConnectedError()
	}

	const q = `INSERT INTO journal_entries (key, taxon_id, source) VALUES (?, ?, ?)`
	if _, err := o.db.ExecContext(ctx, q, e.Key, uint64(e.TaxonId), e.Source); err != nil {
		return AppendError(e.Key, err)
	}
	return nil
}

// Replay returns every journal entry in insertion order.
func (o *SqliteOperator) Replay(ctx context.Context) ([]journal.Entry, error) {
	if o.db == nil {
		return nil, NotConnectedError()
	}

	const q = `SELECT key, taxon_id, source FROM journal_entries ORDER BY id ASC`
	rows, err := o.db.QueryContext(ctx, q)
	if err != nil {
		return nil, LoadError(err)
	}
	defer rows.Close()

	var res []journal.Entry
	for rows.Next() {
		var e journal.Entry
		var tid uint64
		if err := rows.Scan(&e.Key, &tid, &e.Source); err != nil {
			return nil, LoadError(err)
		}
		e.TaxonId = taxonid.Id(tid)
		res = append(res, e)
	}
	if err := rows.Err(); err != nil {
		return nil, LoadError(err)
	}
	return res, nil
}
