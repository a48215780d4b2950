package ioincr

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/opentreeoflife/gntaxdb/pkg/errcode"
)

// ConnectionError creates an error for journal database open/migrate
// failures.
func ConnectionError(path string, err error) error {
	msg := `Cannot open incremental-trie journal

<em>Journal path:</em>
  %s

<em>Possible causes:</em>
  - directory does not exist or is not writable
  - file is locked by another gntaxdb process

<em>How to fix:</em>
  1. Check the path is writable
  2. Make sure no other gntaxdb process holds the journal open`

	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)

	return &gn.Error{
		Code: errcode.JournalConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: failed to open journal %s: %w",
			fn, path, err),
	}
}

// NotConnectedError creates an error for an operation attempted before
// Connect succeeded.
func NotConnectedError() error {
	msg := "Journal operation attempted without connection"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)

	return &gn.Error{
		Code: errcode.JournalNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("from %s: not connected to journal", fn),
	}
}

// AppendError creates an error for a failed journal append.
func AppendError(key string, err error) error {
	msg := "Cannot append key <em>%s</em> to incremental-trie journal"
	vars := []any{key}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)

	return &gn.Error{
		Code: errcode.JournalAppendError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: failed to append key %q: %w",
			fn, key, err),
	}
}

// LoadError creates an error for a failed journal replay.
func LoadError(err error) error {
	msg := "Cannot read incremental-trie journal"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)

	return &gn.Error{
		Code: errcode.JournalLoadError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("from %s: failed to read journal: %w", fn, err),
	}
}
