package ioload

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/opentreeoflife/gntaxdb/pkg/errcode"
)

// OpenFileError reports a taxonomy/synonyms/version file that could not
// be opened.
func OpenFileError(path string, err error) error {
	msg := "Cannot open <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot open %s: %w", fn, path, err),
	}
}

// MalformedLineError reports a taxonomy.tsv/synonyms.tsv row with the
// wrong number of tab-delimited columns.
func MalformedLineError(path string, line int, gotCols, wantCols int) error {
	msg := "Malformed row at <em>%s</em> line <em>%d</em>: %d columns, expected %d"
	vars := []any{path, line, gotCols, wantCols}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TaxonomyParseError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %s:%d has %d columns, expected %d",
			fn, path, line, gotCols, wantCols),
	}
}
