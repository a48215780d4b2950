package ionewick

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/opentreeoflife/gntaxdb/pkg/errcode"
)

// ParseError reports a malformed Newick string.
func ParseError(reason string) error {
	msg := "Cannot parse newick tree: %s"
	vars := []any{reason}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TaxonomyParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s", fn, reason),
	}
}
