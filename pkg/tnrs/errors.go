package tnrs

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/opentreeoflife/gntaxdb/pkg/errcode"
)

// InputTooLargeError reports a ResolveNames call whose name batch exceeds
// the limit for the requested matching mode (spec.md §4.7: 10,000 names
// exact, 250 names when fuzzy matching is allowed).
func InputTooLargeError(count, limit int) error {
	msg := "Batch of <em>%d</em> names exceeds the limit of <em>%d</em> for this request"
	vars := []any{count, limit}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InputTooLargeError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %d names exceeds limit %d",
			fn, count, limit),
	}
}

// UnknownContextError reports a context name passed to ResolveNames that
// does not match any entry in the TNRS context registry.
func UnknownContextError(name string) error {
	msg := "Unknown TNRS context <em>%s</em>"
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.UnknownContextError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown context %s", fn, name),
	}
}
