package graft

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/opentreeoflife/gntaxdb/pkg/errcode"
)

// UnresolvedNodeNotFoundError reports that no node of the target tree
// carries the label a solution was meant to replace.
func UnresolvedNodeNotFoundError(label string) error {
	msg := "No node labeled <em>%s</em> found in the target tree"
	vars := []any{label}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.UnresolvedNodeNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: no node labeled %q in target tree", fn, label),
	}
}

// MismatchedLeafSetError reports that a solution's leaf set does not
// exactly match the node it was meant to replace.
func MismatchedLeafSetError(label string) error {
	msg := "Solution's leaf set does not match node <em>%s</em>"
	vars := []any{label}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.MismatchedLeafSetError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: solution leaf set does not match node %q", fn, label),
	}
}
