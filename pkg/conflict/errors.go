package conflict

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/opentreeoflife/gntaxdb/pkg/errcode"
	"github.com/opentreeoflife/gntaxdb/pkg/taxonid"
)

// EmptySourceTreeError reports a source tree with no labeled leaves.
func EmptySourceTreeError() error {
	msg := "Source tree has no labeled leaves"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.EmptyInputError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: source tree has no labeled leaves", fn),
	}
}

// UnknownLeafIdError reports a source-tree leaf whose taxon id is not in
// the taxonomy.
func UnknownLeafIdError(id taxonid.Id) error {
	msg := "Source tree leaf <em>%s</em> is not a known taxon id"
	vars := []any{id.String()}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.UnknownIdError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown leaf taxon id %s", fn, id),
	}
}
