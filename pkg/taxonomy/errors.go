package taxonomy

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/opentreeoflife/gntaxdb/pkg/errcode"
	"github.com/opentreeoflife/gntaxdb/pkg/taxonid"
)

// ParseError reports a malformed taxonomy.tsv or synonyms.tsv record.
func ParseError(line int, reason string) error {
	msg := "Cannot parse taxonomy record at line <em>%d</em>: %s"
	vars := []any{line, reason}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TaxonomyParseError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: line %d: %s",
			fn, line, reason),
	}
}

// DuplicateIdError reports a taxon id that appears more than once.
func DuplicateIdError(id taxonid.Id) error {
	msg := "Duplicate taxon id <em>%s</em>"
	vars := []any{id.String()}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TaxonomyDuplicateIdError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: duplicate taxon id %s", fn, id),
	}
}

// OrphanParentError reports a taxon whose parent id does not appear in the
// taxonomy.
func OrphanParentError(id, parentId taxonid.Id) error {
	msg := "Taxon <em>%s</em> references unknown parent <em>%s</em>"
	vars := []any{id.String(), parentId.String()}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TaxonomyOrphanParentError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: taxon %s has unknown parent %s",
			fn, id, parentId),
	}
}

// CycleError reports that the parent relation does not terminate at a
// single root within the expected number of steps.
func CycleError(id taxonid.Id) error {
	msg := "Taxon <em>%s</em> lies on a parent cycle"
	vars := []any{id.String()}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TaxonomyCycleError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: taxon %s lies on a parent cycle", fn, id),
	}
}

// SynonymUnknownOwnerError reports a synonym record naming an unknown
// owner taxon.
func SynonymUnknownOwnerError(ownerId taxonid.Id) error {
	msg := "Synonym references unknown taxon <em>%s</em>"
	vars := []any{ownerId.String()}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SynonymUnknownOwnerError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: synonym owner %s not found",
			fn, ownerId),
	}
}

// UnknownSourcePrefixError reports a foreign-id lookup against a prefix
// outside the five recognized external taxonomies (spec.md §4.1).
func UnknownSourcePrefixError(prefix string) error {
	msg := "Unrecognized foreign source prefix <em>%s</em>"
	vars := []any{prefix}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.UnknownSourcePrefixError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unrecognized source prefix %s", fn, prefix),
	}
}

// EmptyInputError reports an operation that requires a non-empty id set.
func EmptyInputError(op string) error {
	msg := "Operation <em>%s</em> requires at least one taxon id"
	vars := []any{op}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.EmptyInputError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s called with no ids", fn, op),
	}
}

// UnknownIdError reports an id not present in the taxonomy where the
// operation requires every id to resolve (e.g. mrca).
func UnknownIdError(id taxonid.Id) error {
	msg := "Unknown taxon id <em>%s</em>"
	vars := []any{id.String()}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.UnknownIdError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown taxon id %s", fn, id),
	}
}
