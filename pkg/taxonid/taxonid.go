// Package taxonid defines the stable numeric identifier taxa are keyed by
// (spec.md §3 "TaxonId") and the width limit enforced when a taxonomy is
// loaded.
package taxonid

import (
	"fmt"
	"runtime"
	"strconv"

	"github.com/gnames/gn"
	"github.com/opentreeoflife/gntaxdb/pkg/errcode"
)

// Id is an opaque, unsigned identifier drawn from the taxonomy's id space.
// Equality and hashing are by value, so Id is usable directly as a map key.
type Id uint64

// None is the zero value, never assigned to a real taxon.
const None Id = 0

// Parse converts a decimal string (as found in taxonomy.tsv/synonyms.tsv,
// spec.md §6) into an Id, rejecting values that do not fit in bits (32 or
// 64, config.TaxonomyConfig.IdBits).
func Parse(s string, bits int) (Id, error) {
	v, err := strconv.ParseUint(s, 10, bits)
	if err != nil {
		return None, ParseError(s, bits, err)
	}
	return Id(v), nil
}

// ParseError reports a taxon id that failed to parse or does not fit in
// the configured bit width.
func ParseError(s string, bits int, err error) error {
	msg := "Cannot parse taxon id <em>%s</em> as a %d-bit unsigned integer"
	vars := []any{s, bits}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)

	return &gn.Error{
		Code: errcode.IdTooLargeError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: id %q does not fit in %d bits: %w",
			fn, s, bits, err),
	}
}

// String renders the id in the same decimal form it was parsed from.
func (id Id) String() string {
	return strconv.FormatUint(uint64(id), 10)
}
