package ctrie

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/opentreeoflife/gntaxdb/pkg/errcode"
)

// AlphabetTooLargeError reports an alphabet that cannot fit in a trie
// node's 62-bit letter mask alongside the null-letter sentinel.
func AlphabetTooLargeError(size int) error {
	msg := "Alphabet of <em>%d</em> letters exceeds the %d-letter trie node capacity"
	vars := []any{size, maxLetters}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AlphabetTooLargeError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: alphabet of %d letters exceeds capacity of %d",
			fn, size, maxLetters),
	}
}

// EmptyQueryError reports a search call made with an empty query string.
func EmptyQueryError() error {
	msg := "Query string must not be empty"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.EmptyQueryError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: empty query string", fn),
	}
}
