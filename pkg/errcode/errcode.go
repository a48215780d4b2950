// Package errcode enumerates the stable error codes returned by gntaxdb.
// Codes are grouped by the error taxonomy of the specification: malformed
// input, structural build-time limits, and internal invariant violations.
// Collaborators (CLI commands, the service layer) map a code to a status
// and an explanatory string; the core never panics on recoverable input.
package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// Taxonomy load errors
	TaxonomyParseError
	TaxonomyDuplicateIdError
	TaxonomyOrphanParentError
	TaxonomyCycleError
	SynonymUnknownOwnerError
	UnknownSourcePrefixError

	// Structural build-time limits (fatal at build, 4xx at query time)
	IdTooLargeError
	AlphabetTooLargeError
	InputTooLargeError

	// Tree algorithm errors
	EmptyInputError
	UnknownIdError

	// Trie errors
	EmptyQueryError

	// TNRS errors
	BadRequestError
	UnknownContextError

	// Incremental-trie journal errors
	JournalConnectionError
	JournalNotConnectedError
	JournalAppendError
	JournalLoadError

	// Invariant-checking, conflict-detection and grafting errors
	InvariantViolationError
	MismatchedLeafSetError
	UnresolvedNodeNotFoundError

	// CLI bootstrap / local filesystem errors
	CreateDirError
	CopyFileError
	ReadFileError
	CreateLogFileError

	// Internal invariant violations
	InternalError
)
