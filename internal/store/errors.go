package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrCaseNotFound is returned when a single-case lookup targets a case
	// ID that does not exist in the given domain.
	ErrCaseNotFound = errors.New("case was not found")

	// ErrSyncLogNotFound is returned when a sync-log lookup targets a
	// restore token that does not exist. Stale or garbage device tokens
	// surface through this error, never through a crash.
	ErrSyncLogNotFound = errors.New("sync log was not found")

	// ErrFlagNotFound is returned when no cleanliness flag has been
	// persisted yet for a (domain, owner) pair. Callers usually respond
	// by creating the clean default.
	ErrFlagNotFound = errors.New("cleanliness flag was not found")

	// ErrSyncLogNotSaved is returned when an INSERT of a sync log
	// completes without error but the number of affected rows is zero.
	ErrSyncLogNotSaved = errors.New("sync log was not saved")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommittingTransaction is returned when committing an open
	// transaction fails. The transaction is considered rolled back at this
	// point.
	ErrCommittingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
