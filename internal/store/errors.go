package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known
// outcomes. Callers should match against them with [errors.Is].
var (
	// ErrDocumentNotFound is returned when an operation targets a secret
	// key that has no stored document. For get, pull, and delete this is
	// an expected outcome, not a system failure.
	ErrDocumentNotFound = errors.New("sync document was not found")

	// ErrVersionConflict is returned when an optimistic-locking check
	// fails: the version supplied by the client is behind the version
	// stored in the database, meaning another device pushed first. The
	// accompanying document value carries the current server state so the
	// client can rebase.
	ErrVersionConflict = errors.New("sync document version conflict occurred")

	// ErrVersionAhead is returned when the client claims a version ahead
	// of the server's. A client cannot legitimately know a version the
	// server never issued; this signals a client bug.
	ErrVersionAhead = errors.New("client version is ahead of server version")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain
// logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised
	// SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan sync document row")
)
