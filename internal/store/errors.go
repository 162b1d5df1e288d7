package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same login already exists in the database.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrCategoryNotFound is returned when no category has the requested value.
	ErrCategoryNotFound = errors.New("category was not found")

	// ErrCategoryAlreadyExists is returned when a category value is taken.
	ErrCategoryAlreadyExists = errors.New("category already exists")

	// ErrCategoryInUse is returned when categories cannot be removed because
	// tags still reference them.
	ErrCategoryInUse = errors.New("category is referenced by existing tags")

	// ErrDocumentNotFound is returned when a document id does not exist.
	ErrDocumentNotFound = errors.New("document was not found")

	// ErrTagNotFound is returned when a tag id does not exist.
	ErrTagNotFound = errors.New("tag was not found")

	// ErrDuplicatePosition is returned when a tag with the same start and end
	// offsets already exists in the document.
	ErrDuplicatePosition = errors.New("a tag already exists at this position")

	// ErrInvalidTag is returned when a tag violates the offset check or
	// references a missing document or category.
	ErrInvalidTag = errors.New("tag violates offset constraints")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
