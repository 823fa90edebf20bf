// Package apperror holds the error kinds shared by the store and the use cases.
// Callers match them with errors.Is; producers wrap them with fmt.Errorf("%w: ...").
package apperror

import "errors"

var (
	// ErrNotFound means a lookup by id or username missed. Not fatal.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned before any mutation happens.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConflict reports a uniqueness violation such as a taken username.
	ErrConflict = errors.New("already exists")
	// ErrForbidden reports an operation the user's role may not perform.
	ErrForbidden = errors.New("forbidden")
	// ErrInsufficientFunds leaves the cart and the balance untouched.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrPersistence wraps read/write failures of a backing document.
	ErrPersistence = errors.New("persistence failure")
	// ErrImportFormat aborts an import before anything is merged.
	ErrImportFormat = errors.New("malformed import document")
)
