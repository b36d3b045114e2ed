package archive

import (
	"errors"
	"fmt"
)

// QueryError indicates the search query was rejected by the archive
// (malformed search syntax). Fatal: there is nothing to retry.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("bad search query %q: %v", e.Query, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// NetworkError indicates a transient transport or server failure.
// Recoverable per item or per file; fatal when it hits the initial
// search listing itself.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NotFoundError indicates an item identifier that no longer resolves.
// The item is skipped and the run continues.
type NotFoundError struct {
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("item not found: %s", e.Identifier)
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsNetwork reports whether err wraps a NetworkError.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
