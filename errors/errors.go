// Package errors defines the typed error taxonomy surfaced by the query
// builder and storage engine: a stable set of sentinel causes plus a Kind
// so callers can dispatch on failure type instead of parsing strings.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Sentinel causes. Use errors.Is(err, errors.ErrIndexOutOfRange) etc. to
// test for a specific cause regardless of which taxonomy wrapped it.
var (
	// ErrIndexOutOfRange is returned when a requested index is not within
	// the bounds of a query or a storage vector.
	ErrIndexOutOfRange = stderrors.New("index out of range")
	// ErrOutOfRange is returned when the brute-force discrete-log search
	// exhausts [0, 2^k) without finding the plaintext scalar.
	ErrOutOfRange = stderrors.New("scalar not in [0, 2^k) range")
	// ErrSizeMismatch is returned when a query ciphertext vector's length
	// does not equal the size of the storage it is run against.
	ErrSizeMismatch = stderrors.New("query vector size does not match storage size")
)

// QueryKind enumerates the failure modes of the query builder and decoder.
type QueryKind int

const (
	// QueryIndexOutOfRange is returned by Build when i >= N.
	QueryIndexOutOfRange QueryKind = iota
	// QueryOutOfRange is returned by ExtractResult when no m in [0, 2^k)
	// decrypts to the answer point.
	QueryOutOfRange
)

func (k QueryKind) String() string {
	switch k {
	case QueryIndexOutOfRange:
		return "IndexOutOfRange"
	case QueryOutOfRange:
		return "OutOfRange"
	default:
		return "Unknown"
	}
}

// QueryError is returned by the query package. It wraps a sentinel cause so
// errors.Is still works, and carries a Kind for switch-based dispatch.
type QueryError struct {
	Kind QueryKind
	Err  error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query: %s: %s", e.Kind, e.Err)
}

// Unwrap allows errors.Is/errors.As to see through to the sentinel cause.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// NewQueryError builds a QueryError of the given kind wrapping cause.
func NewQueryError(kind QueryKind, cause error) *QueryError {
	return &QueryError{Kind: kind, Err: cause}
}

// StorageKind enumerates the failure modes of the storage engine.
type StorageKind int

const (
	// StorageSizeMismatch is returned by Retrieve when the query vector's
	// length does not equal the storage size.
	StorageSizeMismatch StorageKind = iota
	// StorageIndexOutOfRange is returned by Add when j >= N.
	StorageIndexOutOfRange
	// StorageInternal is returned by Retrieve when a parallel worker
	// panicked. A compromised partial sum yields a mathematically invalid
	// answer, so no partial-result recovery is attempted: the whole
	// retrieve fails synchronously instead.
	StorageInternal
)

func (k StorageKind) String() string {
	switch k {
	case StorageSizeMismatch:
		return "SizeMismatch"
	case StorageIndexOutOfRange:
		return "IndexOutOfRange"
	case StorageInternal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// StorageError is returned by the storage package, with the same
// wrap-and-dispatch shape as QueryError.
type StorageError struct {
	Kind StorageKind
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %s", e.Kind, e.Err)
}

// Unwrap allows errors.Is/errors.As to see through to the sentinel cause.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError builds a StorageError of the given kind wrapping cause.
func NewStorageError(kind StorageKind, cause error) *StorageError {
	return &StorageError{Kind: kind, Err: cause}
}
