package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQueryErrorUnwrapsToSentinel(t *testing.T) {
	err := NewQueryError(QueryIndexOutOfRange, ErrIndexOutOfRange)
	require.True(t, stderrors.Is(err, ErrIndexOutOfRange))

	var qerr *QueryError
	require.True(t, stderrors.As(err, &qerr))
	require.Equal(t, QueryIndexOutOfRange, qerr.Kind)
}

func TestStorageErrorUnwrapsToSentinel(t *testing.T) {
	err := NewStorageError(StorageSizeMismatch, ErrSizeMismatch)
	require.True(t, stderrors.Is(err, ErrSizeMismatch))

	var serr *StorageError
	require.True(t, stderrors.As(err, &serr))
	require.Equal(t, StorageSizeMismatch, serr.Kind)
}

func TestKindStringsAreStable(t *testing.T) {
	require.Equal(t, "IndexOutOfRange", QueryIndexOutOfRange.String())
	require.Equal(t, "OutOfRange", QueryOutOfRange.String())
	require.Equal(t, "SizeMismatch", StorageSizeMismatch.String())
	require.Equal(t, "IndexOutOfRange", StorageIndexOutOfRange.String())
	require.Equal(t, "Internal", StorageInternal.String())
}

func TestErrorMessageIncludesKindAndCause(t *testing.T) {
	err := NewQueryError(QueryOutOfRange, ErrOutOfRange)
	require.Contains(t, err.Error(), "OutOfRange")
	require.Contains(t, err.Error(), ErrOutOfRange.Error())
}
