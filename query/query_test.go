package query

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hashmatter/sinkhole/crypto"
	sherrors "github.com/hashmatter/sinkhole/errors"
)

func TestBuildProducesExactLengthWithOneHotSelector(t *testing.T) {
	kp := crypto.GenerateKeyPair(nil)
	const n = 8
	const i = 3

	q, err := Build(kp.SecretKey, n, i, nil)
	require.NoError(t, err)
	require.Len(t, q.Encrypted, n)

	for j, ct := range q.Encrypted {
		p := crypto.Decrypt(kp.SecretKey, ct)
		if j == i {
			require.True(t, p.Equal(crypto.Generator()), "position %d should decrypt to G", j)
		} else {
			require.True(t, p.Equal(crypto.PointIdentity()), "position %d should decrypt to identity", j)
		}
	}
}

func TestBuildNoCiphertextReuseAcrossPositions(t *testing.T) {
	kp := crypto.GenerateKeyPair(nil)
	q, err := Build(kp.SecretKey, 4, 1, nil)
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, ct := range q.Encrypted {
		buf, err := ct.MarshalBinary()
		require.NoError(t, err)
		key := string(buf)
		require.False(t, seen[key], "ciphertext reused across positions")
		seen[key] = true
	}
}

func TestBuildRejectsIndexOutOfRange(t *testing.T) {
	kp := crypto.GenerateKeyPair(nil)

	_, err := Build(kp.SecretKey, 4, 4, nil)
	require.Error(t, err)

	var qerr *sherrors.QueryError
	require.ErrorAs(t, err, &qerr)
	require.Equal(t, sherrors.QueryIndexOutOfRange, qerr.Kind)
	require.True(t, stderrors.Is(err, sherrors.ErrIndexOutOfRange),
		"Build's real error must chain to the sentinel, not just a constructed one")
}

func TestExtractResultRoundTrip(t *testing.T) {
	kp := crypto.GenerateKeyPair(nil)
	q, err := Build(kp.SecretKey, 2, 0, nil)
	require.NoError(t, err)

	// Directly encrypt a known plaintext as if it were the server's answer.
	want := crypto.ScalarFromUint64(1048575)
	M := crypto.Suite().Point().Mul(want, nil)
	ct := crypto.Encrypt(kp.PublicKey, M, nil)

	got, err := q.ExtractResult(ct, 20)
	require.NoError(t, err)
	require.True(t, want.Equal(got))
}

func TestExtractResultFailsWhenOutOfRange(t *testing.T) {
	kp := crypto.GenerateKeyPair(nil)
	q, err := Build(kp.SecretKey, 2, 0, nil)
	require.NoError(t, err)

	tooBig := crypto.ScalarFromUint64(1 << 16)
	M := crypto.Suite().Point().Mul(tooBig, nil)
	ct := crypto.Encrypt(kp.PublicKey, M, nil)

	_, err = q.ExtractResult(ct, 8)
	require.Error(t, err)

	var qerr *sherrors.QueryError
	require.ErrorAs(t, err, &qerr)
	require.Equal(t, sherrors.QueryOutOfRange, qerr.Kind)
	require.True(t, stderrors.Is(err, sherrors.ErrOutOfRange),
		"ExtractResult's real error must chain to the sentinel, not just a constructed one")
}
