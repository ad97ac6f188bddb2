// Package query implements the client side of the PIR protocol: building
// the encrypted one-hot selector vector and decoding the server's answer
// back into a bounded scalar.
package query

import (
	"fmt"
	"time"

	kyber "go.dedis.ch/kyber/v3"

	"github.com/hashmatter/sinkhole/crypto"
	sherrors "github.com/hashmatter/sinkhole/errors"
	"github.com/hashmatter/sinkhole/log"
	"github.com/hashmatter/sinkhole/metrics"
)

// Query is an immutable client-side record: the selector's length, the
// secret key needed later to decrypt the server's answer, and the
// ciphertext vector itself. The selected index is never stored in
// cleartext inside a Query once built.
type Query struct {
	Encrypted []crypto.Ciphertext
	secretKey kyber.Scalar
	size      int
}

// Size returns the length of the encrypted selector vector.
func (q *Query) Size() int {
	return q.size
}

// Build constructs the length-n ciphertext vector encrypting the one-hot
// selector e_i: position i encrypts G, every other position encrypts the
// group identity O, each under an independently sampled randomness so
// positions are computationally indistinguishable from one another.
//
// logger may be nil, in which case log.DefaultLogger() is used.
func Build(sk kyber.Scalar, n, i int, logger log.Logger) (*Query, error) {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	if i < 0 || i >= n {
		return nil, sherrors.NewQueryError(sherrors.QueryIndexOutOfRange,
			fmt.Errorf("index %d out of range for size %d: %w", i, n, sherrors.ErrIndexOutOfRange))
	}

	start := time.Now()
	pk := crypto.Suite().Point().Mul(sk, nil)

	encrypted := make([]crypto.Ciphertext, n)
	for j := 0; j < n; j++ {
		m := crypto.PointIdentity()
		if j == i {
			m = crypto.Generator()
		}
		encrypted[j] = crypto.Encrypt(pk, m, nil)
	}

	elapsed := time.Since(start)
	metrics.QueryBuildDuration.Observe(elapsed.Seconds())
	logger.Debugw("query built", "size", n, "duration", elapsed)

	return &Query{
		Encrypted: encrypted,
		secretKey: sk,
		size:      n,
	}, nil
}

// ExtractResult decrypts the server's answer ciphertext and exhaustively
// searches {0, 1, ..., 2^k-1} for the scalar m with m*G equal to the
// decrypted point, halting on the first match. k must be chosen larger
// than the bit-width of any value the caller expects to recover.
func (q *Query) ExtractResult(c crypto.Ciphertext, k uint32) (kyber.Scalar, error) {
	point := crypto.Decrypt(q.secretKey, c)

	limit := uint64(1) << k
	acc := crypto.ScalarZero()
	accPoint := crypto.Suite().Point().Mul(acc, nil)

	for m := uint64(0); m < limit; m++ {
		if accPoint.Equal(point) {
			return acc, nil
		}
		acc = crypto.Suite().Scalar().Add(acc, crypto.ScalarOne())
		accPoint = crypto.Suite().Point().Add(accPoint, crypto.Generator())
	}

	return nil, sherrors.NewQueryError(sherrors.QueryOutOfRange,
		fmt.Errorf("scalar not found within [0, 2^%d) range: %w", k, sherrors.ErrOutOfRange))
}
