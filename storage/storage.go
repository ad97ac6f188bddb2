// Package storage implements the server side of the PIR protocol: holding
// the scalar database and answering a retrieval request by computing the
// homomorphic inner product of the query ciphertext vector with the
// plaintext database, sequentially or sharded across workers.
package storage

import (
	"context"
	"fmt"
	"time"

	kyber "go.dedis.ch/kyber/v3"

	"github.com/hashmatter/sinkhole/config"
	"github.com/hashmatter/sinkhole/crypto"
	sherrors "github.com/hashmatter/sinkhole/errors"
	"github.com/hashmatter/sinkhole/log"
	"github.com/hashmatter/sinkhole/metrics"
)

// Storage holds the server's database and answers retrieval requests
// against it. add requires exclusive access and retrieve requires only
// shared access: callers wanting single-writer/multi-reader discipline
// should gate calls through their own sync.RWMutex, since this type does
// not serialize its own callers (spec.md §5 makes the caller responsible
// for excluding concurrent mutation during a retrieval).
type Storage struct {
	// ServerSecretKey is retained for API stability and potential future
	// extensions; it is never read by Retrieve (spec.md §9: the protocol is
	// keyed entirely by the client's keys).
	ServerSecretKey kyber.Scalar

	size   int
	db     []kyber.Scalar
	logger log.Logger
}

// New takes ownership of db and returns a Storage of size len(db).
func New(sk kyber.Scalar, db []kyber.Scalar, logger log.Logger) *Storage {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Storage{
		ServerSecretKey: sk,
		size:            len(db),
		db:              db,
		logger:          logger,
	}
}

// NewEmpty returns a Storage of size n populated with n freshly sampled
// random scalars. (The Rust source this is distilled from allocates n-1
// entries here — a bug; this implementation allocates exactly n per
// spec.md §9's resolution.)
func NewEmpty(sk kyber.Scalar, n int, logger log.Logger) *Storage {
	db := make([]kyber.Scalar, n)
	rand := crypto.DefaultRandomStream()
	for i := range db {
		db[i] = crypto.ScalarRandom(rand)
	}
	return New(sk, db, logger)
}

// Size returns the number of entries in the database.
func (s *Storage) Size() int {
	return s.size
}

// Add overwrites entry j with scalar. There is no collision policy beyond
// overwrite, matching the source's behavior.
func (s *Storage) Add(scalar kyber.Scalar, j int) error {
	if j < 0 || j >= s.size {
		return sherrors.NewStorageError(sherrors.StorageIndexOutOfRange,
			fmt.Errorf("index %d out of range for size %d: %w", j, s.size, sherrors.ErrIndexOutOfRange))
	}
	s.db[j] = scalar
	return nil
}

// Retrieve computes the homomorphic inner product of queryCiphertexts with
// the database: C = sum_j queryCiphertexts[j] * db[j]. The worker count is
// resolved from config.NumParallelTasks() (the N_PARALLEL_TASKS env var, or
// the number of CPU cores). ctx is checked once before the retrieval begins
// (an already-cancelled or expired context is rejected up front) but is not
// threaded into the workers: a retrieval cannot be cancelled mid-flight
// (spec.md §5), since a partial homomorphic sum is not a meaningful partial
// result.
func (s *Storage) Retrieve(ctx context.Context, queryCiphertexts []crypto.Ciphertext) (crypto.Ciphertext, error) {
	return s.RetrieveWithParallelism(ctx, queryCiphertexts, config.NumParallelTasks())
}

// RetrieveWithParallelism is Retrieve with an explicit worker count,
// exposed so callers (and tests) can exercise a specific partitioning
// without mutating the environment.
func (s *Storage) RetrieveWithParallelism(ctx context.Context, queryCiphertexts []crypto.Ciphertext, parallelism int) (crypto.Ciphertext, error) {
	if err := ctx.Err(); err != nil {
		s.logger.Errorw("retrieve rejected, context already done", "err", err)
		return crypto.Ciphertext{}, err
	}
	if len(queryCiphertexts) != s.size {
		return crypto.Ciphertext{}, sherrors.NewStorageError(sherrors.StorageSizeMismatch,
			fmt.Errorf("query vector size %d does not match storage size %d: %w", len(queryCiphertexts), s.size, sherrors.ErrSizeMismatch))
	}
	if s.size == 0 {
		return crypto.Ciphertext{}, nil
	}

	start := time.Now()
	var result crypto.Ciphertext
	var err error
	if parallelism <= 1 {
		result, err = retrieveSequential(queryCiphertexts, s.db)
	} else {
		result, err = retrieveParallel(queryCiphertexts, s.db, parallelism)
	}
	duration := time.Since(start)

	label := fmt.Sprintf("%d", parallelism)
	metrics.RetrieveDuration.WithLabelValues(label).Observe(duration.Seconds())
	if err != nil {
		metrics.RetrieveTotal.WithLabelValues("error").Inc()
		s.logger.Errorw("retrieve failed", "size", s.size, "parallelism", parallelism, "err", err)
		return crypto.Ciphertext{}, err
	}
	metrics.RetrieveTotal.WithLabelValues("ok").Inc()
	s.logger.Debugw("retrieve completed", "size", s.size, "parallelism", parallelism, "duration", duration)
	return result, nil
}

// retrieveSequential is the reference semantics: a single accumulator
// seeded at the identity ciphertext, folded over [0, N) once.
func retrieveSequential(q []crypto.Ciphertext, db []kyber.Scalar) (crypto.Ciphertext, error) {
	acc := crypto.Zero(q[0].PK)
	for j := range db {
		term := q[j].Mul(db[j])
		var err error
		acc, err = acc.Add(term)
		if err != nil {
			return crypto.Ciphertext{}, err
		}
	}
	return acc, nil
}
