package storage

import (
	"fmt"
	"sync"

	kyber "go.dedis.ch/kyber/v3"

	"github.com/hashmatter/sinkhole/crypto"
	sherrors "github.com/hashmatter/sinkhole/errors"
)

// segment is a contiguous half-open range [start, end) of the database
// assigned to one worker.
type segment struct {
	start, end int
}

// partition splits [0, n) into p contiguous segments. The last segment
// absorbs n mod p trailing indices instead of dropping them: the Rust
// source this is distilled from builds exactly p segments of n/p each and
// silently discards the remainder when p does not divide n, which loses
// entries from the inner product. Fixed here per spec.md §9.
func partition(n, p int) []segment {
	if p > n {
		p = n
	}
	if p < 1 {
		p = 1
	}
	base := n / p
	segments := make([]segment, p)
	start := 0
	for i := 0; i < p; i++ {
		end := start + base
		if i == p-1 {
			end = n
		}
		segments[i] = segment{start: start, end: end}
		start = end
	}
	return segments
}

// retrieveParallel partitions [0, N) across p workers, each folding its own
// independent accumulator over its segment (grounded on dkg/network.go's
// goroutine-per-item plus sync.WaitGroup plus indexed-error-slot pattern),
// then reduces the p partial sums sequentially.
func retrieveParallel(q []crypto.Ciphertext, db []kyber.Scalar, p int) (crypto.Ciphertext, error) {
	segments := partition(len(db), p)

	partials := make([]crypto.Ciphertext, len(segments))
	errs := make([]error, len(segments))

	var wg sync.WaitGroup
	for i, seg := range segments {
		wg.Add(1)
		go func(i int, seg segment) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					errs[i] = sherrors.NewStorageError(sherrors.StorageInternal,
						fmt.Errorf("worker for segment [%d, %d) panicked: %v", seg.start, seg.end, r))
				}
			}()
			partials[i] = accumulateSegment(q, db, seg)
		}(i, seg)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return crypto.Ciphertext{}, err
		}
	}

	acc := crypto.Zero(q[0].PK)
	for _, partial := range partials {
		var err error
		acc, err = acc.Add(partial)
		if err != nil {
			return crypto.Ciphertext{}, err
		}
	}
	return acc, nil
}

// accumulateSegment folds q[j]*db[j] over [seg.start, seg.end) into a
// single ciphertext, seeded at the identity so an empty segment contributes
// nothing to the final reduction.
func accumulateSegment(q []crypto.Ciphertext, db []kyber.Scalar, seg segment) crypto.Ciphertext {
	acc := crypto.Zero(q[0].PK)
	for j := seg.start; j < seg.end; j++ {
		term := q[j].Mul(db[j])
		var err error
		acc, err = acc.Add(term)
		if err != nil {
			panic(err)
		}
	}
	return acc
}
