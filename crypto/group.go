// Package crypto is the thin, typed façade over the group library used by
// the rest of sinkhole: scalar/point constants, ElGamal ciphertexts with
// additive homomorphism, key generation, encryption and decryption. Only
// this package imports the underlying group library directly; everything
// else in the repo is algebraic over the types exported here.
package crypto

import (
	"crypto/cipher"

	kyber "go.dedis.ch/kyber/v3"
	"go.dedis.ch/kyber/v3/group/edwards25519"
	"go.dedis.ch/kyber/v3/util/random"
)

// suite is the package-wide group handle, mirroring drand's key.G1/key.G2
// package-level group vars. It is a safe, prime-order, canonically-encoded
// Edwards-curve group — the same algebraic contract this spec requires of
// Ristretto; see DESIGN.md for the substitution rationale.
var suite = edwards25519.NewBlakeSHA256Ed25519()

// Suite returns the group all sinkhole scalars and points belong to.
func Suite() kyber.Group {
	return suite
}

// DefaultRandomStream returns a cryptographically secure random stream
// suitable for key generation, scalar sampling and encryption randomness.
func DefaultRandomStream() cipher.Stream {
	return random.New()
}

// ScalarZero returns the additive identity of the scalar field.
func ScalarZero() kyber.Scalar {
	return suite.Scalar().Zero()
}

// ScalarOne returns the multiplicative identity of the scalar field.
func ScalarOne() kyber.Scalar {
	return suite.Scalar().One()
}

// ScalarFromUint64 returns the scalar field element corresponding to u.
func ScalarFromUint64(u uint64) kyber.Scalar {
	buf := make([]byte, 8)
	for i := 0; i < 8; i++ {
		buf[i] = byte(u >> (8 * i))
	}
	return suite.Scalar().SetBytes(buf)
}

// ScalarRandom returns a uniformly random scalar drawn from rand. rand must
// be a cryptographically secure stream; pass DefaultRandomStream() absent a
// specific reason to use another source.
func ScalarRandom(rand cipher.Stream) kyber.Scalar {
	return suite.Scalar().Pick(rand)
}

// Generator returns the group's fixed base point G.
func Generator() kyber.Point {
	return suite.Point().Base()
}

// PointIdentity returns the group's neutral element O.
func PointIdentity() kyber.Point {
	return suite.Point().Null()
}
