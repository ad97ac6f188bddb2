package crypto

import (
	"crypto/cipher"
	"errors"

	kyber "go.dedis.ch/kyber/v3"
)

// ErrMismatchedPublicKey is returned by Ciphertext.Add when the two operands
// were encrypted under different public keys: ciphertext addition is only
// defined within a single ElGamal public key.
var ErrMismatchedPublicKey = errors.New("crypto: ciphertexts carry different public keys")

// Ciphertext is an ElGamal ciphertext (A, B) under PK: A = r*G, B = M +
// r*PK for plaintext point M and randomness r. Ciphertext addition and
// scalar multiplication are defined component-wise and preserve the
// additive homomorphism over plaintexts, grounded on
// original_source/sinkhole-core/src/elgamal/mod.rs and ecies.go's
// Encrypt/Decrypt shape.
type Ciphertext struct {
	A, B kyber.Point
	PK   kyber.Point
}

// Zero returns the additive identity ciphertext under pk: (O, O). It is the
// identity element for Add and the seed every accumulator in the storage
// engine starts from.
func Zero(pk kyber.Point) Ciphertext {
	return Ciphertext{A: PointIdentity(), B: PointIdentity(), PK: pk}
}

// Encrypt returns Enc_pk(m) = (r*G, m + r*pk) for a fresh random scalar r
// drawn from rand (DefaultRandomStream() if nil). Every call must use
// independent randomness: reusing r across encryptions under the same pk
// breaks ciphertext indistinguishability.
func Encrypt(pk kyber.Point, m kyber.Point, rand cipher.Stream) Ciphertext {
	if rand == nil {
		rand = DefaultRandomStream()
	}
	r := suite.Scalar().Pick(rand)
	a := suite.Point().Mul(r, nil)
	rpk := suite.Point().Mul(r, pk)
	b := suite.Point().Add(m, rpk)
	return Ciphertext{A: a, B: b, PK: pk}
}

// Decrypt returns Dec_sk((A,B)) = B - sk*A, the plaintext point.
func Decrypt(sk kyber.Scalar, c Ciphertext) kyber.Point {
	skA := suite.Point().Mul(sk, c.A)
	return suite.Point().Sub(c.B, skA)
}

// Add returns the component-wise sum of c and o, which encrypts the sum of
// their plaintexts. c and o must carry the same public key.
func (c Ciphertext) Add(o Ciphertext) (Ciphertext, error) {
	if !c.PK.Equal(o.PK) {
		return Ciphertext{}, ErrMismatchedPublicKey
	}
	return Ciphertext{
		A:  suite.Point().Add(c.A, o.A),
		B:  suite.Point().Add(c.B, o.B),
		PK: c.PK,
	}, nil
}

// Mul returns c scaled by s component-wise, encrypting s*m*G for c's
// plaintext m.
func (c Ciphertext) Mul(s kyber.Scalar) Ciphertext {
	return Ciphertext{
		A:  suite.Point().Mul(s, c.A),
		B:  suite.Point().Mul(s, c.B),
		PK: c.PK,
	}
}

// Equal reports whether c and o carry the same public key and components.
func (c Ciphertext) Equal(o Ciphertext) bool {
	return c.PK.Equal(o.PK) && c.A.Equal(o.A) && c.B.Equal(o.B)
}

// MarshalBinary encodes c as the wire format spec.md §6 describes: two
// 32-byte compressed points, A∥B. The public key is not part of the wire
// encoding — a receiver must already know which key a ciphertext is under.
func (c Ciphertext) MarshalBinary() ([]byte, error) {
	ab, err := c.A.MarshalBinary()
	if err != nil {
		return nil, err
	}
	bb, err := c.B.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return append(ab, bb...), nil
}

// DecodeCiphertext decodes the wire format produced by MarshalBinary,
// attaching pk to the resulting Ciphertext since the public key travels out
// of band.
func DecodeCiphertext(pk kyber.Point, data []byte) (Ciphertext, error) {
	n := suite.PointLen()
	if len(data) != 2*n {
		return Ciphertext{}, errors.New("crypto: invalid ciphertext encoding length")
	}
	a := suite.Point()
	if err := a.UnmarshalBinary(data[:n]); err != nil {
		return Ciphertext{}, err
	}
	b := suite.Point()
	if err := b.UnmarshalBinary(data[n:]); err != nil {
		return Ciphertext{}, err
	}
	return Ciphertext{A: a, B: b, PK: pk}, nil
}
