package crypto

import (
	"crypto/cipher"

	kyber "go.dedis.ch/kyber/v3"
)

// KeyPair bundles an ElGamal secret key with its corresponding public key,
// pk = sk*G. Secret keys are never persisted by this package; callers own
// their lifetime, matching spec.md's "secret keys live in the enclosing
// component" invariant.
type KeyPair struct {
	SecretKey kyber.Scalar
	PublicKey kyber.Point
}

// GenerateKeyPair draws a fresh secret key from rand (DefaultRandomStream()
// if nil) and derives the matching public key, grounded on drand's
// key.NewKeyPair (G.Scalar().Pick(random.New()), G.Point().Mul(key, nil)).
func GenerateKeyPair(rand cipher.Stream) *KeyPair {
	if rand == nil {
		rand = DefaultRandomStream()
	}
	sk := suite.Scalar().Pick(rand)
	pk := suite.Point().Mul(sk, nil)
	return &KeyPair{SecretKey: sk, PublicKey: pk}
}
