package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	kp := GenerateKeyPair(nil)
	m := ScalarFromUint64(42)
	M := Suite().Point().Mul(m, nil)

	ct := Encrypt(kp.PublicKey, M, nil)
	got := Decrypt(kp.SecretKey, ct)

	require.True(t, M.Equal(got))
}

func TestZeroCiphertextIsAdditiveIdentity(t *testing.T) {
	kp := GenerateKeyPair(nil)
	M := Suite().Point().Mul(ScalarFromUint64(7), nil)
	ct := Encrypt(kp.PublicKey, M, nil)

	sum, err := ct.Add(Zero(kp.PublicKey))
	require.NoError(t, err)

	got := Decrypt(kp.SecretKey, sum)
	require.True(t, M.Equal(got))
}

func TestAddHomomorphism(t *testing.T) {
	kp := GenerateKeyPair(nil)
	m1 := ScalarFromUint64(3)
	m2 := ScalarFromUint64(5)
	M1 := Suite().Point().Mul(m1, nil)
	M2 := Suite().Point().Mul(m2, nil)

	c1 := Encrypt(kp.PublicKey, M1, nil)
	c2 := Encrypt(kp.PublicKey, M2, nil)

	sum, err := c1.Add(c2)
	require.NoError(t, err)

	got := Decrypt(kp.SecretKey, sum)
	want := Suite().Point().Mul(ScalarFromUint64(8), nil)
	require.True(t, want.Equal(got))
}

func TestMulScalesPlaintext(t *testing.T) {
	kp := GenerateKeyPair(nil)
	m := ScalarFromUint64(4)
	M := Suite().Point().Mul(m, nil)
	ct := Encrypt(kp.PublicKey, M, nil)

	scaled := ct.Mul(ScalarFromUint64(10))
	got := Decrypt(kp.SecretKey, scaled)
	want := Suite().Point().Mul(ScalarFromUint64(40), nil)
	require.True(t, want.Equal(got))
}

func TestAddRejectsMismatchedPublicKeys(t *testing.T) {
	kp1 := GenerateKeyPair(nil)
	kp2 := GenerateKeyPair(nil)
	M := Generator()

	c1 := Encrypt(kp1.PublicKey, M, nil)
	c2 := Encrypt(kp2.PublicKey, M, nil)

	_, err := c1.Add(c2)
	require.ErrorIs(t, err, ErrMismatchedPublicKey)
}

func TestCiphertextMarshalRoundTrip(t *testing.T) {
	kp := GenerateKeyPair(nil)
	ct := Encrypt(kp.PublicKey, Generator(), nil)

	buf, err := ct.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, buf, 2*Suite().PointLen())

	decoded, err := DecodeCiphertext(kp.PublicKey, buf)
	require.NoError(t, err)
	require.True(t, ct.Equal(decoded))
}

func TestPointAndScalarEncodeRoundTrip(t *testing.T) {
	kp := GenerateKeyPair(nil)

	ps, err := EncodePoint(kp.PublicKey)
	require.NoError(t, err)
	p, err := DecodePoint(ps)
	require.NoError(t, err)
	require.True(t, kp.PublicKey.Equal(p))

	ss, err := EncodeScalar(kp.SecretKey)
	require.NoError(t, err)
	s, err := DecodeScalar(ss)
	require.NoError(t, err)
	require.True(t, kp.SecretKey.Equal(s))
}

func TestScalarFromUint64Matches(t *testing.T) {
	a := ScalarFromUint64(100)
	b := ScalarZero()
	one := ScalarOne()
	for i := 0; i < 100; i++ {
		b = Suite().Scalar().Add(b, one)
	}
	require.True(t, a.Equal(b))
}
