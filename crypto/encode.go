package crypto

import (
	"encoding/hex"

	kyber "go.dedis.ch/kyber/v3"
)

// EncodePoint hex-encodes a point's canonical binary form. Neither the
// demo CLI nor the retrieval hot path calls it; the hot path stays in
// binary kyber types throughout.
func EncodePoint(p kyber.Point) (string, error) {
	buf, err := p.MarshalBinary()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// DecodePoint parses a point previously produced by EncodePoint.
func DecodePoint(s string) (kyber.Point, error) {
	buf, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	p := suite.Point()
	if err := p.UnmarshalBinary(buf); err != nil {
		return nil, err
	}
	return p, nil
}

// EncodeScalar hex-encodes a scalar's canonical binary form.
func EncodeScalar(s kyber.Scalar) (string, error) {
	buf, err := s.MarshalBinary()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// DecodeScalar parses a scalar previously produced by EncodeScalar.
func DecodeScalar(s string) (kyber.Scalar, error) {
	buf, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	sc := suite.Scalar()
	if err := sc.UnmarshalBinary(buf); err != nil {
		return nil, err
	}
	return sc, nil
}
