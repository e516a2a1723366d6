// Copyright 2026 The p256-voi Authors.  All Rights Reserved.
//
// p256-voi can be used in projects of any kind.  Redistribution and use
// in source and binary forms, with or without modification, are
// permitted provided that this notice is retained.

package secec

import (
	"errors"

	"gitlab.com/p256-voi/p256-voi"
	"gitlab.com/p256-voi/p256-voi/internal/disalloweq"
)

// SignatureSize is the size of a raw `r | s` signature in bytes.
const SignatureSize = 2 * p256.ScalarSize

var errInvalidRorS = errors.New("p256/secec: r or s out of range")

// Signature is an ECDSA signature `(r, s)`.
type Signature struct {
	_ disalloweq.DisallowEqual

	r, s *p256.Scalar // INVARIANT: Always [1,n)
}

// R returns a copy of the scalar `r`.
func (sig *Signature) R() *p256.Scalar {
	return p256.NewScalarFrom(sig.r)
}

// S returns a copy of the scalar `s`.
func (sig *Signature) S() *p256.Scalar {
	return p256.NewScalarFrom(sig.s)
}

// Bytes returns the raw `r | s` encoding of the signature, with each
// scalar as a 32-byte big-endian integer.
func (sig *Signature) Bytes() []byte {
	var dst [SignatureSize]byte
	copy(dst[:p256.ScalarSize], sig.r.Bytes())
	copy(dst[p256.ScalarSize:], sig.s.Bytes())
	return dst[:]
}

// ASN1Bytes returns the ASN.1 `ECDSA-Sig-Value` encoding of the
// signature, as specified in SEC 1, Version 2.0, Appendix C.8.
func (sig *Signature) ASN1Bytes() []byte {
	return buildASN1Signature(sig.r, sig.s)
}

// IsLowS returns true iff `s <= n / 2`.  Both `(r, s)` and `(r, n - s)`
// verify, and this package accepts either.
func (sig *Signature) IsLowS() bool {
	return sig.s.IsGreaterThanHalfN() == 0
}

// LowS returns a copy of the signature with `s` replaced by `n - s`
// iff `s > n / 2`.
func (sig *Signature) LowS() *Signature {
	return &Signature{
		r: p256.NewScalarFrom(sig.r),
		s: p256.NewScalar().ConditionalNegate(sig.s, sig.s.IsGreaterThanHalfN()),
	}
}

func (sig *Signature) isValid() bool {
	return sig != nil && sig.r != nil && sig.s != nil
}

// NewSignature checks that `sig` is a valid raw `r | s` signature,
// and returns a Signature.  Both `r` and `s` MUST be in `[1, n)`.
func NewSignature(sig []byte) (*Signature, error) {
	if len(sig) != SignatureSize {
		return nil, errors.New("p256/secec: invalid signature size")
	}

	return newSignatureFromRaw((*[SignatureSize]byte)(sig))
}

// ParseASN1Signature parses an ASN.1 `ECDSA-Sig-Value` encoded
// signature, and returns a Signature.
//
// Note: The signature MUST be `SEQUENCE { r INTEGER, s INTEGER }`,
// WITHOUT the optional `a` and `y` fields.
func ParseASN1Signature(data []byte) (*Signature, error) {
	rBytes, sBytes, err := parseASN1Signature(data)
	if err != nil {
		return nil, err
	}

	return newSignatureFromScalarBytes(rBytes, sBytes)
}

func newSignatureFromRaw(sig *[SignatureSize]byte) (*Signature, error) {
	if sig == nil {
		return nil, errMissingArgument
	}

	return newSignatureFromScalarBytes(sig[:p256.ScalarSize], sig[p256.ScalarSize:])
}

func newSignatureFromScalarBytes(rBytes, sBytes []byte) (*Signature, error) {
	// SEC 1, Version 2.0, Section 4.1.4:
	//
	// 1. If r and s are not both integers in the interval [1, n − 1],
	// output “invalid” and stop.

	r, err := bytesToCanonicalScalar(rBytes)
	if err != nil || r.IsZero() != 0 {
		return nil, errInvalidRorS
	}
	s, err := bytesToCanonicalScalar(sBytes)
	if err != nil || s.IsZero() != 0 {
		return nil, errInvalidRorS
	}

	return &Signature{
		r: r,
		s: s,
	}, nil
}

func bytesToCanonicalScalar(sBytes []byte) (*p256.Scalar, error) {
	var (
		tmp    [p256.ScalarSize]byte
		sLen   = len(sBytes)
		offset = 0
	)
	if sLen > p256.ScalarSize || sLen == 0 {
		return nil, errInvalidScalar
	}
	if sLen < p256.ScalarSize {
		offset = p256.ScalarSize - sLen
	}
	copy(tmp[offset:], sBytes)

	s, err := p256.NewScalarFromCanonicalBytes(&tmp)
	if err != nil {
		return nil, errInvalidScalar
	}

	return s, nil
}
