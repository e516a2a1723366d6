// Copyright 2026 The p256-voi Authors.  All Rights Reserved.
//
// p256-voi can be used in projects of any kind.  Redistribution and use
// in source and binary forms, with or without modification, are
// permitted provided that this notice is retained.

package secec

import (
	"errors"
	"fmt"
	"io"

	"gitlab.com/p256-voi/p256-voi"
)

var (
	errInvalidScalar = errors.New("p256/secec/ecdsa: invalid scalar")
	errInvalidDigest = errors.New("p256/secec/ecdsa: invalid digest")
	errRIsInfinity   = errors.New("p256/secec/ecdsa: R is the point at infinity")
	errVNeqR         = errors.New("p256/secec/ecdsa: v does not equal r")
)

// Status is the outcome of a signature verification.
type Status int

const (
	// BadArg is returned when an argument is missing or malformed: a
	// nil key or signature, a key that is not on the curve, or `r` or
	// `s` outside of `[1, n)`.
	BadArg Status = iota

	// Invalid is returned when all of the arguments are well-formed,
	// but the signature does not verify.
	Invalid

	// Valid is returned when the signature verifies.
	Valid
)

// String returns the string representation of a Status.
func (st Status) String() string {
	switch st {
	case BadArg:
		return "BadArg"
	case Invalid:
		return "Invalid"
	case Valid:
		return "Valid"
	default:
		return fmt.Sprintf("Status(%d)", int(st))
	}
}

// VerifyBuffer verifies the raw `r | s` signature `sig` of the message
// `msg`, using the raw `X | Y` public key `pubKey`, using ECDSA with
// SHA-256 as specified in SEC 1, Version 2.0, Section 4.1.4.
//
// A nil or zero-length `msg` is the empty message.  The key is checked
// before the signature, and the first failure is reported.
func VerifyBuffer(msg []byte, pubKey *[PublicKeySize]byte, sig *[SignatureSize]byte) Status {
	if pubKey == nil || sig == nil {
		return BadArg
	}

	k, err := newPublicKeyFromRaw(pubKey)
	if err != nil {
		return BadArg
	}
	signature, err := newSignatureFromRaw(sig)
	if err != nil {
		return BadArg
	}

	return k.VerifyBuffer(msg, signature)
}

// VerifyBuffer verifies the signature `sig` of the message `msg`, using
// the PublicKey `k`.
func (k *PublicKey) VerifyBuffer(msg []byte, sig *Signature) Status {
	if !sig.isValid() {
		return BadArg
	}

	return statusFromError(verify(k, digestMessage(msg), sig))
}

// VerifyDigest verifies the signature `sig` of `hash`, which should be
// the result of hashing a larger message with SHA-256, using the
// PublicKey `k`.  Digests shorter than 128-bits are rejected with
// BadArg.
func (k *PublicKey) VerifyDigest(hash []byte, sig *Signature) Status {
	if !sig.isValid() {
		return BadArg
	}

	return statusFromError(verify(k, hash, sig))
}

// VerifyReader verifies the signature `sig` of the message read from
// `r` until `io.EOF`, using the PublicKey `k`.  If reading from `r`
// fails, VerifyReader returns BadArg and the error.
func (k *PublicKey) VerifyReader(r io.Reader, sig *Signature) (Status, error) {
	if r == nil || !sig.isValid() {
		return BadArg, errMissingArgument
	}

	hash, err := digestReader(r)
	if err != nil {
		return BadArg, err
	}

	return statusFromError(verify(k, hash, sig)), nil
}

// VerifyASN1 verifies the ASN.1 encoded signature `sig` of the message
// `msg`, using the PublicKey `k`.  A malformed encoding is BadArg.
//
// Note: The signature MUST be `SEQUENCE { r INTEGER, s INTEGER }`,
// as in encoded as a `ECDSA-Sig-Value`, WITHOUT the optional `a` and
// `y` fields.
func (k *PublicKey) VerifyASN1(msg, sig []byte) Status {
	signature, err := ParseASN1Signature(sig)
	if err != nil {
		return BadArg
	}

	return k.VerifyBuffer(msg, signature)
}

func verify(q *PublicKey, hBytes []byte, sig *Signature) error {
	if q == nil || q.point == nil {
		return errMissingArgument
	}

	// 1. If r and s are not both integers in the interval [1, n − 1],
	// output “invalid” and stop.

	// Note: `Signature` guarantees this for `r` and `s`.
	r, s := sig.r, sig.s

	// 2. Use the hash function established during the setup procedure
	// to compute the hash value:
	//   H = Hash(M)
	// of length hashlen octets as specified in Section 3.5. If the
	// hash function outputs “invalid”, output “invalid” and stop.

	// Note: H is provided as the input `hBytes`, but at least ensure
	// that it is "sensible".

	if hLen := len(hBytes); hLen < minDigestSize {
		return errInvalidDigest
	}

	// 3. Derive an integer e from H as follows:
	// 3.1. Convert the octet string H to a bit string H using the
	// conversion routine specified in Section 2.3.2.
	// 3.2. Set E = H if ceil(log2(n)) >= 8(hashlen), and set E equal
	// to the leftmost ceil(log2(n)) bits of H if ceil(log2(n)) <
	// 8(hashlen).
	// 3.3. Convert the bit string E to an octet string E using the
	// conversion routine specified in Section 2.3.1.
	// 3.4. Convert the octet string E to an integer e using the
	// conversion routine specified in Section 2.3.8.

	e := hashToScalar(hBytes)

	// 4. Compute: u1 = e(s^−1) mod n and u2 = r(s^-1) mod n.

	sInv := p256.NewScalar().Invert(s)
	u1 := p256.NewScalar().Multiply(e, sInv)
	u2 := p256.NewScalar().Multiply(r, sInv)

	// 5. Compute: R = (xR, yR) = u1 * G + u2 * QU.
	// If R = O, output “invalid” and stop.

	R := p256.NewIdentityPoint().DoubleScalarMultBasepointVartime(u1, u2, q.point)
	if R.IsIdentity() != 0 {
		return errRIsInfinity
	}

	// 6. Convert the field element xR to an integer xR using the
	// conversion routine specified in Section 2.3.9.
	//
	// 7. Set v = xR mod n.

	xRBytes, _ := R.XBytes() // Can't fail, R != Inf.
	v, _ := p256.NewScalar().SetBytes((*[p256.ScalarSize]byte)(xRBytes))

	// 8. Compare v and r — if v = r, output “valid”, and if
	// v != r, output “invalid”.

	if v.Equal(r) != 1 {
		return errVNeqR
	}

	return nil
}

// statusFromError maps the result of `verify` to a Status.
func statusFromError(err error) Status {
	switch {
	case err == nil:
		return Valid
	case errors.Is(err, errRIsInfinity), errors.Is(err, errVNeqR):
		return Invalid
	default:
		return BadArg
	}
}
