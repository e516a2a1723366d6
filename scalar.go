// Copyright 2026 The p256-voi Authors.  All Rights Reserved.
//
// p256-voi can be used in projects of any kind.  Redistribution and use
// in source and binary forms, with or without modification, are
// permitted provided that this notice is retained.

package p256

import (
	"encoding/hex"
	"errors"
	"math/bits"

	"gitlab.com/p256-voi/p256-voi/internal/disalloweq"
	"gitlab.com/p256-voi/p256-voi/internal/helpers"
	"gitlab.com/p256-voi/p256-voi/internal/montgomery"
)

// ScalarSize is the size of a scalar in bytes.
const ScalarSize = 32

var (
	modN = montgomery.NewModulus(0xffffffff00000000, 0xffffffffffffffff, 0xbce6faada7179e84, 0xf3b9cac2fc632551)

	// modN >> 1
	halfNSat = [4]uint64{
		0x79dce5617e3192a8,
		0xde737d56d38bcf42,
		0x7fffffffffffffff,
		0x7fffffff80000000,
	}

	nMinus2 = modN.ExpMinus2()
)

// Scalar is an integer modulo `n`, the order of the P-256 base point.
// All arguments and receivers are allowed to alias.  The zero value is
// a valid zero element.
type Scalar struct {
	_ disalloweq.DisallowEqual
	m montgomery.DomainElement
}

// Zero sets `s = 0` and returns `s`.
func (s *Scalar) Zero() *Scalar {
	for i := range s.m {
		s.m[i] = 0
	}
	return s
}

// One sets `s = 1` and returns `s`.
func (s *Scalar) One() *Scalar {
	modN.SetOne(&s.m)
	return s
}

// Add sets `s = a + b` and returns `s`.
func (s *Scalar) Add(a, b *Scalar) *Scalar {
	modN.Add(&s.m, &a.m, &b.m)
	return s
}

// Subtract sets `s = a - b` and returns `s`.
func (s *Scalar) Subtract(a, b *Scalar) *Scalar {
	modN.Sub(&s.m, &a.m, &b.m)
	return s
}

// Negate sets `s = -a` and returns `s`.
func (s *Scalar) Negate(a *Scalar) *Scalar {
	modN.Opp(&s.m, &a.m)
	return s
}

// Multiply sets `s = a * b` and returns `s`.
func (s *Scalar) Multiply(a, b *Scalar) *Scalar {
	modN.Mul(&s.m, &a.m, &b.m)
	return s
}

// Square sets `s = a * a` and returns `s`.
func (s *Scalar) Square(a *Scalar) *Scalar {
	modN.Square(&s.m, &a.m)
	return s
}

// Invert sets `s = 1/a` and returns `s`.  If `a == 0`, `s = 0`.
//
// The exponentiation is variable time in the exponent `n - 2`, which
// is public, and constant time in `a`.
func (s *Scalar) Invert(a *Scalar) *Scalar {
	modN.Exp(&s.m, &a.m, &nMinus2)
	return s
}

// Set sets `s = a` and returns `s`.
func (s *Scalar) Set(a *Scalar) *Scalar {
	copy(s.m[:], a.m[:])
	return s
}

// SetBytes sets `s = src`, where `src` is a 32-byte big-endian encoding
// of `s`, and returns `s, 0`.  If `src` is not a canonical encoding of
// `s`, `src` is reduced modulo n, and SetBytes returns `s, 1`.
func (s *Scalar) SetBytes(src *[ScalarSize]byte) (*Scalar, uint64) {
	l := helpers.BytesToSaturated(src)

	didReduce := modN.Reduce(&l, &l)
	s.uncheckedSetSaturated(&l)

	return s, didReduce
}

// SetCanonicalBytes sets `s = src`, where `src` is a 32-byte big-endian
// encoding of `s`, and returns `s`.  If `src` is not a canonical encoding
// of `s`, SetCanonicalBytes returns nil and an error, and the receiver is
// unchanged.
func (s *Scalar) SetCanonicalBytes(src *[ScalarSize]byte) (*Scalar, error) {
	l := helpers.BytesToSaturated(src)

	if !modN.InRange(&l) {
		return nil, errors.New("p256: scalar value out of range")
	}
	s.uncheckedSetSaturated(&l)

	return s, nil
}

// Bytes returns the canonical big-endian encoding of `s`.
func (s *Scalar) Bytes() []byte {
	// Blah blah blah outline blah escape analysis blah.
	var dst [ScalarSize]byte
	return s.getBytes(&dst)
}

func (s *Scalar) getBytes(dst *[ScalarSize]byte) []byte {
	var nm [4]uint64
	modN.FromMontgomery(&nm, &s.m)

	return helpers.SaturatedToBytes(dst, &nm)
}

// ConditionalNegate sets `s = a` iff `ctrl == 0`, `s = -a` otherwise,
// and returns `s`.
func (s *Scalar) ConditionalNegate(a *Scalar, ctrl uint64) *Scalar {
	sNeg := NewScalar().Negate(a)

	return s.ConditionalSelect(a, sNeg, ctrl)
}

// ConditionalSelect sets `s = a` iff `ctrl == 0`, `s = b` otherwise,
// and returns `s`.
func (s *Scalar) ConditionalSelect(a, b *Scalar, ctrl uint64) *Scalar {
	montgomery.Selectznz((*[4]uint64)(&s.m), ctrl, (*[4]uint64)(&a.m), (*[4]uint64)(&b.m))
	return s
}

// Equal returns 1 iff `s == a`, 0 otherwise.
func (s *Scalar) Equal(a *Scalar) uint64 {
	return helpers.LimbsAreEqual((*[4]uint64)(&s.m), (*[4]uint64)(&a.m))
}

// IsZero returns 1 iff `s == 0`, 0 otherwise.
func (s *Scalar) IsZero() uint64 {
	return montgomery.IsZero((*[4]uint64)(&s.m))
}

// IsGreaterThanHalfN returns 1 iff `s > n / 2`, where `n` is the order
// of G, 0 otherwise.
func (s *Scalar) IsGreaterThanHalfN() uint64 {
	var nm [4]uint64
	modN.FromMontgomery(&nm, &s.m)

	var (
		borrow uint64
		diff   [4]uint64
	)
	diff[0], borrow = bits.Sub64(nm[0], halfNSat[0], borrow)
	diff[1], borrow = bits.Sub64(nm[1], halfNSat[1], borrow)
	diff[2], borrow = bits.Sub64(nm[2], halfNSat[2], borrow)
	diff[3], borrow = bits.Sub64(nm[3], halfNSat[3], borrow)

	// if borrow == 1, s < n/2
	// if borrow == 0 && diff == 0, s = n/2
	return helpers.Uint64IsZero(borrow) & helpers.Uint64IsNonzero(diff[0]|diff[1]|diff[2]|diff[3])
}

// String returns the big-endian hex representation of `s`.
func (s *Scalar) String() string {
	return hex.EncodeToString(s.Bytes())
}

func (s *Scalar) uncheckedSetSaturated(a *[4]uint64) *Scalar {
	modN.ToMontgomery(&s.m, a)
	return s
}

// nibbles returns the 64 big-endian 4-bit windows of `s`, most
// significant first.  The result MUST be treated as secret if `s` is.
func (s *Scalar) nibbles() [2 * ScalarSize]byte {
	var (
		b   [ScalarSize]byte
		out [2 * ScalarSize]byte
	)
	s.getBytes(&b)
	for i, v := range b {
		out[2*i] = v >> 4
		out[2*i+1] = v & 0x0f
	}
	return out
}

// NewScalar returns a new zero Scalar.
func NewScalar() *Scalar {
	return &Scalar{}
}

// NewScalarFrom creates a new Scalar from another.
func NewScalarFrom(other *Scalar) *Scalar {
	return NewScalar().Set(other)
}

// NewScalarFromCanonicalBytes creates a new Scalar from the canonical
// big-endian byte representation.
func NewScalarFromCanonicalBytes(src *[ScalarSize]byte) (*Scalar, error) {
	s, err := NewScalar().SetCanonicalBytes(src)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// NewScalarFromCanonicalHex creates a new Scalar from the canonical
// big-endian hex representation, or panics.
func NewScalarFromCanonicalHex(s string) *Scalar {
	sc, err := NewScalarFromCanonicalBytes(helpers.MustArray32FromHex(s))
	if err != nil {
		panic(err)
	}

	return sc
}

func newScalarFromSaturated(l3, l2, l1, l0 uint64) *Scalar {
	l := [4]uint64{l0, l1, l2, l3}

	// Yes, this panics if you mess up.  Why are you using this for
	// anything but pre-computed constants?
	if !modN.InRange(&l) {
		panic("p256: saturated scalar out of range")
	}

	return NewScalar().uncheckedSetSaturated(&l)
}
