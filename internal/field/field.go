// Copyright 2026 The p256-voi Authors.  All Rights Reserved.
//
// p256-voi can be used in projects of any kind.  Redistribution and use
// in source and binary forms, with or without modification, are
// permitted provided that this notice is retained.

// Package field implements arithmetic modulo p = 2^256 - 2^224 + 2^192 + 2^96 - 1.
package field

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"gitlab.com/p256-voi/p256-voi/internal/disalloweq"
	"gitlab.com/p256-voi/p256-voi/internal/helpers"
	"gitlab.com/p256-voi/p256-voi/internal/montgomery"
)

// ElementSize is the size of a field element in bytes.
const ElementSize = 32

var modP = montgomery.NewModulus(0xffffffff00000001, 0x0000000000000000, 0x00000000ffffffff, 0xffffffffffffffff)

// Element is a field element.  All arguments and receivers are allowed
// to alias.  The zero value is a valid zero element.
type Element struct {
	_ disalloweq.DisallowEqual
	m montgomery.DomainElement
}

// Zero sets `fe = 0` and returns `fe`.
func (fe *Element) Zero() *Element {
	for i := range fe.m {
		fe.m[i] = 0
	}
	return fe
}

// One sets `fe = 1` and returns `fe`.
func (fe *Element) One() *Element {
	modP.SetOne(&fe.m)
	return fe
}

// Add sets `fe = a + b` and returns `fe`.
func (fe *Element) Add(a, b *Element) *Element {
	modP.Add(&fe.m, &a.m, &b.m)
	return fe
}

// Subtract sets `fe = a - b` and returns `fe`.
func (fe *Element) Subtract(a, b *Element) *Element {
	modP.Sub(&fe.m, &a.m, &b.m)
	return fe
}

// Negate sets `fe = -a` and returns `fe`.
func (fe *Element) Negate(a *Element) *Element {
	modP.Opp(&fe.m, &a.m)
	return fe
}

// Multiply sets `fe = a * b` and returns `fe`.
func (fe *Element) Multiply(a, b *Element) *Element {
	modP.Mul(&fe.m, &a.m, &b.m)
	return fe
}

// Square sets `fe = a * a` and returns `fe`.
func (fe *Element) Square(a *Element) *Element {
	modP.Square(&fe.m, &a.m)
	return fe
}

// Pow2k sets `fe = a ^ (2 ^ k)` and returns `fe`.  k MUST be non-zero.
func (fe *Element) Pow2k(a *Element, k uint) *Element {
	if k == 0 {
		// This could just set fe = a, but "don't do that".
		panic("internal/field: k out of bounds")
	}

	modP.Square(&fe.m, &a.m)
	for i := uint(1); i < k; i++ {
		modP.Square(&fe.m, &fe.m)
	}

	return fe
}

// Set sets `fe = a` and returns `fe`.
func (fe *Element) Set(a *Element) *Element {
	copy(fe.m[:], a.m[:])
	return fe
}

// SetCanonicalBytes sets `fe = src`, where `src` is a 32-byte big-endian
// encoding of `fe`, and returns `fe`.  If `src` is not a canonical
// encoding of `fe`, SetCanonicalBytes returns nil and an error, and the
// receiver is unchanged.
func (fe *Element) SetCanonicalBytes(src *[ElementSize]byte) (*Element, error) {
	l := helpers.BytesToSaturated(src)

	if !fe.setSaturated(&l) {
		return nil, errors.New("internal/field: value out of range")
	}

	return fe, nil
}

// Bytes returns the canonical big-endian encoding of `fe`.
func (fe *Element) Bytes() []byte {
	// Blah blah blah outline blah escape analysis blah.
	var dst [ElementSize]byte
	return fe.getBytes(&dst)
}

func (fe *Element) getBytes(dst *[ElementSize]byte) []byte {
	var nm [4]uint64
	modP.FromMontgomery(&nm, &fe.m)

	return helpers.SaturatedToBytes(dst, &nm)
}

// Equal returns 1 iff `fe == a`, 0 otherwise.
func (fe *Element) Equal(a *Element) uint64 {
	return helpers.LimbsAreEqual((*[4]uint64)(&fe.m), (*[4]uint64)(&a.m))
}

// IsZero returns 1 iff `fe == 0`, 0 otherwise.
func (fe *Element) IsZero() uint64 {
	return montgomery.IsZero((*[4]uint64)(&fe.m))
}

// String returns the big-endian hex representation of `fe`.
func (fe *Element) String() string {
	return hex.EncodeToString(fe.Bytes())
}

func (fe *Element) setSaturated(a *[4]uint64) bool {
	if !modP.InRange(a) {
		return false
	}
	modP.ToMontgomery(&fe.m, a)
	return true
}

// MustRandomize randomizes and returns `fe`, or panics.
func (fe *Element) MustRandomize() *Element {
	var b [ElementSize]byte
	for {
		if _, err := rand.Read(b[:]); err != nil {
			panic("internal/field: entropy source failure")
		}
		if _, err := fe.SetCanonicalBytes(&b); err == nil {
			return fe
		}
	}
}

// NewElement returns a new zero Element.
func NewElement() *Element {
	return &Element{}
}

// NewElementFrom creates a new Element from another.
func NewElementFrom(other *Element) *Element {
	return NewElement().Set(other)
}

// NewElementFromSaturated creates a new Element from the raw saturated representation.
func NewElementFromSaturated(l3, l2, l1, l0 uint64) *Element {
	l := [4]uint64{l0, l1, l2, l3}

	// Yes, this panics if you mess up.  Why are you using this for
	// anything but pre-computed constants?
	var fe Element
	if !fe.setSaturated(&l) {
		panic("internal/field: saturated limbs out of range")
	}

	return &fe
}

// NewElementFromCanonicalBytes creates a new Element from the canonical
// big-endian byte representation.
func NewElementFromCanonicalBytes(src *[ElementSize]byte) (*Element, error) {
	e, err := NewElement().SetCanonicalBytes(src)
	if err != nil {
		return nil, err
	}

	return e, nil
}

// NewElementFromCanonicalHex creates a new Element from the canonical
// big-endian hex representation, or panics.
func NewElementFromCanonicalHex(s string) *Element {
	e, err := NewElementFromCanonicalBytes(helpers.MustArray32FromHex(s))
	if err != nil {
		panic(err)
	}

	return e
}
