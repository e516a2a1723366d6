// Copyright 2026 The p256-voi Authors.  All Rights Reserved.
//
// p256-voi can be used in projects of any kind.  Redistribution and use
// in source and binary forms, with or without modification, are
// permitted provided that this notice is retained.

// Package montgomery implements arithmetic modulo an odd 256-bit integer
// `m`, where `2^255 < m < 2^256`, in the Montgomery domain (`R = 2^256`).
//
// Both the P-256 field prime and the P-256 group order are of this form,
// so a single implementation serves `internal/field` and the scalar type.
// All routines are constant time, with the exception of `Exp`, which is
// variable time in the (public) exponent.
package montgomery

import (
	"math/bits"

	"gitlab.com/p256-voi/p256-voi/internal/disalloweq"
)

// DomainElement is a value `a * R mod m`, as 4 little-endian 64-bit
// limbs.  Values MUST be fully reduced.
type DomainElement [4]uint64

// Modulus is a modulus and the precomputed values required to do
// Montgomery multiplication with it.  A Modulus is immutable once
// constructed, and is safe for concurrent use.
type Modulus struct {
	_ disalloweq.DisallowEqual

	m    [4]uint64
	mInv uint64 // -m^-1 mod 2^64

	one DomainElement // R mod m
	rr  DomainElement // R^2 mod m
}

// NewModulus creates a new Modulus from the saturated limbs of `m`.
// It panics if `m` is even, or not in the range `(2^255, 2^256)`.
func NewModulus(l3, l2, l1, l0 uint64) *Modulus {
	if l0&1 == 0 || l3>>63 == 0 {
		panic("internal/montgomery: modulus out of range")
	}

	md := &Modulus{
		m: [4]uint64{l0, l1, l2, l3},
	}

	// Newton-Raphson.  Since m is odd, m * m = 1 mod 8, so the initial
	// guess is correct to 3 bits, and each iteration doubles that.
	inv := l0
	for i := 0; i < 5; i++ {
		inv *= 2 - l0*inv
	}
	md.mInv = -inv

	// R mod m = 2^256 - m, as m > 2^255.
	var borrow uint64
	md.one[0], borrow = bits.Sub64(0, l0, 0)
	md.one[1], borrow = bits.Sub64(0, l1, borrow)
	md.one[2], borrow = bits.Sub64(0, l2, borrow)
	md.one[3], _ = bits.Sub64(0, l3, borrow)

	// R^2 mod m = (R mod m) * 2^256 mod m.
	md.rr = md.one
	for i := 0; i < 256; i++ {
		md.Add(&md.rr, &md.rr, &md.rr)
	}

	return md
}

// Limbs returns the saturated limbs of `m`, least significant first.
func (md *Modulus) Limbs() [4]uint64 {
	return md.m
}

// SetOne sets `out = 1` (`R mod m`).
func (md *Modulus) SetOne(out *DomainElement) {
	*out = md.one
}

// Add sets `out = a + b mod m`.
func (md *Modulus) Add(out, a, b *DomainElement) {
	var (
		sum, reduced  [4]uint64
		carry, borrow uint64
	)
	sum[0], carry = bits.Add64(a[0], b[0], 0)
	sum[1], carry = bits.Add64(a[1], b[1], carry)
	sum[2], carry = bits.Add64(a[2], b[2], carry)
	sum[3], carry = bits.Add64(a[3], b[3], carry)

	reduced[0], borrow = bits.Sub64(sum[0], md.m[0], 0)
	reduced[1], borrow = bits.Sub64(sum[1], md.m[1], borrow)
	reduced[2], borrow = bits.Sub64(sum[2], md.m[2], borrow)
	reduced[3], borrow = bits.Sub64(sum[3], md.m[3], borrow)
	_, borrow = bits.Sub64(carry, 0, borrow)

	// borrow == 1 iff the 257-bit sum is less than m.
	Selectznz((*[4]uint64)(out), borrow, &reduced, &sum)
}

// Sub sets `out = a - b mod m`.
func (md *Modulus) Sub(out, a, b *DomainElement) {
	var (
		diff, fixed   [4]uint64
		borrow, carry uint64
	)
	diff[0], borrow = bits.Sub64(a[0], b[0], 0)
	diff[1], borrow = bits.Sub64(a[1], b[1], borrow)
	diff[2], borrow = bits.Sub64(a[2], b[2], borrow)
	diff[3], borrow = bits.Sub64(a[3], b[3], borrow)

	fixed[0], carry = bits.Add64(diff[0], md.m[0], 0)
	fixed[1], carry = bits.Add64(diff[1], md.m[1], carry)
	fixed[2], carry = bits.Add64(diff[2], md.m[2], carry)
	fixed[3], _ = bits.Add64(diff[3], md.m[3], carry)

	Selectznz((*[4]uint64)(out), borrow, &diff, &fixed)
}

// Opp sets `out = -a mod m`.
func (md *Modulus) Opp(out, a *DomainElement) {
	var zero DomainElement
	md.Sub(out, &zero, a)
}

// Mul sets `out = a * b * R^-1 mod m`.
func (md *Modulus) Mul(out, a, b *DomainElement) {
	// Coarsely Integrated Operand Scanning (CIOS), see "Analyzing and
	// Comparing Montgomery Multiplication Algorithms" by Koc, Acar,
	// and Kaliski.
	//
	// With a, b < m, the intermediate value is always < 2m, so t5 and
	// the final t4 are at most 1.
	var t0, t1, t2, t3, t4, t5 uint64

	for i := 0; i < 4; i++ {
		var hi, lo, c, carry uint64
		bi := b[i]

		// t += a * b[i]
		hi, lo = bits.Mul64(a[0], bi)
		t0, carry = bits.Add64(t0, lo, 0)
		c = hi + carry

		hi, lo = bits.Mul64(a[1], bi)
		lo, carry = bits.Add64(lo, c, 0)
		hi += carry
		t1, carry = bits.Add64(t1, lo, 0)
		c = hi + carry

		hi, lo = bits.Mul64(a[2], bi)
		lo, carry = bits.Add64(lo, c, 0)
		hi += carry
		t2, carry = bits.Add64(t2, lo, 0)
		c = hi + carry

		hi, lo = bits.Mul64(a[3], bi)
		lo, carry = bits.Add64(lo, c, 0)
		hi += carry
		t3, carry = bits.Add64(t3, lo, 0)
		c = hi + carry

		t4, carry = bits.Add64(t4, c, 0)
		t5 = carry

		// t = (t + (t0 * -m^-1 mod 2^64) * m) / 2^64
		mm := t0 * md.mInv

		hi, lo = bits.Mul64(mm, md.m[0])
		_, carry = bits.Add64(t0, lo, 0)
		c = hi + carry

		hi, lo = bits.Mul64(mm, md.m[1])
		lo, carry = bits.Add64(lo, c, 0)
		hi += carry
		t0, carry = bits.Add64(t1, lo, 0)
		c = hi + carry

		hi, lo = bits.Mul64(mm, md.m[2])
		lo, carry = bits.Add64(lo, c, 0)
		hi += carry
		t1, carry = bits.Add64(t2, lo, 0)
		c = hi + carry

		hi, lo = bits.Mul64(mm, md.m[3])
		lo, carry = bits.Add64(lo, c, 0)
		hi += carry
		t2, carry = bits.Add64(t3, lo, 0)
		c = hi + carry

		t3, carry = bits.Add64(t4, c, 0)
		t4 = t5 + carry
	}

	var (
		t       = [4]uint64{t0, t1, t2, t3}
		reduced [4]uint64
		borrow  uint64
	)
	reduced[0], borrow = bits.Sub64(t0, md.m[0], 0)
	reduced[1], borrow = bits.Sub64(t1, md.m[1], borrow)
	reduced[2], borrow = bits.Sub64(t2, md.m[2], borrow)
	reduced[3], borrow = bits.Sub64(t3, md.m[3], borrow)
	_, borrow = bits.Sub64(t4, 0, borrow)

	Selectznz((*[4]uint64)(out), borrow, &reduced, &t)
}

// Square sets `out = a * a * R^-1 mod m`.
func (md *Modulus) Square(out, a *DomainElement) {
	// XXX/perf: A dedicated squaring routine saves ~6 64x64 multiplies.
	md.Mul(out, a, a)
}

// ToMontgomery sets `out = a * R mod m`.  `a` MUST be less than m.
func (md *Modulus) ToMontgomery(out *DomainElement, a *[4]uint64) {
	md.Mul(out, (*DomainElement)(a), &md.rr)
}

// FromMontgomery sets `out = a * R^-1 mod m`.
func (md *Modulus) FromMontgomery(out *[4]uint64, a *DomainElement) {
	one := DomainElement{1, 0, 0, 0}
	md.Mul((*DomainElement)(out), a, &one)
}

// Reduce sets `dst = src mod m`, and returns 1 iff a reduction was
// required, 0 otherwise.  This is only correct for `src < 2m`, which
// always holds for 256-bit values, given the range of m.
func (md *Modulus) Reduce(dst, src *[4]uint64) uint64 {
	// Assume that the reduction is needed, and calculate
	// reduced = src - m.
	var (
		reduced [4]uint64
		borrow  uint64
	)
	reduced[0], borrow = bits.Sub64(src[0], md.m[0], borrow)
	reduced[1], borrow = bits.Sub64(src[1], md.m[1], borrow)
	reduced[2], borrow = bits.Sub64(src[2], md.m[2], borrow)
	reduced[3], borrow = bits.Sub64(src[3], md.m[3], borrow)

	// if borrow == 0, src >= m
	// if borrow == 1, src < m (no reduction needed)
	didReduce := borrow ^ 1

	Selectznz(dst, didReduce, src, &reduced)

	return didReduce
}

// InRange returns true iff `a < m`.
func (md *Modulus) InRange(a *[4]uint64) bool {
	var borrow uint64
	_, borrow = bits.Sub64(a[0], md.m[0], borrow)
	_, borrow = bits.Sub64(a[1], md.m[1], borrow)
	_, borrow = bits.Sub64(a[2], md.m[2], borrow)
	_, borrow = bits.Sub64(a[3], md.m[3], borrow)

	return borrow == 1
}

// Selectznz sets `out = a` iff `ctrl == 0`, `out = b` otherwise.
// ctrl MUST be 0 or 1.
func Selectznz(out *[4]uint64, ctrl uint64, a, b *[4]uint64) {
	mask := -ctrl
	out[0] = a[0] ^ (mask & (a[0] ^ b[0]))
	out[1] = a[1] ^ (mask & (a[1] ^ b[1]))
	out[2] = a[2] ^ (mask & (a[2] ^ b[2]))
	out[3] = a[3] ^ (mask & (a[3] ^ b[3]))
}

// IsZero returns 1 iff `a == 0`, 0 otherwise.
func IsZero(a *[4]uint64) uint64 {
	ctrl := a[0] | a[1] | a[2] | a[3]
	return ((ctrl | -ctrl) >> 63) ^ 1
}
