// Copyright 2026 The p256-voi Authors.  All Rights Reserved.
//
// p256-voi can be used in projects of any kind.  Redistribution and use
// in source and binary forms, with or without modification, are
// permitted provided that this notice is retained.

// Package p256 implements the NIST P-256 elliptic curve, as needed to
// verify ECDSA signatures.
package p256

import (
	"gitlab.com/p256-voi/p256-voi/internal/disalloweq"
	"gitlab.com/p256-voi/p256-voi/internal/field"
)

var (
	// gX is the x-coordinate of the generator.
	gX = field.NewElementFromSaturated(0x6b17d1f2e12c4247, 0xf8bce6e563a440f2, 0x77037d812deb33a0, 0xf4a13945d898c296)

	// gY is the y-coordinate of the generator.
	gY = field.NewElementFromSaturated(0x4fe342e2fe1a7f9b, 0x8ee7eb4a7c0f9e16, 0x2bce33576b315ece, 0xcbb6406837bf51f5)
)

// Point represents a point on the P-256 curve.  All arguments and
// receivers are allowed to alias.  The zero value is NOT valid, and
// may only be used as a receiver.
//
// The group operations are variable time, as the only intended use is
// signature verification, where every input is public.
type Point struct {
	_ disalloweq.DisallowEqual

	// The point internally is represented in Jacobian coordinates
	// (X, Y, Z) where x = X/Z^2, y = Y/Z^3.  Z = 0 is the point at
	// infinity.
	x, y, z field.Element

	isValid bool
}

// Identity sets `v = id`, and returns `v`.
func (v *Point) Identity() *Point {
	v.x.One()
	v.y.One()
	v.z.Zero()

	v.isValid = true
	return v
}

// Generator sets `v = G`, and returns `v`.
func (v *Point) Generator() *Point {
	v.x.Set(gX)
	v.y.Set(gY)
	v.z.One()

	v.isValid = true
	return v
}

// Add sets `v = p + q`, and returns `v`.
func (v *Point) Add(p, q *Point) *Point {
	assertPointsValid(p, q)

	v.addJacobian(p, q)

	v.isValid = p.isValid && q.isValid
	return v
}

// Double sets `v = p + p`, and returns `v`.  Calling `Add(p, p)` will
// also return correct results, however this method is faster.
func (v *Point) Double(p *Point) *Point {
	assertPointsValid(p)

	v.doubleJacobian(p)

	v.isValid = p.isValid
	return v
}

// Subtract sets `v = p - q`, and returns `v`.
func (v *Point) Subtract(p, q *Point) *Point {
	assertPointsValid(p, q)
	return v.Add(p, newRcvr().Negate(q))
}

// Negate sets `v = -p`, and returns `v`.
func (v *Point) Negate(p *Point) *Point {
	assertPointsValid(p)

	// Affine negation formulas: -(x1,y1)=(x1,-y1).
	v.x.Set(&p.x)
	v.y.Negate(&p.y)
	v.z.Set(&p.z)

	v.isValid = p.isValid
	return v
}

// Equal returns 1 iff `v == p`, 0 otherwise.
func (v *Point) Equal(p *Point) uint64 {
	assertPointsValid(v, p)

	// Check X1*Z2^2 == X2*Z1^2 and Y1*Z2^3 == Y2*Z1^3, unless either
	// point is the point at infinity.
	z1z1 := field.NewElement().Square(&v.z)
	z2z2 := field.NewElement().Square(&p.z)

	u1 := field.NewElement().Multiply(&v.x, z2z2)
	u2 := field.NewElement().Multiply(&p.x, z1z1)

	s1 := field.NewElement().Multiply(&v.y, &p.z)
	s1.Multiply(s1, z2z2)
	s2 := field.NewElement().Multiply(&p.y, &v.z)
	s2.Multiply(s2, z1z1)

	vIsInf, pIsInf := v.z.IsZero(), p.z.IsZero()
	bothFinite := (vIsInf ^ 1) & (pIsInf ^ 1)

	return (vIsInf & pIsInf) | (bothFinite & u1.Equal(u2) & s1.Equal(s2))
}

// IsIdentity returns 1 iff v is the identity point, 0 otherwise.
func (v *Point) IsIdentity() uint64 {
	assertPointsValid(v)

	return v.z.IsZero()
}

// Set sets `v = p`, and returns `v`.
func (v *Point) Set(p *Point) *Point {
	assertPointsValid(p)

	v.x.Set(&p.x)
	v.y.Set(&p.y)
	v.z.Set(&p.z)
	v.isValid = p.isValid

	return v
}

// NewGeneratorPoint returns a new Point set to the canonical generator.
func NewGeneratorPoint() *Point {
	return newRcvr().Generator()
}

// NewIdentityPoint returns a new Point set to the identity (point at infinity).
func NewIdentityPoint() *Point {
	return newRcvr().Identity()
}

// NewPointFrom creates a new Point from another.
func NewPointFrom(p *Point) *Point {
	assertPointsValid(p)

	return newRcvr().Set(p)
}

// assertPointsValid ensures that the points have been initialized.
func assertPointsValid(points ...*Point) {
	for _, p := range points {
		if !p.isValid {
			panic("p256: use of uninitialized Point")
		}
	}
}

func newRcvr() *Point {
	// This is explicitly for nicely creating receivers.
	return &Point{}
}
