// Copyright 2026 The p256-voi Authors.  All Rights Reserved.
//
// p256-voi can be used in projects of any kind.  Redistribution and use
// in source and binary forms, with or without modification, are
// permitted provided that this notice is retained.

package p256

import "gitlab.com/p256-voi/p256-voi/internal/field"

// The group law, in Jacobian coordinates, specialized for `a = -3`.
//
// See: https://hyperelliptic.org/EFD/g1p/auto-shortw-jacobian-3.html
//
// Unlike the complete formulas, these are exceptional when `p = q`,
// `p = -q`, or either input is the point at infinity, so those cases
// are dispatched explicitly.  This makes everything in this file
// variable time.

// addJacobian sets `v = p + q`, and returns `v`.
func (v *Point) addJacobian(p, q *Point) *Point {
	if p.z.IsZero() == 1 {
		return v.uncheckedSet(q)
	}
	if q.z.IsZero() == 1 {
		return v.uncheckedSet(p)
	}

	// add-2007-bl
	z1z1 := field.NewElement().Square(&p.z)
	z2z2 := field.NewElement().Square(&q.z)
	u1 := field.NewElement().Multiply(&p.x, z2z2)
	u2 := field.NewElement().Multiply(&q.x, z1z1)
	s1 := field.NewElement().Multiply(&p.y, &q.z)
	s1.Multiply(s1, z2z2)
	s2 := field.NewElement().Multiply(&q.y, &p.z)
	s2.Multiply(s2, z1z1)

	h := field.NewElement().Subtract(u2, u1)
	r := field.NewElement().Subtract(s2, s1)
	if h.IsZero() == 1 {
		if r.IsZero() == 1 {
			// p = q
			return v.doubleJacobian(p)
		}
		// p = -q
		return v.Identity()
	}
	r.Add(r, r)

	i := field.NewElement().Add(h, h)
	i.Square(i)
	j := field.NewElement().Multiply(h, i)
	vv := field.NewElement().Multiply(u1, i)

	x3 := field.NewElement().Square(r)
	x3.Subtract(x3, j)
	x3.Subtract(x3, vv)
	x3.Subtract(x3, vv)

	y3 := field.NewElement().Subtract(vv, x3)
	y3.Multiply(r, y3)
	s1j := field.NewElement().Multiply(s1, j)
	y3.Subtract(y3, s1j)
	y3.Subtract(y3, s1j)

	z3 := field.NewElement().Add(&p.z, &q.z)
	z3.Square(z3)
	z3.Subtract(z3, z1z1)
	z3.Subtract(z3, z2z2)
	z3.Multiply(z3, h)

	v.x.Set(x3)
	v.y.Set(y3)
	v.z.Set(z3)

	return v
}

// addMixed sets `v = p + q`, where `q` is on the `Z = 1` plane, and
// returns `v`.
func (v *Point) addMixed(p *Point, q *affinePoint) *Point {
	if p.z.IsZero() == 1 {
		v.x.Set(&q.x)
		v.y.Set(&q.y)
		v.z.One()
		return v
	}

	// madd-2007-bl
	z1z1 := field.NewElement().Square(&p.z)
	u2 := field.NewElement().Multiply(&q.x, z1z1)
	s2 := field.NewElement().Multiply(&q.y, &p.z)
	s2.Multiply(s2, z1z1)

	h := field.NewElement().Subtract(u2, &p.x)
	r := field.NewElement().Subtract(s2, &p.y)
	if h.IsZero() == 1 {
		if r.IsZero() == 1 {
			return v.doubleJacobian(p)
		}
		return v.Identity()
	}
	r.Add(r, r)

	hh := field.NewElement().Square(h)
	i := field.NewElement().Add(hh, hh)
	i.Add(i, i)
	j := field.NewElement().Multiply(h, i)
	vv := field.NewElement().Multiply(&p.x, i)

	x3 := field.NewElement().Square(r)
	x3.Subtract(x3, j)
	x3.Subtract(x3, vv)
	x3.Subtract(x3, vv)

	y3 := field.NewElement().Subtract(vv, x3)
	y3.Multiply(r, y3)
	y1j := field.NewElement().Multiply(&p.y, j)
	y3.Subtract(y3, y1j)
	y3.Subtract(y3, y1j)

	z3 := field.NewElement().Add(&p.z, h)
	z3.Square(z3)
	z3.Subtract(z3, z1z1)
	z3.Subtract(z3, hh)

	v.x.Set(x3)
	v.y.Set(y3)
	v.z.Set(z3)

	return v
}

// doubleJacobian sets `v = p + p`, and returns `v`.
func (v *Point) doubleJacobian(p *Point) *Point {
	if p.z.IsZero() == 1 || p.y.IsZero() == 1 {
		// Points of order 2 do not exist on P-256 (the group order is
		// prime), but handle Y = 0 anyway, as the formulas would
		// produce Z3 = 0 with garbage X3/Y3.
		return v.Identity()
	}

	// dbl-2001-b
	delta := field.NewElement().Square(&p.z)
	gamma := field.NewElement().Square(&p.y)
	beta := field.NewElement().Multiply(&p.x, gamma)

	// alpha = 3 * (X1 - delta) * (X1 + delta)
	t0 := field.NewElement().Subtract(&p.x, delta)
	t1 := field.NewElement().Add(&p.x, delta)
	alpha := field.NewElement().Multiply(t0, t1)
	t0.Add(alpha, alpha)
	alpha.Add(alpha, t0)

	// X3 = alpha^2 - 8 * beta
	beta4 := field.NewElement().Add(beta, beta)
	beta4.Add(beta4, beta4)
	x3 := field.NewElement().Square(alpha)
	x3.Subtract(x3, beta4)
	x3.Subtract(x3, beta4)

	// Z3 = (Y1 + Z1)^2 - gamma - delta
	z3 := field.NewElement().Add(&p.y, &p.z)
	z3.Square(z3)
	z3.Subtract(z3, gamma)
	z3.Subtract(z3, delta)

	// Y3 = alpha * (4 * beta - X3) - 8 * gamma^2
	gamma8 := field.NewElement().Square(gamma)
	gamma8.Add(gamma8, gamma8)
	gamma8.Add(gamma8, gamma8)
	gamma8.Add(gamma8, gamma8)
	y3 := field.NewElement().Subtract(beta4, x3)
	y3.Multiply(alpha, y3)
	y3.Subtract(y3, gamma8)

	v.x.Set(x3)
	v.y.Set(y3)
	v.z.Set(z3)

	return v
}

// rescale sets `v = p` with `Z = 1` (or the canonical identity), and
// returns `v`.  This costs a field inversion.
func (v *Point) rescale(p *Point) *Point {
	if p.z.IsZero() == 1 {
		return v.Identity()
	}

	zInv := field.NewElement().Invert(&p.z)
	zInv2 := field.NewElement().Square(zInv)
	zInv3 := field.NewElement().Multiply(zInv2, zInv)

	v.x.Multiply(&p.x, zInv2)
	v.y.Multiply(&p.y, zInv3)
	v.z.One()
	v.isValid = p.isValid

	return v
}

func (v *Point) uncheckedSet(p *Point) *Point {
	v.x.Set(&p.x)
	v.y.Set(&p.y)
	v.z.Set(&p.z)
	return v
}
