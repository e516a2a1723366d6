// Copyright 2026 The p256-voi Authors.  All Rights Reserved.
//
// p256-voi can be used in projects of any kind.  Redistribution and use
// in source and binary forms, with or without modification, are
// permitted provided that this notice is retained.

package p256

// The various scalar point multiplication routines.  See `point_table.go`
// for the other half of the picture.
//
// All of these are variable time, and MUST only be used with public
// scalars.  `assertPointsValid` is checked once and only once (as part
// of) building the table, and `v.isValid` is set once (and not
// overwritten) when it is initialized to the point at infinity.

// ScalarMultVartime sets `v = s * p`, and returns `v` in variable time.
func (v *Point) ScalarMultVartime(s *Scalar, p *Point) *Point {
	// This uses a 4-bit window, decreasing index (MSB -> LSB).
	//
	// Past this precomputation, it is safe to trample over v, as p is
	// no longer used so it doesn't matter if they alias.
	tbl := newJacobianPointMultTable(p)

	v.Identity()
	for i, b := range s.nibbles() {
		// Skip the very first set of doubles, as v is guaranteed to be
		// the point at infinity.
		if i != 0 {
			v.double4()
		}

		tbl.SelectAndAddVartime(v, b)
	}

	return v
}

// ScalarBaseMultVartime sets `v = s * G`, and returns `v` in variable
// time, where `G` is the generator.
func (v *Point) ScalarBaseMultVartime(s *Scalar) *Point {
	tbl := generatorAffineTable

	v.Identity()
	for i, b := range s.nibbles() {
		if i != 0 {
			v.double4()
		}

		tbl.SelectAndAddVartime(v, b)
	}

	return v
}

// DoubleScalarMultBasepointVartime sets `v = u1 * G + u2 * P`, and returns
// `v` in variable time, where `G` is the generator.
func (v *Point) DoubleScalarMultBasepointVartime(u1, u2 *Scalar, p *Point) *Point {
	// Shamir-Strauss: both scalars are walked in lockstep, MSB -> LSB,
	// sharing a single chain of doublings.
	//
	// This routine is the most performance critical as it is the core
	// of ECDSA verification.
	tbl := newJacobianPointMultTable(p)
	gTbl := generatorAffineTable

	u1Nibbles, u2Nibbles := u1.nibbles(), u2.nibbles()

	v.Identity()
	for i := range u1Nibbles {
		if i != 0 {
			v.double4()
		}

		gTbl.SelectAndAddVartime(v, u1Nibbles[i])
		tbl.SelectAndAddVartime(v, u2Nibbles[i])
	}

	return v
}

func (v *Point) double4() {
	v.doubleJacobian(v)
	v.doubleJacobian(v)
	v.doubleJacobian(v)
	v.doubleJacobian(v)
}
