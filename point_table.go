// Copyright 2026 The p256-voi Authors.  All Rights Reserved.
//
// p256-voi can be used in projects of any kind.  Redistribution and use
// in source and binary forms, with or without modification, are
// permitted provided that this notice is retained.

package p256

import "gitlab.com/p256-voi/p256-voi/internal/field"

// Tables for doing accelerated scalar multiplication with a window.
//
// Note: Effort is made to omit checking `Point.isValid` as much as
// possible as these routines are internal, and it is entirely
// redundant, once the validity of `p` is checked once.

// jacobianPointMultTable stores pre-computed multiples [1P, ... 15P],
// with support for `0P` implicitly as part of the table lookup.
//
// For performance reasons, particularly when creating the table, the Z
// coordinate for entries is not guaranteed to be 1.
type jacobianPointMultTable [15]Point

// SelectAndAddVartime sets `sum = sum + idx * P`, and returns `sum` in
// variable time.  idx MUST be in the range of `[0, 15]`.
func (tbl *jacobianPointMultTable) SelectAndAddVartime(sum *Point, idx byte) *Point {
	if idx == 0 {
		return sum
	}
	return sum.addJacobian(sum, &tbl[idx-1])
}

func newJacobianPointMultTable(p *Point) *jacobianPointMultTable {
	tbl := new(jacobianPointMultTable)
	tbl[0].Set(p) // will call `assertPointsValid(p)`
	for i := 1; i < len(tbl); i += 2 {
		tbl[i].doubleJacobian(&tbl[i/2])
		tbl[i+1].addJacobian(&tbl[i], p)
	}

	return tbl
}

// affinePoint is a point on the `Z = 1` plane.
type affinePoint struct {
	x, y field.Element
}

// affinePointMultTable stores pre-computed multiples [1P, ... 15P] on
// the `Z = 1` plane, so that the cheaper mixed addition can be used.
type affinePointMultTable [15]affinePoint

// SelectAndAddVartime sets `sum = sum + idx * P`, and returns `sum` in
// variable time.  idx MUST be in the range of `[0, 15]`.
func (tbl *affinePointMultTable) SelectAndAddVartime(sum *Point, idx byte) *Point {
	if idx == 0 {
		return sum
	}
	return sum.addMixed(sum, &tbl[idx-1])
}

// generatorAffineTable is [1G, ... 15G], built once at package
// initialization.
var generatorAffineTable = func() *affinePointMultTable {
	projTbl := newJacobianPointMultTable(NewGeneratorPoint())

	tbl := new(affinePointMultTable)
	for i := range projTbl {
		// None of the small multiples of G are the point at infinity.
		scaled := newRcvr().rescale(&projTbl[i])
		tbl[i].x.Set(&scaled.x)
		tbl[i].y.Set(&scaled.y)
	}

	return tbl
}()
