// Copyright 2026 The p256-voi Authors.  All Rights Reserved.
//
// p256-voi can be used in projects of any kind.  Redistribution and use
// in source and binary forms, with or without modification, are
// permitted provided that this notice is retained.

package montgomery

import "math/bits"

// Exp sets `out = a^e mod m`, where `a` is in the Montgomery domain and
// `e` is a saturated (non-Montgomery) exponent.
//
// This uses a fixed 4-bit window, MSB -> LSB.  The sequence of squares
// and multiplies does not depend on `e`, but the table lookup does, so
// `e` MUST be public.  The only callers are inversion routines, where
// the exponent is `m - 2`.
func (md *Modulus) Exp(out, a *DomainElement, e *[4]uint64) {
	var tbl [16]DomainElement
	tbl[0] = md.one
	tbl[1] = *a
	for i := 2; i < len(tbl); i++ {
		md.Mul(&tbl[i], &tbl[i-1], &tbl[1])
	}

	r := md.one
	for i := 3; i >= 0; i-- {
		limb := e[i]
		for shift := 60; shift >= 0; shift -= 4 {
			md.Square(&r, &r)
			md.Square(&r, &r)
			md.Square(&r, &r)
			md.Square(&r, &r)

			md.Mul(&r, &r, &tbl[(limb>>shift)&0xf])
		}
	}

	*out = r
}

// ExpMinus2 returns `m - 2`, the exponent for inversion by Fermat's
// little theorem, as saturated limbs.
func (md *Modulus) ExpMinus2() [4]uint64 {
	var (
		e      [4]uint64
		borrow uint64
	)
	e[0], borrow = bits.Sub64(md.m[0], 2, 0)
	e[1], borrow = bits.Sub64(md.m[1], 0, borrow)
	e[2], borrow = bits.Sub64(md.m[2], 0, borrow)
	e[3], _ = bits.Sub64(md.m[3], 0, borrow)
	return e
}
