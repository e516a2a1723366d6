// Copyright 2026 The p256-voi Authors.  All Rights Reserved.
//
// p256-voi can be used in projects of any kind.  Redistribution and use
// in source and binary forms, with or without modification, are
// permitted provided that this notice is retained.

package field

// Invert sets `fe = 1/a` and returns `fe`.  If `a == 0`, `fe = 0`.
func (fe *Element) Invert(a *Element) *Element {
	// Inversion is implemented as exponentiation with exponent p - 2.
	// The sequence of 12 multiplications and 255 squarings is derived
	// from the following addition chain generated with
	// github.com/mmcloughlin/addchain v0.4.0.
	//
	//	_10     = 2*1
	//	_11     = 1 + _10
	//	_110    = 2*_11
	//	_111    = 1 + _110
	//	_111000 = _111 << 3
	//	_111111 = _111 + _111000
	//	x12     = _111111 << 6 + _111111
	//	x15     = x12 << 3 + _111
	//	x16     = 2*x15 + 1
	//	x32     = x16 << 16 + x16
	//	i53     = x32 << 15
	//	x47     = x15 + i53
	//	i263    = ((i53 << 17 + 1) << 143 + x47) << 47
	//	return    (x47 + i263) << 2 + 1

	var (
		z   = NewElementFrom(a)
		t0  = NewElement()
		t1  = NewElement()
		x15 = NewElement()
		x47 = NewElement()
	)

	t0.Square(z)        // _10
	t0.Multiply(z, t0)  // _11
	t0.Square(t0)       // _110
	t0.Multiply(z, t0)  // _111
	t1.Pow2k(t0, 3)     // _111000
	t1.Multiply(t0, t1) // _111111

	x12 := NewElement().Pow2k(t1, 6)
	x12.Multiply(t1, x12)

	x15.Pow2k(x12, 3)
	x15.Multiply(t0, x15)

	x16 := NewElement().Square(x15)
	x16.Multiply(z, x16)

	x32 := NewElement().Pow2k(x16, 16)
	x32.Multiply(x16, x32)

	i53 := NewElement().Pow2k(x32, 15)
	x47.Multiply(x15, i53)

	i263 := NewElement().Pow2k(i53, 17)
	i263.Multiply(z, i263)
	i263.Pow2k(i263, 143)
	i263.Multiply(x47, i263)
	i263.Pow2k(i263, 47)

	fe.Multiply(x47, i263)
	fe.Pow2k(fe, 2)
	return fe.Multiply(z, fe)
}

// invertFermat sets `fe = 1/a` and returns `fe`, using the generic
// fixed-window exponentiation.  It exists to cross-check Invert.
func (fe *Element) invertFermat(a *Element) *Element {
	e := modP.ExpMinus2()
	modP.Exp(&fe.m, &a.m, &e)
	return fe
}
