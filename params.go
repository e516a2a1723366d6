// Copyright 2026 The p256-voi Authors.  All Rights Reserved.
//
// p256-voi can be used in projects of any kind.  Redistribution and use
// in source and binary forms, with or without modification, are
// permitted provided that this notice is retained.

package p256

import "gitlab.com/p256-voi/p256-voi/internal/helpers"

// CurveParams are the parameters of the P-256 curve, in the SEC 1,
// Version 2.0, Section 2.3.5 (big-endian) encoding.  The curve is
// `y^2 = x^3 + a*x + b` over `GF(P)`, with a base point `(Gx, Gy)`
// of prime order `N`.
type CurveParams struct {
	P  [CoordSize]byte
	N  [ScalarSize]byte
	A  [CoordSize]byte
	B  [CoordSize]byte
	Gx [CoordSize]byte
	Gy [CoordSize]byte

	BitSize int
	Name    string
}

var curveParams = CurveParams{
	P:       *helpers.MustArray32FromHex("ffffffff00000001000000000000000000000000ffffffffffffffffffffffff"),
	N:       *helpers.MustArray32FromHex("ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551"),
	A:       *helpers.MustArray32FromHex("ffffffff00000001000000000000000000000000fffffffffffffffffffffffc"),
	B:       *helpers.MustArray32FromHex("5ac635d8aa3a93e7b3ebbd55769886bc651d06b0cc53b0f63bce3c3e27d2604b"),
	Gx:      *helpers.MustArray32FromHex("6b17d1f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c296"),
	Gy:      *helpers.MustArray32FromHex("4fe342e2fe1a7f9b8ee7eb4a7c0f9e162bce33576b315ececbb6406837bf51f5"),
	BitSize: 256,
	Name:    "P-256",
}

// Params returns a copy of the curve parameters.
func Params() CurveParams {
	return curveParams
}
