// Copyright 2026 The p256-voi Authors.  All Rights Reserved.
//
// p256-voi can be used in projects of any kind.  Redistribution and use
// in source and binary forms, with or without modification, are
// permitted provided that this notice is retained.

package p256

import (
	"errors"

	"gitlab.com/p256-voi/p256-voi/internal/field"
)

// See: https://www.secg.org/sec1-v2.pdf
//
// Compressed points are not supported, as nothing that consumes this
// package needs them, and it saves implementing a square root.

const (
	// RawPointSize is the size of a point in bytes, in the raw
	// `X | Y` encoding (SEC 1 uncompressed, without the prefix).
	RawPointSize = 64

	// PointSize is the size of an uncompressed point in bytes in the
	// SEC 1, Version 2.0, Section 2.3.3 encoding (`0x04 | X | Y`).
	PointSize = 65

	// IdentityPointSize is the size of the point at infinity in bytes,
	// in the SEC 1, Version 2.0, Section 2.3.3 encoding (`0x00`).
	IdentityPointSize = 1

	// CoordSize is the size of a coordinate in bytes, in the SEC 1,
	// Version 2.0, Section 2.3.5 encoding.
	CoordSize = 32

	prefixIdentity     = 0x00
	prefixUncompressed = 0x04
)

var (
	errMalformedPoint  = errors.New("p256: malformed point encoding")
	errPointNotOnCurve = errors.New("p256: point not on curve")
	errPointIsIdentity = errors.New("p256: point is the point at infinity")

	// feB is the constant `b`, part of the curve equation.
	feB = field.NewElementFromSaturated(0x5ac635d8aa3a93e7, 0xb3ebbd55769886bc, 0x651d06b0cc53b0f6, 0x3bce3c3e27d2604b)
)

// RawBytes returns the raw `X | Y` encoding of `v`, or an error if the
// point is the point at infinity.
func (v *Point) RawBytes() ([]byte, error) {
	// Blah blah blah outline blah escape analysis blah.
	var dst [RawPointSize]byte
	return v.getRawBytes(&dst)
}

func (v *Point) getRawBytes(dst *[RawPointSize]byte) ([]byte, error) {
	assertPointsValid(v)

	if v.IsIdentity() == 1 {
		return nil, errPointIsIdentity
	}

	scaled := newRcvr().rescale(v)

	buf := append(dst[:0], scaled.x.Bytes()...)
	buf = append(buf, scaled.y.Bytes()...)

	return buf, nil
}

// UncompressedBytes returns the SEC 1, Version 2.0, Section 2.3.3
// uncompressed encoding of `v`.
func (v *Point) UncompressedBytes() []byte {
	// Blah blah blah outline blah escape analysis blah.
	var dst [PointSize]byte
	return v.getUncompressedBytes(&dst)
}

func (v *Point) getUncompressedBytes(dst *[PointSize]byte) []byte {
	assertPointsValid(v)

	if v.IsIdentity() == 1 {
		return append(dst[:0], prefixIdentity)
	}

	scaled := newRcvr().rescale(v)

	buf := append(dst[:0], prefixUncompressed)
	buf = append(buf, scaled.x.Bytes()...)
	buf = append(buf, scaled.y.Bytes()...)

	return buf
}

// XBytes returns the SEC 1, Version 2.0, Section 2.3.5 encoding of the
// x-coordinate, or an error if the point is the point at infinity.
func (v *Point) XBytes() ([]byte, error) {
	assertPointsValid(v)

	if v.IsIdentity() == 1 {
		return nil, errPointIsIdentity
	}

	// Blah blah blah outline blah escape analysis blah.
	var dst [CoordSize]byte
	return v.getXBytes(&dst)
}

func (v *Point) getXBytes(dst *[CoordSize]byte) ([]byte, error) {
	// Only the x-coordinate is needed, so skip the y rescale.
	zInv := field.NewElement().Invert(&v.z)
	zInv.Square(zInv)
	x := field.NewElement().Multiply(&v.x, zInv)

	return append(dst[:0], x.Bytes()...), nil
}

// SetRawBytes sets `v = src`, where `src` is a raw `X | Y` encoding of
// the point.  If either coordinate is not a canonical field element, or
// the point is not on the curve, SetRawBytes returns nil and an error,
// and the receiver is unchanged.
//
// As `b != 0`, the all-zero encoding is not on the curve, thus the
// point at infinity can not be represented.
func (v *Point) SetRawBytes(src *[RawPointSize]byte) (*Point, error) {
	xBytes := (*[field.ElementSize]byte)(src[0:32])
	x, err := field.NewElementFromCanonicalBytes(xBytes)
	if err != nil {
		return nil, errMalformedPoint
	}
	yBytes := (*[field.ElementSize]byte)(src[32:64])
	y, err := field.NewElementFromCanonicalBytes(yBytes)
	if err != nil {
		return nil, errMalformedPoint
	}

	// Check the points against the curve equation.
	if maybeYY(x).Equal(field.NewElement().Square(y)) == 0 {
		return nil, errPointNotOnCurve
	}

	v.x.Set(x)
	v.y.Set(y)
	v.z.One()
	v.isValid = true

	return v, nil
}

// SetBytes sets `v = src`, where `src` is a valid SEC 1, Version 2.0,
// Section 2.3.3 uncompressed encoding of the point, or the encoding of
// the point at infinity.  If `src` is not a valid encoding of `v`,
// SetBytes returns nil and an error, and the receiver is unchanged.
func (v *Point) SetBytes(src []byte) (*Point, error) {
	switch len(src) {
	case IdentityPointSize:
		if src[0] != prefixIdentity {
			break
		}

		v.Identity()
		return v, nil
	case PointSize:
		if src[0] != prefixUncompressed {
			break
		}

		return v.SetRawBytes((*[RawPointSize]byte)(src[1:]))
	}

	return nil, errMalformedPoint
}

// NewPointFromRawBytes creates a new Point from the raw `X | Y`
// encoding.
func NewPointFromRawBytes(src *[RawPointSize]byte) (*Point, error) {
	p, err := newRcvr().SetRawBytes(src)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// NewPointFromBytes creates a new Point from the SEC 1 uncompressed
// encoding.
func NewPointFromBytes(src []byte) (*Point, error) {
	p, err := newRcvr().SetBytes(src)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// maybeYY returns `x^3 - 3x + b`.
func maybeYY(x *field.Element) *field.Element {
	yy := field.NewElement().Square(x)
	yy.Multiply(yy, x)

	threeX := field.NewElement().Add(x, x)
	threeX.Add(threeX, x)
	yy.Subtract(yy, threeX)

	yy.Add(yy, feB)
	return yy
}
