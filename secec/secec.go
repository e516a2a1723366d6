// Copyright 2026 The p256-voi Authors.  All Rights Reserved.
//
// p256-voi can be used in projects of any kind.  Redistribution and use
// in source and binary forms, with or without modification, are
// permitted provided that this notice is retained.

// Package secec implements ECDSA signature verification over P-256 with
// SHA-256, with an API that is close to the runtime library's
// `crypto/ecdsa` package.
//
// Every verification routine reports one of three outcomes: `Valid`,
// `Invalid` (a well-formed signature that does not verify), or `BadArg`
// (a missing or malformed input).
package secec

import (
	"crypto"
	"errors"
	"fmt"

	"gitlab.com/p256-voi/p256-voi"
	"gitlab.com/p256-voi/p256-voi/internal/disalloweq"
)

// PublicKeySize is the size of a raw `X | Y` public key in bytes.
const PublicKeySize = p256.RawPointSize

// PublicKey is a P-256 public key.
type PublicKey struct {
	_ disalloweq.DisallowEqual

	point    *p256.Point // INVARIANT: Never identity
	rawBytes []byte      // Raw `X | Y` encoding
}

// Bytes returns a copy of the raw `X | Y` encoding of the public key.
func (k *PublicKey) Bytes() []byte {
	k.assertInitialized()

	var tmp [PublicKeySize]byte
	copy(tmp[:], k.rawBytes)
	return tmp[:]
}

// UncompressedBytes returns a copy of the SEC 1, Version 2.0, Section
// 2.3.3 uncompressed encoding of the public key.
func (k *PublicKey) UncompressedBytes() []byte {
	k.assertInitialized()
	return k.point.UncompressedBytes()
}

// ASN1Bytes returns a copy of the ASN.1 encoding of the public key,
// as specified in SEC 1, Version 2.0, Appendix C.3.
func (k *PublicKey) ASN1Bytes() []byte {
	k.assertInitialized()
	return buildASN1PublicKey(k)
}

// Point returns a copy of the point underlying `k`.
func (k *PublicKey) Point() *p256.Point {
	k.assertInitialized()
	return p256.NewIdentityPoint().Set(k.point)
}

// Equal returns whether `x` represents the same public key as `k`.
func (k *PublicKey) Equal(x crypto.PublicKey) bool {
	k.assertInitialized()
	other, ok := x.(*PublicKey)
	if !ok {
		return false
	}
	other.assertInitialized()

	return other.point.Equal(k.point) == 1
}

func (k *PublicKey) assertInitialized() {
	if k == nil || k.point == nil || k.rawBytes == nil {
		panic("p256/secec: uninitialized public key")
	}
}

// NewPublicKey checks that `key` is valid and returns a PublicKey.
//
// Both the raw 64-byte `X | Y` encoding and the 65-byte SEC 1, Version
// 2.0, Section 2.3.3 uncompressed encoding are accepted.  The point at
// infinity is rejected.
func NewPublicKey(key []byte) (*PublicKey, error) {
	var (
		pt  *p256.Point
		err error
	)
	switch len(key) {
	case PublicKeySize:
		pt, err = p256.NewPointFromRawBytes((*[PublicKeySize]byte)(key))
	default:
		pt, err = p256.NewPointFromBytes(key)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidPublicKey, err)
	}

	return newPublicKeyFromPoint(pt)
}

// NewPublicKeyFromPoint checks that `point` is valid, and returns a PublicKey.
func NewPublicKeyFromPoint(point *p256.Point) (*PublicKey, error) {
	return newPublicKeyFromPoint(p256.NewPointFrom(point))
}

func newPublicKeyFromPoint(pt *p256.Point) (*PublicKey, error) {
	rawBytes, err := pt.RawBytes()
	if err != nil {
		return nil, errAIsInfinity
	}

	return &PublicKey{
		point:    pt,
		rawBytes: rawBytes,
	}, nil
}

func newPublicKeyFromRaw(key *[PublicKeySize]byte) (*PublicKey, error) {
	if key == nil {
		return nil, errMissingArgument
	}

	pt, err := p256.NewPointFromRawBytes(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidPublicKey, err)
	}

	// The raw encoding can not represent the point at infinity, so
	// this is just a copy.
	return newPublicKeyFromPoint(pt)
}

var (
	errMissingArgument  = errors.New("p256/secec: missing argument")
	errInvalidPublicKey = errors.New("p256/secec: invalid public key")
	errAIsInfinity      = errors.New("p256/secec: public key is the point at infinity")
)
