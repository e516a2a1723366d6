// Copyright 2026 The p256-voi Authors.  All Rights Reserved.
//
// p256-voi can be used in projects of any kind.  Redistribution and use
// in source and binary forms, with or without modification, are
// permitted provided that this notice is retained.

package secec

import (
	stdasn1 "encoding/asn1"
	"errors"
	"fmt"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"

	"gitlab.com/p256-voi/p256-voi"
)

var (
	oidEcPublicKey = stdasn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}
	oidPrime256v1  = stdasn1.ObjectIdentifier{1, 2, 840, 10045, 3, 1, 7}

	errInvalidASN1PublicKey = errors.New("p256/secec: malformed ASN.1 Subject Public Key Info")
	errInvalidASN1Signature = errors.New("p256/secec: malformed ASN.1 signature")
)

// ParseASN1PublicKey parses a ASN.1 encoded public key as specified in
// SEC 1, Version 2.0, Appendix C.3.
//
// WARNING: This only supports `id-ecPublicKey` with the `prime256v1`
// named curve, and the uncompressed point encoding.  Explicit curve
// parameters are rejected.
func ParseASN1PublicKey(data []byte) (*PublicKey, error) {
	var (
		inner     cryptobyte.String
		algorithm cryptobyte.String

		subjectPublicKey       stdasn1.BitString
		oidAlgorithm, oidCurve stdasn1.ObjectIdentifier
	)

	input := cryptobyte.String(data)
	if !input.ReadASN1(&inner, asn1.SEQUENCE) ||
		!input.Empty() ||
		!inner.ReadASN1(&algorithm, asn1.SEQUENCE) ||
		!inner.ReadASN1BitString(&subjectPublicKey) ||
		!inner.Empty() ||
		!algorithm.ReadASN1ObjectIdentifier(&oidAlgorithm) ||
		!algorithm.ReadASN1ObjectIdentifier(&oidCurve) ||
		!algorithm.Empty() {
		return nil, errInvalidASN1PublicKey
	}

	if !oidAlgorithm.Equal(oidEcPublicKey) {
		return nil, fmt.Errorf("%w: algorithm is not ecPublicKey", errInvalidASN1PublicKey)
	}
	if !oidCurve.Equal(oidPrime256v1) {
		return nil, fmt.Errorf("%w: named curve is not prime256v1", errInvalidASN1PublicKey)
	}

	encodedPoint := subjectPublicKey.RightAlign()
	if len(encodedPoint) != p256.PointSize {
		// NewPublicKey also accepts the raw encoding, which is not
		// valid here.
		return nil, fmt.Errorf("%w: point is not uncompressed", errInvalidASN1PublicKey)
	}
	return NewPublicKey(encodedPoint)
}

func buildASN1PublicKey(k *PublicKey) []byte {
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
			b.AddASN1ObjectIdentifier(oidEcPublicKey)
			b.AddASN1ObjectIdentifier(oidPrime256v1)
		})
		b.AddASN1BitString(k.point.UncompressedBytes())
	})

	return b.BytesOrPanic()
}

func parseASN1Signature(data []byte) ([]byte, []byte, error) {
	var (
		inner          cryptobyte.String
		rBytes, sBytes []byte
	)

	input := cryptobyte.String(data)
	if !input.ReadASN1(&inner, asn1.SEQUENCE) ||
		!input.Empty() ||
		!inner.ReadASN1Integer(&rBytes) ||
		!inner.ReadASN1Integer(&sBytes) ||
		!inner.Empty() {
		return nil, nil, errInvalidASN1Signature
	}

	return rBytes, sBytes, nil
}

func buildASN1Signature(r, s *p256.Scalar) []byte {
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		addASN1IntBytes(b, r.Bytes())
		addASN1IntBytes(b, s.Bytes())
	})

	return b.BytesOrPanic()
}

// addASN1IntBytes encodes in ASN.1 a positive integer represented as
// a big-endian byte slice with zero or more leading zeroes.
func addASN1IntBytes(b *cryptobyte.Builder, bytes []byte) {
	for len(bytes) > 0 && bytes[0] == 0 {
		bytes = bytes[1:]
	}
	if len(bytes) == 0 {
		b.SetError(errors.New("p256/secec: invalid integer"))
		return
	}
	b.AddASN1(asn1.INTEGER, func(c *cryptobyte.Builder) {
		if bytes[0]&0x80 != 0 {
			c.AddUint8(0)
		}
		c.AddBytes(bytes)
	})
}
