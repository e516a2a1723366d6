// Copyright 2026 The p256-voi Authors.  All Rights Reserved.
//
// p256-voi can be used in projects of any kind.  Redistribution and use
// in source and binary forms, with or without modification, are
// permitted provided that this notice is retained.

// Package helpers provides miscellaneous helpers shared by the field,
// scalar and point arithmetic.
package helpers

import (
	"encoding/binary"
	"encoding/hex"
	"strings"
)

// BytesToSaturated converts a 32-byte big-endian value to 4 little-endian
// 64-bit limbs.
func BytesToSaturated(src *[32]byte) [4]uint64 {
	return [4]uint64{
		binary.BigEndian.Uint64(src[24:]),
		binary.BigEndian.Uint64(src[16:]),
		binary.BigEndian.Uint64(src[8:]),
		binary.BigEndian.Uint64(src[0:]),
	}
}

// SaturatedToBytes converts 4 little-endian 64-bit limbs to a 32-byte
// big-endian value, and returns `dst[:]`.
func SaturatedToBytes(dst *[32]byte, l *[4]uint64) []byte {
	binary.BigEndian.PutUint64(dst[0:], l[3])
	binary.BigEndian.PutUint64(dst[8:], l[2])
	binary.BigEndian.PutUint64(dst[16:], l[1])
	binary.BigEndian.PutUint64(dst[24:], l[0])

	return dst[:]
}

// Uint64IsZero returns 1 iff `u == 0`, 0 otherwise.
func Uint64IsZero(u uint64) uint64 {
	return Uint64IsNonzero(u) ^ 1
}

// Uint64IsNonzero returns 1 iff `u != 0`, 0 otherwise.
func Uint64IsNonzero(u uint64) uint64 {
	return (u | -u) >> 63
}

// LimbsAreEqual returns 1 iff `a == b`, 0 otherwise.
func LimbsAreEqual(a, b *[4]uint64) uint64 {
	var ctrl uint64
	for i := range a {
		ctrl |= a[i] ^ b[i]
	}
	return Uint64IsZero(ctrl)
}

// MustBytesFromHex decodes a hex string, with or without a `0x` prefix,
// or panics.
func MustBytesFromHex(s string) []byte {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		panic(err)
	}
	return b
}

// MustArray32FromHex decodes a hex string into a 32-byte array, left
// padding as required, or panics.
func MustArray32FromHex(s string) *[32]byte {
	b := MustBytesFromHex(s)
	if len(b) > 32 {
		panic("helpers: hex value too large")
	}

	var dst [32]byte
	copy(dst[32-len(b):], b)
	return &dst
}
