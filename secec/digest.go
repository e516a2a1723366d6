// Copyright 2026 The p256-voi Authors.  All Rights Reserved.
//
// p256-voi can be used in projects of any kind.  Redistribution and use
// in source and binary forms, with or without modification, are
// permitted provided that this notice is retained.

package secec

import (
	"fmt"
	"io"

	sha256simd "github.com/minio/sha256-simd"

	"gitlab.com/p256-voi/p256-voi"
)

// minDigestSize is the smallest pre-computed digest that is accepted,
// where "at least 128-bits" is somewhat arbitrarily defined as
// "sensible".
const minDigestSize = 16

// digestMessage returns `SHA-256(msg)`.  A nil `msg` is the empty
// message.
func digestMessage(msg []byte) []byte {
	h := sha256simd.Sum256(msg)
	return h[:]
}

// digestReader returns `SHA-256` of everything read from `r` until
// `io.EOF`, without buffering the message.
func digestReader(r io.Reader) ([]byte, error) {
	h := sha256simd.New()
	if _, err := io.Copy(h, r); err != nil {
		return nil, fmt.Errorf("p256/secec: failed to read message: %w", err)
	}

	return h.Sum(nil), nil
}

// hashToScalar converts a hash to a scalar per SEC 1, Version 2.0,
// Section 4.1.4, Step 3.
//
// Note: This also will reduce the resulting scalar such that it is
// in the range [0, n), which is fine for ECDSA.
func hashToScalar(hash []byte) *p256.Scalar {
	// TLDR; The left-most Ln-bits of hash.
	var (
		tmp    [p256.ScalarSize]byte
		offset = 0
	)
	if hLen := len(hash); hLen < p256.ScalarSize {
		offset = p256.ScalarSize - hLen
	}
	copy(tmp[offset:], hash)

	s, _ := p256.NewScalar().SetBytes(&tmp) // Reduction info unneeded.
	return s
}
