// Copyright 2026 The p256-voi Authors.  All Rights Reserved.
//
// p256-voi can be used in projects of any kind.  Redistribution and use
// in source and binary forms, with or without modification, are
// permitted provided that this notice is retained.

// Package disalloweq provides a method for disallowing struct comparisons
// with the `==` operator.
package disalloweq

// DisallowEqual can be embedded in a struct to cause the compiler to
// reject attempts to compare it with the `==` operator.  Field elements,
// scalars and points are compared with their `Equal` methods instead,
// as the limbs are in the Montgomery domain and points are projective.
//
// See: https://twitter.com/bradfitz/status/860145039573385216
type DisallowEqual [0]func()
