// Copyright 2026 The p256-voi Authors.  All Rights Reserved.
//
// p256-voi can be used in projects of any kind.  Redistribution and use
// in source and binary forms, with or without modification, are
// permitted provided that this notice is retained.

package p256

import (
	"crypto/elliptic"
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/p256-voi/p256-voi/internal/helpers"
)

const randomTestIters = 100

func TestPoint(t *testing.T) {
	t.Run("S11n", testPointS11n)
	t.Run("Add", testPointAdd)
	t.Run("Double", testPointDouble)
	t.Run("Equal", testPointEqual)
	t.Run("ScalarMult", testPointScalarMult)
	t.Run("ScalarBaseMult", testPointScalarBaseMult)
	t.Run("DoubleScalarMultBasepoint", testPointDoubleScalarMultBasepoint)
	t.Run("Params", testParams)
	t.Run("Uninitialized", func(t *testing.T) {
		require.Panics(t, func() {
			newRcvr().Double(newRcvr())
		}, "Double(uninitialized)")
		require.Panics(t, func() {
			NewGeneratorPoint().Equal(newRcvr())
		}, "Equal(uninitialized)")
	})
}

func testPointS11n(t *testing.T) {
	gUncompressed := helpers.MustBytesFromHex("046B17D1F2E12C4247F8BCE6E563A440F277037D812DEB33A0F4A13945D898C2964FE342E2FE1A7F9B8EE7EB4A7C0F9E162BCE33576B315ECECBB6406837BF51F5")

	t.Run("G uncompressed", func(t *testing.T) {
		p, err := NewPointFromBytes(gUncompressed)
		require.NoError(t, err, "NewPointFromBytes(gUncompressed)")
		requirePointDeepEquals(t, NewGeneratorPoint(), p, "G")

		gBytes := p.UncompressedBytes()
		require.Equal(t, gUncompressed, gBytes, "G")
	})
	t.Run("G raw", func(t *testing.T) {
		p, err := NewPointFromRawBytes((*[RawPointSize]byte)(gUncompressed[1:]))
		require.NoError(t, err, "NewPointFromRawBytes(gRaw)")
		requirePointDeepEquals(t, NewGeneratorPoint(), p, "G")

		gBytes, err := p.RawBytes()
		require.NoError(t, err, "RawBytes")
		require.Equal(t, gUncompressed[1:], gBytes, "G")

		xBytes, err := p.XBytes()
		require.NoError(t, err, "XBytes")
		require.Equal(t, gUncompressed[1:33], xBytes, "G.x")
	})
	t.Run("Identity", func(t *testing.T) {
		secIDBytes := []byte{prefixIdentity}

		idBytes := NewIdentityPoint().UncompressedBytes()
		require.Equal(t, secIDBytes, idBytes, "Identity")
		p, err := NewPointFromBytes(idBytes)
		require.NoError(t, err, "NewPointFromBytes(idUncompressed)")
		require.EqualValues(t, 1, p.IsIdentity(), "NewPointFromBytes(idUncompressed)")

		_, err = NewIdentityPoint().RawBytes()
		require.ErrorIs(t, err, errPointIsIdentity, "RawBytes(Identity)")
		_, err = NewIdentityPoint().XBytes()
		require.ErrorIs(t, err, errPointIsIdentity, "XBytes(Identity)")
	})
	t.Run("Non-affine", func(t *testing.T) {
		// 2G, computed in Jacobian coordinates, so Z != 1.
		p := NewGeneratorPoint()
		p.Double(p)

		expected := helpers.MustBytesFromHex("04" +
			"7cf27b188d034f7e8a52380304b51ac3c08969e277f21b35a60b48fc47669978" +
			"07775510db8ed040293d9ac69f7430dbba7dade63ce982299e04b79d227873d1")
		require.Equal(t, expected, p.UncompressedBytes(), "2G")

		xBytes, err := p.XBytes()
		require.NoError(t, err, "XBytes")
		require.Equal(t, expected[1:33], xBytes, "2G.x")
	})
	t.Run("Malformed", func(t *testing.T) {
		mustRaw := func(x, y string) *[RawPointSize]byte {
			var raw [RawPointSize]byte
			copy(raw[:32], helpers.MustArray32FromHex(x)[:])
			copy(raw[32:], helpers.MustArray32FromHex(y)[:])
			return &raw
		}
		gxHex, gyHex := "6b17d1f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c296", "4fe342e2fe1a7f9b8ee7eb4a7c0f9e162bce33576b315ececbb6406837bf51f5"
		pHex := "ffffffff00000001000000000000000000000000ffffffffffffffffffffffff"

		for _, tc := range []struct {
			name        string
			raw         *[RawPointSize]byte
			expectedErr error
		}{
			{"x = p", mustRaw(pHex, gyHex), errMalformedPoint},
			{"y = p", mustRaw(gxHex, pHex), errMalformedPoint},
			{"x = 2^256-1", mustRaw("ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", gyHex), errMalformedPoint},
			{"(0, 0)", mustRaw("00", "00"), errPointNotOnCurve},
			{"G.y + 1", mustRaw(gxHex, "4fe342e2fe1a7f9b8ee7eb4a7c0f9e162bce33576b315ececbb6406837bf51f6"), errPointNotOnCurve},
		} {
			t.Run(tc.name, func(t *testing.T) {
				p := NewGeneratorPoint()
				q, err := p.SetRawBytes(tc.raw)
				require.ErrorIs(t, err, tc.expectedErr, "SetRawBytes")
				require.Nil(t, q, "SetRawBytes")
				requirePointDeepEquals(t, NewGeneratorPoint(), p, "receiver unchanged")
			})
		}

		for _, tc := range []struct {
			name string
			b    []byte
		}{
			{"empty", nil},
			{"identity, bad prefix", []byte{0x04}},
			{"compressed", append([]byte{0x02}, gUncompressed[1:33]...)},
			{"bad prefix", append([]byte{0x06}, gUncompressed[1:]...)},
			{"truncated", gUncompressed[:64]},
		} {
			t.Run(tc.name, func(t *testing.T) {
				_, err := NewPointFromBytes(tc.b)
				require.ErrorIs(t, err, errMalformedPoint, "NewPointFromBytes")
			})
		}
	})
}

func testPointAdd(t *testing.T) {
	g, id := NewGeneratorPoint(), NewIdentityPoint()

	t.Run("G + id", func(t *testing.T) {
		requirePointEquals(t, g, newRcvr().Add(g, id), "G + id == G")
		requirePointEquals(t, g, newRcvr().Add(id, g), "id + G == G")
		require.EqualValues(t, 1, newRcvr().Add(id, id).IsIdentity(), "id + id == id")
	})
	t.Run("P + P", func(t *testing.T) {
		p := newRcvr().MustRandomize()
		requirePointEquals(t, newRcvr().Double(p), newRcvr().Add(p, p), "P + P == 2P")

		// Aliased.
		q := NewPointFrom(p)
		q.Add(q, q)
		requirePointEquals(t, newRcvr().Double(p), q, "P + P == 2P (aliased)")
	})
	t.Run("P + -P", func(t *testing.T) {
		p := newRcvr().MustRandomize()
		pNeg := newRcvr().Negate(p)
		require.EqualValues(t, 1, newRcvr().Add(p, pNeg).IsIdentity(), "P + -P == id")
		require.EqualValues(t, 1, newRcvr().Subtract(p, p).IsIdentity(), "P - P == id")
	})
	t.Run("3G", func(t *testing.T) {
		g2 := newRcvr().Double(g)
		g3 := newRcvr().Add(g2, g)

		expected := helpers.MustBytesFromHex("04" +
			"5ecbe4d1a6330a44c8f7ef951d4bf165e6c6b721efada985fb41661bc6e7fd6c" +
			"8734640c4998ff7e374b06ce1a64a2ecd82ab036384fb83d9a79b127a27d5032")
		require.Equal(t, expected, g3.UncompressedBytes(), "2G + G")
		requirePointEquals(t, g2, newRcvr().Subtract(g3, g), "3G - G == 2G")
	})
	t.Run("Mixed", func(t *testing.T) {
		for i := 0; i < randomTestIters; i++ {
			p, q, g := newRcvr().MustRandomize(), NewIdentityPoint(), NewGeneratorPoint()
			for j := range generatorAffineTable {
				q.Add(q, g)
				expected := newRcvr().Add(p, q)
				actual := NewPointFrom(p).addMixed(p, &generatorAffineTable[j])
				requirePointEquals(t, expected, actual, fmt.Sprintf("[%d, %d]: P + %dG", i, j, j+1))
			}
		}

		// P = Q and P = -Q via the mixed path.
		g := NewGeneratorPoint()
		g2 := newRcvr().Double(g)
		requirePointEquals(t, g2, newRcvr().Set(g).addMixed(g, &generatorAffineTable[0]), "G + G (mixed)")
		gNeg := newRcvr().Negate(g)
		require.EqualValues(t, 1, newRcvr().Set(gNeg).addMixed(gNeg, &generatorAffineTable[0]).IsIdentity(), "-G + G (mixed)")
		requirePointEquals(t, g, NewIdentityPoint().addMixed(NewIdentityPoint(), &generatorAffineTable[0]), "id + G (mixed)")
	})
}

func testPointDouble(t *testing.T) {
	require.EqualValues(t, 1, newRcvr().Double(NewIdentityPoint()).IsIdentity(), "2 * id == id")

	// A Y = 0 point can not be on the curve, but the doubling routine
	// should still map it to the identity.
	p := NewGeneratorPoint()
	p.y.Zero()
	require.EqualValues(t, 1, newRcvr().Double(p).IsIdentity(), "2 * (x, 0) == id")
}

func testPointEqual(t *testing.T) {
	g, id := NewGeneratorPoint(), NewIdentityPoint()

	require.EqualValues(t, 1, g.Equal(g), "G == G")
	require.EqualValues(t, 1, id.Equal(id), "id == id")
	require.EqualValues(t, 0, g.Equal(id), "G != id")
	require.EqualValues(t, 0, id.Equal(g), "id != G")
	require.EqualValues(t, 0, g.Equal(newRcvr().Negate(g)), "G != -G")

	// Same point, different Z.
	g4a := newRcvr().Double(g)
	g4a.Double(g4a)
	g4b := newRcvr().Add(g, g)
	g4b.Add(g4b, g)
	g4b.Add(g4b, g)
	require.EqualValues(t, 1, g4a.Equal(g4b), "2(2G) == G+G+G+G")

	// Identity points with differing X, Y.
	idAlt := newRcvr().Set(g)
	idAlt.z.Zero()
	require.EqualValues(t, 1, id.Equal(idAlt), "id == (Gx, Gy, 0)")
}

func testPointScalarMult(t *testing.T) {
	t.Run("0 * G", func(t *testing.T) {
		g := NewGeneratorPoint()
		s := NewScalar()

		q := newRcvr().ScalarMultVartime(s, g)

		require.EqualValues(t, 1, q.IsIdentity(), "0 * G == id, got %+v", q)
	})
	t.Run("1 * G", func(t *testing.T) {
		g := NewGeneratorPoint()

		q := newRcvr().ScalarMultVartime(scOne, g)

		requirePointEquals(t, g, q, "1 * G = G")
	})
	t.Run("2 * G", func(t *testing.T) {
		g := NewGeneratorPoint()
		s := newScalarFromSaturated(0, 0, 0, 2)

		q := newRcvr().ScalarMultVartime(s, g)
		g.Double(g)

		requirePointEquals(t, g, q, "2 * G = G + G")
	})
	t.Run("(n-1) * G", func(t *testing.T) {
		g := NewGeneratorPoint()
		s := NewScalar().Negate(scOne)

		q := newRcvr().ScalarMultVartime(s, g)

		requirePointEquals(t, newRcvr().Negate(g), q, "(n-1) * G = -G")
	})
	t.Run("KAT", func(t *testing.T) {
		aUncompressed := helpers.MustBytesFromHex("04" + "6c307b810603e8597b646c7fb86266764001d3d4003df779466230f6a5b8bb5c8f1102d1de359969ecb169ff56c681eb91351b4e82285e118ef846184d3fdc4c")
		a, err := NewPointFromBytes(aUncompressed)
		require.NoError(t, err, "NewPointFromBytes(aUncompressed)")

		xn := NewScalarFromCanonicalHex("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef")

		bUncompressed := helpers.MustBytesFromHex("04" + "7c2e8c0e56bccff0cdbbfea5ae894f78ae1a4f7de74ad6dc47e0f10cfdd9bc8dcbf3252cb749f050bc66570ce86bb07d3b36d09a78f35509c5045da73927502e")
		bExpected, err := NewPointFromBytes(bUncompressed)
		require.NoError(t, err, "NewPointFromBytes(bUncompressed)")

		aXn := newRcvr().ScalarMultVartime(xn, a)

		requirePointEquals(t, bExpected, aXn, "xn * a == b")
	})
	t.Run("Consistency", func(t *testing.T) {
		var s Scalar
		check := newRcvr().MustRandomize()
		p1 := NewPointFrom(check)
		for i := 0; i < randomTestIters; i++ {
			s.MustRandomize()
			check := check.scalarMultTrivial(&s, check)
			p1.ScalarMultVartime(&s, p1)

			requirePointEquals(t, check, p1, fmt.Sprintf("[%d]: s * check (trivial) == s * p1", i))
		}
	})
	t.Run("crypto/elliptic", func(t *testing.T) {
		curve := elliptic.P256()
		for i := 0; i < randomTestIters; i++ {
			s := NewScalar().MustRandomize()
			p := newRcvr().MustRandomize()

			pRaw, err := p.RawBytes()
			require.NoError(t, err)
			x, y := new(big.Int).SetBytes(pRaw[:32]), new(big.Int).SetBytes(pRaw[32:])
			ex, ey := curve.ScalarMult(x, y, s.Bytes()) //nolint:staticcheck

			q := newRcvr().ScalarMultVartime(s, p)
			requirePointEqualsBig(t, ex, ey, q, fmt.Sprintf("[%d]: s * P", i))
		}
	})
}

func testPointScalarBaseMult(t *testing.T) {
	t.Run("0 * G", func(t *testing.T) {
		s := NewScalar()

		q := newRcvr().ScalarBaseMultVartime(s)

		require.EqualValues(t, 1, q.IsIdentity(), "0 * G == id, got %+v", q)
	})
	t.Run("1 * G", func(t *testing.T) {
		g := NewGeneratorPoint()

		q := newRcvr().ScalarBaseMultVartime(scOne)

		requirePointEquals(t, g, q, "1 * G == G")
	})
	t.Run("2 * G", func(t *testing.T) {
		g := NewGeneratorPoint()
		s := newScalarFromSaturated(0, 0, 0, 2)

		q := newRcvr().ScalarBaseMultVartime(s)
		g.Double(g)

		requirePointEquals(t, g, q, "2 * G = G + G")
	})
	t.Run("Consistency", func(t *testing.T) {
		var s Scalar
		check, p1, g := newRcvr(), newRcvr(), NewGeneratorPoint()
		for i := 0; i < randomTestIters; i++ {
			s.MustRandomize()
			check.scalarMultTrivial(&s, g)
			p1.ScalarBaseMultVartime(&s)

			requirePointEquals(t, check, p1, fmt.Sprintf("[%d]: s * G (trivial) != s * G", i))
		}
	})
	t.Run("crypto/elliptic", func(t *testing.T) {
		curve := elliptic.P256()
		for i := 0; i < randomTestIters; i++ {
			s := NewScalar().MustRandomize()
			ex, ey := curve.ScalarBaseMult(s.Bytes()) //nolint:staticcheck

			q := newRcvr().ScalarBaseMultVartime(s)
			requirePointEqualsBig(t, ex, ey, q, fmt.Sprintf("[%d]: s * G", i))
		}
	})
}

func testPointDoubleScalarMultBasepoint(t *testing.T) {
	t.Run("0 * G + 0 * P", func(t *testing.T) {
		p := newRcvr().MustRandomize()
		q := newRcvr().DoubleScalarMultBasepointVartime(NewScalar(), NewScalar(), p)
		require.EqualValues(t, 1, q.IsIdentity(), "0 * G + 0 * P == id")
	})
	t.Run("u * G + (-u) * G", func(t *testing.T) {
		u := NewScalar().MustRandomize()
		uNeg := NewScalar().Negate(u)
		q := newRcvr().DoubleScalarMultBasepointVartime(u, uNeg, NewGeneratorPoint())
		require.EqualValues(t, 1, q.IsIdentity(), "u * G - u * G == id")
	})
	t.Run("Consistency", func(t *testing.T) {
		var u1, u2 Scalar
		for i := 0; i < randomTestIters; i++ {
			u1.MustRandomize()
			u2.MustRandomize()
			p := newRcvr().MustRandomize()

			u1g := newRcvr().ScalarBaseMultVartime(&u1)
			u2p := newRcvr().ScalarMultVartime(&u2, p)
			expected := newRcvr().Add(u1g, u2p)

			// Aliased.
			p.DoubleScalarMultBasepointVartime(&u1, &u2, p)

			requirePointEquals(t, expected, p, fmt.Sprintf("[%d]: u1 * G + u2 * P", i))
		}
	})
	t.Run("P = G", func(t *testing.T) {
		// Every intermediate addition hits the P = Q and P = -Q paths
		// with reasonable probability when both tables are G's.
		for i := 0; i < randomTestIters; i++ {
			u1 := newScalarFromSaturated(0, 0, 0, uint64(i))
			u2 := newScalarFromSaturated(0, 0, 0, uint64(i*7))
			q := newRcvr().DoubleScalarMultBasepointVartime(u1, u2, NewGeneratorPoint())
			expected := newRcvr().ScalarBaseMultVartime(newScalarFromSaturated(0, 0, 0, uint64(i*8)))
			requirePointEquals(t, expected, q, fmt.Sprintf("%d * G + %d * G", i, i*7))
		}
	})
}

func testParams(t *testing.T) {
	params := Params()
	require.Equal(t, "P-256", params.Name)
	require.Equal(t, 256, params.BitSize)

	ecParams := elliptic.P256().Params()
	for _, v := range []struct {
		name     string
		b        [32]byte
		expected *big.Int
	}{
		{"P", params.P, ecParams.P},
		{"N", params.N, ecParams.N},
		{"B", params.B, ecParams.B},
		{"Gx", params.Gx, ecParams.Gx},
		{"Gy", params.Gy, ecParams.Gy},
		{"A", params.A, new(big.Int).Sub(ecParams.P, big.NewInt(3))},
	} {
		require.Zero(t, v.expected.Cmp(new(big.Int).SetBytes(v.b[:])), "Params().%s", v.name)
	}

	require.Equal(t, NewGeneratorPoint().UncompressedBytes()[1:33], params.Gx[:], "Gx")

	// Params returns a copy.
	params.P[0] = 0
	require.EqualValues(t, 0xff, Params().P[0], "Params() is immutable")
}

func BenchmarkPoint(b *testing.B) {
	b.Run("Add", func(b *testing.B) {
		p, q := newRcvr().MustRandomize(), newRcvr().MustRandomize()
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			p.Add(p, q)
		}
	})
	b.Run("Add/Mixed", func(b *testing.B) {
		p := newRcvr().MustRandomize()
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			p.addMixed(p, &generatorAffineTable[0])
		}
	})
	b.Run("Double", func(b *testing.B) {
		p := NewGeneratorPoint()
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			p.Double(p)
		}
	})
	b.Run("ScalarMultVartime", func(b *testing.B) {
		var s Scalar
		q := NewGeneratorPoint()
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			b.StopTimer()
			s.MustRandomize()
			b.StartTimer()

			q.ScalarMultVartime(&s, q)
		}
	})
	b.Run("ScalarBaseMultVartime", func(b *testing.B) {
		var s Scalar
		q := NewGeneratorPoint()
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			b.StopTimer()
			s.MustRandomize()
			b.StartTimer()

			q.ScalarBaseMultVartime(&s)
		}
	})
	b.Run("DoubleScalarMultBasepointVartime", func(b *testing.B) {
		var u1, u2 Scalar
		q := newRcvr().MustRandomize()
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			b.StopTimer()
			u1.MustRandomize()
			u2.MustRandomize()
			b.StartTimer()

			q.DoubleScalarMultBasepointVartime(&u1, &u2, q)
		}
	})
	b.Run("UncompressedBytes", func(b *testing.B) {
		p := newRcvr().MustRandomize()
		p.Double(p)
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			_ = p.UncompressedBytes()
		}
	})
}

func (v *Point) MustRandomize() *Point {
	s := NewScalar().MustRandomize()
	return v.ScalarBaseMultVartime(s)
}

func requirePointDeepEquals(t *testing.T, expected, actual *Point, descr string) {
	assertPointsValid(expected, actual)
	require.Equal(t, expected.x.Bytes(), actual.x.Bytes(), "%s X (%x %x)", descr, expected.x.Bytes(), actual.x.Bytes())
	require.Equal(t, expected.y.Bytes(), actual.y.Bytes(), "%s Y (%x %x)", descr, expected.y.Bytes(), actual.y.Bytes())
	require.Equal(t, expected.z.Bytes(), actual.z.Bytes(), "%s Z (%x %x)", descr, expected.z.Bytes(), actual.z.Bytes())
	require.EqualValues(t, 1, expected.Equal(actual), descr) // For good measure.
}

func requirePointEquals(t *testing.T, expected, actual *Point, descr string) {
	assertPointsValid(expected, actual)
	require.EqualValues(t, 1, expected.Equal(actual), descr)

	expectedScaled := newRcvr().rescale(expected)
	actualScaled := newRcvr().rescale(actual)
	requirePointDeepEquals(t, expectedScaled, actualScaled, descr)
}

func requirePointEqualsBig(t *testing.T, x, y *big.Int, actual *Point, descr string) {
	var expected [RawPointSize]byte
	x.FillBytes(expected[:32])
	y.FillBytes(expected[32:])

	actualBytes, err := actual.RawBytes()
	require.NoError(t, err, descr)
	require.Equal(t, expected[:], actualBytes, descr)
}

func (v *Point) scalarMultTrivial(s *Scalar, p *Point) *Point {
	// This is slow but trivially correct, and is used for
	// cross-checking results of the more sophisticated
	// implementations.

	// Double and add (decreasing index).
	//
	// From https://bearssl.org/constanttime.html:
	// 1. Set Q = 0 (the “point at infinity”)
	// 2. Compute Q ← 2·Q
	// 3. If next bit of n is set, then add P to Q
	// 4. Loop to step 2 until end of multiplier is reached
	q := NewIdentityPoint()
	for _, b := range s.Bytes() {
		for i := 7; i >= 0; i-- {
			q.Double(q)
			if (b>>i)&1 == 1 {
				q.Add(q, p)
			}
		}
	}

	return v.Set(q)
}
