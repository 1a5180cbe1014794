package field_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fuellabs/gpu-sigops/internal/curve/secp256k1"
	"github.com/fuellabs/gpu-sigops/internal/field"
	"github.com/fuellabs/gpu-sigops/internal/limb"
)

func TestMontgomeryRoundTripAndArithmetic(t *testing.T) {
	for _, w := range []limb.Width{11, 12, 13, 14, 15} {
		m, err := secp256k1.NewFieldModulus(w)
		require.NoError(t, err)

		a := field.FromStandardBytesBE(m, big.NewInt(12345).Bytes())
		b := field.FromStandardBytesBE(m, big.NewInt(6789).Bytes())

		sum := field.Add(a, b)
		var want [32]byte
		big.NewInt(12345 + 6789).FillBytes(want[:])
		require.Equal(t, want, sum.ToStandardBytesBE(), "width %d", w)

		diff := field.Sub(sum, b)
		require.True(t, field.Equal(diff, a), "width %d sub", w)

		prod := field.Mul(a, b)
		var wantProd [32]byte
		big.NewInt(12345 * 6789).FillBytes(wantProd[:])
		require.Equal(t, wantProd, prod.ToStandardBytesBE(), "width %d mul", w)
	}
}

func TestInverseIdentity(t *testing.T) {
	m, err := secp256k1.NewFieldModulus(13)
	require.NoError(t, err)

	a := field.FromStandardBytesBE(m, big.NewInt(424242).Bytes())
	inv := field.Inverse(a)
	one := field.Mul(a, inv)

	var oneBytes [32]byte
	oneBytes[31] = 1
	require.Equal(t, oneBytes, one.ToStandardBytesBE())
}

func TestSqrtCase3Mod4(t *testing.T) {
	m, err := secp256k1.NewFieldModulus(13)
	require.NoError(t, err)

	a := field.FromStandardBytesBE(m, big.NewInt(16).Bytes())
	sq := field.Sqr(a)
	r0, r1, ok := field.SqrtCase3Mod4(sq)
	require.True(t, ok)
	require.True(t, field.Equal(r0, a) || field.Equal(r1, a))
}
