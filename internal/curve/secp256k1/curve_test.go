package secp256k1_test

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fuellabs/gpu-sigops/internal/curve/secp256k1"
	"github.com/fuellabs/gpu-sigops/internal/field"
	"github.com/fuellabs/gpu-sigops/internal/scalarmul"
)

func TestGeneratorRecoversItself(t *testing.T) {
	m, err := secp256k1.NewFieldModulus(13)
	require.NoError(t, err)

	gx, gy := secp256k1.GeneratorXY()
	gxE := field.FromStandardBytesBE(m, gx.Bytes())
	gyE := field.FromStandardBytesBE(m, gy.Bytes())

	y0, y1, ok := secp256k1.RecoverY(m, gxE)
	require.True(t, ok)
	require.True(t, field.Equal(y0, gyE) || field.Equal(y1, gyE))
}

// TestScalarOneTimesGeneratorIsGenerator is the classic privkey=1
// sanity vector: 1*G compresses to
// 0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798.
func TestScalarOneTimesGeneratorIsGenerator(t *testing.T) {
	m, err := secp256k1.NewFieldModulus(13)
	require.NoError(t, err)

	gx, gy := secp256k1.GeneratorXY()
	gxE := field.FromStandardBytesBE(m, gx.Bytes())
	gyE := field.FromStandardBytesBE(m, gy.Bytes())
	g := secp256k1.FromAffine(m, gxE, gyE)

	identity := secp256k1.Identity(m)
	result := scalarmul.DoubleAndAdd(g, identity, big.NewInt(1), 256)

	x, y := secp256k1.Normalize(result)
	require.True(t, field.Equal(x, gxE))
	require.True(t, field.Equal(y, gyE))

	compressed := compress(x, y)
	want, err := hex.DecodeString("0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798")
	require.NoError(t, err)
	require.Equal(t, want, compressed)
}

func compress(x, y field.Element) []byte {
	xb := x.ToStandardBytesBE()
	out := make([]byte, 33)
	if y.IsOdd() {
		out[0] = 0x03
	} else {
		out[0] = 0x02
	}
	copy(out[1:], xb[:])
	return out
}
