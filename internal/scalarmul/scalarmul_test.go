package scalarmul_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fuellabs/gpu-sigops/internal/curve/secp256k1"
	"github.com/fuellabs/gpu-sigops/internal/field"
	"github.com/fuellabs/gpu-sigops/internal/limb"
	"github.com/fuellabs/gpu-sigops/internal/scalarmul"
)

func secp256k1Generator(t *testing.T, m *field.Modulus) secp256k1.Projective {
	t.Helper()
	gx, gy := secp256k1.GeneratorXY()
	x := field.FromStandardBytesBE(m, gx.Bytes())
	y := field.FromStandardBytesBE(m, gy.Bytes())
	return secp256k1.FromAffine(m, x, y)
}

func TestDoubleAndAddMatchesRepeatedAddition(t *testing.T) {
	m, err := secp256k1.NewFieldModulus(13)
	require.NoError(t, err)
	g := secp256k1Generator(t, m)
	identity := secp256k1.Identity(m)

	got := scalarmul.DoubleAndAdd(g, identity, big.NewInt(5), limb.BitLength)

	acc := g.Double()
	for i := 0; i < 3; i++ {
		acc = acc.AddUnsafe(g)
	}
	wantX, wantY := secp256k1.Normalize(acc)
	gotX, gotY := secp256k1.Normalize(got)
	require.True(t, field.Equal(wantX, gotX))
	require.True(t, field.Equal(wantY, gotY))
}

func TestStraussShamirMatchesSeparateMultiplies(t *testing.T) {
	m, err := secp256k1.NewFieldModulus(13)
	require.NoError(t, err)
	g := secp256k1Generator(t, m)
	identity := secp256k1.Identity(m)

	k1 := big.NewInt(7)
	k2 := big.NewInt(11)

	combined := scalarmul.StraussShamir(g, k1, g, k2, identity, limb.BitLength)

	part1 := scalarmul.DoubleAndAdd(g, identity, k1, limb.BitLength)
	part2 := scalarmul.DoubleAndAdd(g, identity, k2, limb.BitLength)
	want := part1.AddUnsafe(part2)

	wx, wy := secp256k1.Normalize(want)
	cx, cy := secp256k1.Normalize(combined)
	require.True(t, field.Equal(wx, cx))
	require.True(t, field.Equal(wy, cy))
}

func TestFixedBaseCombMatchesDoubleAndAdd(t *testing.T) {
	m, err := secp256k1.NewFieldModulus(13)
	require.NoError(t, err)
	g := secp256k1Generator(t, m)
	identity := secp256k1.Identity(m)

	tables := make([][]secp256k1.Projective, scalarmul.CombChunks)
	cur := g
	for i := 0; i < scalarmul.CombChunks; i++ {
		tables[i] = scalarmul.BuildCombTable[secp256k1.Projective](cur)
		for j := 0; j < scalarmul.CombWindow; j++ {
			cur = cur.Double()
		}
	}

	k := big.NewInt(123456789)
	digits := scalarmul.ScalarDigitsBaseW(k)
	got := scalarmul.FixedBaseComb(tables, identity, func(i int) int { return digits[i] })
	want := scalarmul.DoubleAndAdd(g, identity, k, limb.BitLength)

	gx, gy := secp256k1.Normalize(got)
	wx, wy := secp256k1.Normalize(want)
	require.True(t, field.Equal(gx, wx))
	require.True(t, field.Equal(gy, wy))
}
