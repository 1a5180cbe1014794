package precompute_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fuellabs/gpu-sigops/internal/curve/secp256k1"
	"github.com/fuellabs/gpu-sigops/internal/field"
	"github.com/fuellabs/gpu-sigops/internal/precompute"
	"github.com/fuellabs/gpu-sigops/internal/scalarmul"
)

func TestSecp256k1TablesMatchDoubleAndAdd(t *testing.T) {
	tables, m, err := precompute.Secp256k1Tables(13)
	require.NoError(t, err)
	require.Len(t, tables, scalarmul.CombChunks)
	for _, tbl := range tables {
		require.Len(t, tbl, scalarmul.CombTableSize)
	}

	gx, gy := secp256k1.GeneratorXY()
	x := field.FromStandardBytesBE(m, gx.Bytes())
	y := field.FromStandardBytesBE(m, gy.Bytes())
	g := secp256k1.FromAffine(m, x, y)
	identity := secp256k1.Identity(m)

	k := big.NewInt(424242)
	digits := scalarmul.ScalarDigitsBaseW(k)
	got := scalarmul.FixedBaseComb(tables, identity, func(i int) int { return digits[i] })
	want := scalarmul.DoubleAndAdd(g, identity, k, 256)

	gotX, gotY := secp256k1.Normalize(got)
	wantX, wantY := secp256k1.Normalize(want)
	require.True(t, field.Equal(gotX, wantX))
	require.True(t, field.Equal(gotY, wantY))
}

func TestSecp256k1TablesAreCachedPerWidth(t *testing.T) {
	t1, m1, err := precompute.Secp256k1Tables(13)
	require.NoError(t, err)
	t2, m2, err := precompute.Secp256k1Tables(13)
	require.NoError(t, err)
	require.Same(t, m1, m2)

	x1, y1 := secp256k1.Normalize(t1[0][0])
	x2, y2 := secp256k1.Normalize(t2[0][0])
	require.True(t, field.Equal(x1, x2))
	require.True(t, field.Equal(y1, y2))
}
