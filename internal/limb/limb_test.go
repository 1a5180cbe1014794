package limb

import (
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestFromToUint256RoundTrip(t *testing.T) {
	for _, w := range []Width{11, 12, 13, 14, 15} {
		p, err := NewParams(w)
		require.NoError(t, err)

		v := new(uint256.Int).SetAllOne()
		limbs := p.FromUint256(v)
		got := p.ToUint256(limbs)
		require.True(t, got.Eq(v), "width %d round trip mismatch", w)
	}
}

func TestAddWideAndSub(t *testing.T) {
	p, err := NewParams(13)
	require.NoError(t, err)

	a := p.FromUint256(uint256.NewInt(12345))
	b := p.FromUint256(uint256.NewInt(6789))

	sum := p.AddWide(a, b)
	sumTrunc := sum[:p.L]
	got := p.ToUint256(sumTrunc)
	require.Equal(t, uint64(12345+6789), got.Uint64())

	diff := p.Sub(a, b)
	require.Equal(t, uint64(12345-6789), p.ToUint256(diff).Uint64())
}

func TestGte(t *testing.T) {
	p, err := NewParams(12)
	require.NoError(t, err)
	a := p.FromUint256(uint256.NewInt(100))
	b := p.FromUint256(uint256.NewInt(99))
	require.True(t, Gte(a, b))
	require.False(t, Gte(b, a))
	require.True(t, Gte(a, a))
}

func TestShr384(t *testing.T) {
	p, err := NewParams(13)
	require.NoError(t, err)

	big512 := new(big.Int).Lsh(big.NewInt(1), 400)
	limbs := p.bigToLimbs(big512, 2*p.L)
	shifted := p.Shr384(limbs)
	want := new(big.Int).Rsh(big512, 384)
	require.Equal(t, want, p.limbsToBig(shifted))
}
