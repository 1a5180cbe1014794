package sha512block_test

import (
	"crypto/sha512"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fuellabs/gpu-sigops/internal/sha512block"
)

func TestHashRAMMatchesDirectSHA512(t *testing.T) {
	r := []byte("r-component-placeholder-32-byte")
	a := []byte("public-key-placeholder-32-bytes")
	m := []byte("hello world")

	got := sha512block.HashRAM(r, a, m)

	h := sha512.New()
	h.Write(r)
	h.Write(a)
	h.Write(m)
	var want [64]byte
	copy(want[:], h.Sum(nil))

	require.Equal(t, want, got)
}

func TestReduceModLReducesLittleEndianDigest(t *testing.T) {
	l := big.NewInt(97)
	digest := make([]byte, 64)
	digest[0] = 250 // little-endian least-significant byte = 250

	got := sha512block.ReduceModL(digest, l)
	require.Equal(t, big.NewInt(250%97), got)
}

func TestReduceModLHandlesFullWidthDigest(t *testing.T) {
	l := new(big.Int).Lsh(big.NewInt(1), 252)
	digest := make([]byte, 64)
	for i := range digest {
		digest[i] = byte(i + 1)
	}
	got := sha512block.ReduceModL(digest, l)
	require.True(t, got.Cmp(l) < 0)
	require.True(t, got.Sign() >= 0)
}
