package ed25519_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	stded25519 "golang.org/x/crypto/ed25519"

	"github.com/fuellabs/gpu-sigops/internal/curve/ed25519"
	"github.com/fuellabs/gpu-sigops/internal/field"
)

func TestDecompressCompressRoundTrip(t *testing.T) {
	m, err := ed25519.NewFieldModulus(13)
	require.NoError(t, err)

	pub, _, err := stded25519.GenerateKey(nil)
	require.NoError(t, err)

	var compressed [32]byte
	copy(compressed[:], pub)

	p, err := ed25519.DecompressBytes(m, compressed)
	require.NoError(t, err)

	x, y := ed25519.Normalize(p)
	got := ed25519.CompressXY(x, y)
	require.Equal(t, compressed, got)
}

func TestGeneratorIsOnCurve(t *testing.T) {
	m, err := ed25519.NewFieldModulus(13)
	require.NoError(t, err)

	gx, gy := ed25519.GeneratorXY()
	x := field.FromStandardBytesBE(m, gx.Bytes())
	y := field.FromStandardBytesBE(m, gy.Bytes())
	compressed := ed25519.CompressXY(x, y)

	p, err := ed25519.DecompressBytes(m, compressed)
	require.NoError(t, err)
	gotX, gotY := ed25519.Normalize(p)
	require.True(t, field.Equal(gotX, x))
	require.True(t, field.Equal(gotY, y))
}
