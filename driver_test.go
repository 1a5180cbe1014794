package gpusigops_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"

	gpusigops "github.com/fuellabs/gpu-sigops"
	"github.com/fuellabs/gpu-sigops/internal/harness"
	"github.com/fuellabs/gpu-sigops/internal/pipeline"
)

func secp256k1FuelSignature(r, s *big.Int, yParity bool) gpusigops.Secp256k1Signature {
	var raw [64]byte
	r.FillBytes(raw[0:32])
	var sBytes [32]byte
	s.FillBytes(sBytes[:])
	if yParity {
		sBytes[0] |= 0x80
	}
	copy(raw[32:64], sBytes[:])
	return gpusigops.Secp256k1Signature(raw)
}

func TestEcrecoverSecp256k1WireFormat(t *testing.T) {
	rng := harness.NewRand()
	fixtures, err := harness.GenerateSecp256k1(rng, 2)
	require.NoError(t, err)

	sigs := make([]gpusigops.Secp256k1Signature, len(fixtures))
	hashes := make([][32]byte, len(fixtures))
	for i, f := range fixtures {
		sigs[i] = secp256k1FuelSignature(f.R, f.S, f.YParity)
		hashes[i] = f.MessageHash
	}

	out, err := gpusigops.EcrecoverSecp256k1(context.Background(), sigs, hashes, gpusigops.DefaultWidth)
	require.NoError(t, err)
	require.Len(t, out, len(fixtures))

	for i, f := range fixtures {
		var wantX, wantY [32]byte
		f.PubKeyX.FillBytes(wantX[:])
		f.PubKeyY.FillBytes(wantY[:])
		require.Equal(t, wantX[:], out[i][0:32], "signature %d x", i)
		require.Equal(t, wantY[:], out[i][32:64], "signature %d y", i)
	}
}

// TestEcrecoverSecp256k1E1RFC6979Vector is spec.md scenario E1: secret
// key 0x…01, RFC6979 ECDSA over the given message digest, recovering
// to the well-known secp256k1 generator point.
func TestEcrecoverSecp256k1E1RFC6979Vector(t *testing.T) {
	message := []byte("A beast can never be as cruel as a human being, so " +
		"artistically, so picturesquely cruel.")
	digest := sha256.Sum256(message)

	privBytes := make([]byte, 32)
	privBytes[31] = 1
	priv, _ := btcec.PrivKeyFromBytes(privBytes)

	compact := btcecdsa.SignCompact(priv, digest[:], false)
	header := compact[0]
	yParity := (header-27)&1 == 1
	r := new(big.Int).SetBytes(compact[1:33])
	s := new(big.Int).SetBytes(compact[33:65])

	sig := secp256k1FuelSignature(r, s, yParity)
	out, err := gpusigops.EcrecoverSecp256k1(context.Background(),
		[]gpusigops.Secp256k1Signature{sig}, [][32]byte{digest}, gpusigops.DefaultWidth)
	require.NoError(t, err)
	require.Len(t, out, 1)

	// The generator's affine coordinates, per the expected compressed
	// public key 0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798.
	wantX, err := hex.DecodeString("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798")
	require.NoError(t, err)
	wantY, err := hex.DecodeString("483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8")
	require.NoError(t, err)

	require.Equal(t, wantX, out[0][0:32])
	require.Equal(t, wantY, out[0][32:64])
}

// TestEcrecoverSecp256k1LargeBatch is spec.md scenario E2: N=8192
// random signatures at the spec's named seed, each GPU-recovered
// block byte-equal to its fixture's expected public key.
func TestEcrecoverSecp256k1LargeBatch(t *testing.T) {
	rng := harness.NewRand()
	fixtures, err := harness.GenerateSecp256k1(rng, 8192)
	require.NoError(t, err)

	sigs := make([]gpusigops.Secp256k1Signature, len(fixtures))
	hashes := make([][32]byte, len(fixtures))
	for i, f := range fixtures {
		sigs[i] = secp256k1FuelSignature(f.R, f.S, f.YParity)
		hashes[i] = f.MessageHash
	}

	out, err := gpusigops.EcrecoverSecp256k1(context.Background(), sigs, hashes, gpusigops.DefaultWidth)
	require.NoError(t, err)
	require.Len(t, out, len(fixtures))

	for i, f := range fixtures {
		var wantX, wantY [32]byte
		f.PubKeyX.FillBytes(wantX[:])
		f.PubKeyY.FillBytes(wantY[:])
		require.Equal(t, wantX[:], out[i][0:32], "signature %d x", i)
		require.Equal(t, wantY[:], out[i][32:64], "signature %d y", i)
	}
}

// TestEcrecoverSecp256r1LargeBatch is spec.md scenario E3: N=8192
// random secp256r1 signatures at the spec's named seed.
func TestEcrecoverSecp256r1LargeBatch(t *testing.T) {
	rng := harness.NewRand()
	fixtures, err := harness.GenerateSecp256r1(rng, 8192)
	require.NoError(t, err)

	sigs := make([]gpusigops.Secp256k1Signature, len(fixtures))
	hashes := make([][32]byte, len(fixtures))
	for i, f := range fixtures {
		sigs[i] = secp256k1FuelSignature(f.R, f.S, f.YParity)
		hashes[i] = f.MessageHash
	}

	out, err := gpusigops.EcrecoverSecp256r1(context.Background(), sigs, hashes, gpusigops.DefaultWidth)
	require.NoError(t, err)
	require.Len(t, out, len(fixtures))

	for i, f := range fixtures {
		var wantX, wantY [32]byte
		f.PubKeyX.FillBytes(wantX[:])
		f.PubKeyY.FillBytes(wantY[:])
		require.Equal(t, wantX[:], out[i][0:32], "signature %d x", i)
		require.Equal(t, wantY[:], out[i][32:64], "signature %d y", i)
	}
}

// TestEcverifyEd25519LargeBatch is spec.md scenario E4: N=8192 random
// (signature, key, message) tuples at the spec's named seed, every
// per-index boolean true.
func TestEcverifyEd25519LargeBatch(t *testing.T) {
	rng := harness.NewRand()
	fixtures, err := harness.GenerateEd25519(rng, 8192, 64)
	require.NoError(t, err)

	sigs := make([]pipeline.Ed25519Signature, len(fixtures))
	messages := make([][]byte, len(fixtures))
	keys := make([][32]byte, len(fixtures))
	for i, f := range fixtures {
		copy(sigs[i].R[:], f.Signature[0:32])
		copy(sigs[i].S[:], f.Signature[32:64])
		messages[i] = f.Message
		keys[i] = f.VerifyingKey
	}

	out, err := gpusigops.EcverifyEd25519(context.Background(), sigs, messages, keys, gpusigops.DefaultWidth)
	require.NoError(t, err)
	require.Len(t, out, len(fixtures))
	for i, ok := range out {
		require.True(t, ok, "signature %d should verify", i)
	}
}

// TestEcverifyEd25519MalformedInsideBatch is spec.md scenario E5: a
// single signature with a malformed compressed R (y-coordinate
// outside the curve) must report false at its own index while every
// other index in a larger batch remains truthful, and the call itself
// must not error.
func TestEcverifyEd25519MalformedInsideBatch(t *testing.T) {
	rng := harness.NewRand()
	fixtures, err := harness.GenerateEd25519(rng, 16, 64)
	require.NoError(t, err)

	sigs := make([]pipeline.Ed25519Signature, len(fixtures))
	messages := make([][]byte, len(fixtures))
	keys := make([][32]byte, len(fixtures))
	for i, f := range fixtures {
		copy(sigs[i].R[:], f.Signature[0:32])
		copy(sigs[i].S[:], f.Signature[32:64])
		messages[i] = f.Message
		keys[i] = f.VerifyingKey
	}

	const badIndex = 7
	// y=2 (little-endian, sign bit clear): (y^2-1)/(d*y^2+1) is a
	// quadratic non-residue mod p, so no x satisfies the curve
	// equation for this y — a point outside the curve, per spec.md
	// scenario E5.
	sigs[badIndex].R = [32]byte{}
	sigs[badIndex].R[0] = 2

	out, err := gpusigops.EcverifyEd25519(context.Background(), sigs, messages, keys, gpusigops.DefaultWidth)
	require.NoError(t, err, "a malformed signature must not fail the whole batch")
	require.Len(t, out, len(fixtures))

	require.False(t, out[badIndex], "malformed signature must verify false")
	for i, ok := range out {
		if i == badIndex {
			continue
		}
		require.True(t, ok, "signature %d should remain unaffected by index %d's malformed input", i, badIndex)
	}
}
