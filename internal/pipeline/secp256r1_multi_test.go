package pipeline_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fuellabs/gpu-sigops/internal/harness"
	"github.com/fuellabs/gpu-sigops/internal/limb"
	"github.com/fuellabs/gpu-sigops/internal/pipeline"
	"github.com/fuellabs/gpu-sigops/internal/refcurve/secp256r1ref"
)

func TestRecoverSecp256r1MultiMatchesHostReference(t *testing.T) {
	rng := harness.NewRand()
	fixtures, err := harness.GenerateSecp256r1(rng, 4)
	require.NoError(t, err)

	sigs := make([]pipeline.Signature, len(fixtures))
	hashes := make([]*big.Int, len(fixtures))
	for i, f := range fixtures {
		sigs[i] = pipeline.Signature{R: f.R, S: f.S, YParity: f.YParity}
		hashes[i] = new(big.Int).SetBytes(f.MessageHash[:])
	}

	got, err := pipeline.RecoverSecp256r1Multi(context.Background(), sigs, hashes, limb.Width(13))
	require.NoError(t, err)
	require.Len(t, got, len(fixtures))

	for i, f := range fixtures {
		wantX, wantY, err := secp256r1ref.RecoverPublicKey(f.R, f.S, f.YParity, f.MessageHash[:])
		require.NoError(t, err)

		var wantXBytes, wantYBytes [32]byte
		wantX.FillBytes(wantXBytes[:])
		wantY.FillBytes(wantYBytes[:])

		require.Equal(t, wantXBytes[:], got[i][0:32], "signature %d x mismatch", i)
		require.Equal(t, wantYBytes[:], got[i][32:64], "signature %d y mismatch", i)
	}
}
