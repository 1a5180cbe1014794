package pipeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fuellabs/gpu-sigops/internal/harness"
	"github.com/fuellabs/gpu-sigops/internal/limb"
	"github.com/fuellabs/gpu-sigops/internal/pipeline"
	"github.com/fuellabs/gpu-sigops/internal/refcurve/ed25519ref"
)

func TestVerifyEd25519MultiMatchesHostReference(t *testing.T) {
	rng := harness.NewRand()
	fixtures, err := harness.GenerateEd25519(rng, 3, 64)
	require.NoError(t, err)

	sigs := make([]pipeline.Ed25519Signature, len(fixtures))
	messages := make([][]byte, len(fixtures))
	keys := make([][32]byte, len(fixtures))
	for i, f := range fixtures {
		copy(sigs[i].R[:], f.Signature[0:32])
		copy(sigs[i].S[:], f.Signature[32:64])
		messages[i] = f.Message
		keys[i] = f.VerifyingKey

		require.True(t, ed25519ref.Verify(f.VerifyingKey[:], f.Message, f.Signature[:]), "fixture %d not valid per host reference", i)
	}

	results, err := pipeline.VerifyEd25519Multi(context.Background(), sigs, messages, keys, limb.Width(13))
	require.NoError(t, err)
	for i, ok := range results {
		require.True(t, ok, "signature %d failed to verify", i)
	}
}
