package pipeline

import (
	"context"
	"math/big"

	"github.com/fuellabs/gpu-sigops/internal/curve/secp256k1"
	"github.com/fuellabs/gpu-sigops/internal/field"
	"github.com/fuellabs/gpu-sigops/internal/limb"
	"github.com/fuellabs/gpu-sigops/internal/precompute"
)

func secp256k1Ops() curveOps[secp256k1.Projective] {
	return curveOps[secp256k1.Projective]{
		fieldModulus:  secp256k1.NewFieldModulus,
		scalarModulus: secp256k1.NewScalarModulus,
		generatorXY:   secp256k1.GeneratorXY,
		fromAffine:    secp256k1.FromAffine,
		recoverY:      secp256k1.RecoverY,
		identity:      secp256k1.Identity,
		tables:        precompute.Secp256k1Tables,
		normalize:     func(p secp256k1.Projective) (field.Element, field.Element) { return secp256k1.Normalize(p) },
	}
}

// RecoverSecp256k1Multi implements spec.md 4.G.1: the multi-kernel
// secp256k1 ECDSA recovery driver.
func RecoverSecp256k1Multi(ctx context.Context, sigs []Signature, msgHashes []*big.Int, w limb.Width) ([][64]byte, error) {
	return recoverMulti(ctx, secp256k1Ops(), sigs, msgHashes, w)
}

// RecoverSecp256k1Single implements spec.md 4.G.2: the single-kernel
// secp256k1 ECDSA recovery driver.
func RecoverSecp256k1Single(ctx context.Context, sigs []Signature, msgHashes []*big.Int, w limb.Width) ([][64]byte, error) {
	return recoverSingle(ctx, secp256k1Ops(), sigs, msgHashes, w)
}
