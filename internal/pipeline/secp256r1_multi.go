package pipeline

import (
	"context"
	"math/big"

	"github.com/fuellabs/gpu-sigops/internal/curve/secp256r1"
	"github.com/fuellabs/gpu-sigops/internal/field"
	"github.com/fuellabs/gpu-sigops/internal/limb"
	"github.com/fuellabs/gpu-sigops/internal/precompute"
)

func secp256r1Ops() curveOps[secp256r1.Projective] {
	return curveOps[secp256r1.Projective]{
		fieldModulus:  secp256r1.NewFieldModulus,
		scalarModulus: secp256r1.NewScalarModulus,
		generatorXY:   secp256r1.GeneratorXY,
		fromAffine:    secp256r1.FromAffine,
		recoverY:      secp256r1.RecoverY,
		identity:      secp256r1.Identity,
		tables:        precompute.Secp256r1Tables,
		normalize:     func(p secp256r1.Projective) (field.Element, field.Element) { return secp256r1.Normalize(p) },
	}
}

// RecoverSecp256r1Multi implements spec.md 4.G.1 for secp256r1 (2015-rcb
// complete addition in the teacher's naming convention, though this
// host driver uses the chord/tangent formulas internal/curve/secp256r1
// documents).
func RecoverSecp256r1Multi(ctx context.Context, sigs []Signature, msgHashes []*big.Int, w limb.Width) ([][64]byte, error) {
	return recoverMulti(ctx, secp256r1Ops(), sigs, msgHashes, w)
}

// RecoverSecp256r1Single implements spec.md 4.G.2 for secp256r1.
func RecoverSecp256r1Single(ctx context.Context, sigs []Signature, msgHashes []*big.Int, w limb.Width) ([][64]byte, error) {
	return recoverSingle(ctx, secp256r1Ops(), sigs, msgHashes, w)
}
