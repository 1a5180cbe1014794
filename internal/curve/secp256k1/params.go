// Package secp256k1 implements the curve-arithmetic kernels of
// spec.md section 4.B for secp256k1: short-Weierstrass projective
// addition/doubling (2007-bl, "unsafe" — cannot take the identity as
// an operand, spec.md section 9) plus affine-y recovery and
// normalisation. Field elements are internal/field.Element in
// Montgomery form throughout.
package secp256k1

import (
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/fuellabs/gpu-sigops/internal/field"
	"github.com/fuellabs/gpu-sigops/internal/limb"
)

// B is the secp256k1 curve parameter (y^2 = x^3 + B).
var B = big.NewInt(7)

// curveParams pulls the canonical domain parameters from
// github.com/btcsuite/btcd/btcec/v2 rather than re-transcribing hex
// literals: btcec is the teacher's own primary dependency, and
// sourcing P/N/Gx/Gy from it removes an entire class of
// transcription bugs from this port.
var curveParams = btcec.S256().Params()

// P is the base field modulus.
func P() *big.Int { return curveParams.P }

// N is the scalar field order (ℓ in spec.md's glossary terms, named n
// in section 3's Fuel signature encoding).
func N() *big.Int { return curveParams.N }

// GeneratorXY returns the generator's affine coordinates.
func GeneratorXY() (x, y *big.Int) { return curveParams.Gx, curveParams.Gy }

// NewFieldModulus builds the base-field Montgomery modulus for width w.
func NewFieldModulus(w limb.Width) (*field.Modulus, error) {
	return field.NewModulus("secp256k1.p", P(), w)
}

// NewScalarModulus builds the scalar-field Montgomery modulus (used
// for u1/u2 and r^-1 computations in the recovery pipeline).
func NewScalarModulus(w limb.Width) (*field.Modulus, error) {
	return field.NewModulus("secp256k1.n", N(), w)
}
