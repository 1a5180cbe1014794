// Package secp256r1 implements the curve-arithmetic kernels of
// spec.md section 4.B for secp256r1 (NIST P-256): short-Weierstrass
// projective addition (chord law, curve-parameter independent) and
// doubling (2007-bl-style, with the curve's a=-3 term) plus affine-y
// recovery and normalisation. Field elements are internal/field.Element
// in Montgomery form throughout.
package secp256r1

import (
	"crypto/elliptic"
	"math/big"

	"github.com/fuellabs/gpu-sigops/internal/field"
	"github.com/fuellabs/gpu-sigops/internal/limb"
)

// A is the secp256r1 curve parameter (y^2 = x^3 + Ax + B); P-256 fixes
// a = -3, the case the 2015-rcb complete formulas (and this package's
// simpler chord/tangent formulas) specialise for.
var A = big.NewInt(-3)

// curveParams pulls the canonical NIST P-256 domain parameters from
// the standard library rather than re-transcribing hex literals:
// crypto/elliptic.P256 is the teacher corpus's own reference for this
// curve's constants (see DESIGN.md).
var curveParams = elliptic.P256().Params()

func P() *big.Int { return curveParams.P }
func N() *big.Int { return curveParams.N }
func B() *big.Int { return curveParams.B }

// GeneratorXY returns the generator's affine coordinates.
func GeneratorXY() (x, y *big.Int) { return curveParams.Gx, curveParams.Gy }

// NewFieldModulus builds the base-field Montgomery modulus for width w.
func NewFieldModulus(w limb.Width) (*field.Modulus, error) {
	return field.NewModulus("secp256r1.p", P(), w)
}

// NewScalarModulus builds the scalar-field Montgomery modulus.
func NewScalarModulus(w limb.Width) (*field.Modulus, error) {
	return field.NewModulus("secp256r1.n", N(), w)
}
