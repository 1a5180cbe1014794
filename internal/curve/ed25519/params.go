// Package ed25519 implements the curve-arithmetic kernels of spec.md
// section 4.B for ed25519: extended twisted-Edwards addition and
// doubling (2008-hwcd-3 / 2008-hwcd-dbl), compressed-point
// decompression via sqrt_ratio_i, and the group order ℓ that the
// batch verifier reduces its SHA-512 digest by (the reduction itself
// is internal/sha512block.ReduceModL). Field elements are
// internal/field.Element in Montgomery form throughout; none of the
// example corpus carries a pure-Go generic Edwards-curve arithmetic
// library, so these constants and formulas are derived directly from
// math/big at init time (see DESIGN.md).
package ed25519

import (
	"math/big"

	"github.com/fuellabs/gpu-sigops/internal/field"
	"github.com/fuellabs/gpu-sigops/internal/limb"
)

// P is the ed25519 base field modulus, 2^255 - 19.
var P = func() *big.Int {
	p := new(big.Int).Lsh(big.NewInt(1), 255)
	p.Sub(p, big.NewInt(19))
	return p
}()

// L is the order of the prime-order subgroup (spec.md glossary ℓ).
var L = func() *big.Int {
	l, ok := new(big.Int).SetString("1000000000000000000000000000000014def9dea2f79cd65812631a5cf5d3ed", 16)
	if !ok {
		panic("ed25519: failed to parse L")
	}
	return l
}()

// D is the twisted-Edwards curve constant d = -121665/121666 mod p.
var D = func() *big.Int {
	num := big.NewInt(-121665)
	den := big.NewInt(121666)
	denInv := new(big.Int).ModInverse(den, P)
	if denInv == nil {
		panic("ed25519: 121666 not invertible mod p")
	}
	d := new(big.Int).Mul(num, denInv)
	return d.Mod(d, P)
}()

// SqrtMinus1 is a fixed square root of -1 mod p, used by decompression's
// sqrt_ratio_i (spec.md section 4.B).
var SqrtMinus1 = func() *big.Int {
	// sqrt(-1) = 2^((p-1)/4) mod p.
	exp := new(big.Int).Sub(P, big.NewInt(1))
	exp.Rsh(exp, 2)
	return new(big.Int).Exp(big.NewInt(2), exp, P)
}()

// GeneratorXY returns the base point's affine coordinates.
var GeneratorXY = func() (x, y *big.Int) {
	y = big.NewInt(5)
	y.ModInverse(y, P)
	y.Mul(y, big.NewInt(4))
	y.Mod(y, P)
	// y = 4/5 mod p is the standard base-point y-coordinate; x is then
	// the positive (even) square root of (y^2-1)/(d*y^2+1).
	ySq := new(big.Int).Mul(y, y)
	ySq.Mod(ySq, P)
	num := new(big.Int).Sub(ySq, big.NewInt(1))
	num.Mod(num, P)
	den := new(big.Int).Mul(D, ySq)
	den.Add(den, big.NewInt(1))
	den.Mod(den, P)
	denInv := new(big.Int).ModInverse(den, P)
	if denInv == nil {
		panic("ed25519: generator denominator not invertible")
	}
	xSq := new(big.Int).Mul(num, denInv)
	xSq.Mod(xSq, P)
	exp := new(big.Int).Add(P, big.NewInt(3))
	exp.Rsh(exp, 3)
	x = new(big.Int).Exp(xSq, exp, P)
	check := new(big.Int).Mul(x, x)
	check.Mod(check, P)
	if check.Cmp(xSq) != 0 {
		x.Mul(x, SqrtMinus1)
		x.Mod(x, P)
	}
	if x.Bit(0) != 0 {
		x.Sub(P, x)
	}
	return x, y
}

// NewFieldModulus builds the base-field Montgomery modulus for width w.
func NewFieldModulus(w limb.Width) (*field.Modulus, error) {
	return field.NewModulus("ed25519.p", P, w)
}

// NewScalarModulus builds the scalar-field (mod ℓ) Montgomery modulus.
func NewScalarModulus(w limb.Width) (*field.Modulus, error) {
	return field.NewModulus("ed25519.l", L, w)
}
