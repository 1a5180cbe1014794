package ed25519

import (
	"errors"
	"math/big"

	"github.com/fuellabs/gpu-sigops/internal/field"
)

// candidateExponent returns (p+3)/8, the exponent ed25519's
// sqrt_ratio_i uses for its first candidate root (valid since
// p ≡ 5 mod 8).
func candidateExponent(m *field.Modulus) *big.Int {
	exp := new(big.Int).Add(m.Prime(), big.NewInt(3))
	return exp.Rsh(exp, 3)
}

// ErrInvalidPoint is returned by Decompress when the encoded y has no
// corresponding curve point for the requested sign.
var ErrInvalidPoint = errors.New("ed25519: invalid compressed point")

// Extended is the ExtendedXYZT<F> representation of spec.md section 3
// for twisted-Edwards curves: (X:Y:Z:T) with affine x=X/Z, y=Y/Z and
// the extended invariant T=XY/Z. Identity is (0:1:1:0).
type Extended struct {
	X, Y, Z, T field.Element
}

func zero(m *field.Modulus) field.Element { return field.Zero(m) }

func one(m *field.Modulus) field.Element {
	v := m.Params().New()
	v[0] = 1
	return field.FromStandardLimbs(m, v)
}

// Identity returns the canonical (0:1:1:0) point.
func Identity(m *field.Modulus) Extended {
	o := one(m)
	return Extended{X: zero(m), Y: o, Z: o, T: zero(m)}
}

// IsIdentity reports whether p is the neutral element.
func (p Extended) IsIdentity() bool {
	return p.X.IsZero() && field.Equal(p.Y, p.Z) && p.T.IsZero()
}

// FromAffine lifts an affine (x,y) to extended form with Z=1, T=xy.
func FromAffine(m *field.Modulus, x, y field.Element) Extended {
	return Extended{X: x, Y: y, Z: one(m), T: field.Mul(x, y)}
}

// dMont returns the Montgomery-form curve constant d for modulus m.
func dMont(m *field.Modulus) field.Element {
	return field.FromStandardLimbs(m, m.Params().FromUint256ToLimbs(D))
}

// AddUnsafe implements the unified extended-coordinate addition law
// (2008-hwcd-3) for twisted-Edwards curves with a=-1; unlike the
// short-Weierstrass chord law this formula is complete (valid for any
// two inputs, including equal points and the identity), so ed25519
// scalar multiplication does not need the identity special-casing the
// Weierstrass curves require.
func (p1 Extended) AddUnsafe(p2 Extended) Extended {
	m := p1.X.Modulus()
	d2 := field.Add(dMont(m), dMont(m))

	a := field.Mul(field.Sub(p1.Y, p1.X), field.Sub(p2.Y, p2.X))
	b := field.Mul(field.Add(p1.Y, p1.X), field.Add(p2.Y, p2.X))
	c := field.Mul(field.Mul(p1.T, d2), p2.T)
	dd := field.Mul(field.Add(p1.Z, p1.Z), p2.Z)

	e := field.Sub(b, a)
	f := field.Sub(dd, c)
	g := field.Add(dd, c)
	h := field.Add(b, a)

	return Extended{
		X: field.Mul(e, f),
		Y: field.Mul(g, h),
		T: field.Mul(e, h),
		Z: field.Mul(f, g),
	}
}

// Double implements the a=-1 extended-coordinate doubling law
// (2008-hwcd-dbl).
func (p Extended) Double() Extended {
	a := field.Sqr(p.X)
	b := field.Sqr(p.Y)
	c := field.Add(field.Sqr(p.Z), field.Sqr(p.Z))
	h := field.Add(a, b)
	xy := field.Add(p.X, p.Y)
	e := field.Sub(h, field.Sqr(xy))
	g := field.Sub(a, b)
	f := field.Add(c, g)

	return Extended{
		X: field.Mul(e, f),
		Y: field.Mul(g, h),
		T: field.Mul(e, h),
		Z: field.Mul(f, g),
	}
}

// Normalize converts an extended point to affine (X/Z, Y/Z).
func Normalize(p Extended) (x, y field.Element) {
	zInv := field.Inverse(p.Z)
	return field.Mul(p.X, zInv), field.Mul(p.Y, zInv)
}

// sqrtRatioI computes a square root of u/v when it exists (spec.md
// "sqrt_ratio_i"), trying the two ed25519 candidate exponent paths
// (direct, and multiplied by sqrt(-1)) since p = 5 (mod 8).
func sqrtRatioI(u, v field.Element) (root field.Element, ok bool) {
	m := u.Modulus()
	vInv := field.Inverse(v)
	x2 := field.Mul(u, vInv)

	r := field.Pow(x2, candidateExponent(m))
	check := field.Sqr(r)
	if field.Equal(check, x2) {
		return r, true
	}
	sqrtm1 := field.FromStandardLimbs(m, m.Params().FromUint256ToLimbs(SqrtMinus1))
	r2 := field.Mul(r, sqrtm1)
	check2 := field.Sqr(r2)
	if field.Equal(check2, x2) {
		return r2, true
	}
	return field.Element{}, false
}

// Decompress implements spec.md's ed25519 point decompression:
// reconstruct x from the compressed y and a sign bit, following
// x^2 = (y^2-1)/(d*y^2+1) mod p and sqrt_ratio_i (p ≡ 5 mod 8).
func Decompress(m *field.Modulus, y field.Element, xSignBit bool) (Extended, error) {
	ySq := field.Sqr(y)
	num := field.Sub(ySq, one(m))
	den := field.Add(field.Mul(dMont(m), ySq), one(m))

	x, ok := sqrtRatioI(num, den)
	if !ok {
		return Extended{}, ErrInvalidPoint
	}
	field.CMov(&x, field.Neg(x), x.IsOdd() != xSignBit)
	return FromAffine(m, x, y), nil
}

// DecompressBytes parses a standard 32-byte little-endian compressed
// ed25519 point (sign bit in the MSB of the last byte) and decompresses
// it.
func DecompressBytes(m *field.Modulus, b [32]byte) (Extended, error) {
	sign := b[31]&0x80 != 0
	be := make([]byte, 32)
	for i := 0; i < 32; i++ {
		be[i] = b[31-i]
	}
	be[0] &= 0x7f
	y := field.FromStandardBytesBE(m, be)
	return Decompress(m, y, sign)
}

// CompressXY encodes an affine point as the standard 32-byte
// little-endian compressed form.
func CompressXY(x, y field.Element) [32]byte {
	be := y.ToStandardBytesBE()
	var out [32]byte
	for i := 0; i < 32; i++ {
		out[i] = be[31-i]
	}
	if x.IsOdd() {
		out[31] |= 0x80
	}
	return out
}

// Negate returns -p (negate the x coordinate; twisted-Edwards curves
// are symmetric about the y-axis).
func Negate(p Extended) Extended {
	return Extended{X: field.Neg(p.X), Y: p.Y, Z: p.Z, T: field.Neg(p.T)}
}
