package secp256r1

import (
	"github.com/fuellabs/gpu-sigops/internal/field"
)

// Projective is the ProjectiveXYZ<F> representation of spec.md
// section 3: (X:Y:Z) with affine x=X/Z, y=Y/Z. Identity is (0:1:0);
// any (0,·,0) is also treated as identity per spec.md Open Question
// O3.
type Projective struct {
	X, Y, Z field.Element
}

// IsIdentity implements the (0,·,0) runtime check of spec.md O3.
func (p Projective) IsIdentity() bool {
	return p.X.IsZero() && p.Z.IsZero()
}

func one(m *field.Modulus) field.Element {
	v := m.Params().New()
	v[0] = 1
	return field.FromStandardLimbs(m, v)
}

// three returns the Montgomery-form element 3, used to build a=-3.
func three(m *field.Modulus) field.Element {
	v := m.Params().New()
	v[0] = 3
	return field.FromStandardLimbs(m, v)
}

// minusThree returns the Montgomery-form element for a=-3.
func minusThree(m *field.Modulus) field.Element {
	return field.Neg(three(m))
}

// Identity returns the canonical (0:1:0) point.
func Identity(m *field.Modulus) Projective {
	return Projective{X: field.Zero(m), Y: one(m), Z: field.Zero(m)}
}

// FromAffine lifts an affine (x,y) to projective form with Z=1.
func FromAffine(m *field.Modulus, x, y field.Element) Projective {
	return Projective{X: x, Y: y, Z: one(m)}
}

// AddUnsafe is the curve-parameter-independent chord-law projective
// addition (spec.md section 4.B): it must not receive the point at
// infinity as either operand. Identical in form to the secp256k1
// kernel because the chord connecting two distinct affine points
// never depends on the curve's a coefficient — only the tangent
// (doubling) law below does.
func AddUnsafe(p1, p2 Projective) Projective { return p1.AddUnsafe(p2) }

// AddUnsafe is the method form used by internal/scalarmul's generic
// Point constraint.
func (p1 Projective) AddUnsafe(p2 Projective) Projective {
	y1z2 := field.Mul(p1.Y, p2.Z)
	x1z2 := field.Mul(p1.X, p2.Z)
	y2z1 := field.Mul(p2.Y, p1.Z)
	x2z1 := field.Mul(p2.X, p1.Z)

	u := field.Sub(y2z1, y1z2)
	v := field.Sub(x2z1, x1z2)

	vsq := field.Sqr(v)
	vcub := field.Mul(vsq, v)
	vsqV2 := field.Mul(vsq, x1z2)
	z1z2 := field.Mul(p1.Z, p2.Z)
	usq := field.Sqr(u)

	a := field.Sub(field.Mul(usq, z1z2), vcub)
	a = field.Sub(a, field.Add(vsqV2, vsqV2))

	x3 := field.Mul(v, a)
	y3 := field.Sub(field.Mul(u, field.Sub(vsqV2, a)), field.Mul(vcub, y1z2))
	z3 := field.Mul(vcub, z1z2)

	return Projective{X: x3, Y: y3, Z: z3}
}

// Double implements the 2007-bl-style projective doubling for a
// general short-Weierstrass curve with a=-3 (spec.md "secp256r1
// Projective double"): w = a*Z1^2 + 3*X1^2 collapses to
// w = 3*(X1-Z1)*(X1+Z1) when a=-3, the standard P-256 optimisation.
func Double(p Projective) Projective { return p.Double() }

// Double is the method form used by internal/scalarmul's generic
// Point constraint.
func (p Projective) Double() Projective {
	xMinusZ := field.Sub(p.X, p.Z)
	xPlusZ := field.Add(p.X, p.Z)
	w := field.Mul(three(p.X.Modulus()), field.Mul(xMinusZ, xPlusZ))

	s := field.Mul(p.Y, p.Z)
	b := field.Mul(field.Mul(p.X, p.Y), s)
	h := field.Sub(field.Sqr(w), eightTimes(b))

	x3 := field.Mul(field.Add(h, h), s)
	ysq := field.Sqr(p.Y)
	y3 := field.Sub(field.Mul(w, field.Sub(fourTimes(b), h)), eightTimes(field.Mul(ysq, field.Sqr(s))))
	z3 := eightTimes(field.Mul(s, field.Sqr(s)))

	return Projective{X: x3, Y: y3, Z: z3}
}

func fourTimes(a field.Element) field.Element {
	t := field.Add(a, a)
	return field.Add(t, t)
}

func eightTimes(a field.Element) field.Element {
	return field.Add(fourTimes(a), fourTimes(a))
}

// Normalize converts a projective point to affine (X/Z, Y/Z). The
// point must not be the identity.
func Normalize(p Projective) (x, y field.Element) {
	zInv := field.Inverse(p.Z)
	return field.Mul(p.X, zInv), field.Mul(p.Y, zInv)
}

// RecoverY implements "Affine-y recovery from x": evaluate
// y^2 = x^3 + Ax + B and take the Montgomery square root, returning
// the ordered pair (y0, y1=p-y0) — P-256's p ≡ 3 (mod 4), so
// field.SqrtCase3Mod4 applies directly (P7).
func RecoverY(m *field.Modulus, x field.Element) (y0, y1 field.Element, ok bool) {
	bLimbs := m.Params().FromUint256ToLimbs(B())
	bMont := field.FromStandardLimbs(m, bLimbs)

	x3 := field.Mul(field.Sqr(x), x)
	ax := field.Mul(minusThree(m), x)
	rhs := field.Add(field.Add(x3, ax), bMont)
	return field.SqrtCase3Mod4(rhs)
}
