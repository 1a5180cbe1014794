package secp256k1

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

// Identity returns the canonical (0:1:0) point.
func Identity(m *field.Modulus) Projective {
	return Projective{X: field.Zero(m), Y: one(m), Z: field.Zero(m)}
}

func one(m *field.Modulus) field.Element {
	v := m.Params().New()
	v[0] = 1
	return field.FromStandardLimbs(m, v)
}

// AddUnsafe implements spec.md's "secp256k1 Projective add (2007-bl):
// 16M, unsafe" — it must not receive the point at infinity as either
// operand; callers branch on IsIdentity externally (spec.md section 9
// "Per-curve identity handling"). This is the classical
// Cohen–Miyaji–Ono projective addition for a short-Weierstrass curve
// with a=0.
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

// Double implements spec.md's "secp256k1 Projective double (2007-bl):
// 10M" for a=0 curves.
func Double(p Projective) Projective { return p.Double() }

// Double is the method form used by internal/scalarmul's generic
// Point constraint.
func (p Projective) Double() Projective {
	threeXsq := field.Add(field.Add(field.Sqr(p.X), field.Sqr(p.X)), field.Sqr(p.X))
	s := field.Mul(p.Y, p.Z)
	b := field.Mul(field.Mul(p.X, p.Y), s)
	h := field.Sub(field.Sqr(threeXsq), eightTimes(b))

	x3 := field.Mul(field.Add(h, h), s)
	ysq := field.Sqr(p.Y)
	y3 := field.Sub(field.Mul(threeXsq, field.Sub(fourTimes(b), h)), eightTimes(field.Mul(ysq, field.Sqr(s))))
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

// Normalize converts a projective point to affine (X/Z, Y/Z) per
// spec.md "Projective→affine normalisation". The point must not be
// the identity.
func Normalize(p Projective) (x, y field.Element) {
	zInv := field.Inverse(p.Z)
	return field.Mul(p.X, zInv), field.Mul(p.Y, zInv)
}

// FromAffine lifts an affine (x,y) to projective form with Z=1.
func FromAffine(m *field.Modulus, x, y field.Element) Projective {
	return Projective{X: x, Y: y, Z: one(m)}
}

// RecoverY implements spec.md's "Affine-y recovery from x": evaluate
// y^2 = x^3 + B and take the Montgomery square root, returning the
// ordered pair (y0, y1=p-y0) — p ≡ 3 (mod 4) for secp256k1, so
// field.SqrtCase3Mod4 applies directly (P7).
func RecoverY(m *field.Modulus, x field.Element) (y0, y1 field.Element, ok bool) {
	bLimbs := m.Params().FromUint256ToLimbs(B)
	bMont := field.FromStandardLimbs(m, bLimbs)

	x3 := field.Mul(field.Sqr(x), x)
	rhs := field.Add(x3, bMont)
	return field.SqrtCase3Mod4(rhs)
}
