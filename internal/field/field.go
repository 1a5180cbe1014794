// Package field implements the Montgomery-form field arithmetic
// primitives of spec.md section 4.B ("Field arithmetic primitives"):
// ff_add, ff_sub, ff_mul (via Montgomery multiplication, since almost
// all kernel arithmetic stays in Montgomery form per invariant
// I-MONT), ff_inverse and sqrt_case3mod4. A *Modulus bundles the
// limb.Params/MontgomeryConstants for one (p, W) pair so the same code
// serves secp256k1, secp256r1 and ed25519 by construction rather than
// by duplication (spec.md section 9 "Polymorphism across curves").
package field

import (
	"math/big"

	"github.com/fuellabs/gpu-sigops/internal/limb"
)

// Modulus is the per-curve, per-W constant bundle every Element
// operation is parameterised by.
type Modulus struct {
	mc   limb.MontgomeryConstants
	name string
}

// NewModulus derives the Montgomery constants for prime p at width w.
// name is used only for error messages / diagnostics.
func NewModulus(name string, p *big.Int, w limb.Width) (*Modulus, error) {
	mc, err := limb.NewMontgomeryConstants(p, w)
	if err != nil {
		return nil, err
	}
	return &Modulus{mc: mc, name: name}, nil
}

func (m *Modulus) Name() string       { return m.name }
func (m *Modulus) Width() limb.Width  { return m.mc.Params.W }
func (m *Modulus) Params() limb.Params { return m.mc.Params }
func (m *Modulus) Prime() *big.Int    { return m.mc.P }

// pLimbs caches the modulus in limb form.
func (m *Modulus) pLimbs() limb.Vector { return m.mc.Params.FromUint256ToLimbs(m.mc.P) }

// Element is a field element held in Montgomery form (value*R mod p),
// matching the GPU kernels which operate almost exclusively in that
// domain (spec.md invariant I-MONT).
type Element struct {
	m    *Modulus
	limb limb.Vector
}

// Zero returns the additive identity in Montgomery form (which is 0,
// since 0*R mod p = 0).
func Zero(m *Modulus) Element {
	return Element{m: m, limb: m.Params().New()}
}

// FromStandardBytesBE builds a Montgomery-form element from a 32-byte
// big-endian standard-form integer, reducing mod p first.
func FromStandardBytesBE(m *Modulus, b []byte) Element {
	v := new(big.Int).SetBytes(b)
	v.Mod(v, m.Prime())
	std := m.Params().FromUint256ToLimbs(v)
	return Element{m: m, limb: m.mc.ToMontgomery(std)}
}

// FromStandardLimbs wraps a standard-form (non-Montgomery) limb vector,
// converting it to Montgomery form.
func FromStandardLimbs(m *Modulus, v limb.Vector) Element {
	return Element{m: m, limb: m.mc.ToMontgomery(v)}
}

// FromMontgomeryLimbs wraps an already-Montgomery-form limb vector
// verbatim (used when loading precomputed tables, spec.md section 4.F).
func FromMontgomeryLimbs(m *Modulus, v limb.Vector) Element {
	out := make(limb.Vector, len(v))
	copy(out, v)
	return Element{m: m, limb: out}
}

// Limbs returns the underlying Montgomery-form limb vector.
func (e Element) Limbs() limb.Vector { return e.limb }

// Modulus returns the element's modulus.
func (e Element) Modulus() *Modulus { return e.m }

// ToStandardBytesBE converts back to standard form and encodes as
// 32 big-endian bytes.
func (e Element) ToStandardBytesBE() [32]byte {
	std := e.m.mc.FromMontgomery(e.limb)
	return e.m.Params().ToBytesBE(std)
}

// IsZero reports whether the element is zero (Montgomery form of 0 is
// 0, so this is a plain zero-limb check).
func (e Element) IsZero() bool {
	for _, l := range e.limb {
		if l != 0 {
			return false
		}
	}
	return true
}

// Add computes ff_add(a,b) = (a+b) mod p via one conditional subtract
// (spec.md section 4.B). Works identically whether operands are in
// standard or Montgomery form, since Montgomery encoding is linear.
func Add(a, b Element) Element {
	p := a.m.Params()
	sum := p.AddWide(a.limb, b.limb)
	pl := a.m.pLimbs()
	wideP := append(limb.Vector{}, pl...)
	wideP = append(wideP, 0)
	if limb.Gte(sum, wideP) {
		sum = p.WideSub(sum, wideP)
	}
	return Element{m: a.m, limb: sum[:p.L]}
}

// Sub computes ff_sub(a,b) = (a-b) mod p, wrapping via +p when a<b
// (spec.md section 4.B).
func Sub(a, b Element) Element {
	p := a.m.Params()
	if limb.Gte(a.limb, b.limb) {
		return Element{m: a.m, limb: p.Sub(a.limb, b.limb)}
	}
	pl := a.m.pLimbs()
	tmp := p.AddUnsafe(a.limb, pl)
	return Element{m: a.m, limb: p.Sub(tmp, b.limb)}
}

// Neg computes p - a (0 stays 0).
func Neg(a Element) Element {
	if a.IsZero() {
		return a
	}
	return Sub(Zero(a.m), a)
}

// Mul computes ff_mul via Montgomery multiplication: for Montgomery
// operands a'=a*R, b'=b*R, MontMul(a',b') = a*b*R mod p, i.e. the
// correctly-encoded Montgomery form of a*b (spec.md mont_mul). The W
// split between mont_mul_optimised (W<=13) and mont_mul_modified
// (W>=14) is a kernel scheduling detail only (see DESIGN.md); both
// reduce to the same CIOS computation here.
func Mul(a, b Element) Element {
	var out limb.Vector
	if a.m.mc.Params.W <= 13 {
		out = a.m.mc.MontMulOptimised(a.limb, b.limb)
	} else {
		out = a.m.mc.MontMulModified(a.limb, b.limb)
	}
	return Element{m: a.m, limb: out}
}

// Sqr computes a*a.
func Sqr(a Element) Element { return Mul(a, a) }

// Inverse computes ff_inverse(a) = a^-1 mod p via Fermat's little
// theorem (a^(p-2) mod p), staying in Montgomery form throughout by
// repeated Mul/Sqr. spec.md names binary-gcd as the production
// kernel's algorithm; this host-equivalent substitutes modular
// exponentiation, which satisfies the same contract (invariant P4,
// a*a^-1 == 1) with a far smaller surface for a hand-written
// implementation to get wrong — see DESIGN.md Open Question
// resolution for this substitution's justification. a must be
// nonzero; behaviour on zero is unspecified, matching spec.md.
func Inverse(a Element) Element {
	exp := new(big.Int).Sub(a.m.Prime(), big.NewInt(2))
	return Pow(a, exp)
}

// Pow computes a^e mod p (Montgomery domain) via square-and-multiply,
// MSB first. Shared by Inverse and sqrt_case3mod4.
func Pow(a Element, e *big.Int) Element {
	result := FromStandardLimbs(a.m, oneLimbs(a.m))
	for i := e.BitLen() - 1; i >= 0; i-- {
		result = Sqr(result)
		if e.Bit(i) == 1 {
			result = Mul(result, a)
		}
	}
	return result
}

func oneLimbs(m *Modulus) limb.Vector {
	v := m.Params().New()
	v[0] = 1
	return v
}

// SqrtCase3Mod4 computes a square root of a square a when p ≡ 3 (mod
// 4), returning both roots (r, p-r) per spec.md's sqrt_case3mod4
// contract (P5/P7). The caller is responsible for checking p%4==3
// (true for secp256k1 and secp256r1, not for ed25519 — see
// internal/curve/ed25519 for that curve's sqrt_ratio_i instead).
func SqrtCase3Mod4(a Element) (r0, r1 Element, isSquare bool) {
	p := a.m.Prime()
	exp := new(big.Int).Add(p, big.NewInt(1))
	exp.Rsh(exp, 2)
	r0 = Pow(a, exp)
	check := Sqr(r0)
	if !Equal(check, a) {
		return Element{}, Element{}, false
	}
	r1 = Neg(r0)
	return r0, r1, true
}

// Equal reports whether two Montgomery-form elements represent the
// same residue.
func Equal(a, b Element) bool {
	if len(a.limb) != len(b.limb) {
		return false
	}
	for i := range a.limb {
		if a.limb[i] != b.limb[i] {
			return false
		}
	}
	return true
}

// IsOdd reports whether the standard-form value is odd (used by
// y-recovery and Edwards decompression sign handling).
func (e Element) IsOdd() bool {
	std := e.m.mc.FromMontgomery(e.limb)
	return std[0]&1 == 1
}

// CMov conditionally overwrites dst with src when flag is true,
// constant-time-shaped (spec.md "constant-time comparison" register
// for bigint_gte/bigint_wide_gte) even though this software executor
// does not defend against timing side-channels (spec.md Non-goals).
func CMov(dst *Element, src Element, flag bool) {
	if flag {
		*dst = src
	}
}
