// Package scalarmul implements the generic scalar-multiplication
// algorithms of spec.md section 4.B: plain double-and-add, the
// Strauss–Shamir simultaneous ladder for k1*p1 + k2*p2, and the
// windowed fixed-base comb (w=4) used by
// the precomputed-generator-table kernels (spec.md section 4.F). All
// three are generic over a curve's Projective point type via the
// Point constraint, so the same code drives secp256k1, secp256r1 and
// ed25519 (spec.md section 9 "Polymorphism across curves").
package scalarmul

import "math/big"

// Point is the self-referential constraint every curve's Projective
// point type satisfies: an "unsafe" chord addition (no identity
// operands), a doubling, and an identity test.
type Point[T any] interface {
	AddUnsafe(T) T
	Double() T
	IsIdentity() bool
}

// addToAcc folds one scalar bit into an accumulator, handling the
// identity specially since AddUnsafe may not accept it as an operand
// (spec.md section 9 "Per-curve identity handling").
func addToAcc[T Point[T]](acc, term T) T {
	if acc.IsIdentity() {
		return term
	}
	return acc.AddUnsafe(term)
}

// DoubleAndAdd computes k*base via the textbook MSB-first
// double-and-add ladder, starting from identity. bitLen bounds how
// many bits of k are consumed (256 for the scalar fields this package
// serves).
func DoubleAndAdd[T Point[T]](base T, identity T, k *big.Int, bitLen int) T {
	acc := identity
	for i := bitLen - 1; i >= 0; i-- {
		if !acc.IsIdentity() {
			acc = acc.Double()
		}
		if k.Bit(i) == 1 {
			acc = addToAcc(acc, base)
		}
	}
	return acc
}

// StraussShamir computes k1*p1 + k2*p2 in a single ladder pass,
// combining the two doublings into one per bit (spec.md "Strauss–
// Shamir simultaneous double-and-add"). internal/pipeline's ECDSA
// recovery does not call it: it computes u1*G with FixedBaseComb and
// u2*R with DoubleAndAdd, then adds the two.
func StraussShamir[T Point[T]](p1 T, k1 *big.Int, p2 T, k2 *big.Int, identity T, bitLen int) T {
	sum := p1.AddUnsafe(p2)
	acc := identity
	for i := bitLen - 1; i >= 0; i-- {
		if !acc.IsIdentity() {
			acc = acc.Double()
		}
		b1 := k1.Bit(i)
		b2 := k2.Bit(i)
		switch {
		case b1 == 1 && b2 == 1:
			acc = addToAcc(acc, sum)
		case b1 == 1:
			acc = addToAcc(acc, p1)
		case b2 == 1:
			acc = addToAcc(acc, p2)
		}
	}
	return acc
}

// CombWindow is the window width of the fixed-base comb (spec.md
// section 4.F: w=4, so each table holds 2^w-1=15 precomputed
// multiples of the base point).
const CombWindow = 4

// CombTableSize is the number of non-zero table entries per comb
// digit position (2^w - 1).
const CombTableSize = (1 << CombWindow) - 1

// CombChunks is the number of base-2^w digits covering a 256-bit
// scalar.
const CombChunks = (256 + CombWindow - 1) / CombWindow

// BuildCombTable precomputes, for a single digit position, the
// CombTableSize non-zero multiples {1*base, 2*base, ..., 15*base}: a
// doubling for 2*base (the chord law cannot add a point to itself),
// then repeated unsafe addition. base must not be the identity.
func BuildCombTable[T Point[T]](base T) []T {
	table := make([]T, CombTableSize)
	table[0] = base
	table[1] = base.Double()
	for i := 2; i < CombTableSize; i++ {
		table[i] = table[i-1].AddUnsafe(base)
	}
	return table
}

// FixedBaseComb computes k*base using a precomputed set of per-chunk
// tables (one BuildCombTable output per of the CombChunks digit
// positions, each built from base scaled by 2^(w*chunkIndex) — callers
// supply tables via internal/precompute, which owns the
// width-dependent caching). digit(i) must return the i'th base-2^w
// digit of k, i in [0, CombChunks).
func FixedBaseComb[T Point[T]](tables [][]T, identity T, digit func(i int) int) T {
	acc := identity
	for i := 0; i < CombChunks; i++ {
		d := digit(i)
		if d == 0 {
			continue
		}
		acc = addToAcc(acc, tables[i][d-1])
	}
	return acc
}

// ScalarDigitsBaseW splits k into CombChunks base-2^w digits,
// least-significant chunk first, for use with FixedBaseComb.
func ScalarDigitsBaseW(k *big.Int) []int {
	digits := make([]int, CombChunks)
	mask := big.NewInt((1 << CombWindow) - 1)
	tmp := new(big.Int).Set(k)
	for i := 0; i < CombChunks; i++ {
		var d big.Int
		d.And(tmp, mask)
		digits[i] = int(d.Int64())
		tmp.Rsh(tmp, CombWindow)
	}
	return digits
}
