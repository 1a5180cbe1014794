// Package limb implements the host-side big-integer limb library of
// spec.md component 4.A: conversion between 256-bit integers and
// little-endian limb vectors of a configurable width W, plus the
// exact/truncated add, subtract, compare and multiply primitives the
// GPU kernels (internal/field, internal/curve/*) are built from.
//
// A limb vector is little-endian: Vector[0] holds the least
// significant W bits. Every limb must satisfy limb < 1<<W
// (spec.md invariant I-LIMB); callers that violate it get undefined
// results, matching the GPU kernels' own lack of bounds-checking.
package limb

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

// Width is the compile-time-in-the-original, runtime-here log2 of the
// limb size (spec.md: W in {11,...,15}).
type Width uint

// MinWidth and MaxWidth bound the W values the kernels are parameterised
// over (spec.md section 1).
const (
	MinWidth Width = 11
	MaxWidth Width = 15

	// BitLength is the operand size every limb vector in this package
	// represents: a 256-bit residue or scalar.
	BitLength = 256
)

// Vector is a little-endian limb slice. Each entry is < 1<<W.
type Vector []uint32

// Params bundles the derived constants for one W: the limb count L
// covering 256 bits, the per-limb mask, and the number of always-zero
// slack bits in the most significant limb.
type Params struct {
	W    Width
	L    int
	Mask uint32
	// Slack is S = L*W - 256 (spec.md section 3).
	Slack uint
}

// NewParams validates W and derives L, Mask and Slack.
func NewParams(w Width) (Params, error) {
	if w < MinWidth || w > MaxWidth {
		return Params{}, fmt.Errorf("limb: width %d out of range [%d,%d]", w, MinWidth, MaxWidth)
	}
	l := (BitLength + int(w) - 1) / int(w)
	return Params{
		W:     w,
		L:     l,
		Mask:  uint32(1)<<uint(w) - 1,
		Slack: uint(l)*uint(w) - BitLength,
	}, nil
}

// New allocates a zeroed vector of L limbs.
func (p Params) New() Vector {
	return make(Vector, p.L)
}

// FromUint256 encodes v (which must fit in L*W bits; for BitLength=256
// and any supported W, L*W >= 256 so every uint256 value fits) as L
// little-endian limbs each < 1<<W. This is spec.md's from_biguint_le.
func (p Params) FromUint256(v *uint256.Int) Vector {
	out := p.New()
	var tmp uint256.Int
	tmp.Set(v)
	maskBig := uint256.NewInt(uint64(p.Mask))
	for i := 0; i < p.L; i++ {
		var limb uint256.Int
		limb.And(&tmp, maskBig)
		out[i] = uint32(limb.Uint64())
		tmp.Rsh(&tmp, uint(p.W))
	}
	return out
}

// ToUint256 is the inverse of FromUint256 (spec.md's to_biguint_le).
func (p Params) ToUint256(limbs Vector) *uint256.Int {
	out := new(uint256.Int)
	var shifted uint256.Int
	for i := p.L - 1; i >= 0; i-- {
		out.Lsh(out, uint(p.W))
		shifted.SetUint64(uint64(limbs[i]))
		out.Add(out, &shifted)
	}
	return out
}

// FromBytesBE decodes a 32-byte big-endian integer into a limb vector.
func (p Params) FromBytesBE(b []byte) (Vector, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("limb: expected 32 bytes, got %d", len(b))
	}
	v := new(uint256.Int).SetBytes(b)
	return p.FromUint256(v), nil
}

// ToBytesBE encodes a limb vector as 32 big-endian bytes.
func (p Params) ToBytesBE(limbs Vector) [32]byte {
	return p.ToUint256(limbs).Bytes32()
}

// AddUnsafe computes the truncated L-limb sum; the caller guarantees
// the true sum fits in L limbs (spec.md bigint_add_unsafe).
func (p Params) AddUnsafe(a, b Vector) Vector {
	out := p.New()
	var carry uint32
	for i := 0; i < p.L; i++ {
		s := a[i] + b[i] + carry
		out[i] = s & p.Mask
		carry = s >> p.W
	}
	return out
}

// AddWide computes the exact (L+1)-limb sum (spec.md bigint_add_wide).
func (p Params) AddWide(a, b Vector) Vector {
	out := make(Vector, p.L+1)
	var carry uint32
	for i := 0; i < p.L; i++ {
		s := a[i] + b[i] + carry
		out[i] = s & p.Mask
		carry = s >> p.W
	}
	out[p.L] = carry
	return out
}

// Sub computes the exact L-limb difference a-b; behaviour is
// unspecified (per spec.md) when a < b.
func (p Params) Sub(a, b Vector) Vector {
	out := p.New()
	var borrow int64
	for i := 0; i < p.L; i++ {
		d := int64(a[i]) - int64(b[i]) - borrow
		if d < 0 {
			d += int64(p.Mask) + 1
			borrow = 1
		} else {
			borrow = 0
		}
		out[i] = uint32(d)
	}
	return out
}

// WideSub computes the (L+1)-limb difference a-b over (L+1)-limb
// operands; if a<b the result wraps as a-b+2^((L+1)W) (spec.md
// bigint_wide_sub).
func (p Params) WideSub(a, b Vector) Vector {
	n := p.L + 1
	out := make(Vector, n)
	var borrow int64
	for i := 0; i < n; i++ {
		d := int64(a[i]) - int64(b[i]) - borrow
		if d < 0 {
			d += int64(p.Mask) + 1
			borrow = 1
		} else {
			borrow = 0
		}
		out[i] = uint32(d)
	}
	return out
}

// Gte reports whether a >= b, comparing most-significant limb first
// (spec.md bigint_gte).
func Gte(a, b Vector) bool {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != b[i] {
			return a[i] > b[i]
		}
	}
	return true
}

// Mul computes the full 2L-limb product of two L-limb vectors
// (spec.md bigint_mul), schoolbook with uint64 accumulation: each
// partial product is < (1<<W)^2 <= 1<<30, and at most L <= 24 of them
// accumulate per output limb, nowhere near overflowing a uint64
// accumulator.
func (p Params) Mul(a, b Vector) Vector {
	out := make(Vector, 2*p.L)
	acc := make([]uint64, 2*p.L+1)
	for i := 0; i < p.L; i++ {
		if a[i] == 0 {
			continue
		}
		var carry uint64
		ai := uint64(a[i])
		for j := 0; j < p.L; j++ {
			acc[i+j] += ai*uint64(b[j]) + carry
			carry = acc[i+j] >> p.W
			acc[i+j] &= uint64(p.Mask)
		}
		acc[i+p.L] += carry
	}
	// propagate any residual carries (acc[i+j] was masked above, so
	// carry only ever flows into the next limb we haven't visited yet
	// for i+1; a final left-to-right pass mops up the tail).
	var carry uint64
	for i := 0; i < 2*p.L; i++ {
		acc[i] += carry
		out[i] = uint32(acc[i] & uint64(p.Mask))
		carry = acc[i] >> p.W
	}
	return out
}

// Shr384 right-shifts a 512-bit (2L-limb) value by 384 bits, used by
// the GLV scalar split (spec.md bigint_shr_384). 384 is not W-aligned
// for every supported width, so this goes through math/big rather
// than a limb-by-limb shift loop.
func (p Params) Shr384(x Vector) Vector {
	v := p.limbsToBig(x)
	v.Rsh(v, 384)
	return p.bigToLimbs(v, 2*p.L)
}

func (p Params) limbsToBig(v Vector) *big.Int {
	out := new(big.Int)
	shift := new(big.Int)
	limb := new(big.Int)
	for i := len(v) - 1; i >= 0; i-- {
		out.Lsh(out, uint(p.W))
		limb.SetUint64(uint64(v[i]))
		out.Add(out, shift.Set(limb))
	}
	return out
}

func (p Params) bigToLimbs(v *big.Int, n int) Vector {
	out := make(Vector, n)
	tmp := new(big.Int).Set(v)
	mask := big.NewInt(int64(p.Mask))
	word := new(big.Int)
	for i := 0; i < n; i++ {
		word.And(tmp, mask)
		out[i] = uint32(word.Uint64())
		tmp.Rsh(tmp, uint(p.W))
	}
	return out
}
