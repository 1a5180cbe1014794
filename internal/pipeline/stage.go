// Package pipeline implements spec.md section 4.G: the per-scheme
// pipeline drivers for secp256k1/secp256r1 ECDSA recovery and ed25519
// batch verify, atop internal/gpu's software SIMT executor and
// internal/workgroup's dispatch planner. Each driver issues a single
// dispatch whose lanes run every stage for one signature; the
// "single-kernel" entry points delegate to the "multi" ones, and no
// driver issues one dispatch per stage.
package pipeline

import (
	"context"
	"math/big"

	"github.com/fuellabs/gpu-sigops/internal/field"
	"github.com/fuellabs/gpu-sigops/internal/gpu"
	"github.com/fuellabs/gpu-sigops/internal/limb"
	"github.com/fuellabs/gpu-sigops/internal/scalarmul"
)

// Signature is the curve-agnostic (r, s, yParity) triple both ECDSA
// recovery pipelines consume, after the Fuel wire-format masking
// described in spec.md section 6 has already been applied by the
// caller.
type Signature struct {
	R, S    *big.Int
	YParity bool
}

// curveOps bundles the curve-specific hooks the generic recovery
// pipeline below needs; secp256k1_multi.go / secp256r1_multi.go
// instantiate one each from their respective internal/curve package.
type curveOps[T scalarmul.Point[T]] struct {
	fieldModulus  func(limb.Width) (*field.Modulus, error)
	scalarModulus func(limb.Width) (*field.Modulus, error)
	generatorXY   func() (x, y *big.Int)
	fromAffine    func(m *field.Modulus, x, y field.Element) T
	recoverY      func(m *field.Modulus, x field.Element) (y0, y1 field.Element, ok bool)
	identity      func(m *field.Modulus) T
	tables        func(limb.Width) ([][]T, *field.Modulus, error)
	normalize     func(T) (x, y field.Element)
}

func toElement(m *field.Modulus, v *big.Int) field.Element {
	vv := new(big.Int).Mod(v, m.Prime())
	return field.FromStandardLimbs(m, m.Params().FromUint256ToLimbs(vv))
}

func addMaybeIdentity[T scalarmul.Point[T]](a, b T) T {
	if a.IsIdentity() {
		return b
	}
	if b.IsIdentity() {
		return a
	}
	return a.AddUnsafe(b)
}

// stage0 implements spec.md 4.G.1 stage 1: parse the signature,
// derive u1/u2 over the scalar field, and recover R from r via
// y-parity.
func (ops curveOps[T]) stage0(fm, sm *field.Modulus, sig Signature, z *big.Int) (u1, u2 *big.Int, r T, err error) {
	rElem := toElement(sm, sig.R)
	sElem := toElement(sm, sig.S)
	zElem := toElement(sm, z)

	rInv := field.Inverse(rElem)
	u1Elem := field.Neg(field.Mul(zElem, rInv))
	u2Elem := field.Mul(sElem, rInv)

	xElem := toElement(fm, sig.R)
	y0, y1, ok := ops.recoverY(fm, xElem)
	if !ok {
		// O1 (is_reduced): r is taken mod the scalar order n, but the
		// true x-coordinate of R may have been >= n while still < the
		// field prime p — ported from original_source's
		// secp256k1_ecdsa.rs is_reduced branch. Retry with x = r + n
		// before declaring the signature unrecoverable.
		n := sm.Prime()
		p := fm.Prime()
		rPlusN := new(big.Int).Add(sig.R, n)
		if rPlusN.Cmp(p) < 0 {
			xElem = toElement(fm, rPlusN)
			y0, y1, ok = ops.recoverY(fm, xElem)
		}
	}
	if !ok {
		var zero T
		return nil, nil, zero, ErrInvalidRecovery
	}
	y := y0
	field.CMov(&y, y1, y0.IsOdd() != sig.YParity)
	rPoint := ops.fromAffine(fm, xElem, y)

	u1b := u1Elem.ToStandardBytesBE()
	u2b := u2Elem.ToStandardBytesBE()
	return new(big.Int).SetBytes(u1b[:]), new(big.Int).SetBytes(u2b[:]), rPoint, nil
}

// recoverOne runs stages 1-5 for a single signature; it is the lane
// body of recoverMulti's one dispatch, which recoverSingle reuses.
func (ops curveOps[T]) recoverOne(fm, sm *field.Modulus, tables [][]T, sig Signature, z *big.Int) ([64]byte, error) {
	u1, u2, r, err := ops.stage0(fm, sm, sig, z)
	if err != nil {
		return [64]byte{}, err
	}

	identity := ops.identity(fm)
	u1Point := scalarmul.FixedBaseComb(tables, identity, func(i int) int {
		digits := scalarmul.ScalarDigitsBaseW(u1)
		return digits[i]
	})
	u2Point := scalarmul.DoubleAndAdd(r, identity, u2, limb.BitLength)

	sum := addMaybeIdentity(u1Point, u2Point)
	if sum.IsIdentity() {
		return [64]byte{}, ErrInvalidRecovery
	}

	x, y := ops.normalize(sum)
	var out [64]byte
	xb := x.ToStandardBytesBE()
	yb := y.ToStandardBytesBE()
	copy(out[0:32], xb[:])
	copy(out[32:64], yb[:])
	return out, nil
}

// recoverMulti runs the multi-kernel driver (spec.md 4.G.1) as one
// internal/gpu dispatch over the N input lanes, each lane running all
// of stages 1-5 via recoverOne. The stages are not split into
// separate dispatches, and padding lanes past N are not run.
func recoverMulti[T scalarmul.Point[T]](ctx context.Context, ops curveOps[T], sigs []Signature, msgHashes []*big.Int, w limb.Width) ([][64]byte, error) {
	if len(sigs) != len(msgHashes) {
		return nil, ErrLengthMismatch
	}
	n := len(sigs)
	if n == 0 {
		return nil, nil
	}

	fm, err := ops.fieldModulus(w)
	if err != nil {
		return nil, err
	}
	sm, err := ops.scalarModulus(w)
	if err != nil {
		return nil, err
	}
	tables, _, err := ops.tables(w)
	if err != nil {
		return nil, err
	}

	dev := gpu.NewDevice(0)
	out := make([][64]byte, n)

	bg := gpu.BindGroup{"out": &gpu.Buffer{Data: make([]any, n)}}
	_, derr := dev.Dispatch(ctx, gpu.Pipeline{
		Name: "ecdsa_recover_multi",
		Run: func(_ context.Context, _ gpu.BindGroup, lane int) error {
			// spec.md section 7 ("Decoding"): a malformed per-signature
			// input yields an undefined 64-byte output at that index,
			// not a batch-wide failure. recoverOne already zeroes its
			// result on a recovery error, so the lane's own error is
			// not propagated to the executor.
			res, _ := ops.recoverOne(fm, sm, tables, sigs[lane], msgHashes[lane])
			out[lane] = res
			return nil
		},
	}, bg, n)
	if derr != nil {
		return nil, derr
	}
	return out, nil
}

// recoverSingle runs the single-kernel driver (spec.md 4.G.2) by
// delegating to recoverMulti: both issue the same single dispatch and
// return identical results.
func recoverSingle[T scalarmul.Point[T]](ctx context.Context, ops curveOps[T], sigs []Signature, msgHashes []*big.Int, w limb.Width) ([][64]byte, error) {
	return recoverMulti(ctx, ops, sigs, msgHashes, w)
}
