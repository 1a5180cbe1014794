// Package gpusigops is the driver-API layer of spec.md section 6: the
// library-level entry points (ecrecover_secp256k1, ecrecover_secp256r1,
// ecverify_ed25519, ecverify_ed25519_single) that parse the Fuel wire
// formats, shard N into N_pow2-sized GPU dispatches via
// internal/workgroup, and invoke the per-scheme internal/pipeline
// drivers.
package gpusigops

import (
	"context"
	"math/big"

	"github.com/fuellabs/gpu-sigops/internal/curve/secp256k1"
	"github.com/fuellabs/gpu-sigops/internal/curve/secp256r1"
	"github.com/fuellabs/gpu-sigops/internal/limb"
	"github.com/fuellabs/gpu-sigops/internal/pipeline"
	"github.com/fuellabs/gpu-sigops/internal/workgroup"
)

// DefaultWidth is the limb width used when a caller has no particular
// reason to pick one (spec.md section 1: W in {11..15}).
const DefaultWidth = limb.Width(13)

// Secp256k1Signature is the raw 64-byte Fuel-encoded secp256k1/
// secp256r1 signature: r (32 bytes BE) ‖ s (32 bytes BE) with y-parity
// packed into the high bit of byte 32 (spec.md section 6).
type Secp256k1Signature [64]byte

// ParseFuelSignature unmasks the y-parity bit per spec.md's wire
// format: y_parity = (byte32 & 0x80) != 0; byte32 &= 0x7f.
func ParseFuelSignature(raw [64]byte) pipeline.Signature {
	r := new(big.Int).SetBytes(raw[0:32])
	sBytes := raw[32:64]
	yParity := sBytes[0]&0x80 != 0
	var sFixed [32]byte
	copy(sFixed[:], sBytes)
	sFixed[0] &= 0x7f
	s := new(big.Int).SetBytes(sFixed[:])
	return pipeline.Signature{R: r, S: s, YParity: yParity}
}

// PlanDispatch performs the host-side sharding spec.md section 6
// requires every driver to expose separately (N → N_pow2, workgroup
// planning) so a benchmark harness can time it apart from GPU work.
func PlanDispatch(n int) (workgroup.Plan, error) {
	return workgroup.Compute(n)
}

// EcrecoverSecp256k1 implements spec.md section 6's
// ecrecover_secp256k1(signatures, messages, W) driver.
func EcrecoverSecp256k1(ctx context.Context, signatures []Secp256k1Signature, messageHashes [][32]byte, w limb.Width) ([][64]byte, error) {
	sigs := make([]pipeline.Signature, len(signatures))
	for i, s := range signatures {
		sigs[i] = ParseFuelSignature(s)
	}
	zs := make([]*big.Int, len(messageHashes))
	for i, h := range messageHashes {
		zs[i] = new(big.Int).Mod(new(big.Int).SetBytes(h[:]), secp256k1.N())
	}
	return pipeline.RecoverSecp256k1Multi(ctx, sigs, zs, w)
}

// EcrecoverSecp256k1SingleKernel implements the single-kernel variant
// of ecrecover_secp256k1.
func EcrecoverSecp256k1SingleKernel(ctx context.Context, signatures []Secp256k1Signature, messageHashes [][32]byte, w limb.Width) ([][64]byte, error) {
	sigs := make([]pipeline.Signature, len(signatures))
	for i, s := range signatures {
		sigs[i] = ParseFuelSignature(s)
	}
	zs := make([]*big.Int, len(messageHashes))
	for i, h := range messageHashes {
		zs[i] = new(big.Int).Mod(new(big.Int).SetBytes(h[:]), secp256k1.N())
	}
	return pipeline.RecoverSecp256k1Single(ctx, sigs, zs, w)
}

// EcrecoverSecp256r1 implements spec.md section 6's
// ecrecover_secp256r1(signatures, messages, W) driver.
func EcrecoverSecp256r1(ctx context.Context, signatures []Secp256k1Signature, messageHashes [][32]byte, w limb.Width) ([][64]byte, error) {
	sigs := make([]pipeline.Signature, len(signatures))
	for i, s := range signatures {
		sigs[i] = ParseFuelSignature(s)
	}
	zs := make([]*big.Int, len(messageHashes))
	for i, h := range messageHashes {
		zs[i] = new(big.Int).Mod(new(big.Int).SetBytes(h[:]), secp256r1.N())
	}
	return pipeline.RecoverSecp256r1Multi(ctx, sigs, zs, w)
}

// EcverifyEd25519 implements spec.md section 6's ecverify_ed25519
// driver. It takes no table argument: the generator table for w comes
// from internal/precompute's per-width cache.
func EcverifyEd25519(ctx context.Context, signatures []pipeline.Ed25519Signature, messages [][]byte, verifyingKeys [][32]byte, w limb.Width) ([]bool, error) {
	return pipeline.VerifyEd25519Multi(ctx, signatures, messages, verifyingKeys, w)
}

// EcverifyEd25519Single implements the single-kernel variant,
// ecverify_ed25519_single.
func EcverifyEd25519Single(ctx context.Context, signatures []pipeline.Ed25519Signature, messages [][]byte, verifyingKeys [][32]byte, w limb.Width) ([]bool, error) {
	return pipeline.VerifyEd25519Single(ctx, signatures, messages, verifyingKeys, w)
}
