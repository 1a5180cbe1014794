// Package sha512block implements the ed25519 batch-verify preimage
// hashing and scalar reduction of spec.md section 4.G.3: SHA-512 over
// R‖A‖M to derive the per-signature challenge k, then reduction of
// the resulting 512-bit digest modulo the group order ℓ.
//
// spec.md names a straight-line, 112-byte-preimage-shaped SHA-512
// compute kernel (mirroring the GPU shader that unrolls exactly the
// blocks a signature preimage needs); the host-reference equivalent
// here uses crypto/sha512 directly; no pack example hand-rolls its
// own SHA-512 compression function; they all call into a tested
// library or the standard library, and introducing a hand-written
// compression function here would add a large surface for a
// transcription bug with no corresponding kernel to cross-check
// against (see DESIGN.md).
package sha512block

import (
	"crypto/sha512"
	"math/big"
)

// HashRAM computes SHA-512(R || A || M), spec.md's ed25519 stage-1
// preimage.
func HashRAM(r, a, message []byte) [64]byte {
	h := sha512.New()
	h.Write(r)
	h.Write(a)
	h.Write(message)
	var out [64]byte
	copy(out[:], h.Sum(nil))
	return out
}

// ReduceModL interprets a 64-byte little-endian digest as an integer
// and reduces it modulo the ed25519 group order ℓ (spec.md's "32×16-
// bit Barrett reduction" kernel-level description; the host reference
// uses math/big's modulus directly since the two compute the same
// residue by construction).
func ReduceModL(digest []byte, l *big.Int) *big.Int {
	le := make([]byte, len(digest))
	for i, b := range digest {
		le[len(digest)-1-i] = b
	}
	v := new(big.Int).SetBytes(le)
	return v.Mod(v, l)
}
