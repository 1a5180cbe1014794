// Package ed25519ref is the host reference for ed25519 batch verify
// (spec.md section 4.H), delegating straight to golang.org/x/crypto's
// ed25519 implementation — an independent code path from
// internal/curve/ed25519's from-scratch extended-coordinate arithmetic,
// used by tests to cross-check internal/pipeline's batch-verify result.
package ed25519ref

import (
	"golang.org/x/crypto/ed25519"
)

// Verify reports whether sig is a valid ed25519 signature over message
// by verifyingKey, using the standard library-equivalent reference
// implementation rather than this module's own curve arithmetic.
func Verify(verifyingKey []byte, message, sig []byte) bool {
	if len(verifyingKey) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(verifyingKey), message, sig)
}
