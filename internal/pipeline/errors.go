package pipeline

import "errors"

// ErrShaderFailure mirrors spec.md section 6: ed25519 batch verify
// reports the absence of the stage-5 success flag as a shader
// execution failure rather than a plain false/true result.
var ErrShaderFailure = errors.New("pipeline: shader execution failure (success flag not set)")

// ErrInvalidRecovery is returned by the per-signature recovery steps
// (stage0, recoverOne) when a signature's r does not correspond to a
// curve point, or the u1*G+u2*R sum collapses to the identity (spec.md
// section 4.G.1 stage 1/4). The batch drivers do not return it: that
// signature's 64-byte output slot is left zeroed instead.
var ErrInvalidRecovery = errors.New("pipeline: signature does not recover to a valid point")

// ErrLengthMismatch is returned when signatures and messages (and, for
// ed25519, verifying keys) are not sequence-aligned (spec.md section
// 4.G.1 "Precondition: len(signatures) = len(messages) = N").
var ErrLengthMismatch = errors.New("pipeline: signatures and messages must have equal length")
