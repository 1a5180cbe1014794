// Package secp256r1ref is the host reference implementation of
// secp256r1 ECDSA recovery (spec.md section 4.H), built directly on
// crypto/elliptic + math/big rather than on internal/field's
// Montgomery arithmetic — an intentionally independent code path so
// internal/pipeline's recovery result can be cross-checked against
// something that does not share its bugs.
package secp256r1ref

import (
	"crypto/elliptic"
	"errors"
	"math/big"
)

// ErrInvalidRecoveryInput mirrors secp256k1ref's sentinel: r does not
// correspond to a curve point, or the recovered sum is the identity.
var ErrInvalidRecoveryInput = errors.New("secp256r1ref: r does not correspond to a curve point")

var curve = elliptic.P256()

// RecoverPublicKey recovers the public key from an ECDSA signature
// (r, s, yParity) over digest msgHash32, following the same textbook
// recovery equation as internal/refcurve/secp256k1ref: R = (x=r,
// y with parity yParity); u1 = -z*r^-1 mod n; u2 = s*r^-1 mod n;
// Q = u1*G + u2*R.
func RecoverPublicKey(r, s *big.Int, yParity bool, msgHash32 []byte) (x, y *big.Int, err error) {
	params := curve.Params()
	n := params.N
	p := params.P

	ry := decompressY(params, r, yParity)
	if ry == nil {
		return nil, nil, ErrInvalidRecoveryInput
	}
	if !curve.IsOnCurve(r, ry) {
		return nil, nil, ErrInvalidRecoveryInput
	}

	z := new(big.Int).SetBytes(msgHash32)
	z.Mod(z, n)

	rInv := new(big.Int).ModInverse(r, n)
	if rInv == nil {
		return nil, nil, ErrInvalidRecoveryInput
	}

	u1 := new(big.Int).Mul(z, rInv)
	u1.Neg(u1)
	u1.Mod(u1, n)

	u2 := new(big.Int).Mul(s, rInv)
	u2.Mod(u2, n)

	x1, y1 := curve.ScalarBaseMult(u1.Bytes())
	x2, y2 := curve.ScalarMult(r, ry, u2.Bytes())

	qx, qy := curve.Add(x1, y1, x2, y2)
	if qx.Sign() == 0 && qy.Sign() == 0 {
		return nil, nil, ErrInvalidRecoveryInput
	}
	_ = p
	return qx, qy, nil
}

// decompressY evaluates y^2 = x^3 - 3x + b mod p and returns the root
// matching yParity, or nil if x is not on the curve.
func decompressY(params *elliptic.CurveParams, x *big.Int, yParity bool) *big.Int {
	p := params.P
	x3 := new(big.Int).Exp(x, big.NewInt(3), p)
	threeX := new(big.Int).Lsh(x, 1)
	threeX.Add(threeX, x)
	rhs := new(big.Int).Sub(x3, threeX)
	rhs.Add(rhs, params.B)
	rhs.Mod(rhs, p)

	exp := new(big.Int).Add(p, big.NewInt(1))
	exp.Rsh(exp, 2)
	y := new(big.Int).Exp(rhs, exp, p)

	check := new(big.Int).Mul(y, y)
	check.Mod(check, p)
	if check.Cmp(rhs) != 0 {
		return nil
	}
	if y.Bit(0) == 1 != yParity {
		y.Sub(p, y)
	}
	return y
}
