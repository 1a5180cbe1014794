// Package secp256k1ref is the host reference implementation of
// secp256k1 ECDSA recovery (spec.md section 4.H), built directly on
// github.com/btcsuite/btcd/btcec/v2's curve (which implements the
// standard elliptic.Curve interface) plus math/big, the same way
// internal/refcurve/secp256r1ref is built on crypto/elliptic — an
// intentionally independent code path so internal/pipeline's
// Montgomery-arithmetic recovery result can be cross-checked against
// something that does not share its bugs.
package secp256k1ref

import (
	"crypto/elliptic"
	"errors"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
)

// ErrInvalidRecoveryInput mirrors secp256r1ref's sentinel: r does not
// correspond to a curve point, or the recovered sum is the identity.
var ErrInvalidRecoveryInput = errors.New("secp256k1ref: r does not correspond to a curve point")

var curve = btcec.S256()

// RecoverPublicKey recovers the public key from an ECDSA signature
// (r, s, yParity) over digest msgHash32, following the textbook
// recovery equation: R = (x=r, y with parity yParity); u1 = -z*r^-1
// mod n; u2 = s*r^-1 mod n; Q = u1*G + u2*R. reduceR implements
// spec.md Open Question O1 (is_reduced): when r has wrapped past the
// scalar order n but the true x-coordinate is still < the field
// prime p, the recovery x-coordinate is r+n instead of r.
func RecoverPublicKey(r, s *big.Int, yParity bool, msgHash32 []byte, reduceR bool) (x, y *big.Int, err error) {
	n := curve.Params().N

	rx := new(big.Int).Set(r)
	if reduceR {
		rx.Add(rx, n)
	}

	ry := decompressY(curve.Params(), rx, yParity)
	if ry == nil {
		return nil, nil, ErrInvalidRecoveryInput
	}
	if !curve.IsOnCurve(rx, ry) {
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
	x2, y2 := curve.ScalarMult(rx, ry, u2.Bytes())

	qx, qy := curve.Add(x1, y1, x2, y2)
	if qx.Sign() == 0 && qy.Sign() == 0 {
		return nil, nil, ErrInvalidRecoveryInput
	}
	return qx, qy, nil
}

// decompressY evaluates y^2 = x^3 + 7 mod p (secp256k1's b=7, a=0) and
// returns the root matching yParity, or nil if x is not on the curve.
func decompressY(params *elliptic.CurveParams, x *big.Int, yParity bool) *big.Int {
	p := params.P
	b := params.B
	x3 := new(big.Int).Exp(x, big.NewInt(3), p)
	rhs := new(big.Int).Add(x3, b)
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
