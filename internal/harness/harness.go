// Package harness implements spec.md section 4.I's test fixture
// generation: deterministic random secp256k1, secp256r1 and ed25519
// signatures for the property (P1-P12) and scenario (E1-E6) test
// suites, seeded with math/rand/v2's ChaCha8 (spec.md's named PRNG,
// "ChaCha8, seed=2") so fixtures reproduce byte-for-byte across runs.
package harness

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/sha256"
	"math/big"
	"math/rand/v2"

	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"golang.org/x/crypto/ed25519"
)

// Seed is spec.md's named deterministic seed for fixture generation.
const Seed = 2

// NewRand builds the deterministic ChaCha8 source spec.md names.
func NewRand() *rand.Rand {
	var seed [32]byte
	seed[0] = Seed
	return rand.New(rand.NewChaCha8(seed))
}

// Secp256k1Fixture is one generated (message, signature, recovery
// parity, expected public key) tuple.
type Secp256k1Fixture struct {
	MessageHash [32]byte
	R, S        *big.Int
	YParity     bool
	PubKeyX     *big.Int
	PubKeyY     *big.Int
}

// GenerateSecp256k1 produces n deterministic secp256k1 ECDSA
// recovery fixtures from rng.
func GenerateSecp256k1(rng *rand.Rand, n int) ([]Secp256k1Fixture, error) {
	out := make([]Secp256k1Fixture, n)
	for i := 0; i < n; i++ {
		priv, err := randScalarKey(rng, btcec.S256().N)
		if err != nil {
			return nil, err
		}
		privKey, pub := btcecKeyFromScalar(priv)

		var msg [32]byte
		fillRandomBytes(rng, msg[:])
		digest := sha256.Sum256(msg[:])

		r, s, yParity, err := signRecoverable(privKey, digest[:])
		if err != nil {
			return nil, err
		}

		out[i] = Secp256k1Fixture{
			MessageHash: digest,
			R:           r,
			S:           s,
			YParity:     yParity,
			PubKeyX:     pub.X(),
			PubKeyY:     pub.Y(),
		}
	}
	return out, nil
}

func randScalarKey(rng *rand.Rand, order *big.Int) (*big.Int, error) {
	for {
		var buf [32]byte
		fillRandomBytes(rng, buf[:])
		k := new(big.Int).SetBytes(buf[:])
		k.Mod(k, new(big.Int).Sub(order, big.NewInt(1)))
		k.Add(k, big.NewInt(1))
		return k, nil
	}
}

func btcecKeyFromScalar(k *big.Int) (*btcec.PrivateKey, *btcec.PublicKey) {
	var buf [32]byte
	k.FillBytes(buf[:])
	priv, pub := btcec.PrivKeyFromBytes(buf[:])
	return priv, pub
}

// signRecoverable produces an ECDSA signature and its recovery parity
// bit by calling the compact-signature encoder, which already carries
// the parity (spec.md's y_parity) in its header byte.
func signRecoverable(priv *btcec.PrivateKey, digest []byte) (r, s *big.Int, yParity bool, err error) {
	compact := btcecdsa.SignCompact(priv, digest, false)
	header := compact[0]
	yParity = (header-27)&1 == 1
	r = new(big.Int).SetBytes(compact[1:33])
	s = new(big.Int).SetBytes(compact[33:65])
	return r, s, yParity, nil
}

// Secp256r1Fixture mirrors Secp256k1Fixture for NIST P-256.
type Secp256r1Fixture struct {
	MessageHash [32]byte
	R, S        *big.Int
	YParity     bool
	PubKeyX     *big.Int
	PubKeyY     *big.Int
}

// GenerateSecp256r1 produces n deterministic secp256r1 ECDSA
// recovery fixtures using crypto/ecdsa directly (no third-party
// P-256 signer exists in the example corpus beyond the stdlib).
func GenerateSecp256r1(rng *rand.Rand, n int) ([]Secp256r1Fixture, error) {
	curve := elliptic.P256()
	out := make([]Secp256r1Fixture, n)
	for i := 0; i < n; i++ {
		var seed [32]byte
		fillRandomBytes(rng, seed[:])
		priv := new(ecdsa.PrivateKey)
		priv.PublicKey.Curve = curve
		priv.D = new(big.Int).SetBytes(seed[:])
		priv.D.Mod(priv.D, new(big.Int).Sub(curve.Params().N, big.NewInt(1)))
		priv.D.Add(priv.D, big.NewInt(1))
		priv.PublicKey.X, priv.PublicKey.Y = curve.ScalarBaseMult(priv.D.Bytes())

		var msg [32]byte
		fillRandomBytes(rng, msg[:])
		digest := sha256.Sum256(msg[:])

		r, s, yParity, err := signP256Recoverable(rng, priv, digest[:])
		if err != nil {
			return nil, err
		}

		out[i] = Secp256r1Fixture{
			MessageHash: digest,
			R:           r,
			S:           s,
			YParity:     yParity,
			PubKeyX:     priv.PublicKey.X,
			PubKeyY:     priv.PublicKey.Y,
		}
	}
	return out, nil
}

// signP256Recoverable signs with crypto/ecdsa and derives the
// recovery parity by testing both y candidates against the known
// public key (crypto/ecdsa does not expose recovery metadata the way
// libsecp256k1-derived signers do).
func signP256Recoverable(rng *rand.Rand, priv *ecdsa.PrivateKey, digest []byte) (r, s *big.Int, yParity bool, err error) {
	rr, ss, err := ecdsa.Sign(cryptoRandReader{rng}, priv, digest)
	if err != nil {
		return nil, nil, false, err
	}
	curve := priv.Curve
	x3 := new(big.Int).Exp(rr, big.NewInt(3), curve.Params().P)
	threeX := new(big.Int).Lsh(rr, 1)
	threeX.Add(threeX, rr)
	rhs := new(big.Int).Sub(x3, threeX)
	rhs.Add(rhs, curve.Params().B)
	rhs.Mod(rhs, curve.Params().P)
	exp := new(big.Int).Add(curve.Params().P, big.NewInt(1))
	exp.Rsh(exp, 2)
	y0 := new(big.Int).Exp(rhs, exp, curve.Params().P)
	y1 := new(big.Int).Sub(curve.Params().P, y0)

	n := curve.Params().N
	e := new(big.Int).Mod(new(big.Int).SetBytes(digest), n)
	eGx, eGy := curve.ScalarBaseMult(e.Bytes())
	sRx, sRy := curve.ScalarMult(rr, y0, ss.Bytes())
	qx, qy := curve.Add(sRx, sRy, eGx, new(big.Int).Sub(curve.Params().P, eGy))
	qx, qy = curve.ScalarMult(qx, qy, new(big.Int).ModInverse(rr, n).Bytes())
	candidate := y1
	if qx.Cmp(priv.PublicKey.X) == 0 && qy.Cmp(priv.PublicKey.Y) == 0 {
		candidate = y0
	}
	parity := candidate.Bit(0) == 1
	return rr, ss, parity, nil
}

// cryptoRandReader adapts a math/rand/v2 source to the io.Reader
// crypto/ecdsa.Sign requires; test fixtures only need determinism, not
// cryptographic unpredictability.
type cryptoRandReader struct{ rng *rand.Rand }

func (c cryptoRandReader) Read(p []byte) (int, error) {
	fillRandomBytes(c.rng, p)
	return len(p), nil
}

// Ed25519Fixture is one generated ed25519 batch-verify tuple.
type Ed25519Fixture struct {
	Message      []byte
	Signature    [64]byte
	VerifyingKey [32]byte
}

// GenerateEd25519 produces n deterministic, validly-signed ed25519
// fixtures using golang.org/x/crypto/ed25519.
func GenerateEd25519(rng *rand.Rand, n, messageLen int) ([]Ed25519Fixture, error) {
	out := make([]Ed25519Fixture, n)
	for i := 0; i < n; i++ {
		var seed [32]byte
		fillRandomBytes(rng, seed[:])
		priv := ed25519.NewKeyFromSeed(seed[:])
		pub := priv.Public().(ed25519.PublicKey)

		msg := make([]byte, messageLen)
		fillRandomBytes(rng, msg)
		sig := ed25519.Sign(priv, msg)

		var f Ed25519Fixture
		f.Message = msg
		copy(f.Signature[:], sig)
		copy(f.VerifyingKey[:], pub)
		out[i] = f
	}
	return out, nil
}

func fillRandomBytes(rng *rand.Rand, b []byte) {
	for i := range b {
		b[i] = byte(rng.Uint32())
	}
}
