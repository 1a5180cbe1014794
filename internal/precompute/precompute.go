// Package precompute builds and caches the fixed-base comb tables of
// spec.md section 4.F: for each curve and limb width W, the CombChunks
// windows of CombTableSize precomputed multiples of the generator.
// Only generator tables are built here; ECDSA recovery's u2*R uses
// scalarmul.DoubleAndAdd on the recovered point instead. Tables are
// Montgomery-form affine points lifted to the curve's Projective/
// Extended representation with Z=1, generated once per (curve, W) and
// cached for the lifetime of the process — mirroring how the teacher
// corpus treats any other expensive, width-indexed derived constant.
package precompute

import (
	"math/big"
	"sync"

	"github.com/fuellabs/gpu-sigops/internal/curve/ed25519"
	"github.com/fuellabs/gpu-sigops/internal/curve/secp256k1"
	"github.com/fuellabs/gpu-sigops/internal/curve/secp256r1"
	"github.com/fuellabs/gpu-sigops/internal/field"
	"github.com/fuellabs/gpu-sigops/internal/limb"
	"github.com/fuellabs/gpu-sigops/internal/scalarmul"
)

// Secp256k1Tables returns (building and caching on first use) the
// comb tables for the secp256k1 generator at width w.
func Secp256k1Tables(w limb.Width) ([][]secp256k1.Projective, *field.Modulus, error) {
	return secp256k1Cache.get(w, func(m *field.Modulus) [][]secp256k1.Projective {
		gx, gy := secp256k1.GeneratorXY()
		g := secp256k1.FromAffine(m, toElement(m, gx), toElement(m, gy))
		return buildTables[secp256k1.Projective](g)
	}, func(w limb.Width) (*field.Modulus, error) { return secp256k1.NewFieldModulus(w) })
}

// Secp256r1Tables returns the comb tables for the secp256r1 generator
// at width w.
func Secp256r1Tables(w limb.Width) ([][]secp256r1.Projective, *field.Modulus, error) {
	return secp256r1Cache.get(w, func(m *field.Modulus) [][]secp256r1.Projective {
		gx, gy := secp256r1.GeneratorXY()
		g := secp256r1.FromAffine(m, toElement(m, gx), toElement(m, gy))
		return buildTables[secp256r1.Projective](g)
	}, func(w limb.Width) (*field.Modulus, error) { return secp256r1.NewFieldModulus(w) })
}

// Ed25519Tables returns the comb tables for the ed25519 base point at
// width w.
func Ed25519Tables(w limb.Width) ([][]ed25519.Extended, *field.Modulus, error) {
	return ed25519Cache.get(w, func(m *field.Modulus) [][]ed25519.Extended {
		gx, gy := ed25519.GeneratorXY()
		g := ed25519.FromAffine(m, toElement(m, gx), toElement(m, gy))
		return buildTables[ed25519.Extended](g)
	}, func(w limb.Width) (*field.Modulus, error) { return ed25519.NewFieldModulus(w) })
}

func toElement(m *field.Modulus, v *big.Int) field.Element {
	limbs := m.Params().FromUint256ToLimbs(new(big.Int).Mod(v, m.Prime()))
	return field.FromStandardLimbs(m, limbs)
}

// buildTables constructs the CombChunks per-digit tables for base
// point g: table[i] holds the CombTableSize multiples of
// 2^(CombWindow*i) * g.
func buildTables[T scalarmul.Point[T]](g T) [][]T {
	tables := make([][]T, scalarmul.CombChunks)
	cur := g
	for i := 0; i < scalarmul.CombChunks; i++ {
		tables[i] = scalarmul.BuildCombTable[T](cur)
		for j := 0; j < scalarmul.CombWindow; j++ {
			cur = cur.Double()
		}
	}
	return tables
}

type cache[T any] struct {
	mu      sync.Mutex
	tables  map[limb.Width][]T
	modulus map[limb.Width]*field.Modulus
}

func (c *cache[T]) get(w limb.Width, build func(*field.Modulus) T, newModulus func(limb.Width) (*field.Modulus, error)) (T, *field.Modulus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tables == nil {
		c.tables = make(map[limb.Width]T)
		c.modulus = make(map[limb.Width]*field.Modulus)
	}
	if t, ok := c.tables[w]; ok {
		return t, c.modulus[w], nil
	}
	m, err := newModulus(w)
	if err != nil {
		var zero T
		return zero, nil, err
	}
	t := build(m)
	c.tables[w] = t
	c.modulus[w] = m
	return t, m, nil
}

var (
	secp256k1Cache cache[[][]secp256k1.Projective]
	secp256r1Cache cache[[][]secp256r1.Projective]
	ed25519Cache   cache[[][]ed25519.Extended]
)
