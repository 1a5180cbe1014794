// Package workgroup implements the dispatch-shape planner of spec.md
// section 4.E: given a batch size N, decide how many GPU lanes
// (workgroups of fixed size 256) to dispatch along each of the three
// grid axes.
package workgroup

import "fmt"

// Size is the fixed per-workgroup lane count the kernels are written
// against (spec.md section 4.E).
const Size = 256

// MaxX and MaxY bound the first two grid axes; MaxZ bounds the third,
// tighter per spec.md's stated dispatch-limits policy.
const (
	MaxX = 256
	MaxY = 256
	MaxZ = 64
)

// Plan is the resulting (nx, ny, nz) workgroup-count triple.
type Plan struct {
	NX, NY, NZ int
}

// Total reports the total number of workgroups the plan dispatches.
func (p Plan) Total() int { return p.NX * p.NY * p.NZ }

// LaneCapacity reports how many lanes the plan covers: N_pow2, or one
// full workgroup of Size lanes when N_pow2 is smaller than that.
func (p Plan) LaneCapacity() int { return p.Total() * Size }

// Compute derives a dispatch plan for n items, rounding n up to a
// power of two first (spec.md's N_pow2 padding), then filling the X
// axis, then Y, then Z, in that order, per spec.md section 4.E.
func Compute(n int) (Plan, error) {
	if n <= 0 {
		return Plan{}, fmt.Errorf("workgroup: n must be positive, got %d", n)
	}
	nPow2 := nextPow2(n)
	workgroups := (nPow2 + Size - 1) / Size
	if workgroups <= MaxX {
		return Plan{NX: workgroups, NY: 1, NZ: 1}, nil
	}

	nx := MaxX
	remaining := (workgroups + nx - 1) / nx
	if remaining <= MaxY {
		return Plan{NX: nx, NY: remaining, NZ: 1}, nil
	}

	ny := MaxY
	nz := (remaining + ny - 1) / ny
	if nz > MaxZ {
		return Plan{}, fmt.Errorf("workgroup: n=%d requires nz=%d workgroups along Z, exceeding the limit of %d", n, nz, MaxZ)
	}
	return Plan{NX: nx, NY: ny, NZ: nz}, nil
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
