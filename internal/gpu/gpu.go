// Package gpu implements the software SIMT executor backing spec.md
// section 4.D's device/buffer/bind-group/pipeline/dispatch contract.
//
// No repository in the retrieved corpus ships a pure-Go WebGPU, CUDA
// or Metal binding: the GPU-accelerated packages that DO exist there
// (parsdao-pars's mlkem/gpu.go, ringtail/ringtail_gpu.go) reach the
// device exclusively through cgo and a vendored C library — a real
// native dependency this module cannot adopt for a pure Go port (no
// such library ships in the example pack, and fabricating a C binding
// behind a replace directive would violate the "never fabricate
// dependencies" rule). Instead this package honours the same
// Device/Buffer/Pipeline/Dispatch contract spec.md describes, with
// "dispatch" implemented as one goroutine per SIMT lane — functionally
// faithful to the workgroup model (spec.md section 4.E) without
// requiring a GPU driver to exist in this process.
package gpu

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/fuellabs/gpu-sigops/internal/workgroup"
)

// Backend names the execution backend a Device reports, mirroring the
// Available()/GetBackend() convention the corpus's cgo-backed GPU
// packages expose for their native devices.
type Backend string

const (
	// BackendSoftwareSIMT is the only backend this module implements:
	// a goroutine-per-lane simulation of the workgroup dispatch model.
	BackendSoftwareSIMT Backend = "software-simt"
)

// Device is the software stand-in for spec.md's GPU device handle.
type Device struct {
	maxParallelism int
}

// NewDevice constructs a Device. maxParallelism bounds how many lanes
// run concurrently; 0 means "let the Go runtime scheduler decide"
// (GOMAXPROCS-bound).
func NewDevice(maxParallelism int) *Device {
	return &Device{maxParallelism: maxParallelism}
}

// Available always reports true: the software executor has no driver
// dependency to fail to find.
func (d *Device) Available() bool { return true }

// Backend reports this device's execution backend.
func (d *Device) Backend() Backend { return BackendSoftwareSIMT }

// Buffer is a host-resident slice of lane-indexed records. Buffer
// itself is untyped at this layer (spec.md's bind groups are typed by
// convention, not by the device); internal/pipeline supplies typed
// wrappers.
type Buffer struct {
	Data []any
}

// NewBuffer allocates a Buffer sized for n lanes.
func NewBuffer(n int) *Buffer {
	return &Buffer{Data: make([]any, n)}
}

// BindGroup is the set of buffers one Pipeline invocation reads from
// and writes to, keyed the way spec.md's kernels name their bindings
// (spec.md section 4.C's shared binding layout).
type BindGroup map[string]*Buffer

// Kernel is a single lane's unit of work: compute the output for lane
// index i given the bind group, returning an error to abort that
// lane's dispatch (a single lane's error does not stop siblings,
// mirroring a GPU invocation's lack of cross-lane control flow).
type Kernel func(ctx context.Context, bg BindGroup, lane int) error

// Pipeline pairs a Kernel with the human-readable name spec.md's
// kernel-source templates assign it (spec.md section 4.C).
type Pipeline struct {
	Name string
	Run  Kernel
}

// DispatchResult carries any per-lane errors back to the caller; a GPU
// dispatch has no way to report a single invocation's failure other
// than through its own output buffer, so pipelines conventionally
// encode failure as a sentinel value there too — DispatchResult is the
// software executor's side channel for surfacing that same condition
// without forcing every kernel to invent its own sentinel encoding.
type DispatchResult struct {
	LaneErrors map[int]error
}

// Dispatch runs pipeline.Run once per lane in [0, n), following the
// workgroup plan spec.md section 4.E derives for n, and fans the work
// out across goroutines bounded by d.maxParallelism.
func (d *Device) Dispatch(ctx context.Context, pipeline Pipeline, bg BindGroup, n int) (DispatchResult, error) {
	if n <= 0 {
		return DispatchResult{}, fmt.Errorf("gpu: dispatch size must be positive, got %d", n)
	}
	plan, err := workgroup.Compute(n)
	if err != nil {
		return DispatchResult{}, fmt.Errorf("gpu: %s: %w", pipeline.Name, err)
	}

	sem := make(chan struct{}, d.parallelism())
	var wg sync.WaitGroup
	var mu sync.Mutex
	result := DispatchResult{LaneErrors: make(map[int]error)}

	capacity := plan.LaneCapacity()
	for lane := 0; lane < capacity; lane++ {
		if lane >= n {
			continue // padding lanes in [N, capacity) do not execute
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			if err := pipeline.Run(ctx, bg, i); err != nil {
				mu.Lock()
				result.LaneErrors[i] = err
				mu.Unlock()
			}
		}(lane)
	}
	wg.Wait()

	if len(result.LaneErrors) == 0 {
		result.LaneErrors = nil
	}
	return result, nil
}

func (d *Device) parallelism() int {
	if d.maxParallelism > 0 {
		return d.maxParallelism
	}
	return runtime.GOMAXPROCS(0)
}
