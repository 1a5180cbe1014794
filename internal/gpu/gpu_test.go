package gpu_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fuellabs/gpu-sigops/internal/gpu"
)

func TestDispatchRunsEveryLane(t *testing.T) {
	dev := gpu.NewDevice(4)
	n := 500
	out := make([]int, n)

	bg := gpu.BindGroup{"out": gpu.NewBuffer(n)}
	result, err := dev.Dispatch(context.Background(), gpu.Pipeline{
		Name: "double",
		Run: func(_ context.Context, _ gpu.BindGroup, lane int) error {
			out[lane] = lane * 2
			return nil
		},
	}, bg, n)
	require.NoError(t, err)
	require.Nil(t, result.LaneErrors)

	for i := 0; i < n; i++ {
		require.Equal(t, i*2, out[i])
	}
}

func TestDispatchCollectsLaneErrors(t *testing.T) {
	dev := gpu.NewDevice(2)
	sentinel := errors.New("boom")

	result, err := dev.Dispatch(context.Background(), gpu.Pipeline{
		Name: "fails-on-odd",
		Run: func(_ context.Context, _ gpu.BindGroup, lane int) error {
			if lane%2 == 1 {
				return sentinel
			}
			return nil
		},
	}, gpu.BindGroup{}, 10)
	require.NoError(t, err)
	require.Len(t, result.LaneErrors, 5)
}
