package common

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParallelizeCoversRange(t *testing.T) {
	const n = 101
	seen := make([]int32, n)
	Parallelize(n, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&seen[i], 1)
		}
	})
	for i, count := range seen {
		require.Equal(t, int32(1), count, "index %d", i)
	}
}

func TestParallelizeSingleWorker(t *testing.T) {
	var calls int
	Parallelize(10, func(start, end int) {
		calls++
		require.Equal(t, 0, start)
		require.Equal(t, 10, end)
	}, 1)
	require.Equal(t, 1, calls)
}

func TestParallelizeEmpty(t *testing.T) {
	called := false
	Parallelize(0, func(start, end int) {
		called = true
		require.Equal(t, 0, end-start)
	})
	require.True(t, called)
}
