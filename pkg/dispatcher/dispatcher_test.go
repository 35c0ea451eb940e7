package dispatcher_test

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/arthur-debert/scirnap/pkg/dispatcher"
	"github.com/arthur-debert/scirnap/pkg/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nop = zerolog.Nop()

func files(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("/data/sample%02d.fq.gz", i)
	}
	return out
}

func TestWorkers(t *testing.T) {
	tests := []struct {
		threads, n, want int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{-3, 10, 1},
		{4, 10, 4},
		{10, 3, 3},
		{8, 8, 8},
		{5, 1, 1},
		{5, 0, 1},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("T=%d,N=%d", tt.threads, tt.n), func(t *testing.T) {
			assert.Equal(t, tt.want, dispatcher.Workers(tt.threads, tt.n))
		})
	}
}

func TestEachSequentialKeepsOrder(t *testing.T) {
	for _, threads := range []int{0, 1} {
		d := dispatcher.New(dispatcher.Options{Threads: threads, Logger: &nop})
		assert.Equal(t, dispatcher.ModeSequential, d.Strategy())

		in := files(6)
		var seen []string
		err := d.Each(types.Units(in), func(u types.Unit) error {
			seen = append(seen, u.First())
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, in, seen)
	}
}

func TestEachParallelNeverExceedsClamp(t *testing.T) {
	tests := []struct{ threads, n int }{
		{3, 12},
		{16, 5},
		{2, 2},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("T=%d,N=%d", tt.threads, tt.n), func(t *testing.T) {
			d := dispatcher.New(dispatcher.Options{Threads: tt.threads, Logger: &nop})
			assert.Equal(t, dispatcher.ModeParallel, d.Strategy())

			var (
				active, peak int32
				mu           sync.Mutex
				seen         []string
			)
			err := d.Each(types.Units(files(tt.n)), func(u types.Unit) error {
				cur := atomic.AddInt32(&active, 1)
				for {
					old := atomic.LoadInt32(&peak)
					if cur <= old || atomic.CompareAndSwapInt32(&peak, old, cur) {
						break
					}
				}
				time.Sleep(10 * time.Millisecond)
				atomic.AddInt32(&active, -1)

				mu.Lock()
				seen = append(seen, u.First())
				mu.Unlock()
				return nil
			})
			require.NoError(t, err)

			// Barrier: every unit has completed once Each returns
			assert.ElementsMatch(t, files(tt.n), seen)
			assert.LessOrEqual(t, int(peak), dispatcher.Workers(tt.threads, tt.n))
			assert.GreaterOrEqual(t, int(peak), 1)
		})
	}
}

func TestEachFailureDoesNotStopSiblings(t *testing.T) {
	boom := stderrors.New("no rename entry")

	for _, threads := range []int{1, 4} {
		t.Run(fmt.Sprintf("threads=%d", threads), func(t *testing.T) {
			d := dispatcher.New(dispatcher.Options{Threads: threads, Logger: &nop})
			in := files(5)

			var done int32
			err := d.Each(types.Units(in), func(u types.Unit) error {
				if u.First() == in[1] {
					return boom
				}
				atomic.AddInt32(&done, 1)
				return nil
			})
			assert.ErrorIs(t, err, boom)
			assert.Equal(t, int32(4), atomic.LoadInt32(&done))
		})
	}
}

func TestBatchSingleInvocation(t *testing.T) {
	d := dispatcher.New(dispatcher.Options{Threads: 8, Logger: &nop})
	in := files(7)

	calls := 0
	var got types.Unit
	err := d.Batch(in, func(u types.Unit) error {
		calls++
		got = u
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, types.Unit(in), got)
}

func TestBatchPropagatesError(t *testing.T) {
	d := dispatcher.New(dispatcher.Options{Logger: &nop})
	boom := stderrors.New("bad")
	assert.ErrorIs(t, d.Batch(files(2), func(types.Unit) error { return boom }), boom)
}

func TestFailedUnitIsLogged(t *testing.T) {
	var logs bytes.Buffer
	logger := zerolog.New(&logs)
	d := dispatcher.New(dispatcher.Options{Threads: 2, Logger: &logger})

	in := files(2)
	_ = d.Each(types.Units(in), func(u types.Unit) error {
		if u.First() == in[0] {
			return stderrors.New("exit status 1")
		}
		return nil
	})

	assert.Contains(t, logs.String(), `"level":"error"`)
	assert.Contains(t, logs.String(), "Unit failed")
	assert.Contains(t, logs.String(), in[0])
}
