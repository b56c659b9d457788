package aggregate

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/digitsum/internal/dataset"
)

func TestGoroutineSpawner_RunsTask(t *testing.T) {
	done := make(chan struct{})
	GoroutineSpawner{}.Spawn(func() { close(done) })

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("task never ran")
	}
}

func TestNewPoolSpawner_DefaultWorkers(t *testing.T) {
	assert.Equal(t, runtime.GOMAXPROCS(0), NewPoolSpawner(0).Workers())
	assert.Equal(t, 3, NewPoolSpawner(3).Workers())
}

// TestPoolSpawner_CapsConcurrency submits many tasks and tracks the highest
// number observed running at once.
func TestPoolSpawner_CapsConcurrency(t *testing.T) {
	const workers = 3
	pool := NewPoolSpawner(workers)

	var running, peak atomic.Int64
	var completed atomic.Int64
	for range 50 {
		pool.Spawn(func() {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			running.Add(-1)
			completed.Add(1)
		})
	}
	pool.Wait()

	assert.Equal(t, int64(50), completed.Load())
	assert.LessOrEqual(t, peak.Load(), int64(workers))
}

// TestParallel_PoolSpawnerManySegments runs more segments than pool slots.
func TestParallel_PoolSpawnerManySegments(t *testing.T) {
	agg := NewParallel(WithSpawner(NewPoolSpawner(2)))
	total, err := agg.Aggregate(context.Background(), dataset.New(strings.Repeat("11 ", 1000)))
	require.NoError(t, err)
	assert.Equal(t, uint64(2000), total)
}

// gatedSpawner holds every task until release is closed, so tests can force
// completion order.
type gatedSpawner struct {
	mu    sync.Mutex
	gates []chan struct{}
}

func (g *gatedSpawner) Spawn(task func()) {
	gate := make(chan struct{})
	g.mu.Lock()
	g.gates = append(g.gates, gate)
	g.mu.Unlock()
	go func() {
		<-gate
		task()
	}()
}

func (g *gatedSpawner) release(i int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	close(g.gates[i])
}

// TestParallel_CompletionOrderJoinsFinishedUnitsFirst releases units in
// reverse order; the completion collector must still return the same total.
func TestParallel_CompletionOrderJoinsFinishedUnitsFirst(t *testing.T) {
	for _, order := range []CollectOrder{CollectScheduleOrder, CollectCompletionOrder} {
		t.Run(order.String(), func(t *testing.T) {
			spawner := &gatedSpawner{}
			agg := NewParallel(WithSpawner(spawner), WithCollectOrder(order))

			type result struct {
				total uint64
				err   error
			}
			out := make(chan result, 1)
			go func() {
				total, err := agg.Aggregate(context.Background(), dataset.New("1 22 333 4444"))
				out <- result{total, err}
			}()

			require.Eventually(t, func() bool {
				spawner.mu.Lock()
				defer spawner.mu.Unlock()
				return len(spawner.gates) == 4
			}, 5*time.Second, time.Millisecond)

			for i := 3; i >= 0; i-- {
				spawner.release(i)
			}

			select {
			case r := <-out:
				require.NoError(t, r.err)
				assert.Equal(t, uint64(1+4+9+16), r.total)
			case <-time.After(5 * time.Second):
				t.Fatal("aggregation never finished")
			}
		})
	}
}

func TestCollectOrder_String(t *testing.T) {
	assert.Equal(t, "schedule", CollectScheduleOrder.String())
	assert.Equal(t, "completion", CollectCompletionOrder.String())
}
