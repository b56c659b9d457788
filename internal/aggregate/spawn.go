package aggregate

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Spawner submits units of work for concurrent execution. Spawn may block
// until the implementation accepts the task, but it must never wait for the
// task to complete.
type Spawner interface {
	Spawn(task func())
}

// GoroutineSpawner starts one goroutine per task with no upper bound.
type GoroutineSpawner struct{}

// Spawn runs task on a new goroutine.
func (GoroutineSpawner) Spawn(task func()) { go task() }

// PoolSpawner caps the number of tasks running at once. Once the cap is
// reached Spawn blocks the submitter until a running task returns, which acts
// as the task queue.
type PoolSpawner struct {
	group   errgroup.Group
	workers int
}

// NewPoolSpawner creates a PoolSpawner running at most workers tasks at once.
// A non-positive value selects GOMAXPROCS.
func NewPoolSpawner(workers int) *PoolSpawner {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := &PoolSpawner{workers: workers}
	p.group.SetLimit(workers)
	return p
}

// Spawn queues task on the pool.
func (p *PoolSpawner) Spawn(task func()) {
	p.group.Go(func() error {
		task()
		return nil
	})
}

// Workers returns the concurrency cap.
func (p *PoolSpawner) Workers() int { return p.workers }

// Wait blocks until every submitted task has returned.
func (p *PoolSpawner) Wait() {
	_ = p.group.Wait()
}
