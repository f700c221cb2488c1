package pool

import (
	"container/list"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// State describes the pool lifecycle.
type State int32

const (
	// Stopped means the pool holds no workers and accepts no tasks.
	Stopped State = iota

	// Starting means Start is bringing workers up.
	Starting

	// Started means the pool accepts and executes tasks.
	Started

	// Stopping means Stop is draining the queue and retiring workers.
	Stopping
)

// String returns a readable name for the state.
func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Starting:
		return "starting"
	case Started:
		return "started"
	case Stopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// Infinite makes Stop, Submit and SubmitTask wait without a deadline.
// A zero maxWait means the same thing.
const Infinite time.Duration = -1

// settleDelay gives in-flight submitters a moment to observe the state
// change before Stop starts tearing the queue down.
const settleDelay = 15 * time.Millisecond

// Pool executes submitted tasks on a resizable set of worker goroutines
// over a bounded or unbounded FIFO queue.
//
// A Pool cycles through Stopped, Starting, Started and Stopping. Only a
// Stopped pool can be started and only a Started pool accepts tasks. The
// zero value is not usable; call New.
type Pool struct {
	state atomic.Int32
	conf  atomic.Pointer[Config]

	mu      sync.Mutex
	queue   *list.List
	hasWork *sync.Cond

	// notFull carries one wake-up token per freed queue slot to
	// submitters blocked under the WaitFor policy. stopCh is closed by
	// Stop to cancel those waits. Both are replaced on every Start and
	// captured by the goroutines of that run.
	notFull chan struct{}
	stopCh  chan struct{}

	wmu     sync.Mutex
	workers map[uint64]struct{}
	nextID  uint64

	live   atomic.Int32
	target atomic.Int32
	gen    atomic.Uint32

	drained chan struct{}

	queued  atomic.Int32
	running atomic.Int32

	stoppedMu sync.Mutex
	stoppedCv *sync.Cond
}

// New creates a stopped pool.
func New() *Pool {
	p := &Pool{
		queue:   list.New(),
		workers: make(map[uint64]struct{}),
	}
	p.hasWork = sync.NewCond(&p.mu)
	p.stoppedCv = sync.NewCond(&p.stoppedMu)
	cfg := DefaultConfig()
	p.conf.Store(&cfg)
	return p
}

// Start brings the pool up with the given configuration. It fails with
// ErrInvalidState unless the pool is Stopped, and with ErrInvalidParameter
// (wrapping the specific validation error) if the configuration is
// unusable.
func (p *Pool) Start(cfg Config) error {
	if !p.state.CompareAndSwap(int32(Stopped), int32(Starting)) {
		return ErrInvalidState
	}
	if err := cfg.validate(); err != nil {
		p.setState(Stopped)
		return fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}

	p.conf.Store(&cfg)
	p.gen.Add(1)

	p.mu.Lock()
	p.queue.Init()
	p.notFull = make(chan struct{}, max(cfg.MaxQueueSize, 1))
	p.stopCh = make(chan struct{})
	p.mu.Unlock()

	p.drained = make(chan struct{}, 1)
	p.queued.Store(0)
	p.running.Store(0)

	n := normalizeWorkers(cfg.Workers)
	p.target.Store(int32(n))

	p.wmu.Lock()
	p.spawnLocked(n)
	p.wmu.Unlock()

	p.setState(Started)
	return nil
}

// Stop shuts the pool down. Workers finish the queued backlog before
// exiting; Stop waits up to maxWait for that to complete (zero or
// Infinite waits without limit). If the deadline passes first, the
// remaining queue is discarded, owned socket task buffers are released,
// still-busy workers are abandoned to exit on their own, and Stop
// reports ErrCanceled.
func (p *Pool) Stop(maxWait time.Duration) error {
	if !p.checkStopping() {
		return ErrInvalidState
	}

	time.Sleep(settleDelay)

	p.mu.Lock()
	stopCh := p.stopCh
	p.mu.Unlock()
	close(stopCh)

	p.target.Store(0)
	p.mu.Lock()
	p.hasWork.Broadcast()
	p.mu.Unlock()

	drained := p.waitDrained(maxWait)
	if !drained {
		p.purgeQueue()
		p.abandonWorkers()
	}

	cfg := DefaultConfig()
	p.conf.Store(&cfg)
	p.queued.Store(0)
	p.running.Store(0)

	p.setState(Stopped)
	if !drained {
		return ErrCanceled
	}
	return nil
}

// checkStopping moves the pool into Stopping. If another goroutine is
// already stopping the pool, it waits for that stop to finish and
// reports false.
func (p *Pool) checkStopping() bool {
	if p.state.CompareAndSwap(int32(Started), int32(Stopping)) {
		return true
	}
	if p.state.CompareAndSwap(int32(Starting), int32(Stopping)) {
		return true
	}
	p.stoppedMu.Lock()
	for State(p.state.Load()) != Stopped {
		p.stoppedCv.Wait()
	}
	p.stoppedMu.Unlock()
	return false
}

func (p *Pool) setState(s State) {
	p.stoppedMu.Lock()
	p.state.Store(int32(s))
	p.stoppedMu.Unlock()
	if s == Stopped {
		p.stoppedCv.Broadcast()
	}
}

// waitDrained blocks until every worker has retired or maxWait elapses.
func (p *Pool) waitDrained(maxWait time.Duration) bool {
	p.wmu.Lock()
	empty := len(p.workers) == 0
	p.wmu.Unlock()
	if empty {
		return true
	}

	if maxWait <= 0 {
		<-p.drained
		return true
	}

	timer := time.NewTimer(maxWait)
	defer timer.Stop()
	select {
	case <-p.drained:
		return true
	case <-timer.C:
		return false
	}
}

// purgeQueue discards every queued task, destroying socket task buffers
// the tasks own.
func (p *Pool) purgeQueue() {
	p.mu.Lock()
	var dropped []*task
	for e := p.queue.Front(); e != nil; e = e.Next() {
		dropped = append(dropped, e.Value.(*task))
	}
	p.queue.Init()
	p.mu.Unlock()

	for _, t := range dropped {
		p.queued.Add(-1)
		if t.freeArg {
			if st, ok := t.arg.(*SocketTask); ok {
				st.Destroy()
			}
		}
		t.release()
	}
}

// abandonWorkers gives up on workers that did not retire in time. The
// generation bump makes them exit as soon as they next check, without
// touching the new run's bookkeeping.
func (p *Pool) abandonWorkers() {
	p.gen.Add(1)
	p.wmu.Lock()
	p.workers = make(map[uint64]struct{})
	p.live.Store(0)
	p.wmu.Unlock()
	p.mu.Lock()
	p.hasWork.Broadcast()
	p.mu.Unlock()
}

// AdjustWorkerCount resizes the worker set. The count follows the same
// convention as Config.Workers. Surplus workers keep draining the queue
// and retire once it is empty.
func (p *Pool) AdjustWorkerCount(count int) error {
	if State(p.state.Load()) != Started {
		return ErrInvalidState
	}
	n := int32(normalizeWorkers(count))

	p.wmu.Lock()
	p.target.Store(n)
	if grow := n - p.live.Load(); grow > 0 {
		p.spawnLocked(int(grow))
	}
	p.wmu.Unlock()

	p.mu.Lock()
	p.hasWork.Broadcast()
	p.mu.Unlock()
	return nil
}

// spawnLocked starts n workers. Callers hold wmu.
func (p *Pool) spawnLocked(n int) {
	cfg := p.conf.Load()
	gen := p.gen.Load()
	for i := 0; i < n; i++ {
		p.nextID++
		w := &worker{
			id:      p.nextID,
			gen:     gen,
			pool:    p,
			cfg:     cfg,
			notFull: p.notFull,
		}
		p.workers[w.id] = struct{}{}
		p.live.Add(1)
		go w.run()
	}
}

// State returns the current lifecycle state.
func (p *Pool) State() State {
	return State(p.state.Load())
}

// QueueSize returns the number of tasks waiting in the queue.
func (p *Pool) QueueSize() int {
	return int(p.queued.Load())
}

// TaskCount returns the number of tasks queued or executing.
func (p *Pool) TaskCount() int {
	return int(p.queued.Load() + p.running.Load())
}

// WorkerCount returns the current number of workers.
func (p *Pool) WorkerCount() int {
	return int(p.live.Load())
}

// MaxQueueSize returns the configured queue bound, 0 meaning unbounded.
func (p *Pool) MaxQueueSize() int {
	return p.conf.Load().MaxQueueSize
}

// RejectionPolicy returns the configured full-queue policy.
func (p *Pool) RejectionPolicy() Policy {
	return p.conf.Load().Policy
}
