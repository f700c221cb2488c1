package pool

import "time"

// Submit queues fn for execution with arg. When the queue is full the
// configured policy decides between rejection, blocking and running on
// the caller. maxWait bounds a WaitFor block; zero or Infinite waits
// without limit.
func (p *Pool) Submit(fn TaskFunc, arg any, maxWait time.Duration) error {
	if fn == nil {
		return ErrInvalidParameter
	}
	return p.submit(fn, arg, false, maxWait)
}

// SubmitTask queues a socket task. On acceptance the pool owns st and
// destroys it exactly once, whether it runs on a worker, runs on the
// caller, or is discarded by a timed-out Stop. On rejection ownership
// stays with the caller.
func (p *Pool) SubmitTask(st *SocketTask, maxWait time.Duration) error {
	if st == nil || st.fn == nil {
		return ErrInvalidParameter
	}
	return p.submit(runSocketTask, st, true, maxWait)
}

type submitStatus int

const (
	submitOK submitStatus = iota
	submitFull
	submitClosed
)

func (p *Pool) submit(fn TaskFunc, arg any, freeArg bool, maxWait time.Duration) error {
	if p.State() != Started {
		return ErrInvalidState
	}

	t := newTask(fn, arg, freeArg)
	switch p.directSubmit(t) {
	case submitOK:
		return nil
	case submitClosed:
		t.release()
		return ErrInvalidState
	}

	cfg := p.conf.Load()
	switch cfg.Policy {
	case CallFail:
		t.release()
		return ErrQueueFull
	case WaitFor:
		if err := p.cycleWaitSubmit(t, maxWait); err != nil {
			t.release()
			return err
		}
		return nil
	case CallerRun:
		p.runInline(t, cfg)
		return nil
	default:
		t.release()
		return ErrInvalidPolicy
	}
}

// directSubmit appends the task if the pool is accepting and the queue
// has room, waking one worker.
func (p *Pool) directSubmit(t *task) submitStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.State() != Started {
		return submitClosed
	}
	cfg := p.conf.Load()
	if cfg.MaxQueueSize > 0 && p.queue.Len() >= cfg.MaxQueueSize {
		return submitFull
	}
	p.queue.PushBack(t)
	p.queued.Add(1)
	p.hasWork.Signal()
	return submitOK
}

// cycleWaitSubmit retries the submission every time a worker frees a
// queue slot, until it succeeds, the deadline passes, or the pool
// starts shutting down.
func (p *Pool) cycleWaitSubmit(t *task, maxWait time.Duration) error {
	p.mu.Lock()
	notFull, stopCh := p.notFull, p.stopCh
	p.mu.Unlock()

	var deadline <-chan time.Time
	if maxWait > 0 {
		timer := time.NewTimer(maxWait)
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		select {
		case <-notFull:
		case <-deadline:
			return ErrTimeout
		case <-stopCh:
			return ErrCanceled
		}

		switch p.directSubmit(t) {
		case submitOK:
			return nil
		case submitClosed:
			return ErrCanceled
		}
	}
}

// runInline executes the task on the calling goroutine with the same
// accounting and callbacks a worker would apply.
func (p *Pool) runInline(t *task, cfg *Config) {
	arg := t.arg
	p.running.Add(1)
	start := time.Now()
	defer func() {
		p.running.Add(-1)
		if cfg.OnTaskDone != nil {
			cfg.OnTaskDone(arg, time.Since(start))
		}
	}()
	if cfg.PanicHandler != nil {
		defer func() {
			if v := recover(); v != nil {
				cfg.PanicHandler(arg, v)
			}
		}()
	}
	runTask(t)
}
