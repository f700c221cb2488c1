package pool

import "time"

type worker struct {
	id      uint64
	gen     uint32
	pool    *Pool
	cfg     *Config
	notFull chan struct{}
}

// run is the worker loop. Queued work always takes priority over
// retirement: a worker only considers leaving when the queue is empty,
// so a shrinking or stopping pool still drains its backlog.
func (w *worker) run() {
	p := w.pool
	for {
		if p.gen.Load() != w.gen {
			return
		}

		p.mu.Lock()
		for p.queue.Len() == 0 {
			if w.surplus() {
				p.mu.Unlock()
				if w.leave() {
					return
				}
				p.mu.Lock()
				continue
			}
			p.hasWork.Wait()
			if p.gen.Load() != w.gen {
				p.mu.Unlock()
				return
			}
		}
		e := p.queue.Front()
		p.queue.Remove(e)
		p.mu.Unlock()

		p.queued.Add(-1)
		w.signalNotFull()

		w.execute(e.Value.(*task))
	}
}

func (w *worker) surplus() bool {
	p := w.pool
	return p.live.Load() > p.target.Load()
}

// leave retires the worker. The surplus condition is re-checked under
// the worker-set lock so concurrent retirements cannot overshoot. The
// last worker out of a stopping pool signals the drain.
func (w *worker) leave() bool {
	p := w.pool
	p.wmu.Lock()
	if p.live.Load() <= p.target.Load() {
		p.wmu.Unlock()
		return false
	}
	delete(p.workers, w.id)
	p.live.Add(-1)
	empty := len(p.workers) == 0
	p.wmu.Unlock()

	if empty && p.State() == Stopping {
		select {
		case p.drained <- struct{}{}:
		default:
		}
	}
	return true
}

// signalNotFull hands one wake-up token to a blocked WaitFor submitter
// after this worker freed a queue slot.
func (w *worker) signalNotFull() {
	if w.cfg.MaxQueueSize == 0 || w.cfg.Policy != WaitFor {
		return
	}
	select {
	case w.notFull <- struct{}{}:
	default:
	}
}

// execute runs one task and maintains the in-flight counter. An
// abandoned worker leaves the counters of the new run alone.
func (w *worker) execute(t *task) {
	p := w.pool
	arg := t.arg
	counted := p.gen.Load() == w.gen
	if counted {
		p.running.Add(1)
	}
	start := time.Now()
	defer func() {
		if counted && p.gen.Load() == w.gen {
			p.running.Add(-1)
		}
		if w.cfg.OnTaskDone != nil {
			w.cfg.OnTaskDone(arg, time.Since(start))
		}
	}()
	if w.cfg.PanicHandler != nil {
		defer func() {
			if v := recover(); v != nil {
				w.cfg.PanicHandler(arg, v)
			}
		}()
	}
	runTask(t)
}
