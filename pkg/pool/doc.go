/*
Package pool provides the worker pool that backs asynchronous socket
event processing: a resizable set of long-lived worker goroutines fed by
a FIFO task queue with configurable capacity and rejection behavior.

Basic usage:

	p := pool.New()
	if err := p.Start(pool.Config{Workers: 4, MaxQueueSize: 100}); err != nil {
		log.Fatal(err)
	}
	defer p.Stop(pool.Infinite)

	err := p.Submit(func(arg any) {
		process(arg.(*Request))
	}, req, 0)
	if errors.Is(err, pool.ErrQueueFull) {
		// shed load
	}

Lifecycle:

A pool moves through four states. Start transitions Stopped -> Starting
-> Started; Stop transitions Started -> Stopping -> Stopped. Submissions
are accepted only while Started. Stop lets the workers finish the queued
backlog, bounded by its maxWait argument; on expiry the remaining queue
is discarded and Stop reports ErrCanceled. Zero and Infinite both mean
an unbounded wait, for maxWait arguments throughout the package.

Rejection Policies:

When MaxQueueSize is reached, the configured Policy decides what Submit
does:

	pool.CallFail   // reject with ErrQueueFull
	pool.WaitFor    // block until space frees or maxWait expires
	pool.CallerRun  // run the task synchronously on the submitter

With an unbounded queue (MaxQueueSize 0) the policy never triggers.

Worker Sizing:

The worker count convention applies to Config.Workers and to
AdjustWorkerCount: a positive n is used as given, 0 picks a default
derived from GOMAXPROCS, and a negative -n means n workers per CPU.
Shrinking the pool retires surplus workers, but only after the queue is
empty; queued work is never abandoned by a resize.

Socket Tasks:

SubmitTask accepts a SocketTask, which carries a connection ID, a byte
buffer with an ownership mode (Refer, Attach or Copy) and two opaque
parameter words. Accepted socket tasks are destroyed by the pool exactly
once after execution or discard; rejected ones remain the caller's to
destroy. Buffers for Copy tasks come from the package Allocator, which
can be replaced with SetAllocator.

Configuration can also be loaded from YAML:

	cfg, err := pool.ParseConfig(data)

All pool operations are safe for concurrent use from multiple
goroutines.
*/
package pool
