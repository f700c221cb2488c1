package pool_test

import (
	"errors"
	"fmt"
	"time"

	"github.com/vnykmshr/sockpool/pkg/pool"
)

func Example() {
	p := pool.New()
	if err := p.Start(pool.Config{Workers: 2}); err != nil {
		fmt.Println("start failed:", err)
		return
	}

	done := make(chan struct{})
	_ = p.Submit(func(arg any) {
		fmt.Println("processing", arg)
		close(done)
	}, "event", 0)
	<-done

	_ = p.Stop(pool.Infinite)
	fmt.Println("state:", p.State())
	// Output:
	// processing event
	// state: stopped
}

func Example_rejectionPolicy() {
	p := pool.New()
	_ = p.Start(pool.Config{Workers: 1, MaxQueueSize: 1, Policy: pool.CallFail})
	defer p.Stop(pool.Infinite)

	block := make(chan struct{})
	defer close(block)
	_ = p.Submit(func(any) { <-block }, nil, 0)

	// Wait for the worker to pick the blocker up, then fill the queue
	for p.QueueSize() != 0 {
		time.Sleep(time.Millisecond)
	}
	_ = p.Submit(func(any) {}, nil, 0)

	err := p.Submit(func(any) {}, nil, 0)
	fmt.Println("queue full:", errors.Is(err, pool.ErrQueueFull))
	// Output:
	// queue full: true
}

func ExampleNewSocketTask() {
	p := pool.New()
	_ = p.Start(pool.Config{Workers: 1})

	payload := []byte("hello")
	done := make(chan struct{})
	st, _ := pool.NewSocketTask(func(st *pool.SocketTask) {
		fmt.Printf("conn %d: %s\n", st.ConnID, st.Buf)
		close(done)
	}, nil, 42, payload, pool.Copy, 0, 0)

	if err := p.SubmitTask(st, 0); err != nil {
		st.Destroy()
	}
	<-done

	_ = p.Stop(pool.Infinite)
	// Output:
	// conn 42: hello
}
