package pool

import (
	"sync"
	"sync/atomic"
)

// Allocator supplies and recycles the byte buffers owned by socket tasks.
// Implementations must be safe for concurrent use.
type Allocator interface {
	// Get returns a buffer with length n.
	Get(n int) []byte

	// Put recycles a buffer owned by a destroyed socket task: either one
	// returned by Get (Copy mode) or a caller buffer adopted in Attach
	// mode.
	Put(buf []byte)
}

var allocator atomic.Pointer[Allocator]

func init() {
	var def Allocator = &pooledAllocator{}
	allocator.Store(&def)
}

// SetAllocator replaces the buffer allocator used by NewSocketTask and
// SocketTask.Destroy. Passing nil restores the default pooled allocator.
// Buffers created with the previous allocator are handed to the new
// allocator's Put when their tasks are destroyed.
func SetAllocator(a Allocator) {
	if a == nil {
		a = &pooledAllocator{}
	}
	allocator.Store(&a)
}

func getAllocator() Allocator {
	return *allocator.Load()
}

// pooledAllocator recycles buffers through a sync.Pool, reslicing a
// recycled buffer when its capacity suffices.
type pooledAllocator struct {
	pool sync.Pool
}

func (a *pooledAllocator) Get(n int) []byte {
	if v := a.pool.Get(); v != nil {
		buf := *v.(*[]byte)
		if cap(buf) >= n {
			return buf[:n]
		}
	}
	return make([]byte, n)
}

func (a *pooledAllocator) Put(buf []byte) {
	if cap(buf) == 0 {
		return
	}
	buf = buf[:cap(buf)]
	a.pool.Put(&buf)
}
