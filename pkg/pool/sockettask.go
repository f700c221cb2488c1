package pool

import "sync/atomic"

// BufferMode selects how a SocketTask treats the byte buffer passed to
// NewSocketTask.
type BufferMode int

const (
	// Refer borrows the caller's buffer. The task never frees it and the
	// caller must keep it valid until the task completes.
	Refer BufferMode = iota

	// Attach adopts the caller's buffer. The task owns it and recycles
	// it through the allocator on Destroy.
	Attach

	// Copy allocates a fresh buffer from the allocator and copies the
	// caller's bytes into it. The task owns the copy.
	Copy
)

// String returns a readable name for the mode.
func (m BufferMode) String() string {
	switch m {
	case Refer:
		return "refer"
	case Attach:
		return "attach"
	case Copy:
		return "copy"
	default:
		return "unknown"
	}
}

// SocketTaskFunc processes a socket event task.
type SocketTaskFunc func(st *SocketTask)

// SocketTask carries a socket event through the pool: the connection it
// belongs to, the payload buffer with its ownership mode, and two opaque
// parameter words for the handler.
type SocketTask struct {
	// Sender identifies the component that produced the event.
	Sender any

	// ConnID identifies the connection the event belongs to.
	ConnID uint64

	// Buf is the event payload. Ownership is governed by Mode.
	Buf []byte

	// Mode records how Buf was acquired.
	Mode BufferMode

	// WParam and LParam are opaque handler parameters.
	WParam uint64
	LParam uint64

	fn        SocketTaskFunc
	destroyed atomic.Bool
}

// NewSocketTask builds a socket task. With Copy mode and a non-empty buf,
// the payload is copied into an allocator-owned buffer; with Refer or
// Attach the given slice is used directly.
func NewSocketTask(fn SocketTaskFunc, sender any, connID uint64, buf []byte, mode BufferMode, wparam, lparam uint64) (*SocketTask, error) {
	if fn == nil {
		return nil, ErrInvalidParameter
	}
	st := &SocketTask{
		Sender: sender,
		ConnID: connID,
		Mode:   mode,
		WParam: wparam,
		LParam: lparam,
		fn:     fn,
	}
	if mode == Copy && len(buf) > 0 {
		owned := getAllocator().Get(len(buf))
		copy(owned, buf)
		st.Buf = owned
	} else {
		st.Buf = buf
	}
	return st, nil
}

// Destroy releases the task's buffer if the task owns it. It is safe to
// call on a nil task and is idempotent; only the first call releases.
func (st *SocketTask) Destroy() {
	if st == nil {
		return
	}
	if !st.destroyed.CompareAndSwap(false, true) {
		return
	}
	if st.Mode != Refer && st.Buf != nil {
		getAllocator().Put(st.Buf)
	}
	st.Buf = nil
}

// Destroyed reports whether Destroy has been called.
func (st *SocketTask) Destroyed() bool {
	return st.destroyed.Load()
}
