package mempool

import (
	"unsafe"

	"github.com/fagongzi/mempool/buf"
	"go.uber.org/zap"
)

var (
	_ buf.Allocator   = (*allocator)(nil)
	_ buf.Reallocator = (*allocator)(nil)
)

type allocator struct {
	p *Pool
}

// Allocator returns a buf.Allocator handing out pool memory, so that a
// buf.ByteBuf can live inside the pool. It also implements buf.Reallocator
// through Resize, letting a ByteBuf grow in place when the following block
// is free.
//
// buf.Allocator has no error result: Alloc and Realloc panic with the pool
// error when the pool cannot serve the request.
func (p *Pool) Allocator() buf.Allocator {
	return &allocator{p: p}
}

func (a *allocator) Alloc(size int) []byte {
	if size == 0 {
		return nil
	}
	addr, err := a.p.Alloc(size)
	if err != nil {
		panic(err)
	}
	return a.p.buf[addr : int(addr)+size : int(addr)+size]
}

func (a *allocator) Free(data []byte) {
	if cap(data) == 0 {
		return
	}
	addr, ok := a.p.addrOf(data)
	if !ok {
		a.p.logger.Error("free memory not owned by the pool")
		return
	}
	if err := a.p.Free(addr); err != nil {
		a.p.logger.Error("free pool memory failed",
			zap.Error(err))
	}
}

func (a *allocator) Realloc(old []byte, size int) []byte {
	if cap(old) == 0 {
		return a.Alloc(size)
	}
	addr, ok := a.p.addrOf(old)
	if !ok {
		panic("realloc memory not owned by the pool")
	}
	moved, err := a.p.Resize(addr, size)
	if err != nil {
		panic(err)
	}
	return a.p.buf[moved : int(moved)+size : int(moved)+size]
}

// addrOf maps a slice handed out by the allocator back to its payload address
func (p *Pool) addrOf(data []byte) (Addr, bool) {
	if p.closed() {
		return NilAddr, false
	}
	base := uintptr(unsafe.Pointer(&p.buf[0]))
	ptr := uintptr(unsafe.Pointer(&data[:1][0]))
	if ptr < base || ptr >= base+uintptr(len(p.buf)) {
		return NilAddr, false
	}
	return Addr(ptr - base), true
}
