package mempool

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Resize makes the allocation at addr hold at least size bytes and returns
// its address, which changes only when the block has to move.
//
//   - Resize(NilAddr, size) is Alloc(size).
//   - A block already holding size bytes is returned as is. Blocks never
//     shrink.
//   - A block followed by a free block that together hold size bytes absorbs
//     that block and stays in place.
//   - Otherwise a new block is allocated, the old payload is copied into it
//     and the old block is freed.
//
// Resize fails with ErrUnknownAddress if addr is not the payload address of
// any block, with ErrAlreadyFree if that block is free, and with ErrNoSpace if
// the block must move and no free block can take it. The pool is unchanged
// on failure.
func (p *Pool) Resize(addr Addr, size int) (Addr, error) {
	if addr == NilAddr {
		return p.Alloc(size)
	}
	if p.closed() {
		return NilAddr, ErrClosed
	}
	if size < 0 {
		return NilAddr, errors.Wrapf(ErrInvalidSize, "resize %d to %d", addr, size)
	}

	idx := p.find(addr)
	if idx == nilIndex {
		return NilAddr, errors.Wrapf(ErrUnknownAddress, "resize %d", addr)
	}
	if p.blocks[idx].available {
		return NilAddr, errors.Wrapf(ErrAlreadyFree, "resize %d", addr)
	}

	old := p.blocks[idx].capacity
	if old >= size {
		return addr, nil
	}

	if next := p.blocks[idx].next; next != nilIndex &&
		p.blocks[next].available &&
		old+HeaderSize+p.blocks[next].capacity >= size {
		p.absorbNext(idx)
		if p.options.zeroOnAlloc {
			zero(p.buf[int(addr)+old : p.blocks[idx].end()])
		}
		if ce := p.logger.Check(zap.DebugLevel, "block grown in place"); ce != nil {
			ce.Write(zap.Int("addr", int(addr)),
				zap.Int("capacity", p.blocks[idx].capacity))
		}
		return addr, nil
	}

	moved, err := p.Alloc(size)
	if err != nil {
		return NilAddr, errors.WithMessagef(err, "resize %d", addr)
	}
	copy(p.buf[moved:int(moved)+size], p.buf[addr:int(addr)+old])
	if err := p.Free(addr); err != nil {
		return NilAddr, err
	}
	if ce := p.logger.Check(zap.DebugLevel, "block moved"); ce != nil {
		ce.Write(zap.Int("from", int(addr)),
			zap.Int("to", int(moved)),
			zap.Int("size", size))
	}
	return moved, nil
}
