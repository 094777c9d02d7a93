package mempool

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Alloc returns the payload address of the first free block holding at least
// size bytes. When the rest of that block can hold another header and at
// least one byte, the rest is split off as a new free block.
//
// Alloc(0) does not allocate. It returns the payload address of the first
// block in the pool whether that block is free or not and leaves the block
// untouched. Do not write through or Free such an address.
func (p *Pool) Alloc(size int) (Addr, error) {
	if p.closed() {
		return NilAddr, ErrClosed
	}
	if size < 0 {
		return NilAddr, errors.Wrapf(ErrInvalidSize, "alloc %d", size)
	}
	if size == 0 {
		return p.blocks[p.head].payload(), nil
	}

	for idx := p.head; idx != nilIndex; idx = p.blocks[idx].next {
		if !p.blocks[idx].available || p.blocks[idx].capacity < size {
			continue
		}

		if p.blocks[idx].capacity-size >= HeaderSize+1 {
			p.split(idx, size)
		}
		p.blocks[idx].available = false
		p.stamp(idx)

		addr := p.blocks[idx].payload()
		if p.options.zeroOnAlloc {
			zero(p.buf[addr:p.blocks[idx].end()])
		}
		return addr, nil
	}

	if ce := p.logger.Check(zap.DebugLevel, "no free block large enough"); ce != nil {
		ce.Write(zap.Int("size", size))
	}
	return NilAddr, errors.Wrapf(ErrNoSpace, "alloc %d", size)
}

func zero(data []byte) {
	for i := range data {
		data[i] = 0
	}
}
