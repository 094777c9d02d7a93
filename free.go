package mempool

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Free releases the block whose payload starts at addr and merges free
// neighbours. Free(NilAddr) is a no-op.
//
// Releasing a free block or an address the pool never handed out changes
// nothing and returns an error matching ErrInvalidRelease (ErrAlreadyFree or
// ErrUnknownAddress). Callers that ignore the error keep a consistent pool.
func (p *Pool) Free(addr Addr) error {
	if addr == NilAddr {
		p.logger.Warn("free nil address")
		return nil
	}
	if p.closed() {
		return ErrClosed
	}

	idx := p.find(addr)
	if idx == nilIndex {
		p.logger.Warn("free unknown address",
			zap.Int("addr", int(addr)))
		return errors.Wrapf(ErrUnknownAddress, "free %d", addr)
	}
	if p.blocks[idx].available {
		p.logger.Warn("free block already free",
			zap.Int("addr", int(addr)))
		return errors.Wrapf(ErrAlreadyFree, "free %d", addr)
	}

	p.blocks[idx].available = true
	p.stamp(idx)
	p.Coalesce()
	return nil
}

// Coalesce merges every run of adjacent free blocks into one block in a
// single pass and returns the number of merges. Free calls it after every
// release, so the chain normally has nothing to merge.
func (p *Pool) Coalesce() int {
	merged := 0
	idx := p.head
	for idx != nilIndex && p.blocks[idx].next != nilIndex {
		next := p.blocks[idx].next
		if p.blocks[idx].available && p.blocks[next].available {
			// stay on idx, its new successor may be free too
			p.absorbNext(idx)
			merged++
			continue
		}
		idx = next
	}

	if merged > 0 {
		if ce := p.logger.Check(zap.DebugLevel, "blocks coalesced"); ce != nil {
			ce.Write(zap.Int("merged", merged))
		}
	}
	return merged
}
