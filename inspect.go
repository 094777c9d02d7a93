package mempool

import (
	"github.com/pkg/errors"
)

// BlockInfo describes one block of the chain
type BlockInfo struct {
	// Header offset of the block header in the pool buffer
	Header int
	// Addr payload address
	Addr      Addr
	Capacity  int
	Available bool
}

// Stats pool usage. Allocated + Available + Overhead equals Capacity +
// HeaderSize, the size of the pool buffer.
type Stats struct {
	Capacity    int
	Allocated   int
	Available   int
	Overhead    int
	Blocks      int
	FreeBlocks  int
	LargestFree int
}

// Bytes returns the payload of the allocated block at addr. The slice covers
// the whole block capacity and is only valid until the block is freed, moved
// by Resize or the pool is closed.
func (p *Pool) Bytes(addr Addr) ([]byte, error) {
	idx, err := p.allocated(addr)
	if err != nil {
		return nil, err
	}
	end := p.blocks[idx].end()
	return p.buf[addr:end:end], nil
}

// BlockCapacity returns the payload capacity of the allocated block at addr,
// which can exceed the size it was allocated or resized with.
func (p *Pool) BlockCapacity(addr Addr) (int, error) {
	idx, err := p.allocated(addr)
	if err != nil {
		return 0, err
	}
	return p.blocks[idx].capacity, nil
}

// Blocks returns the chain in address order
func (p *Pool) Blocks() []BlockInfo {
	var blocks []BlockInfo
	for idx := p.head; idx != nilIndex; idx = p.blocks[idx].next {
		b := p.blocks[idx]
		blocks = append(blocks, BlockInfo{
			Header:    b.offset,
			Addr:      b.payload(),
			Capacity:  b.capacity,
			Available: b.available,
		})
	}
	return blocks
}

// Stats returns the pool usage, zero value if the pool is closed
func (p *Pool) Stats() Stats {
	st := Stats{Capacity: p.Capacity()}
	for idx := p.head; idx != nilIndex; idx = p.blocks[idx].next {
		b := p.blocks[idx]
		st.Blocks++
		st.Overhead += HeaderSize
		if !b.available {
			st.Allocated += b.capacity
			continue
		}
		st.FreeBlocks++
		st.Available += b.capacity
		if b.capacity > st.LargestFree {
			st.LargestFree = b.capacity
		}
	}
	return st
}

// Check verifies that the chain partitions the buffer and that every stamped
// header agrees with its block. It returns an error matching ErrCorrupted
// describing the first violation.
func (p *Pool) Check() error {
	if p.closed() {
		return nil
	}

	expect, visited := 0, 0
	for idx := p.head; idx != nilIndex; idx = p.blocks[idx].next {
		if visited++; visited > len(p.blocks) {
			return errors.Wrap(ErrCorrupted, "chain has a cycle")
		}
		b := p.blocks[idx]
		if b.offset != expect {
			return errors.Wrapf(ErrCorrupted, "block at %d, expect %d", b.offset, expect)
		}
		if b.capacity <= 0 || b.end() > len(p.buf) {
			return errors.Wrapf(ErrCorrupted, "block at %d has capacity %d, buffer %d",
				b.offset, b.capacity, len(p.buf))
		}

		h := decodeHeader(p.buf[b.offset : b.offset+HeaderSize])
		if h.magic != headerMagic {
			return errors.Wrapf(ErrCorrupted, "block at %d has bad magic %x", b.offset, h.magic)
		}
		if h.capacity != uint64(b.capacity) {
			return errors.Wrapf(ErrCorrupted, "block at %d header capacity %d, expect %d",
				b.offset, h.capacity, b.capacity)
		}
		if available := h.flags&flagAvailable != 0; available != b.available {
			return errors.Wrapf(ErrCorrupted, "block at %d header available %v, expect %v",
				b.offset, available, b.available)
		}
		next := uint64(0)
		if b.next != nilIndex {
			next = uint64(b.end())
		}
		if h.next != next {
			return errors.Wrapf(ErrCorrupted, "block at %d header next %d, expect %d",
				b.offset, h.next, next)
		}
		expect = b.end()
	}
	if expect != len(p.buf) {
		return errors.Wrapf(ErrCorrupted, "chain ends at %d, buffer %d", expect, len(p.buf))
	}
	if live := len(p.blocks) - len(p.spare); live != visited {
		return errors.Wrapf(ErrCorrupted, "%d blocks reachable, %d live records", visited, live)
	}
	return nil
}

func (p *Pool) allocated(addr Addr) (int, error) {
	if p.closed() {
		return nilIndex, ErrClosed
	}
	idx := p.find(addr)
	if idx == nilIndex {
		return nilIndex, errors.Wrapf(ErrUnknownAddress, "addr %d", addr)
	}
	if p.blocks[idx].available {
		return nilIndex, errors.Wrapf(ErrAlreadyFree, "addr %d", addr)
	}
	return idx, nil
}
