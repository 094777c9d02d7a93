package mempool

import (
	"github.com/fagongzi/mempool/buf"
	"go.uber.org/zap"
)

const (
	// HeaderSize bytes reserved in front of every payload. The header records
	// the next header offset, the payload capacity and the block flags.
	HeaderSize = 24

	headerMagic   = uint32(0x6d706f6c)
	flagAvailable = uint32(1)

	nilIndex = -1
)

// Addr is a payload address: the offset of the first payload byte in the pool
// buffer. NilAddr is never a valid payload address.
type Addr int

// NilAddr the empty address
const NilAddr Addr = 0

// block describes [offset, offset+HeaderSize+capacity) of the pool buffer.
// Blocks are linked in address order through next, an index into
// Pool.blocks.
type block struct {
	offset    int
	capacity  int
	available bool
	next      int
}

func (b block) payload() Addr {
	return Addr(b.offset + HeaderSize)
}

func (b block) end() int {
	return b.offset + HeaderSize + b.capacity
}

// header is the decoded form of the bytes stamped in front of a payload
type header struct {
	next     uint64 // offset of the next header, 0 for the last block
	capacity uint64
	magic    uint32
	flags    uint32
}

func encodeHeader(h header, dst []byte) {
	buf.Uint64ToBytesTo(h.next, dst[0:8])
	buf.Uint64ToBytesTo(h.capacity, dst[8:16])
	buf.Uint32ToBytesTo(h.magic, dst[16:20])
	buf.Uint32ToBytesTo(h.flags, dst[20:24])
}

func decodeHeader(src []byte) header {
	return header{
		next:     buf.Byte2Uint64(src[0:8]),
		capacity: buf.Byte2Uint64(src[8:16]),
		magic:    buf.Byte2Uint32(src[16:20]),
		flags:    buf.Byte2Uint32(src[20:24]),
	}
}

// newBlock returns the index of a record for a block at offset, reusing
// records dropped by merges first.
func (p *Pool) newBlock(offset, capacity, next int) int {
	b := block{
		offset:    offset,
		capacity:  capacity,
		available: true,
		next:      next,
	}
	if n := len(p.spare); n > 0 {
		idx := p.spare[n-1]
		p.spare = p.spare[:n-1]
		p.blocks[idx] = b
		return idx
	}
	p.blocks = append(p.blocks, b)
	return len(p.blocks) - 1
}

func (p *Pool) dropBlock(idx int) {
	p.blocks[idx] = block{next: nilIndex}
	p.spare = append(p.spare, idx)
}

// stamp writes the header of block idx into the pool buffer
func (p *Pool) stamp(idx int) {
	b := p.blocks[idx]
	h := header{
		capacity: uint64(b.capacity),
		magic:    headerMagic,
	}
	if b.next != nilIndex {
		h.next = uint64(p.blocks[b.next].offset)
	}
	if b.available {
		h.flags |= flagAvailable
	}
	encodeHeader(h, p.buf[b.offset:b.offset+HeaderSize])
}

// split carves a free block out of the tail of block idx, leaving exactly
// size payload bytes in idx. The caller guarantees the tail can hold a header
// and at least one payload byte.
func (p *Pool) split(idx, size int) {
	cur := p.blocks[idx]
	offset := int(cur.payload()) + size
	tail := p.newBlock(offset, cur.capacity-size-HeaderSize, cur.next)
	p.blocks[idx].capacity = size
	p.blocks[idx].next = tail
	p.stamp(tail)
	p.stamp(idx)
	if ce := p.logger.Check(zap.DebugLevel, "block split"); ce != nil {
		ce.Write(zap.Int("addr", int(cur.payload())),
			zap.Int("size", size),
			zap.Int("tail-addr", int(p.blocks[tail].payload())))
	}
}

// absorbNext merges the successor of idx into idx. The successor's header
// becomes payload of idx.
func (p *Pool) absorbNext(idx int) {
	next := p.blocks[idx].next
	p.blocks[idx].capacity += HeaderSize + p.blocks[next].capacity
	p.blocks[idx].next = p.blocks[next].next
	p.dropBlock(next)
	p.stamp(idx)
}

// find walks the chain for the block whose payload starts at addr
func (p *Pool) find(addr Addr) int {
	for idx := p.head; idx != nilIndex; idx = p.blocks[idx].next {
		if p.blocks[idx].payload() == addr {
			return idx
		}
	}
	return nilIndex
}
