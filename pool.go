package mempool

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Pool carves one contiguous buffer into variable sized blocks. Blocks are
// handed out first-fit, split when the remainder can hold another block and
// merged with free neighbours when released.
//
// The chain of blocks always partitions the buffer: every block starts where
// the previous one ends and the last one ends at the end of the buffer.
//
// A Pool is not safe for concurrent use, see SyncPool.
type Pool struct {
	logger *zap.Logger
	buf    []byte
	blocks []block
	spare  []int
	head   int

	options struct {
		host        Host
		zeroOnAlloc bool
	}
}

// New creates a pool able to hand out capacity payload bytes. The buffer is
// HeaderSize bytes larger than capacity to hold the first block header.
func New(capacity int, opts ...Option) (*Pool, error) {
	p := &Pool{head: nilIndex}
	for _, opt := range opts {
		opt(p)
	}
	p.adjust()

	if err := p.Init(capacity); err != nil {
		return nil, err
	}
	return p, nil
}

// Init acquires a fresh buffer and installs a single free block spanning
// capacity bytes.
//
// Calling Init on a live pool does not give the previous buffer back to the
// host. All addresses handed out before become invalid. With HeapHost the old
// buffer is garbage collected, with MmapHost the mapping leaks. Call Close
// first to avoid this.
//
// On failure the pool is left closed.
func (p *Pool) Init(capacity int) error {
	if !p.closed() {
		p.logger.Warn("pool initialized again without close, previous buffer is not released",
			zap.Int("capacity", p.Capacity()))
	}
	p.reset()

	if capacity <= 0 {
		return errors.Wrapf(ErrInitialization, "invalid capacity %d", capacity)
	}
	data, err := p.options.host.Acquire(capacity + HeaderSize)
	if err != nil {
		p.logger.Error("acquire pool buffer failed",
			zap.Int("capacity", capacity),
			zap.Error(err))
		return errors.Wrapf(ErrInitialization, "capacity %d: %v", capacity, err)
	}

	p.buf = data
	p.head = p.newBlock(0, capacity, nilIndex)
	p.stamp(p.head)
	p.logger.Debug("pool initialized",
		zap.Int("capacity", capacity))
	return nil
}

// Close gives the buffer back to the host. Closing a closed pool is a no-op.
func (p *Pool) Close() error {
	if p.closed() {
		return nil
	}

	data := p.buf
	p.reset()
	if err := p.options.host.Release(data); err != nil {
		p.logger.Error("release pool buffer failed",
			zap.Error(err))
		return errors.Wrap(err, "release pool buffer")
	}
	p.logger.Debug("pool closed")
	return nil
}

// Capacity returns the payload capacity the pool was initialized with, 0 if
// the pool is closed.
func (p *Pool) Capacity() int {
	if p.closed() {
		return 0
	}
	return len(p.buf) - HeaderSize
}

func (p *Pool) closed() bool {
	return p.buf == nil
}

func (p *Pool) reset() {
	p.buf = nil
	p.blocks = p.blocks[:0]
	p.spare = p.spare[:0]
	p.head = nilIndex
}
