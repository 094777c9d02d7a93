package mempool

import (
	"testing"

	"github.com/fagongzi/mempool/buf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteBufGrowsInPlace(t *testing.T) {
	p := newTestPool(t, 4096)
	defer p.Close()

	bb := buf.NewByteBuf(16,
		buf.WithMemAllocator(p.Allocator()),
		buf.WithMinGrowSize(16))
	bb.WriteString("0123456789abcdef")
	assert.Equal(t, 16, p.Stats().Allocated)

	bb.WriteString("g")
	assert.Equal(t, 32, bb.Capacity())
	blocks := p.Blocks()
	require.Len(t, blocks, 1)
	assert.Equal(t, Addr(HeaderSize), blocks[0].Addr)
	assert.False(t, blocks[0].Available)
	assert.Equal(t, "0123456789abcdefg", bb.ReadString(17))

	bb.Close()
	assert.Equal(t, 0, p.Stats().Allocated)
	assert.Len(t, p.Blocks(), 1)
}

func TestByteBufMoves(t *testing.T) {
	p := newTestPool(t, 4096)
	defer p.Close()

	alloc := p.Allocator()
	bb1 := buf.NewByteBuf(16, buf.WithMemAllocator(alloc), buf.WithMinGrowSize(16))
	bb2 := buf.NewByteBuf(16, buf.WithMemAllocator(alloc), buf.WithMinGrowSize(16))
	bb1.WriteUint64(1)
	bb1.WriteUint64(2)
	bb2.WriteString("second")

	bb1.WriteUint64(3)
	assert.Equal(t, 32, bb1.Capacity())
	blocks := p.Blocks()
	require.Len(t, blocks, 4)
	assert.True(t, blocks[0].Available)
	assert.Equal(t, Addr(16+3*HeaderSize+16), blocks[2].Addr)

	assert.Equal(t, uint64(1), bb1.ReadUint64())
	assert.Equal(t, uint64(2), bb1.ReadUint64())
	assert.Equal(t, uint64(3), bb1.ReadUint64())
	assert.Equal(t, "second", bb2.ReadString(6))

	bb1.Close()
	bb2.Close()
	assert.Len(t, p.Blocks(), 1)
	assert.NoError(t, p.Check())
}

func TestAllocatorForeignMemory(t *testing.T) {
	p := newTestPool(t, 128)
	defer p.Close()

	alloc := p.Allocator()
	assert.Nil(t, alloc.Alloc(0))
	alloc.Free(nil)
	alloc.Free(make([]byte, 8))
	assert.Panics(t, func() { alloc.(buf.Reallocator).Realloc(make([]byte, 8), 16) })
	assert.Panics(t, func() { alloc.Alloc(1024) })
	assert.Len(t, p.Blocks(), 1)
}
