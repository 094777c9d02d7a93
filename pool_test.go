package mempool

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type testHost struct {
	acquired int
	released int
	fail     bool
}

func (h *testHost) Acquire(size int) ([]byte, error) {
	if h.fail {
		return nil, errors.New("host refused")
	}
	h.acquired++
	return make([]byte, size), nil
}

func (h *testHost) Release([]byte) error {
	h.released++
	return nil
}

func newTestPool(t *testing.T, capacity int, opts ...Option) *Pool {
	opts = append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)
	p, err := New(capacity, opts...)
	require.NoError(t, err)
	return p
}

func TestNew(t *testing.T) {
	p := newTestPool(t, 1024)
	defer p.Close()

	assert.Equal(t, 1024, p.Capacity())
	assert.Equal(t, 1024+HeaderSize, len(p.buf))
	assert.Equal(t, []BlockInfo{{Header: 0, Addr: HeaderSize, Capacity: 1024, Available: true}}, p.Blocks())
	assert.NoError(t, p.Check())
}

func TestNewWithInvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		p, err := New(capacity)
		assert.Nil(t, p)
		assert.ErrorIs(t, err, ErrInitialization)
	}
}

func TestNewWithHostFailure(t *testing.T) {
	p, err := New(1024, WithHost(&testHost{fail: true}))
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrInitialization)
	assert.Contains(t, err.Error(), "host refused")
}

func TestInitFailureLeavesPoolClosed(t *testing.T) {
	host := &testHost{}
	p := newTestPool(t, 1024, WithHost(host))
	host.fail = true

	assert.ErrorIs(t, p.Init(1024), ErrInitialization)
	assert.Equal(t, 0, p.Capacity())
	_, err := p.Alloc(1)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestInitOnLivePoolDoesNotReleaseBuffer(t *testing.T) {
	host := &testHost{}
	p := newTestPool(t, 1024, WithHost(host))
	addr, err := p.Alloc(100)
	require.NoError(t, err)

	require.NoError(t, p.Init(512))
	assert.Equal(t, 2, host.acquired)
	assert.Equal(t, 0, host.released)
	assert.Equal(t, 512, p.Capacity())
	assert.Len(t, p.Blocks(), 1)
	assert.ErrorIs(t, p.Free(addr), ErrAlreadyFree)

	assert.NoError(t, p.Close())
	assert.Equal(t, 1, host.released)
}

func TestClose(t *testing.T) {
	host := &testHost{}
	p := newTestPool(t, 1024, WithHost(host))

	assert.NoError(t, p.Close())
	assert.NoError(t, p.Close())
	assert.Equal(t, 1, host.released)
	assert.Equal(t, 0, p.Capacity())
	assert.Empty(t, p.Blocks())
	assert.NoError(t, p.Check())

	_, err := p.Alloc(1)
	assert.ErrorIs(t, err, ErrClosed)
	_, err = p.Alloc(0)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, p.Free(HeaderSize), ErrClosed)
	_, err = p.Resize(HeaderSize, 1)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestCloseAndInitAgain(t *testing.T) {
	p := newTestPool(t, 1024)
	require.NoError(t, p.Close())
	require.NoError(t, p.Init(64))
	defer p.Close()

	addr, err := p.Alloc(64)
	assert.NoError(t, err)
	assert.Equal(t, Addr(HeaderSize), addr)
}

func TestHeaderStamping(t *testing.T) {
	p := newTestPool(t, 1024)
	defer p.Close()

	_, err := p.Alloc(100)
	require.NoError(t, err)

	h := decodeHeader(p.buf[0:HeaderSize])
	assert.Equal(t, header{next: 124, capacity: 100, magic: headerMagic}, h)
	h = decodeHeader(p.buf[124 : 124+HeaderSize])
	assert.Equal(t, header{next: 0, capacity: 900, magic: headerMagic, flags: flagAvailable}, h)
}
