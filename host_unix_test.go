//go:build linux || darwin
// +build linux darwin

package mempool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMmapHost(t *testing.T) {
	p := newTestPool(t, 64*1024, WithHost(MmapHost()))

	addr, err := p.Alloc(4096)
	require.NoError(t, err)
	data, err := p.Bytes(addr)
	require.NoError(t, err)
	copy(data, "mapped")

	addr, err = p.Resize(addr, 8192)
	require.NoError(t, err)
	data, err = p.Bytes(addr)
	require.NoError(t, err)
	assert.Equal(t, []byte("mapped"), data[:6])
	assert.NoError(t, p.Check())

	assert.NoError(t, p.Close())
	assert.NoError(t, p.Close())
}

func TestHostInvalidSize(t *testing.T) {
	for _, host := range []Host{HeapHost(), MmapHost()} {
		_, err := host.Acquire(0)
		assert.Error(t, err)
		assert.NoError(t, host.Release(nil))
	}
}
