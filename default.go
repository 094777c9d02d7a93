package mempool

var (
	defaultPool *Pool
)

// Init installs the default pool used by the package level Alloc, Free,
// Resize and Deinit.
//
// A default pool that is still live is dropped without Close, its buffer is
// not given back to the host. On failure no default pool is left installed.
func Init(capacity int, opts ...Option) error {
	if defaultPool != nil {
		logger.Warn("default pool replaced without deinit, previous buffer is not released")
		defaultPool = nil
	}

	p, err := New(capacity, opts...)
	if err != nil {
		return err
	}
	defaultPool = p
	return nil
}

// Alloc allocates from the default pool, see Pool.Alloc
func Alloc(size int) (Addr, error) {
	if defaultPool == nil {
		return NilAddr, ErrClosed
	}
	return defaultPool.Alloc(size)
}

// Free releases to the default pool, see Pool.Free
func Free(addr Addr) error {
	if defaultPool == nil {
		if addr == NilAddr {
			return nil
		}
		return ErrClosed
	}
	return defaultPool.Free(addr)
}

// Resize resizes in the default pool, see Pool.Resize
func Resize(addr Addr, size int) (Addr, error) {
	if defaultPool == nil {
		return NilAddr, ErrClosed
	}
	return defaultPool.Resize(addr, size)
}

// Bytes returns a payload of the default pool, see Pool.Bytes
func Bytes(addr Addr) ([]byte, error) {
	if defaultPool == nil {
		return nil, ErrClosed
	}
	return defaultPool.Bytes(addr)
}

// Deinit closes and removes the default pool. Without a default pool it is a
// no-op.
func Deinit() error {
	if defaultPool == nil {
		return nil
	}
	p := defaultPool
	defaultPool = nil
	return p.Close()
}
