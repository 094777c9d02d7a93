package mempool

import (
	"sync"
)

// SyncPool serializes every operation on a Pool with one mutex. Payload
// slices must only be touched inside Do.
type SyncPool struct {
	mu sync.Mutex
	p  *Pool
}

// NewSyncPool creates a pool guarded by a mutex
func NewSyncPool(capacity int, opts ...Option) (*SyncPool, error) {
	p, err := New(capacity, opts...)
	if err != nil {
		return nil, err
	}
	return &SyncPool{p: p}, nil
}

// Alloc see Pool.Alloc
func (s *SyncPool) Alloc(size int) (Addr, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Alloc(size)
}

// Free see Pool.Free
func (s *SyncPool) Free(addr Addr) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Free(addr)
}

// Resize see Pool.Resize
func (s *SyncPool) Resize(addr Addr, size int) (Addr, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Resize(addr, size)
}

// Coalesce see Pool.Coalesce
func (s *SyncPool) Coalesce() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Coalesce()
}

// Init see Pool.Init
func (s *SyncPool) Init(capacity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Init(capacity)
}

// Close see Pool.Close
func (s *SyncPool) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Close()
}

// Stats see Pool.Stats
func (s *SyncPool) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Stats()
}

// Check see Pool.Check
func (s *SyncPool) Check() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Check()
}

// Do runs fn with the lock held, fn must not retain the pool
func (s *SyncPool) Do(fn func(*Pool) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.p)
}
