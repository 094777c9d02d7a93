package buf

// Allocator memory allocation for ByteBuf
type Allocator interface {
	// Alloc allocate a []byte with len(data) == size, and the returned []byte cannot
	// be expanded in use.
	Alloc(size int) []byte
	// Free free the allocated memory
	Free([]byte)
}

// Reallocator is implemented by allocators that can grow an allocation,
// possibly in place. The returned []byte starts with the content of old, and
// old must not be used afterwards.
type Reallocator interface {
	Realloc(old []byte, size int) []byte
}

type nonReusableAllocator struct {
}

func newNonReusableAllocator() Allocator {
	return &nonReusableAllocator{}
}

func (ma *nonReusableAllocator) Alloc(size int) []byte {
	return make([]byte, size)
}

func (ma *nonReusableAllocator) Free([]byte) {

}
