package mempool

import (
	"github.com/pkg/errors"
)

var (
	// ErrInitialization the host refused the pool buffer, or the capacity is invalid
	ErrInitialization = errors.New("mempool: initialization failed")
	// ErrClosed no live pool
	ErrClosed = errors.New("mempool: pool is not initialized")
	// ErrInvalidSize negative size
	ErrInvalidSize = errors.New("mempool: invalid size")
	// ErrNoSpace no free block can hold the requested size
	ErrNoSpace = errors.New("mempool: no free block large enough")
	// ErrInvalidRelease matches every release of an address that is not a live
	// allocation. Use errors.Is to test for it.
	ErrInvalidRelease = errors.New("mempool: invalid release")
	// ErrAlreadyFree the address belongs to a block that is already free
	ErrAlreadyFree error = &releaseError{msg: "mempool: block already free"}
	// ErrUnknownAddress no block in the pool has this payload address
	ErrUnknownAddress error = &releaseError{msg: "mempool: unknown address"}
	// ErrCorrupted the block chain no longer partitions the pool buffer
	ErrCorrupted = errors.New("mempool: block chain corrupted")
)

type releaseError struct {
	msg string
}

func (e *releaseError) Error() string {
	return e.msg
}

func (e *releaseError) Is(target error) bool {
	return target == ErrInvalidRelease
}
