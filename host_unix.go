//go:build linux || darwin
// +build linux darwin

package mempool

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

type mmapHost struct {
}

// MmapHost returns a host that maps anonymous private memory outside of the
// Go heap. Buffers are returned to the kernel on Release.
func MmapHost() Host {
	return &mmapHost{}
}

func (h *mmapHost) Acquire(size int) ([]byte, error) {
	if size <= 0 {
		return nil, errors.Errorf("invalid buffer size %d", size)
	}
	data, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, errors.Wrapf(err, "mmap %d bytes", size)
	}
	return data, nil
}

func (h *mmapHost) Release(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return errors.Wrap(unix.Munmap(data), "munmap")
}
