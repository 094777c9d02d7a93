//go:build !linux && !darwin
// +build !linux,!darwin

package mempool

// MmapHost falls back to the heap host where anonymous mappings are not
// supported.
func MmapHost() Host {
	return HeapHost()
}
