package buf

import (
	"encoding/binary"
)

// Byte2Uint64 big endian bytes to uint64
func Byte2Uint64(data []byte) uint64 {
	return binary.BigEndian.Uint64(data)
}

// Byte2Uint32 big endian bytes to uint32
func Byte2Uint32(data []byte) uint32 {
	return binary.BigEndian.Uint32(data)
}

// Byte2Uint16 big endian bytes to uint16
func Byte2Uint16(data []byte) uint16 {
	return binary.BigEndian.Uint16(data)
}

// Uint64ToBytesTo writes v into ret using big endian
func Uint64ToBytesTo(v uint64, ret []byte) {
	binary.BigEndian.PutUint64(ret, v)
}

// Uint32ToBytesTo writes v into ret using big endian
func Uint32ToBytesTo(v uint32, ret []byte) {
	binary.BigEndian.PutUint32(ret, v)
}

// Uint16ToBytesTo writes v into ret using big endian
func Uint16ToBytesTo(v uint16, ret []byte) {
	binary.BigEndian.PutUint16(ret, v)
}
