package buf

import (
	"fmt"
	"io"

	"github.com/fagongzi/util/hack"
)

const (
	defaultMinGrowSize      = 256
	defaultIOCopyBufferSize = 1024 * 4
)

// Option bytebuf option
type Option func(*ByteBuf)

// WithMemAllocator set the allocator that supplies the internal []byte. When
// the allocator is also a Reallocator, Grow extends the []byte through it
// instead of allocating, copying and freeing.
func WithMemAllocator(alloc Allocator) Option {
	return func(bb *ByteBuf) {
		bb.options.alloc = alloc
	}
}

// WithMinGrowSize set the minimum number of bytes added by Grow
func WithMinGrowSize(minGrowSize int) Option {
	return func(bb *ByteBuf) {
		bb.options.minGrowSize = minGrowSize
	}
}

// WithIOCopyBufferSize set how many bytes ReadFrom reads and WriteTo writes
// at a time
func WithIOCopyBufferSize(value int) Option {
	return func(bb *ByteBuf) {
		bb.options.ioCopyBufferSize = value
	}
}

var (
	_ io.WriterTo   = (*ByteBuf)(nil)
	_ io.Writer     = (*ByteBuf)(nil)
	_ io.Reader     = (*ByteBuf)(nil)
	_ io.ReaderFrom = (*ByteBuf)(nil)
)

// ByteBuf holds an allocator-provided []byte and maintains 2 indexes for
// read and write data.
//
// | discardable bytes  |   readable bytes   |   writeable bytes  |
// |                    |                    |                    |
// 0      <=       readerIndex    <=     writerIndex    <=     capacity
type ByteBuf struct {
	buf         []byte
	readerIndex int
	writerIndex int

	options struct {
		alloc            Allocator
		minGrowSize      int
		ioCopyBufferSize int
	}
}

// NewByteBuf create bytebuf with options
func NewByteBuf(capacity int, opts ...Option) *ByteBuf {
	b := &ByteBuf{}
	for _, opt := range opts {
		opt(b)
	}
	b.adjust()
	b.buf = b.options.alloc.Alloc(capacity)
	return b
}

func (b *ByteBuf) adjust() {
	if b.options.alloc == nil {
		b.options.alloc = newNonReusableAllocator()
	}
	if b.options.minGrowSize == 0 {
		b.options.minGrowSize = defaultMinGrowSize
	}
	if b.options.ioCopyBufferSize == 0 {
		b.options.ioCopyBufferSize = defaultIOCopyBufferSize
	}
}

// Close frees the internal []byte back to the allocator
func (b *ByteBuf) Close() {
	if b.buf != nil {
		b.options.alloc.Free(b.buf)
	}
	b.buf = nil
	b.Reset()
}

// Reset reset to reuse.
func (b *ByteBuf) Reset() {
	b.readerIndex = 0
	b.writerIndex = 0
}

// Capacity returns len of the internal []byte
func (b *ByteBuf) Capacity() int {
	return len(b.buf)
}

// Readable return the number of bytes that can be read.
func (b *ByteBuf) Readable() int {
	return b.writerIndex - b.readerIndex
}

// Writeable return how many bytes can be written without Grow
func (b *ByteBuf) Writeable() int {
	return len(b.buf) - b.writerIndex
}

// ReadableBytes returns the readable bytes without moving the reader index.
// The slice is invalid after the next write.
func (b *ByteBuf) ReadableBytes() []byte {
	return b.buf[b.readerIndex:b.writerIndex]
}

// Skip skip [readIndex, readIndex+n).
func (b *ByteBuf) Skip(n int) {
	if n > b.Readable() {
		panic(fmt.Sprintf("invalid skip %d", n))
	}
	b.readerIndex += n
}

// ReadByte read a byte from buf
func (b *ByteBuf) ReadByte() (byte, error) {
	if b.Readable() == 0 {
		return 0, io.EOF
	}

	v := b.buf[b.readerIndex]
	b.readerIndex++
	return v, nil
}

// ReadBytes read up to n bytes into a new []byte
func (b *ByteBuf) ReadBytes(n int) (readed int, data []byte) {
	readed = n
	if readed > b.Readable() {
		readed = b.Readable()
	}
	if readed == 0 {
		return
	}

	data = make([]byte, readed)
	copy(data, b.buf[b.readerIndex:b.readerIndex+readed])
	b.readerIndex += readed
	return
}

// ReadString read up to n bytes as a string
func (b *ByteBuf) ReadString(n int) string {
	_, data := b.ReadBytes(n)
	return hack.SliceToString(data)
}

// ReadUint16 get uint16 value from buf
func (b *ByteBuf) ReadUint16() uint16 {
	return Byte2Uint16(b.mustRead(2))
}

// ReadUint32 get uint32 value from buf
func (b *ByteBuf) ReadUint32() uint32 {
	return Byte2Uint32(b.mustRead(4))
}

// ReadUint64 get uint64 value from buf
func (b *ByteBuf) ReadUint64() uint64 {
	return Byte2Uint64(b.mustRead(8))
}

func (b *ByteBuf) mustRead(n int) []byte {
	if b.Readable() < n {
		panic(fmt.Sprintf("read %d bytes, but readable is %d", n, b.Readable()))
	}
	b.readerIndex += n
	return b.buf[b.readerIndex-n : b.readerIndex]
}

// WriteByte write a byte value into buf.
func (b *ByteBuf) WriteByte(v byte) error {
	b.Grow(1)
	b.buf[b.writerIndex] = v
	b.writerIndex++
	return nil
}

// WriteString write a string value to buf
func (b *ByteBuf) WriteString(v string) {
	b.Write(hack.StringToSlice(v))
}

// WriteUint16 write uint16 into buf
func (b *ByteBuf) WriteUint16(v uint16) {
	Uint16ToBytesTo(v, b.mustWrite(2))
}

// WriteUint32 write uint32 into buf
func (b *ByteBuf) WriteUint32(v uint32) {
	Uint32ToBytesTo(v, b.mustWrite(4))
}

// WriteUint64 write uint64 into buf
func (b *ByteBuf) WriteUint64(v uint64) {
	Uint64ToBytesTo(v, b.mustWrite(8))
}

func (b *ByteBuf) mustWrite(n int) []byte {
	b.Grow(n)
	b.writerIndex += n
	return b.buf[b.writerIndex-n : b.writerIndex]
}

// Grow makes room for n more bytes. Readable bytes are first moved to the
// front of the buffer, then the buffer is extended by at least minGrowSize
// or half its capacity.
func (b *ByteBuf) Grow(n int) {
	free := b.Writeable()
	if free >= n {
		return
	}

	if b.readerIndex > 0 {
		readable := copy(b.buf, b.buf[b.readerIndex:b.writerIndex])
		b.readerIndex, b.writerIndex = 0, readable
		if free = b.Writeable(); free >= n {
			return
		}
	}

	current := len(b.buf)
	step := current / 2
	if step < b.options.minGrowSize {
		step = b.options.minGrowSize
	}
	target := current
	for target < current+(n-free) {
		target += step
	}

	if r, ok := b.options.alloc.(Reallocator); ok {
		b.buf = r.Realloc(b.buf, target)
		return
	}
	newBuf := b.options.alloc.Alloc(target)
	copy(newBuf, b.buf[:b.writerIndex])
	b.options.alloc.Free(b.buf)
	b.buf = newBuf
}

// Write implemented io.Writer interface
func (b *ByteBuf) Write(src []byte) (int, error) {
	n := len(src)
	b.Grow(n)
	copy(b.buf[b.writerIndex:], src)
	b.writerIndex += n
	return n, nil
}

// Read implemented io.Reader interface. return n, nil or 0, io.EOF is successful
func (b *ByteBuf) Read(dst []byte) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	n := b.Readable()
	if n == 0 {
		return 0, io.EOF
	}
	n = copy(dst, b.buf[b.readerIndex:b.writerIndex])
	b.readerIndex += n
	return n, nil
}

// WriteTo implemented io.WriterTo interface
func (b *ByteBuf) WriteTo(dst io.Writer) (int64, error) {
	var written int64
	for b.Readable() > 0 {
		to := b.writerIndex
		if to-b.readerIndex > b.options.ioCopyBufferSize {
			to = b.readerIndex + b.options.ioCopyBufferSize
		}
		n, err := dst.Write(b.buf[b.readerIndex:to])
		if n < 0 {
			panic("invalid write")
		}
		b.readerIndex += n
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// ReadFrom implemented io.ReaderFrom interface, reads until io.EOF
func (b *ByteBuf) ReadFrom(r io.Reader) (n int64, err error) {
	for {
		b.Grow(b.options.ioCopyBufferSize)
		m, e := r.Read(b.buf[b.writerIndex : b.writerIndex+b.options.ioCopyBufferSize])
		if m < 0 {
			panic("bug: negative Read")
		}

		b.writerIndex += m
		n += int64(m)
		if e == io.EOF {
			return n, nil
		}
		if e != nil {
			return n, e
		}
	}
}
