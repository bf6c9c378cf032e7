package memory

import (
	"github.com/wippyai/cdata"
	"github.com/wippyai/cdata/errors"
)

// Buffer is a byte slice mapped at a base address.
type Buffer struct {
	Data []byte
	Base uint64
}

var _ cdata.Memory = (*Buffer)(nil)

// NewBuffer allocates a zeroed buffer of size bytes at base.
func NewBuffer(base uint64, size int) *Buffer {
	return &Buffer{Base: base, Data: make([]byte, size)}
}

// span returns the slice offsets of [addr, addr+n) or false when any part
// of it lies outside the buffer.
func (b *Buffer) span(addr uint64, n uint64) (uint64, uint64, bool) {
	if addr < b.Base {
		return 0, 0, false
	}
	start := addr - b.Base
	end := start + n
	if end < start || end > uint64(len(b.Data)) {
		return 0, 0, false
	}
	return start, end, true
}

// Read returns a view of length bytes at addr.
func (b *Buffer) Read(addr uint64, length uint32) ([]byte, error) {
	start, end, ok := b.span(addr, uint64(length))
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseMemory, addr, int(length))
	}
	return b.Data[start:end:end], nil
}

func (b *Buffer) Write(addr uint64, data []byte) error {
	start, end, ok := b.span(addr, uint64(len(data)))
	if !ok {
		return errors.OutOfBounds(errors.PhaseMemory, addr, len(data))
	}
	copy(b.Data[start:end], data)
	return nil
}

func (b *Buffer) Size() uint64 {
	return uint64(len(b.Data))
}

// Arena is a bump allocator over a Buffer. Free is a no-op; Reset releases
// everything at once.
type Arena struct {
	buf  *Buffer
	next uint64
}

var _ cdata.Allocator = (*Arena)(nil)

func NewArena(buf *Buffer) *Arena {
	return &Arena{buf: buf}
}

func (a *Arena) Alloc(size, align uint32) (uint64, error) {
	if align == 0 {
		align = 1
	}
	if align&(align-1) != 0 {
		return 0, errors.InvalidData(errors.PhaseMemory, nil, "alignment must be a power of two")
	}
	addr := a.buf.Base + a.next
	if rem := addr % uint64(align); rem != 0 {
		addr += uint64(align) - rem
	}
	if _, _, ok := a.buf.span(addr, uint64(size)); !ok {
		return 0, errors.OutOfBounds(errors.PhaseMemory, addr, int(size))
	}
	a.next = addr - a.buf.Base + uint64(size)
	return addr, nil
}

func (a *Arena) Free(uint64, uint32, uint32) {}

// Reset makes the whole buffer available again.
func (a *Arena) Reset() {
	a.next = 0
}

// Used returns the number of bytes handed out, alignment padding included.
func (a *Arena) Used() uint64 {
	return a.next
}
