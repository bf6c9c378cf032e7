package cdata

// Memory is an addressable byte store the codec reads values from and
// writes values to.
type Memory interface {
	Read(addr uint64, length uint32) ([]byte, error)
	Write(addr uint64, data []byte) error
}

// MemorySizer provides the current size of a memory in bytes.
type MemorySizer interface {
	Size() uint64
}

// Allocator reserves space in a Memory.
type Allocator interface {
	Alloc(size, align uint32) (uint64, error)
	Free(addr uint64, size, align uint32)
}
