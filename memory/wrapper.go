package memory

import (
	"context"
	"fmt"
	"math"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/cdata"
	"github.com/wippyai/cdata/errors"
)

// WrapMemory wraps a wazero api.Memory to implement cdata.Memory.
func WrapMemory(mem api.Memory) cdata.Memory {
	if mem == nil {
		return nil
	}
	return &Wrapper{Mem: mem}
}

// WrapAllocator wraps a guest cabi_realloc export to implement cdata.Allocator.
func WrapAllocator(ctx context.Context, fn api.Function) cdata.Allocator {
	if fn == nil {
		return nil
	}
	return &AllocatorWrapper{Ctx: ctx, Fn: fn}
}

// Wrapper adapts wazero api.Memory to the cdata.Memory interface. Linear
// memory is 32-bit addressed; larger addresses are out of bounds.
type Wrapper struct {
	Mem api.Memory
}

// Read returns a view of memory. The slice aliases linear memory and is
// invalidated when the memory grows.
func (m *Wrapper) Read(addr uint64, length uint32) ([]byte, error) {
	if addr > math.MaxUint32 {
		return nil, errors.OutOfBounds(errors.PhaseMemory, addr, int(length))
	}
	data, ok := m.Mem.Read(uint32(addr), length)
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseMemory, addr, int(length))
	}
	return data, nil
}

// Write copies data into memory at addr.
func (m *Wrapper) Write(addr uint64, data []byte) error {
	if addr > math.MaxUint32 {
		return errors.OutOfBounds(errors.PhaseMemory, addr, len(data))
	}
	if !m.Mem.Write(uint32(addr), data) {
		return errors.OutOfBounds(errors.PhaseMemory, addr, len(data))
	}
	return nil
}

// Size returns the current memory size in bytes.
func (m *Wrapper) Size() uint64 {
	return uint64(m.Mem.Size())
}

// AllocatorWrapper adapts a guest cabi_realloc function to cdata.Allocator.
type AllocatorWrapper struct {
	Ctx context.Context
	Fn  api.Function
}

// Alloc allocates memory using cabi_realloc.
func (a *AllocatorWrapper) Alloc(size, align uint32) (uint64, error) {
	results, err := a.Fn.Call(a.Ctx, 0, 0, uint64(align), uint64(size))
	if err != nil {
		return 0, fmt.Errorf("allocation failed: %w", err)
	}
	if len(results) == 0 {
		return 0, fmt.Errorf("allocation returned no result")
	}
	return uint64(uint32(results[0])), nil
}

// Free deallocates memory using cabi_realloc.
func (a *AllocatorWrapper) Free(addr uint64, size, align uint32) {
	_, _ = a.Fn.Call(a.Ctx, addr, uint64(size), uint64(align), 0)
}
