package layout

import (
	"github.com/wippyai/cdata/internal/abi"
	"github.com/wippyai/cdata/transcoder/internal/types"
)

// Size returns the byte size of d. The resolver guarantees the result fits
// in 32 bits for every descriptor it produces.
func Size(d *types.Descriptor) uint32 {
	switch d.Kind {
	case types.KindPointer:
		return d.Byteness
	case types.KindArray:
		return Size(d.Elem) * d.Len
	case types.KindStructure:
		return structSize(d)
	default:
		if d.Width != 0 {
			return d.Width
		}
		return d.Kind.Width()
	}
}

func structSize(d *types.Descriptor) uint32 {
	var extent uint32
	for _, f := range d.Fields {
		if end := f.Offset + Size(f.Type); end > extent {
			extent = end
		}
	}
	return extent
}

// Extent returns offset+Size(d) and reports whether it overflows 32 bits.
func Extent(offset uint32, d *types.Descriptor) (uint32, bool) {
	return abi.SafeAddU32(offset, Size(d))
}
