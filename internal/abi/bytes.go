package abi

// PutUintLE writes the low len(dst) bytes of v in little-endian order.
// Bytes above len(dst) are truncated; len(dst) must be at most 8.
func PutUintLE(dst []byte, v uint64) {
	for i := range dst {
		dst[i] = byte(v >> (8 * i))
	}
}

// UintLE reads a little-endian unsigned integer of len(src) bytes,
// zero-extended to 64 bits. len(src) must be at most 8.
func UintLE(src []byte) uint64 {
	var v uint64
	for i, b := range src {
		v |= uint64(b) << (8 * i)
	}
	return v
}

// SignExtend interprets the low width bytes of v as a two's complement
// integer.
func SignExtend(v uint64, width int) int64 {
	if width <= 0 || width >= 8 {
		return int64(v)
	}
	shift := uint(64 - 8*width)
	return int64(v<<shift) >> shift
}
