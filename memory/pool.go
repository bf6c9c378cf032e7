package memory

import "sync"

const (
	// Pool limits to prevent memory bloat
	poolMaxCap  = 64 << 10
	poolInitCap = 256
)

// scratch buffers for encoding before a Memory.Write
var scratchPool = sync.Pool{
	New: func() any {
		buf := make([]byte, 0, poolInitCap)
		return &buf
	},
}

// getScratch returns a zeroed buffer of n bytes.
func getScratch(n int) *[]byte {
	buf := scratchPool.Get().(*[]byte)
	if cap(*buf) < n {
		*buf = make([]byte, n)
		return buf
	}
	*buf = (*buf)[:n]
	clear(*buf)
	return buf
}

func putScratch(buf *[]byte) {
	if buf == nil || cap(*buf) > poolMaxCap {
		return // reject oversized
	}
	*buf = (*buf)[:0]
	scratchPool.Put(buf)
}
