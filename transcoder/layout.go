package transcoder

import (
	"github.com/wippyai/cdata/transcoder/internal/layout"
)

// Size returns the number of bytes a value of d occupies. A nil descriptor
// has size 0.
func Size(d *Descriptor) uint32 {
	if d == nil {
		return 0
	}
	return layout.Size(d)
}
