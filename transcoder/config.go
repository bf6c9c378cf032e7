package transcoder

import (
	"math/bits"
	"runtime"

	"github.com/wippyai/cdata/errors"
)

// Config describes the target data model. Zero fields take the defaults of
// the platform the codec runs on.
type Config struct {
	// PointerWidth is the byteness of pointers whose type does not set one.
	PointerWidth uint32
	// LongWidth is the width of the long and unsigned long kinds (4 or 8).
	LongWidth uint32
}

// DefaultConfig returns the native data model: pointers are uintptr wide,
// long is 4 bytes on Windows and 32-bit targets and 8 bytes elsewhere.
func DefaultConfig() Config {
	long := uint32(8)
	if runtime.GOOS == "windows" || bits.UintSize == 32 {
		long = 4
	}
	return Config{
		PointerWidth: bits.UintSize / 8,
		LongWidth:    long,
	}
}

func (c *Config) withDefaults() (Config, error) {
	out := DefaultConfig()
	if c == nil {
		return out, nil
	}
	if c.PointerWidth != 0 {
		if c.PointerWidth > 8 {
			return out, errors.New(errors.PhaseResolve, errors.KindInvalidData).
				Value(c.PointerWidth).
				Detail("pointer width must be between 1 and 8").
				Build()
		}
		out.PointerWidth = c.PointerWidth
	}
	if c.LongWidth != 0 {
		if c.LongWidth != 4 && c.LongWidth != 8 {
			return out, errors.New(errors.PhaseResolve, errors.KindInvalidData).
				Value(c.LongWidth).
				Detail("long width must be 4 or 8").
				Build()
		}
		out.LongWidth = c.LongWidth
	}
	return out, nil
}
