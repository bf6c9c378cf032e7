package memory

import (
	"math"
	"unicode/utf16"

	"github.com/wippyai/cdata"
	"github.com/wippyai/cdata/errors"
	"github.com/wippyai/cdata/host"
	"github.com/wippyai/cdata/transcoder"
)

// Accessor reads and writes typed values at memory addresses.
type Accessor struct {
	Memory  cdata.Memory
	Decoder *transcoder.Decoder
	Encoder *transcoder.Encoder
}

func NewAccessor(mem cdata.Memory, dec *transcoder.Decoder, enc *transcoder.Encoder) *Accessor {
	return &Accessor{Memory: mem, Decoder: dec, Encoder: enc}
}

// ReadValue reads Size(d) bytes at addr and decodes them.
func (a *Accessor) ReadValue(d *transcoder.Descriptor, addr uint64) (host.Object, error) {
	if a.Decoder == nil {
		return nil, errors.NilPointer(errors.PhaseDecode, nil, "decoder")
	}
	data, err := a.Memory.Read(addr, transcoder.Size(d))
	if err != nil {
		return nil, err
	}
	return a.Decoder.Decode(d, data)
}

// ReadValueWith is ReadValue under a token the caller already holds.
func (a *Accessor) ReadValueWith(tok *host.Token, d *transcoder.Descriptor, addr uint64) (host.Object, error) {
	if a.Decoder == nil {
		return nil, errors.NilPointer(errors.PhaseDecode, nil, "decoder")
	}
	data, err := a.Memory.Read(addr, transcoder.Size(d))
	if err != nil {
		return nil, err
	}
	return a.Decoder.DecodeWith(tok, d, data)
}

// WriteValue encodes obj and writes it at addr. Nothing is written when
// encoding fails.
func (a *Accessor) WriteValue(d *transcoder.Descriptor, addr uint64, obj host.Object) error {
	if a.Encoder == nil {
		return errors.NilPointer(errors.PhaseEncode, nil, "encoder")
	}
	buf := getScratch(int(transcoder.Size(d)))
	defer putScratch(buf)

	if err := a.Encoder.EncodeTo(d, obj, *buf); err != nil {
		return err
	}
	return a.Memory.Write(addr, *buf)
}

// Store allocates space for d with alloc, writes obj there and returns the
// address.
func (a *Accessor) Store(alloc cdata.Allocator, d *transcoder.Descriptor, align uint32, obj host.Object) (uint64, error) {
	size := transcoder.Size(d)
	addr, err := alloc.Alloc(size, align)
	if err != nil {
		return 0, err
	}
	if err := a.WriteValue(d, addr, obj); err != nil {
		alloc.Free(addr, size, align)
		return 0, err
	}
	return addr, nil
}

// ReadCString reads bytes at addr up to the first NUL, examining at most
// limit bytes. A string with no NUL within limit bytes is returned truncated.
func (a *Accessor) ReadCString(addr uint64, limit uint32) (string, error) {
	data, err := a.readBounded(addr, limit, 1)
	if err != nil {
		return "", err
	}
	for i, b := range data {
		if b == 0 {
			return string(data[:i]), nil
		}
	}
	return string(data), nil
}

// ReadWString reads UTF-16LE code units at addr up to the first zero unit,
// examining at most limit units. Surrogate pairs are combined; unpaired
// surrogates become U+FFFD.
func (a *Accessor) ReadWString(addr uint64, limit uint32) (string, error) {
	data, err := a.readBounded(addr, limit, 2)
	if err != nil {
		return "", err
	}
	units := make([]uint16, 0, len(data)/2)
	for i := 0; i+1 < len(data); i += 2 {
		u := uint16(data[i]) | uint16(data[i+1])<<8
		if u == 0 {
			break
		}
		units = append(units, u)
	}
	return string(utf16.Decode(units)), nil
}

// readBounded reads up to limit units of unitSize bytes. When the full span
// is not readable it falls back to reading unit by unit until the first
// failure, so strings near the end of memory are still found.
func (a *Accessor) readBounded(addr uint64, limit, unitSize uint32) ([]byte, error) {
	if limit == 0 {
		return nil, nil
	}
	if limit > math.MaxUint32/unitSize {
		limit = math.MaxUint32 / unitSize
	}
	if data, err := a.Memory.Read(addr, limit*unitSize); err == nil {
		return data, nil
	}
	var out []byte
	for i := uint32(0); i < limit; i++ {
		unit, err := a.Memory.Read(addr+uint64(i*unitSize), unitSize)
		if err != nil {
			if i == 0 {
				return nil, err
			}
			break
		}
		out = append(out, unit...)
		if isZero(unit) {
			break
		}
	}
	return out, nil
}

func isZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
