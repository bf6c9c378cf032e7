package transcoder

import (
	stderrors "errors"
	"math"
	"math/bits"
	"strconv"

	"github.com/wippyai/cdata/errors"
	"github.com/wippyai/cdata/host"
	"github.com/wippyai/cdata/internal/abi"
	"github.com/wippyai/cdata/transcoder/internal/types"
)

// Encoder converts host objects into little-endian bytes.
//
// Structures are encoded by attribute name; the object's class is never
// compared with the descriptor's owner.
type Encoder struct {
	model host.Model
}

func NewEncoder(model host.Model) *Encoder {
	return &Encoder{model: model}
}

// Encode enters the host's exclusive section and encodes obj into a new
// buffer of Size(d) bytes.
func (enc *Encoder) Encode(d *Descriptor, obj host.Object) ([]byte, error) {
	tok := enc.model.Acquire()
	defer tok.Release()
	return enc.EncodeWith(tok, d, obj)
}

// EncodeWith encodes obj under a token the caller already holds.
func (enc *Encoder) EncodeWith(tok *host.Token, d *Descriptor, obj host.Object) ([]byte, error) {
	if d == nil {
		return nil, errors.NilPointer(errors.PhaseEncode, nil, "descriptor")
	}
	buf := make([]byte, Size(d))
	if err := enc.encode(tok, d, obj, buf, nil); err != nil {
		return nil, err
	}
	return buf, nil
}

// EncodeTo encodes obj into dst, which must be exactly Size(d) bytes long.
func (enc *Encoder) EncodeTo(d *Descriptor, obj host.Object, dst []byte) error {
	tok := enc.model.Acquire()
	defer tok.Release()
	return enc.EncodeToWith(tok, d, obj, dst)
}

// EncodeToWith is EncodeTo under a token the caller already holds.
func (enc *Encoder) EncodeToWith(tok *host.Token, d *Descriptor, obj host.Object, dst []byte) error {
	if d == nil {
		return errors.NilPointer(errors.PhaseEncode, nil, "descriptor")
	}
	if size := Size(d); uint64(len(dst)) != uint64(size) {
		return errors.SliceConversion(errors.PhaseEncode, nil, int(size), len(dst))
	}
	return enc.encode(tok, d, obj, dst, nil)
}

func (enc *Encoder) encode(tok *host.Token, d *Descriptor, obj host.Object, dst []byte, path []string) error {
	switch d.Kind {
	case types.KindPointer:
		return enc.encodePointer(tok, obj, dst, path)
	case types.KindArray:
		return enc.encodeArray(tok, d, obj, dst, path)
	case types.KindStructure:
		return enc.encodeStructure(tok, d, obj, dst, path)
	default:
		return enc.encodeScalar(tok, d, obj, dst, path)
	}
}

func (enc *Encoder) encodeScalar(tok *host.Token, d *Descriptor, obj host.Object, dst []byte, path []string) error {
	width := len(dst)
	switch {
	case d.Kind == types.KindLongDouble:
		return errors.UnsupportedIdentifier(errors.PhaseEncode, path, d.Code, "long double conversion is not implemented")
	case d.Kind == types.KindFloat:
		f, err := enc.model.ExtractFloat32(tok, obj)
		if err != nil {
			return errors.HostModel(errors.PhaseEncode, path, err)
		}
		abi.PutUintLE(dst, uint64(math.Float32bits(f)))
	case d.Kind == types.KindDouble:
		f, err := enc.model.ExtractFloat(tok, obj)
		if err != nil {
			return errors.HostModel(errors.PhaseEncode, path, err)
		}
		abi.PutUintLE(dst, math.Float64bits(f))
	case d.Kind.IsSigned():
		v, err := enc.model.ExtractInt(tok, obj, width*8)
		if err != nil {
			return errors.HostModel(errors.PhaseEncode, path, err)
		}
		abi.PutUintLE(dst, uint64(v))
	default:
		v, err := enc.model.ExtractUint(tok, obj, width*8)
		if err != nil {
			return errors.HostModel(errors.PhaseEncode, path, err)
		}
		abi.PutUintLE(dst, v)
	}
	return nil
}

// encodePointer writes the low len(dst) bytes of the object's addr.
func (enc *Encoder) encodePointer(tok *host.Token, obj host.Object, dst []byte, path []string) error {
	addrObj, err := enc.model.GetAttr(tok, obj, "addr")
	if err != nil {
		return attrError(path, "addr", err)
	}
	addr, err := enc.model.ExtractUint(tok, addrObj, bits.UintSize)
	if err != nil {
		return errors.HostModel(errors.PhaseEncode, path, err)
	}
	abi.PutUintLE(dst, addr)
	return nil
}

func (enc *Encoder) encodeArray(tok *host.Token, d *Descriptor, obj host.Object, dst []byte, path []string) error {
	size := Size(d.Elem)
	for i := uint32(0); i < d.Len; i++ {
		epath := appendPath(path, "["+strconv.FormatUint(uint64(i), 10)+"]")
		elem, err := enc.model.Index(tok, obj, int(i))
		if err != nil {
			return errors.HostModel(errors.PhaseEncode, epath, err)
		}
		start := i * size
		if err := enc.encode(tok, d.Elem, elem, dst[start:start+size], epath); err != nil {
			return err
		}
	}
	return nil
}

// encodeStructure zero-fills dst and writes fields in mapping order, so a
// later overlapping field overwrites an earlier one.
func (enc *Encoder) encodeStructure(tok *host.Token, d *Descriptor, obj host.Object, dst []byte, path []string) error {
	clear(dst)
	for _, f := range d.Fields {
		v, err := enc.model.GetAttr(tok, obj, f.Name)
		if err != nil {
			return attrError(path, f.Name, err)
		}
		end := f.Offset + Size(f.Type)
		if err := enc.encode(tok, f.Type, v, dst[f.Offset:end], appendPath(path, f.Name)); err != nil {
			return err
		}
	}
	return nil
}

func attrError(path []string, name string, err error) error {
	if stderrors.Is(err, host.ErrNoAttribute) {
		return errors.MissingAttribute(path, name, err)
	}
	return errors.HostModel(errors.PhaseEncode, path, err)
}
