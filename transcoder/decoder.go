package transcoder

import (
	"math"
	"strconv"

	"github.com/wippyai/cdata/errors"
	"github.com/wippyai/cdata/host"
	"github.com/wippyai/cdata/internal/abi"
	"github.com/wippyai/cdata/transcoder/internal/types"
)

// Decoder converts little-endian bytes into host objects.
type Decoder struct {
	model host.Model
}

func NewDecoder(model host.Model) *Decoder {
	return &Decoder{model: model}
}

// Decode enters the host's exclusive section and decodes data, which must
// be exactly Size(d) bytes long.
func (dec *Decoder) Decode(d *Descriptor, data []byte) (host.Object, error) {
	tok := dec.model.Acquire()
	defer tok.Release()
	return dec.DecodeWith(tok, d, data)
}

// DecodeWith decodes data under a token the caller already holds.
func (dec *Decoder) DecodeWith(tok *host.Token, d *Descriptor, data []byte) (host.Object, error) {
	if d == nil {
		return nil, errors.NilPointer(errors.PhaseDecode, nil, "descriptor")
	}
	if size := Size(d); uint64(len(data)) != uint64(size) {
		return nil, errors.SliceConversion(errors.PhaseDecode, nil, int(size), len(data))
	}
	return dec.decode(tok, d, data, nil)
}

func (dec *Decoder) decode(tok *host.Token, d *Descriptor, data []byte, path []string) (host.Object, error) {
	switch d.Kind {
	case types.KindPointer:
		return dec.decodePointer(tok, d, data, path)
	case types.KindArray:
		return dec.decodeArray(tok, d, data, path)
	case types.KindStructure:
		return dec.decodeStructure(tok, d, data, path)
	default:
		return dec.decodeScalar(tok, d, data, path)
	}
}

func (dec *Decoder) decodeScalar(tok *host.Token, d *Descriptor, data []byte, path []string) (host.Object, error) {
	if len(data) != int(Size(d)) {
		return nil, errors.SliceConversion(errors.PhaseDecode, path, int(Size(d)), len(data))
	}
	raw := abi.UintLE(data)

	var (
		v   host.Object
		err error
	)
	switch {
	case d.Kind == types.KindLongDouble:
		return nil, errors.UnsupportedIdentifier(errors.PhaseDecode, path, d.Code, "long double conversion is not implemented")
	case d.Kind == types.KindFloat:
		v, err = dec.model.FromFloat32(tok, math.Float32frombits(uint32(raw)))
	case d.Kind == types.KindDouble:
		v, err = dec.model.FromFloat(tok, math.Float64frombits(raw))
	case d.Kind.IsSigned():
		v, err = dec.model.FromInt(tok, abi.SignExtend(raw, len(data)))
	default:
		v, err = dec.model.FromUint(tok, raw)
	}
	if err != nil {
		return nil, errors.HostModel(errors.PhaseDecode, path, err)
	}
	return v, nil
}

func (dec *Decoder) decodePointer(tok *host.Token, d *Descriptor, data []byte, path []string) (host.Object, error) {
	addr, err := dec.model.FromUint(tok, abi.UintLE(data))
	if err != nil {
		return nil, errors.HostModel(errors.PhaseDecode, path, err)
	}
	obj, err := dec.model.Call(tok, d.Owner, addr)
	if err != nil {
		return nil, errors.HostModel(errors.PhaseDecode, path, err)
	}
	return obj, nil
}

func (dec *Decoder) decodeArray(tok *host.Token, d *Descriptor, data []byte, path []string) (host.Object, error) {
	size := Size(d.Elem)
	elems := make([]host.Object, d.Len)
	for i := range elems {
		start := uint32(i) * size
		v, err := dec.decode(tok, d.Elem, data[start:start+size], appendPath(path, "["+strconv.Itoa(i)+"]"))
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	obj, err := dec.model.Call(tok, d.Owner, elems...)
	if err != nil {
		return nil, errors.HostModel(errors.PhaseDecode, path, err)
	}
	return obj, nil
}

func (dec *Decoder) decodeStructure(tok *host.Token, d *Descriptor, data []byte, path []string) (host.Object, error) {
	kwargs := make([]host.KwArg, 0, len(d.Fields))
	for _, f := range d.Fields {
		end := f.Offset + Size(f.Type)
		v, err := dec.decode(tok, f.Type, data[f.Offset:end], appendPath(path, f.Name))
		if err != nil {
			return nil, err
		}
		kwargs = append(kwargs, host.KwArg{Name: f.Name, Value: v})
	}
	obj, err := dec.model.CallKw(tok, d.Owner, kwargs)
	if err != nil {
		return nil, errors.HostModel(errors.PhaseDecode, path, err)
	}
	return obj, nil
}
