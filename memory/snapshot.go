package memory

import (
	"io"
	"sort"
	"strconv"

	"github.com/fxamacker/cbor/v2"
	"go.uber.org/zap"

	"github.com/wippyai/cdata"
	"github.com/wippyai/cdata/errors"
)

const snapshotVersion = 1

// Region is a contiguous block of bytes starting at Base.
type Region struct {
	Data []byte `cbor:"2,keyasint"`
	Base uint64 `cbor:"1,keyasint"`
}

func (r Region) end() uint64 {
	return r.Base + uint64(len(r.Data))
}

// Range selects length bytes at Addr for Capture.
type Range struct {
	Addr   uint64
	Length uint32
}

type snapshotFile struct {
	Regions []Region `cbor:"2,keyasint"`
	Version int      `cbor:"1,keyasint"`
}

// Snapshot is a read-write copy of selected memory regions. An access must
// lie entirely inside a single region.
type Snapshot struct {
	regions []Region
}

var _ cdata.Memory = (*Snapshot)(nil)

// NewSnapshot builds a snapshot from regions, which must not overlap. The
// regions' data is used without copying.
func NewSnapshot(regions ...Region) (*Snapshot, error) {
	sorted := append([]Region(nil), regions...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Base < sorted[j].Base })
	for i, r := range sorted {
		if r.end() < r.Base {
			return nil, errors.InvalidData(errors.PhaseMemory, nil,
				"region at 0x"+strconv.FormatUint(r.Base, 16)+" wraps the address space")
		}
		if i > 0 && sorted[i-1].end() > r.Base {
			return nil, errors.InvalidData(errors.PhaseMemory, nil,
				"region at 0x"+strconv.FormatUint(r.Base, 16)+" overlaps the previous region")
		}
	}
	return &Snapshot{regions: sorted}, nil
}

// Capture copies the given ranges out of mem.
func Capture(mem cdata.Memory, ranges ...Range) (*Snapshot, error) {
	regions := make([]Region, 0, len(ranges))
	for _, rg := range ranges {
		data, err := mem.Read(rg.Addr, rg.Length)
		if err != nil {
			return nil, err
		}
		regions = append(regions, Region{Base: rg.Addr, Data: append([]byte(nil), data...)})
	}
	return NewSnapshot(regions...)
}

// Regions returns the snapshot's regions ordered by base address.
func (s *Snapshot) Regions() []Region {
	return append([]Region(nil), s.regions...)
}

// find returns the region containing [addr, addr+n).
func (s *Snapshot) find(addr, n uint64) (Region, bool) {
	i := sort.Search(len(s.regions), func(i int) bool { return s.regions[i].end() > addr })
	if i == len(s.regions) {
		return Region{}, false
	}
	r := s.regions[i]
	end := addr + n
	if addr < r.Base || end < addr || end > r.end() {
		return Region{}, false
	}
	return r, true
}

func (s *Snapshot) Read(addr uint64, length uint32) ([]byte, error) {
	r, ok := s.find(addr, uint64(length))
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseMemory, addr, int(length))
	}
	start := addr - r.Base
	end := start + uint64(length)
	return r.Data[start:end:end], nil
}

func (s *Snapshot) Write(addr uint64, data []byte) error {
	r, ok := s.find(addr, uint64(len(data)))
	if !ok {
		return errors.OutOfBounds(errors.PhaseMemory, addr, len(data))
	}
	copy(r.Data[addr-r.Base:], data)
	return nil
}

// Save writes the snapshot as deterministic CBOR.
func (s *Snapshot) Save(w io.Writer) error {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return err
	}
	if err := em.NewEncoder(w).Encode(snapshotFile{Version: snapshotVersion, Regions: s.regions}); err != nil {
		return errors.New(errors.PhaseMemory, errors.KindInvalidData).
			Detail("encode snapshot").
			Cause(err).
			Build()
	}
	return nil
}

// LoadSnapshot reads a snapshot written by Save.
func LoadSnapshot(r io.Reader) (*Snapshot, error) {
	var f snapshotFile
	if err := cbor.NewDecoder(r).Decode(&f); err != nil {
		return nil, errors.New(errors.PhaseMemory, errors.KindInvalidData).
			Detail("decode snapshot").
			Cause(err).
			Build()
	}
	if f.Version != snapshotVersion {
		return nil, errors.New(errors.PhaseMemory, errors.KindInvalidData).
			Value(f.Version).
			Detail("unsupported snapshot version %d", f.Version).
			Build()
	}
	snap, err := NewSnapshot(f.Regions...)
	if err != nil {
		return nil, err
	}
	Logger().Debug("snapshot loaded", zap.Int("regions", len(snap.regions)))
	return snap, nil
}
