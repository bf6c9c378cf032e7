// Package memory provides byte buffer providers for the transcoder.
//
// Every provider implements cdata.Memory:
//
//	buf := memory.NewBuffer(0x1000, 256)        // plain byte slice at a base address
//	mem := memory.WrapMemory(mod.Memory())      // wazero linear memory
//	snap, _ := memory.Capture(mem, ranges...)   // frozen copy of selected regions
//
// # Accessor
//
// Accessor pairs a Memory with a Decoder and Encoder so values can be read
// and written by address:
//
//	acc := memory.NewAccessor(mem, dec, enc)
//	obj, err := acc.ReadValue(desc, addr)
//	err = acc.WriteValue(desc, addr, obj)
//
// NUL-terminated strings have no fixed layout and are read with
// ReadCString and ReadWString.
//
// # Snapshots
//
// A Snapshot holds non-overlapping regions copied out of another Memory. It
// is itself a Memory and can be saved to and loaded from CBOR:
//
//	err = snap.Save(w)
//	snap, err = memory.LoadSnapshot(r)
package memory
