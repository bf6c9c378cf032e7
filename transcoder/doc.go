// Package transcoder converts between C-ABI byte layouts and host objects.
//
// A host type object (a ctypes-style class) is first resolved into a
// Descriptor tree. The descriptor fixes every size and field offset, and the
// Decoder and Encoder then walk it to move values between little-endian
// byte buffers and the host object model.
//
//	┌──────────────────────────────────────────────────────────────┐
//	│ Host type ─[Resolver]→ Descriptor                            │
//	│ bytes ─[Decoder]→ host object ─[Encoder]→ bytes              │
//	└──────────────────────────────────────────────────────────────┘
//
// # Type Codes
//
// Simple classes carry a one-character _type_ code:
//
//	Code   Kind         Width
//	──────────────────────────
//	b      byte         1
//	B ?    ubyte        1
//	c      char         1
//	u      wchar        2
//	h H    short        2
//	i I    int          4
//	l L    long         4/8 (Config.LongWidth)
//	q Q    longlong     8
//	f      float        4
//	d      double       8
//	g      longdouble   16 (layout only)
//
// The string codes z and Z are refused; read strings with
// memory.Accessor.ReadCString and ReadWString instead.
//
// # Layout
//
// Structure fields listed in _fields_ are packed back to back with no
// alignment padding. Entries of _offsets_ place fields at explicit offsets;
// a name already present keeps its position and takes the new offset and
// type. Fields may overlap. A structure's size is the largest field end.
//
// Pointers carry no target type. Their byteness comes from _byteness_ or
// Config.PointerWidth. Decoding zero-extends the address; encoding writes
// its low bytes only.
//
// # Concurrency
//
// Resolve, Decode and Encode enter the host model's exclusive section for
// the whole call. The ...With variants take a token the caller already
// holds, so several operations can share one section. Descriptors are
// immutable after resolution and may be shared between goroutines.
package transcoder
