package transcoder

import (
	"github.com/wippyai/cdata/transcoder/internal/types"
)

type Kind = types.Kind

const (
	KindByte       = types.KindByte
	KindUByte      = types.KindUByte
	KindChar       = types.KindChar
	KindWideChar   = types.KindWideChar
	KindDouble     = types.KindDouble
	KindLongDouble = types.KindLongDouble
	KindFloat      = types.KindFloat
	KindShort      = types.KindShort
	KindUShort     = types.KindUShort
	KindInt        = types.KindInt
	KindUInt       = types.KindUInt
	KindLong       = types.KindLong
	KindULong      = types.KindULong
	KindLongLong   = types.KindLongLong
	KindULongLong  = types.KindULongLong
	KindPointer    = types.KindPointer
	KindArray      = types.KindArray
	KindStructure  = types.KindStructure
)

type Descriptor = types.Descriptor
type Field = types.Field
