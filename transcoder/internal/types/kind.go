package types

type Kind uint8

const (
	KindByte Kind = iota
	KindUByte
	KindChar
	KindWideChar
	KindDouble
	KindLongDouble
	KindFloat
	KindShort
	KindUShort
	KindInt
	KindUInt
	KindLong
	KindULong
	KindLongLong
	KindULongLong
	KindPointer
	KindArray
	KindStructure
)

var kindNames = [...]string{
	KindByte:       "byte",
	KindUByte:      "ubyte",
	KindChar:       "char",
	KindWideChar:   "wchar",
	KindDouble:     "double",
	KindLongDouble: "longdouble",
	KindFloat:      "float",
	KindShort:      "short",
	KindUShort:     "ushort",
	KindInt:        "int",
	KindUInt:       "uint",
	KindLong:       "long",
	KindULong:      "ulong",
	KindLongLong:   "longlong",
	KindULongLong:  "ulonglong",
	KindPointer:    "pointer",
	KindArray:      "array",
	KindStructure:  "structure",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

func (k Kind) IsScalar() bool {
	return k <= KindULongLong
}

// IsSigned reports whether the scalar kind is a signed integer. Char follows
// the C char of little-endian x86/ARM targets used here, which is signed.
func (k Kind) IsSigned() bool {
	switch k {
	case KindByte, KindChar, KindShort, KindInt, KindLong, KindLongLong:
		return true
	}
	return false
}

// Width returns the fixed byte width of a scalar kind. Long and ULong
// depend on the target data model and report 0; the resolver fills them in.
// LongDouble reports twice the double width for layout only.
func (k Kind) Width() uint32 {
	switch k {
	case KindByte, KindUByte, KindChar:
		return 1
	case KindWideChar, KindShort, KindUShort:
		return 2
	case KindFloat, KindInt, KindUInt:
		return 4
	case KindDouble, KindLongLong, KindULongLong:
		return 8
	case KindLongDouble:
		return 16
	default:
		return 0
	}
}

var codeKinds = map[string]Kind{
	"b": KindByte,
	"B": KindUByte,
	"?": KindUByte,
	"c": KindChar,
	"u": KindWideChar,
	"d": KindDouble,
	"g": KindLongDouble,
	"f": KindFloat,
	"h": KindShort,
	"H": KindUShort,
	"i": KindInt,
	"I": KindUInt,
	"l": KindLong,
	"L": KindULong,
	"q": KindLongLong,
	"Q": KindULongLong,
}

// KindForCode maps a single-character type code to its scalar kind.
// The string codes "z" and "Z" are not in the table.
func KindForCode(code string) (Kind, bool) {
	k, ok := codeKinds[code]
	return k, ok
}

// IsStringCode reports whether code denotes a NUL-terminated byte or wide string.
func IsStringCode(code string) bool {
	return code == "z" || code == "Z"
}
