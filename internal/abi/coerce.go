package abi

// integer splits any Go integer (or bool) into a sign flag and magnitude
// representation. neg values are carried in i, non-negative ones in u.
func integer(value any) (i int64, u uint64, neg bool, ok bool) {
	switch v := value.(type) {
	case bool:
		if v {
			return 0, 1, false, true
		}
		return 0, 0, false, true
	case int:
		return signed(int64(v))
	case int8:
		return signed(int64(v))
	case int16:
		return signed(int64(v))
	case int32:
		return signed(int64(v))
	case int64:
		return signed(v)
	case uint:
		return 0, uint64(v), false, true
	case uint8:
		return 0, uint64(v), false, true
	case uint16:
		return 0, uint64(v), false, true
	case uint32:
		return 0, uint64(v), false, true
	case uint64:
		return 0, v, false, true
	case uintptr:
		return 0, uint64(v), false, true
	}
	return 0, 0, false, false
}

func signed(v int64) (int64, uint64, bool, bool) {
	if v < 0 {
		return v, 0, true, true
	}
	return 0, uint64(v), false, true
}

// CoerceInt converts an integer value to int64 if it fits a signed integer
// of the given bit width (8, 16, 32 or 64).
func CoerceInt(value any, bits int) (int64, bool) {
	i, u, neg, ok := integer(value)
	if !ok || bits <= 0 || bits > 64 {
		return 0, false
	}
	if neg {
		if bits < 64 && i < -(int64(1)<<(bits-1)) {
			return 0, false
		}
		return i, true
	}
	if u > uint64(1)<<(bits-1)-1 {
		return 0, false
	}
	return int64(u), true
}

// CoerceUint converts an integer value to uint64 if it is non-negative and
// fits an unsigned integer of the given bit width.
func CoerceUint(value any, bits int) (uint64, bool) {
	_, u, neg, ok := integer(value)
	if !ok || neg || bits <= 0 || bits > 64 {
		return 0, false
	}
	if bits < 64 && u > uint64(1)<<bits-1 {
		return 0, false
	}
	return u, true
}

// CoerceFloat accepts floats and integers, mirroring C's implicit
// integer-to-floating conversion.
func CoerceFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	}
	i, u, neg, ok := integer(value)
	if !ok {
		return 0, false
	}
	if neg {
		return float64(i), true
	}
	return float64(u), true
}

// CoerceFloat32 returns float32 values unchanged so their bit pattern
// survives; other accepted values go through CoerceFloat.
func CoerceFloat32(value any) (float32, bool) {
	if v, ok := value.(float32); ok {
		return v, true
	}
	v, ok := CoerceFloat(value)
	return float32(v), ok
}
