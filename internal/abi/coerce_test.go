package abi

import (
	"math"
	"testing"
)

func TestCoerceInt(t *testing.T) {
	tests := []struct {
		input  any
		name   string
		bits   int
		want   int64
		wantOK bool
	}{
		{int8(-128), "int8 min", 8, -128, true},
		{int(127), "int at s8 max", 8, 127, true},
		{int(128), "int over s8 max", 8, 0, false},
		{int(-129), "int under s8 min", 8, 0, false},
		{uint8(200), "uint8 over s8", 8, 0, false},
		{int64(math.MinInt16), "s16 min", 16, math.MinInt16, true},
		{int32(math.MaxInt32), "s32 max", 32, math.MaxInt32, true},
		{int64(math.MaxInt32 + 1), "s32 overflow", 32, 0, false},
		{int64(math.MinInt64), "s64 min", 64, math.MinInt64, true},
		{uint64(math.MaxInt64), "s64 max from uint64", 64, math.MaxInt64, true},
		{uint64(math.MaxInt64 + 1), "s64 overflow from uint64", 64, 0, false},
		{true, "bool true", 8, 1, true},
		{false, "bool false", 8, 0, true},
		{float64(1), "float rejected", 32, 0, false},
		{"1", "string rejected", 32, 0, false},
		{nil, "nil rejected", 32, 0, false},
		{int(1), "bad width", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CoerceInt(tt.input, tt.bits)
			if ok != tt.wantOK {
				t.Errorf("CoerceInt(%v, %d) ok = %v, want %v", tt.input, tt.bits, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("CoerceInt(%v, %d) = %d, want %d", tt.input, tt.bits, got, tt.want)
			}
		})
	}
}

func TestCoerceUint(t *testing.T) {
	tests := []struct {
		input  any
		name   string
		bits   int
		want   uint64
		wantOK bool
	}{
		{uint8(255), "u8 max", 8, 255, true},
		{int(256), "u8 overflow", 8, 0, false},
		{int(-1), "negative", 8, 0, false},
		{int64(math.MaxUint16), "u16 max", 16, math.MaxUint16, true},
		{uint32(math.MaxUint32), "u32 max", 32, math.MaxUint32, true},
		{uint64(math.MaxUint32 + 1), "u32 overflow", 32, 0, false},
		{uint64(math.MaxUint64), "u64 max", 64, math.MaxUint64, true},
		{uintptr(0x1000), "uintptr", 64, 0x1000, true},
		{true, "bool", 8, 1, true},
		{float32(1), "float rejected", 8, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CoerceUint(tt.input, tt.bits)
			if ok != tt.wantOK {
				t.Errorf("CoerceUint(%v, %d) ok = %v, want %v", tt.input, tt.bits, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("CoerceUint(%v, %d) = %d, want %d", tt.input, tt.bits, got, tt.want)
			}
		})
	}
}

func TestCoerceFloat(t *testing.T) {
	tests := []struct {
		input  any
		name   string
		want   float64
		wantOK bool
	}{
		{float64(3.5), "float64", 3.5, true},
		{float32(0.25), "float32", 0.25, true},
		{int(-2), "negative int", -2, true},
		{uint64(7), "uint64", 7, true},
		{"3.5", "string rejected", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CoerceFloat(tt.input)
			if ok != tt.wantOK {
				t.Errorf("CoerceFloat(%v) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("CoerceFloat(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCoerceFloat32(t *testing.T) {
	snan := math.Float32frombits(0x7f800001)
	got, ok := CoerceFloat32(snan)
	if !ok || math.Float32bits(got) != 0x7f800001 {
		t.Errorf("CoerceFloat32(sNaN) = %#x, %v", math.Float32bits(got), ok)
	}
	if got, ok := CoerceFloat32(int(3)); !ok || got != 3 {
		t.Errorf("CoerceFloat32(3) = %v, %v", got, ok)
	}
	if _, ok := CoerceFloat32("3"); ok {
		t.Error("CoerceFloat32 accepted a string")
	}
}
