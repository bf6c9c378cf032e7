package abi

import (
	"math"
	"testing"
)

func TestSafeMulU32(t *testing.T) {
	tests := []struct {
		name   string
		a, b   uint32
		want   uint32
		wantOK bool
	}{
		{"zero * zero", 0, 0, 0, true},
		{"zero * max", 0, math.MaxUint32, 0, true},
		{"max * zero", math.MaxUint32, 0, 0, true},
		{"small * small", 100, 200, 20000, true},
		{"max * one", math.MaxUint32, 1, math.MaxUint32, true},
		{"overflow", math.MaxUint32, 2, 0, false},
		{"large overflow", 100000, 100000, 0, false},
		{"edge case ok", 65536, 65535, 65536 * 65535, true},
		{"edge case overflow", 65536, 65537, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SafeMulU32(tt.a, tt.b)
			if ok != tt.wantOK {
				t.Errorf("SafeMulU32(%d, %d) ok = %v, want %v", tt.a, tt.b, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("SafeMulU32(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSafeAddU32(t *testing.T) {
	if got, ok := SafeAddU32(1, 2); !ok || got != 3 {
		t.Errorf("SafeAddU32(1, 2) = %d, %v", got, ok)
	}
	if _, ok := SafeAddU32(math.MaxUint32, 1); ok {
		t.Error("SafeAddU32 should report overflow")
	}
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"nil", nil, "nil"},
		{"int", 42, "int"},
		{"string", "hello", "string"},
		{"slice", []int{1, 2, 3}, "[]int"},
		{"pointer", new(int), "*int"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TypeName(tt.input); got != tt.want {
				t.Errorf("TypeName(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestAlignTo(t *testing.T) {
	tests := []struct {
		offset, align, want uint32
	}{
		{0, 4, 0},
		{1, 4, 4},
		{4, 4, 4},
		{5, 8, 8},
		{3, 1, 3},
		{7, 0, 7},
	}
	for _, tt := range tests {
		if got := AlignTo(tt.offset, tt.align); got != tt.want {
			t.Errorf("AlignTo(%d, %d) = %d, want %d", tt.offset, tt.align, got, tt.want)
		}
	}
}

func TestDiscriminantSize(t *testing.T) {
	tests := []struct {
		cases int
		want  uint32
	}{
		{1, 1},
		{256, 1},
		{257, 2},
		{65536, 2},
		{65537, 4},
	}
	for _, tt := range tests {
		if got := DiscriminantSize(tt.cases); got != tt.want {
			t.Errorf("DiscriminantSize(%d) = %d, want %d", tt.cases, got, tt.want)
		}
	}
}
