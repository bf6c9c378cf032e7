package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:    PhaseEncode,
				Kind:     KindMissingAttribute,
				Path:     []string{"header", "flags"},
				Name:     "flags",
				TypeName: "ushort",
				Detail:   "object has no attribute",
			},
			contains: []string{"[encode]", "missing_attribute", "header.flags", `"flags"`, "ushort", "object has no attribute"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindSliceConversion,
			},
			contains: []string{"[decode]", "slice_conversion"},
		},
		{
			name:     "type only",
			err:      InvalidType(nil, "Union"),
			contains: []string{"[resolve]", "invalid_type", "type Union", "unrecognized base type"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseMemory,
				Kind:   KindOutOfBounds,
				Detail: "read failed",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[memory]", "out_of_bounds", "read failed", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{Phase: PhaseDecode, Kind: KindHostModel, Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find wrapped cause")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap should return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseEncode,
		Kind:  KindMissingAttribute,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseEncode, Kind: KindMissingAttribute}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseDecode, Kind: KindMissingAttribute}) {
		t.Error("Is should not match different phase")
	}
	if !err.Is(&Error{Kind: KindMissingAttribute}) {
		t.Error("Is should match any phase when target phase is empty")
	}
	if err.Is(&Error{Phase: PhaseEncode, Kind: KindNoType}) {
		t.Error("Is should not match different kind")
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if !errors.Is(wrapped, &Error{Kind: KindMissingAttribute}) {
		t.Error("errors.Is should match through fmt wrapping")
	}
}

func TestIsKindAndKindOf(t *testing.T) {
	err := fmt.Errorf("read: %w", SliceConversion(PhaseDecode, nil, 4, 3))

	if !IsKind(err, KindSliceConversion) {
		t.Error("IsKind should match wrapped kind")
	}
	if IsKind(err, KindHostModel) {
		t.Error("IsKind should not match other kind")
	}
	if got := KindOf(err); got != KindSliceConversion {
		t.Errorf("KindOf = %q, want %q", got, KindSliceConversion)
	}
	if got := KindOf(errors.New("plain")); got != "" {
		t.Errorf("KindOf(plain) = %q, want empty", got)
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseResolve, KindInvalidData).
		Path("vec", "[elem]").
		Name("_length_").
		TypeName("array").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "uint", "str").
		Build()

	if err.Phase != PhaseResolve {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseResolve)
	}
	if err.Kind != KindInvalidData {
		t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidData)
	}
	if len(err.Path) != 2 || err.Path[0] != "vec" || err.Path[1] != "[elem]" {
		t.Errorf("Path = %v, want [vec [elem]]", err.Path)
	}
	if err.Name != "_length_" {
		t.Errorf("Name = %v, want '_length_'", err.Name)
	}
	if err.TypeName != "array" {
		t.Errorf("TypeName = %v, want 'array'", err.TypeName)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected uint, got str" {
		t.Errorf("Detail = %v, want 'expected uint, got str'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("NoType", func(t *testing.T) {
		err := NoType([]string{"Point"}, "x")
		if err.Kind != KindNoType || err.Phase != PhaseResolve {
			t.Errorf("got %v/%v, want resolve/no_type", err.Phase, err.Kind)
		}
		if err.Name != "x" {
			t.Errorf("Name = %q, want x", err.Name)
		}
	})

	t.Run("UnsupportedIdentifier", func(t *testing.T) {
		err := UnsupportedIdentifier(PhaseDecode, nil, "g", "long double")
		if err.Kind != KindUnsupportedIdentifier {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnsupportedIdentifier)
		}
		if err.Name != "g" {
			t.Errorf("Name = %q, want g", err.Name)
		}
	})

	t.Run("MissingAttribute", func(t *testing.T) {
		cause := errors.New("no attr")
		err := MissingAttribute([]string{"b"}, "b", cause)
		if err.Kind != KindMissingAttribute || err.Phase != PhaseEncode {
			t.Errorf("got %v/%v, want encode/missing_attribute", err.Phase, err.Kind)
		}
		if !errors.Is(err, cause) {
			t.Error("cause should be wrapped")
		}
	})

	t.Run("SliceConversion", func(t *testing.T) {
		err := SliceConversion(PhaseDecode, nil, 4, 3)
		if err.Value != 3 {
			t.Errorf("Value = %v, want 3", err.Value)
		}
		if !strings.Contains(err.Detail, "expected 4 bytes, got 3") {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("HostModel wraps plain errors", func(t *testing.T) {
		cause := errors.New("constructor rejected")
		err := HostModel(PhaseDecode, []string{"s"}, cause)
		if KindOf(err) != KindHostModel {
			t.Errorf("KindOf = %v, want %v", KindOf(err), KindHostModel)
		}
		if !errors.Is(err, cause) {
			t.Error("cause should be wrapped")
		}
	})

	t.Run("HostModel passes structured errors through", func(t *testing.T) {
		inner := NoType(nil, "x")
		err := HostModel(PhaseDecode, nil, inner)
		if err != error(inner) {
			t.Errorf("expected structured error to pass through, got %v", err)
		}
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		err := OutOfBounds(PhaseMemory, 0x1000, 8)
		if err.Kind != KindOutOfBounds {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfBounds)
		}
		if err.Value != uint64(0x1000) {
			t.Errorf("Value = %v, want 0x1000", err.Value)
		}
	})

	t.Run("NilPointer", func(t *testing.T) {
		err := NilPointer(PhaseEncode, nil, "descriptor")
		if err.Detail != "nil descriptor" {
			t.Errorf("Detail = %q, want 'nil descriptor'", err.Detail)
		}
	})
}
