package types

import (
	"encoding/json"
	"testing"
)

func TestNormalizeNumber(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name      string
		input     any
		expected  any
		expectErr bool
	}{
		{name: "int64", input: int64(42), expected: int64(42)},
		{name: "float64", input: float64(4.5), expected: float64(4.5)},
		{name: "json number integer", input: json.Number("42"), expected: int64(42)},
		{name: "json number decimal", input: json.Number("4.5"), expected: float64(4.5)},
		{name: "int", input: int(7), expected: int64(7)},
		{name: "uint8", input: uint8(7), expected: int64(7)},
		{name: "float32", input: float32(0.5), expected: float64(0.5)},
		{name: "string", input: "42", expectErr: true},
		{name: "bool", input: true, expectErr: true},
		{name: "nil", input: nil, expectErr: true},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NormalizeNumber(tt.input)
			if err != nil {
				if tt.expectErr {
					return
				}
				t.Fatal(err)
			}
			if tt.expectErr {
				t.Fatal("should be an error")
			}
			if got != tt.expected {
				t.Errorf("expected %v (%T) but got %v (%T)", tt.expected, tt.expected, got, got)
			}
		})
	}
}

func TestFormatNumber(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		input    any
		expected string
	}{
		{input: int64(42), expected: "42"},
		{input: int64(-1), expected: "-1"},
		{input: float64(2), expected: "2.0"},
		{input: float64(2.5), expected: "2.5"},
		{input: float64(-0.25), expected: "-0.25"},
	} {
		tt := tt
		t.Run(tt.expected, func(t *testing.T) {
			t.Parallel()

			if got := FormatNumber(tt.input); got != tt.expected {
				t.Errorf("expected %q but got %q", tt.expected, got)
			}
		})
	}
}
