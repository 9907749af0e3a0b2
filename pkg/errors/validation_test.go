package errors

import (
	"math"
	"testing"
)

func TestValidateAtomIndices(t *testing.T) {
	checks := []struct {
		name string
		fn   func(string, []int, int) error
		code Code
	}{
		{"ValidateAtomIndices", ValidateAtomIndices, ErrCodeInvalidInput},
		{"ValidateShadingIndices", ValidateShadingIndices, ErrCodeInvalidShading},
	}
	tests := []struct {
		name    string
		atoms   []int
		n       int
		wantErr bool
	}{
		{"empty", nil, 3, false},
		{"in range", []int{0, 2, 1}, 3, false},
		{"duplicates", []int{1, 1}, 3, false},
		{"negative", []int{-1}, 3, true},
		{"too large", []int{0, 3}, 3, true},
		{"no atoms", []int{0}, 0, true},
	}
	for _, c := range checks {
		for _, tt := range tests {
			t.Run(c.name+"/"+tt.name, func(t *testing.T) {
				err := c.fn("mark", tt.atoms, tt.n)
				if (err != nil) != tt.wantErr {
					t.Errorf("%s(%v, %d) error = %v, wantErr %v", c.name, tt.atoms, tt.n, err, tt.wantErr)
				}
				if err != nil && !Is(err, c.code) {
					t.Errorf("%s code = %s, want %s", c.name, GetCode(err), c.code)
				}
			})
		}
	}
}

func TestValidateShadingValues(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		want    int
		wantErr bool
	}{
		{"ok", []float64{0, -1, 1}, 3, false},
		{"out of range is clamped later", []float64{2, -5}, 2, false},
		{"skip length check", []float64{0.5}, -1, false},
		{"length mismatch", []float64{0.5}, 2, true},
		{"nan", []float64{math.NaN()}, 1, true},
		{"inf", []float64{0, math.Inf(-1)}, 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateShadingValues("atoms", tt.values, tt.want)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateShadingValues(%v, %d) error = %v, wantErr %v", tt.values, tt.want, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidShading) {
				t.Errorf("ValidateShadingValues returned wrong error code: %v", err)
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		input   []string
		wantErr bool
	}{
		{[]string{"svg"}, false},
		{[]string{"svg", "html", "png", "pdf"}, false},
		{nil, true},
		{[]string{"svg", "jpeg"}, true},
		{[]string{"SVG"}, true},
	}
	for _, tt := range tests {
		err := ValidateFormats(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormats(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormats(%v) returned wrong error code: %v", tt.input, err)
		}
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"xenosite", false},
		{"xenosite_bwr", false},
		{"Cl", false},
		{"", true},
		{"two words", true},
		{"tab\there", true},
		{string(make([]byte, 65)), true},
	}
	for _, tt := range tests {
		err := ValidateName("colormap", tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidMolecule,
		ErrCodeInvalidShading,
		ErrCodeInvalidFormat,
		ErrCodeInvalidConfig,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeUnknownColormap,
		ErrCodeToolMissing,
		ErrCodeToolFailed,
		ErrCodeTimeout,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
