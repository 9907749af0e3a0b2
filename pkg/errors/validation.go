package errors

import (
	"math"
	"slices"
	"strings"
	"unicode"
)

// Formats lists the output formats the renderer can produce.
var Formats = []string{"svg", "html", "png", "pdf"}

// ValidateAtomIndices checks that every index addresses one of numAtoms
// atoms. what names the input in the error message (e.g. "mark").
//
// Validation rules:
//   - Indices must be non-negative
//   - Indices must be below numAtoms
//
// Duplicates are allowed; callers treat the list as a set. Failures carry
// ErrCodeInvalidInput.
func ValidateAtomIndices(what string, atoms []int, numAtoms int) error {
	return validateIndices(ErrCodeInvalidInput, what, atoms, numAtoms)
}

// ValidateShadingIndices is ValidateAtomIndices for indices that address
// shaded atoms or bonds. Failures carry ErrCodeInvalidShading.
func ValidateShadingIndices(what string, atoms []int, numAtoms int) error {
	return validateIndices(ErrCodeInvalidShading, what, atoms, numAtoms)
}

func validateIndices(code Code, what string, atoms []int, numAtoms int) error {
	for _, a := range atoms {
		if a < 0 || a >= numAtoms {
			return New(code, "%s: atom index %d out of range [0, %d)", what, a, numAtoms)
		}
	}
	return nil
}

// ValidateShadingValues checks a shading channel before any geometry is
// computed. want is the expected number of values; pass -1 to skip the
// length check.
//
// NaN and infinite values are rejected. Finite values outside [-1, 1] are
// accepted here and clamped by the encoder.
func ValidateShadingValues(what string, values []float64, want int) error {
	if want >= 0 && len(values) != want {
		return New(ErrCodeInvalidShading, "%s: got %d values, want %d", what, len(values), want)
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidShading, "%s: value %d is not finite", what, i)
		}
	}
	return nil
}

// ValidateFormat checks an output format name against Formats.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

// ValidateFormats checks a list of formats; an empty list is an error.
func ValidateFormats(formats []string) error {
	if len(formats) == 0 {
		return New(ErrCodeInvalidFormat, "no output format given")
	}
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateName validates an identifier such as a colour-map name or an
// atom symbol.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or whitespace
//   - Maximum length of 64 characters
func ValidateName(what, name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "%s cannot be empty", what)
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "%s too long (max 64 characters)", what)
	}
	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "%s contains invalid characters: %q", what, name)
		}
	}
	return nil
}
