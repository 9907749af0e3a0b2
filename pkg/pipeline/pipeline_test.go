package pipeline

import (
	"slices"
	"testing"

	"github.com/matzehuels/xenopict/pkg/errors"
)

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}
	if opts.PaddingValue() != DefaultPadding {
		t.Errorf("Padding = %v, want %v", opts.PaddingValue(), DefaultPadding)
	}
	if opts.Colormap != DefaultColormap {
		t.Errorf("Colormap = %q, want %q", opts.Colormap, DefaultColormap)
	}
	if !opts.IsDiverging() {
		t.Error("IsDiverging() = false, want true")
	}
	if opts.Levels != 3 || opts.MinRadiusValue() != 0.05 {
		t.Errorf("dot policy = %d/%v, want 3/0.05", opts.Levels, opts.MinRadiusValue())
	}
	if opts.BondLength != DefaultScale {
		t.Errorf("BondLength = %v, want %v", opts.BondLength, DefaultScale)
	}
	if !slices.Equal(opts.Formats, []string{"svg"}) {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger not set")
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"negative scale", Options{Scale: -1}, errors.ErrCodeInvalidConfig},
		{"negative padding", Options{Padding: ptr(-0.5)}, errors.ErrCodeInvalidConfig},
		{"min radius one", Options{MinRadius: ptr(1.0)}, errors.ErrCodeInvalidConfig},
		{"negative levels", Options{Levels: -2}, errors.ErrCodeInvalidConfig},
		{"bad format", Options{Formats: []string{"svg", "gif"}}, errors.ErrCodeInvalidFormat},
		{"bad colormap name", Options{Colormap: "two words"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestOptionsExplicitZero(t *testing.T) {
	tests := []struct {
		name          string
		opts          Options
		base          Options
		wantPadding   float64
		wantMinRadius float64
	}{
		{"unset", Options{}, Options{}, DefaultPadding, DefaultMinRadius},
		{"zero", Options{Padding: ptr(0.0), MinRadius: ptr(0.0)}, Options{}, 0, 0},
		{"zero over base", Options{Padding: ptr(0.0), MinRadius: ptr(0.0)}, Options{Padding: ptr(2.0), MinRadius: ptr(0.3)}, 0, 0},
		{"base kept", Options{}, Options{Padding: ptr(0.0), MinRadius: ptr(0.3)}, 0, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts.Merge(tt.base)
			if err := opts.ValidateAndSetDefaults(); err != nil {
				t.Fatal(err)
			}
			if got := opts.PaddingValue(); got != tt.wantPadding {
				t.Errorf("PaddingValue() = %v, want %v", got, tt.wantPadding)
			}
			if got := opts.MinRadiusValue(); got != tt.wantMinRadius {
				t.Errorf("MinRadiusValue() = %v, want %v", got, tt.wantMinRadius)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Scale: 10}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	first := opts
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Scale != first.Scale || opts.PaddingValue() != first.PaddingValue() || !slices.Equal(opts.Formats, first.Formats) {
		t.Errorf("second call changed options: %+v", opts)
	}
}

func TestOptionsSequential(t *testing.T) {
	off := false
	opts := Options{Diverging: &off}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.IsDiverging() {
		t.Error("IsDiverging() = true, want false")
	}
}

func TestOptionsMerge(t *testing.T) {
	base := Options{Scale: 15, Colormap: "viridis", Formats: []string{"png"}, Halo: true}
	got := Options{Scale: 25}.Merge(base)
	if got.Scale != 25 {
		t.Errorf("Scale = %v, want 25", got.Scale)
	}
	if got.Colormap != "viridis" {
		t.Errorf("Colormap = %q, want viridis", got.Colormap)
	}
	if !slices.Equal(got.Formats, []string{"png"}) {
		t.Errorf("Formats = %v, want [png]", got.Formats)
	}
	if !got.Halo {
		t.Error("Halo lost in merge")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{PNGScale: 3}
	if k := opts.ArtifactKeyOpts("svg"); k.PNGScale != 0 {
		t.Errorf("svg key carries png scale %v", k.PNGScale)
	}
	if k := opts.ArtifactKeyOpts("png"); k.PNGScale != 3 {
		t.Errorf("png key scale = %v, want 3", k.PNGScale)
	}
}
