package colormap

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/xenopict/pkg/errors"
)

func TestDefaultRegistry(t *testing.T) {
	reg := Default()
	want := []string{"xenosite_bwr", "xenosite", "xenosite_gwp", "xenosite_pwo"}
	got := reg.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	for _, name := range want {
		fn, err := reg.Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q) error: %v", name, err)
		}
		if c := fn(0.5); RGB(c) != "rgb(255,255,255)" {
			t.Errorf("%s(0.5) = %s, want white", name, RGB(c))
		}
	}
}

func TestDefaultIsIndependent(t *testing.T) {
	a, b := Default(), Default()
	if err := a.Register("extra", Ramp(White)); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Lookup("extra"); err == nil {
		t.Error("registration leaked between registries")
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Default().Lookup("viridis")
	if !errors.Is(err, errors.ErrCodeUnknownColormap) {
		t.Errorf("Lookup error = %v, want %s", err, errors.ErrCodeUnknownColormap)
	}
}

func TestRegisterErrors(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("a", Ramp(White)); err != nil {
		t.Fatalf("Register: %v", err)
	}
	tests := []struct {
		name string
		fn   Func
	}{
		{"a", Ramp(White)},
		{"", Ramp(White)},
		{"b", nil},
	}
	for _, tt := range tests {
		if err := r.Register(tt.name, tt.fn); err == nil {
			t.Errorf("Register(%q) succeeded, want error", tt.name)
		}
	}
}

func TestDivergingEnds(t *testing.T) {
	fn := Diverging(White, Blues, Reds)
	tests := []struct {
		t    float64
		want colorful.Color
	}{
		{0, Blues[len(Blues)-1]},
		{1, Reds[len(Reds)-1]},
		{-3, Blues[len(Blues)-1]},
		{7, Reds[len(Reds)-1]},
	}
	for _, tt := range tests {
		if got := fn(tt.t); RGB(got) != RGB(tt.want) {
			t.Errorf("fn(%v) = %s, want %s", tt.t, RGB(got), RGB(tt.want))
		}
	}

	// lower half is bluish, upper half reddish
	if c := fn(0.2); c.B <= c.R {
		t.Errorf("fn(0.2) = %v, want blue dominant", c)
	}
	if c := fn(0.8); c.R <= c.B {
		t.Errorf("fn(0.8) = %v, want red dominant", c)
	}
}

func TestRampMidpoint(t *testing.T) {
	black := colorful.Color{}
	fn := Ramp(black, White)
	l0, _, _ := fn(0.25).Lab()
	l1, _, _ := fn(0.75).Lab()
	if l0 >= l1 {
		t.Errorf("lightness not increasing: %v >= %v", l0, l1)
	}
	if got := RGB(fn(1)); got != "rgb(255,255,255)" {
		t.Errorf("fn(1) = %s, want white", got)
	}
}

func TestRGB(t *testing.T) {
	tests := []struct {
		c    colorful.Color
		want string
	}{
		{colorful.Color{R: 1, G: 1, B: 1}, "rgb(255,255,255)"},
		{colorful.Color{R: 0, G: 0.5, B: 0.999}, "rgb(0,127,254)"},
		{colorful.Color{R: 1.2, G: -0.1, B: 0}, "rgb(255,0,0)"},
	}
	for _, tt := range tests {
		if got := RGB(tt.c); got != tt.want {
			t.Errorf("RGB(%v) = %q, want %q", tt.c, got, tt.want)
		}
	}
}
