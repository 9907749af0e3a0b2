package plotdot

import (
	"math"
	"testing"
)

const eps = 1e-12

func TestEncodeBands(t *testing.T) {
	enc := NewEncoder()
	tests := []struct {
		name      string
		v         float64
		diverging bool
		want      []Dot
	}{
		{"Zero", 0, true, nil},
		{"Half", 0.5, true, []Dot{
			{Radius: math.Sqrt(0.5), Color: 1.0 / 3},
			{Radius: math.Sqrt(0.5) * 2 / 3, Color: 0.5},
		}},
		{"NegativeHalf", -0.5, true, []Dot{
			{Radius: math.Sqrt(0.5), Color: -1.0 / 3},
			{Radius: math.Sqrt(0.5) * 2 / 3, Color: -0.5},
		}},
		{"Full", 1, true, []Dot{
			{Radius: 1, Color: 1.0 / 3},
			{Radius: 2.0 / 3, Color: 2.0 / 3},
			{Radius: 1.0 / 3, Color: 1},
		}},
		{"Small", 0.2, false, []Dot{{Radius: math.Sqrt(0.2), Color: 0.2}}},
		{"BelowMinRadius", 0.002, true, nil},
		{"ClampHigh", 3, true, []Dot{
			{Radius: 1, Color: 1.0 / 3},
			{Radius: 2.0 / 3, Color: 2.0 / 3},
			{Radius: 1.0 / 3, Color: 1},
		}},
		{"SequentialNegativeClamps", -0.5, false, nil},
		{"NaN", math.NaN(), true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := enc.Encode(tt.v, tt.diverging)
			if len(got) != len(tt.want) {
				t.Fatalf("Encode(%v) = %v, want %v", tt.v, got, tt.want)
			}
			for i := range got {
				if math.Abs(got[i].Radius-tt.want[i].Radius) > eps || math.Abs(got[i].Color-tt.want[i].Color) > eps {
					t.Errorf("dot %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestEncodeMonotonic(t *testing.T) {
	for _, enc := range []*Encoder{NewEncoder(), NewEncoder(WithLevels(1)), NewEncoder(WithLevels(5), WithMinRadius(0))} {
		for _, diverging := range []bool{true, false} {
			for _, sign := range []float64{1, -1} {
				if !diverging && sign < 0 {
					continue
				}
				prev := 0.0
				for i := 0; i <= 200; i++ {
					v := sign * float64(i) / 200
					r := enc.Dominant(v, diverging)
					if r < prev {
						t.Fatalf("levels=%d diverging=%v: Dominant(%v) = %v < %v", enc.Levels(), diverging, v, r, prev)
					}
					prev = r
				}
			}
		}
	}
}

func TestEncodeDotsShrink(t *testing.T) {
	enc := NewEncoder(WithLevels(4))
	dots := enc.Encode(-0.9, true)
	if len(dots) != 4 {
		t.Fatalf("len = %d, want 4", len(dots))
	}
	for i := 1; i < len(dots); i++ {
		if dots[i].Radius >= dots[i-1].Radius {
			t.Errorf("dot %d radius %v not smaller than %v", i, dots[i].Radius, dots[i-1].Radius)
		}
		if dots[i].Color > 0 {
			t.Errorf("dot %d color %v, want negative", i, dots[i].Color)
		}
	}
}

func TestEncoderOptionsIgnoreInvalid(t *testing.T) {
	enc := NewEncoder(WithLevels(0), WithMinRadius(-1))
	if enc.Levels() != DefaultLevels {
		t.Errorf("Levels() = %d, want %d", enc.Levels(), DefaultLevels)
	}
	if enc.MinRadius() != DefaultMinRadius {
		t.Errorf("MinRadius() = %v, want %v", enc.MinRadius(), DefaultMinRadius)
	}
}

func TestEncodeBatch(t *testing.T) {
	enc := NewEncoder()
	got := enc.EncodeBatch([]float64{0.5, 0, -1}, true)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if len(got[0]) != 2 || got[1] != nil || len(got[2]) != 3 {
		t.Errorf("EncodeBatch lengths = %d,%d,%d, want 2,0,3", len(got[0]), len(got[1]), len(got[2]))
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v         float64
		diverging bool
		want      float64
	}{
		{0.3, true, 0.3},
		{-2, true, -1},
		{2, true, 1},
		{-0.3, false, 0},
		{1.5, false, 1},
		{math.NaN(), false, 0},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.diverging); got != tt.want {
			t.Errorf("Clamp(%v, %v) = %v, want %v", tt.v, tt.diverging, got, tt.want)
		}
	}
}

func TestColorParam(t *testing.T) {
	if got := ColorParam(-1, true); got != 0 {
		t.Errorf("ColorParam(-1, true) = %v, want 0", got)
	}
	if got := ColorParam(0, true); got != 0.5 {
		t.Errorf("ColorParam(0, true) = %v, want 0.5", got)
	}
	if got := ColorParam(0.25, false); got != 0.25 {
		t.Errorf("ColorParam(0.25, false) = %v, want 0.25", got)
	}
}

func TestSort(t *testing.T) {
	glyphs := []Glyph[string]{
		{Radius: 3, Anchor: "a"},
		{Radius: 1, Anchor: "b"},
		{Radius: 2, Anchor: "c"},
	}
	Sort(glyphs)
	want := []float64{3, 2, 1}
	for i, g := range glyphs {
		if g.Radius != want[i] {
			t.Errorf("glyphs[%d].Radius = %v, want %v", i, g.Radius, want[i])
		}
	}
}

func TestSortStable(t *testing.T) {
	glyphs := []Glyph[string]{
		{Radius: 1, Anchor: "first"},
		{Radius: 2, Anchor: "big"},
		{Radius: 1, Anchor: "second"},
		{Radius: 1, Anchor: "third"},
	}
	Sort(glyphs)
	want := []string{"big", "first", "second", "third"}
	for i, g := range glyphs {
		if g.Anchor != want[i] {
			t.Errorf("glyphs[%d].Anchor = %q, want %q", i, g.Anchor, want[i])
		}
	}
}

func TestPlace(t *testing.T) {
	enc := NewEncoder()
	got := Place(enc, []float64{0.5, 0, -1}, []string{"x", "y", "z"}, true)
	// 2 dots for 0.5, none for 0, 3 for -1
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	wantAnchors := []string{"x", "x", "z", "z", "z"}
	for i, g := range got {
		if g.Anchor != wantAnchors[i] {
			t.Errorf("got[%d].Anchor = %q, want %q", i, g.Anchor, wantAnchors[i])
		}
	}

	if got := Place(enc, []float64{1, 1}, []string{"only"}, true); len(got) != 3 {
		t.Errorf("mismatched lengths: len = %d, want 3", len(got))
	}
}

func TestBatchSkipsEmptyAnchors(t *testing.T) {
	enc := NewEncoder()
	anchors := [][]int{{0, 1}, {}, {2}}
	sets := Batch(enc, []float64{0.2, 0.9, -0.6}, anchors, true, func(a []int) bool { return len(a) == 0 })

	if len(sets) != 2 {
		t.Fatalf("len = %d, want 2", len(sets))
	}
	if sets[0].Index != 0 || sets[1].Index != 2 {
		t.Errorf("indices = %d,%d, want 0,2", sets[0].Index, sets[1].Index)
	}
	if sets[1].Anchor[0] != 2 {
		t.Errorf("sets[1].Anchor = %v, want [2]", sets[1].Anchor)
	}
	if sets[1].Dots[0].Color >= 0 {
		t.Errorf("sets[1] colour = %v, want negative", sets[1].Dots[0].Color)
	}

	flat := Flatten(sets)
	if want := len(sets[0].Dots) + len(sets[1].Dots); len(flat) != want {
		t.Errorf("Flatten len = %d, want %d", len(flat), want)
	}
}

func TestBatchNilEmpty(t *testing.T) {
	sets := Batch(NewEncoder(), []float64{0, 0.5}, []string{"", "b"}, false, nil)
	if len(sets) != 2 {
		t.Fatalf("len = %d, want 2", len(sets))
	}
	if len(sets[0].Dots) != 0 {
		t.Errorf("zero value produced %d dots", len(sets[0].Dots))
	}
}
