package style

import "testing"

func TestParseString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		len  int
	}{
		{"empty", "", "", 0},
		{"single", "fill:none", "fill:none", 1},
		{"ordered", "stroke:#000000;fill:none;stroke-width:2.0px", "stroke:#000000;fill:none;stroke-width:2.0px", 3},
		{"trailing separator", "fill:red;", "fill:red", 1},
		{"whitespace", " fill : red ; stroke: blue", "fill:red;stroke:blue", 2},
		{"duplicate keeps first position", "fill:red;stroke:blue;fill:green", "fill:green;stroke:blue", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Parse(tt.in)
			if got := s.String(); got != tt.want {
				t.Errorf("Parse(%q).String() = %q, want %q", tt.in, got, tt.want)
			}
			if s.Len() != tt.len {
				t.Errorf("Len() = %d, want %d", s.Len(), tt.len)
			}
		})
	}
}

func TestDeleteMissingKey(t *testing.T) {
	s := Parse("stroke:#000000")
	s.Delete("stroke-linecap")
	s.Delete("fill")
	if got := s.String(); got != "stroke:#000000" {
		t.Errorf("String() = %q, want %q", got, "stroke:#000000")
	}
}

func TestSetGetDelete(t *testing.T) {
	s := Parse("fill:none;stroke:#000000;stroke-linecap:butt")
	s.Delete("fill")
	s.Set("stroke-linecap", "round")
	s.Set("stroke-width", "1")

	if got, want := s.String(), "stroke:#000000;stroke-linecap:round;stroke-width:1"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if v, ok := s.Get("stroke"); !ok || v != "#000000" {
		t.Errorf("Get(stroke) = %q, %v", v, ok)
	}
	if _, ok := s.Get("fill"); ok {
		t.Error("Get(fill) should report missing after Delete")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := Parse("fill:red;stroke:blue")
	b := a.Clone()
	b.Set("fill", "green")
	b.Delete("stroke")

	if got := a.String(); got != "fill:red;stroke:blue" {
		t.Errorf("original changed to %q", got)
	}
}

func TestFromPairsAndMerge(t *testing.T) {
	s := FromPairs("fill", "none", "stroke-width", "4")
	s.Merge(Parse("stroke-width:2;opacity:0.7"))
	if got, want := s.String(), "fill:none;stroke-width:2;opacity:0.7"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestFromPairsOddPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("FromPairs with odd arguments should panic")
		}
	}()
	FromPairs("fill")
}
