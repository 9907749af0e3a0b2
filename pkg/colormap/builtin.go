package colormap

import "github.com/lucasb-eyer/go-colorful"

// DefaultName is the map used when none is configured.
const DefaultName = "xenosite"

// Swatches used by the built-in maps, light to dark.
var (
	White   = mustHex("#ffffff")
	Blues   = []colorful.Color{mustHex("#6baed6"), mustHex("#08519c")}
	Reds    = []colorful.Color{mustHex("#fb6a4a"), mustHex("#a50f15")}
	Greens  = []colorful.Color{mustHex("#74c476"), mustHex("#006d2c")}
	Purples = []colorful.Color{mustHex("#9e9ac8"), mustHex("#54278f")}
	Oranges = []colorful.Color{mustHex("#fd8d3c"), mustHex("#a63603")}
)

// Default returns a new registry with the built-in maps:
//
//   - xenosite_bwr: blue (negative) to white to red (positive)
//   - xenosite: alias of xenosite_bwr
//   - xenosite_gwp: green to white to purple
//   - xenosite_pwo: purple to white to orange
func Default() *Registry {
	r := NewRegistry()
	bwr := Diverging(White, Blues, Reds)
	for _, m := range []struct {
		name string
		fn   Func
	}{
		{"xenosite_bwr", bwr},
		{DefaultName, bwr},
		{"xenosite_gwp", Diverging(White, Greens, Purples)},
		{"xenosite_pwo", Diverging(White, Purples, Oranges)},
	} {
		if err := r.Register(m.name, m.fn); err != nil {
			panic(err)
		}
	}
	return r
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
