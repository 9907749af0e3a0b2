// Package pipeline renders shaded molecule pictures end to end.
//
// This package implements the load → layout → compose → render pipeline
// shared by the CLI and the HTTP server, so that both apply the same
// defaults, validation and caching.
//
// # Stages
//
//  1. Layout: generate atom coordinates when the molecule has none
//     (cached per molecule topology)
//  2. Compose: build the picture and apply the shading request
//  3. Render: convert the picture to each requested format (cached per
//     request and format)
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Request{
//	    Molecule: mol,
//	    Shading:  &pipeline.Shading{Atoms: values},
//	    Options:  pipeline.Options{Formats: []string{"svg", "png"}},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/xenopict/pkg/colormap"
	"github.com/matzehuels/xenopict/pkg/errors"
	"github.com/matzehuels/xenopict/pkg/layout"
	"github.com/matzehuels/xenopict/pkg/molecule"
	"github.com/matzehuels/xenopict/pkg/plotdot"
	"github.com/matzehuels/xenopict/pkg/render"
	"github.com/matzehuels/xenopict/pkg/xenopict"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	DefaultScale      = xenopict.DefaultScale
	DefaultPadding    = xenopict.DefaultPadding
	DefaultResolution = xenopict.DefaultResolution
	DefaultColormap   = colormap.DefaultName
	DefaultLevels     = plotdot.DefaultLevels
	DefaultMinRadius  = plotdot.DefaultMinRadius
	DefaultBondLength = layout.DefaultBondLength
	DefaultSeed       = 1
	DefaultPNGScale   = render.DefaultPNGScale
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options controls how a picture is built and rendered. Zero values mean
// "use the default"; ValidateAndSetDefaults fills them in. Fields where
// zero is a meaningful setting are pointers and default only when nil.
// The same struct is read from the config file and from API requests.
type Options struct {
	// Picture
	Scale      float64 `json:"scale,omitempty" toml:"scale"`
	Padding    *float64 `json:"padding,omitempty" toml:"padding"`
	Colormap   string  `json:"colormap,omitempty" toml:"colormap"`
	Diverging  *bool   `json:"diverging,omitempty" toml:"diverging"`
	Resolution int     `json:"resolution,omitempty" toml:"resolution"`
	Levels     int     `json:"levels,omitempty" toml:"levels"`
	MinRadius  *float64 `json:"min_radius,omitempty" toml:"min_radius"`
	Halo       bool    `json:"halo,omitempty" toml:"halo"`

	// Coordinate generation
	BondLength float64 `json:"bond_length,omitempty" toml:"bond_length"`
	Seed       int     `json:"seed,omitempty" toml:"seed"`

	// Output
	Formats  []string `json:"formats,omitempty" toml:"formats"`
	PNGScale float64  `json:"png_scale,omitempty" toml:"png_scale"`

	// Refresh skips cache lookups; results are still stored.
	Refresh bool `json:"refresh,omitempty" toml:"-"`

	Logger *log.Logger `json:"-" toml:"-"`

	validated bool
}

// Request is one render job.
type Request struct {
	Molecule *molecule.Molecule `json:"molecule"`
	Shading  *Shading           `json:"shading,omitempty"`
	Options  Options            `json:"options"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Molecule is the input molecule with coordinates. It is a copy when
	// coordinates were generated.
	Molecule *molecule.Molecule

	// Picture is the composed picture. It is nil when every artifact came
	// from the cache.
	Picture *xenopict.Picture

	// Artifacts holds the rendered outputs keyed by format.
	Artifacts map[string][]byte

	// RequestHash identifies the request for caching and API responses.
	RequestHash string

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Atoms           int
	Bonds           int
	CoordsGenerated bool
	LayoutTime      time.Duration
	ComposeTime     time.Duration
	RenderTime      time.Duration
}

// CacheInfo tracks cache hits for each cached stage.
type CacheInfo struct {
	LayoutHit bool // coordinates came from the cache
	RenderHit bool // every artifact came from the cache
}

// =============================================================================
// Options Methods
// =============================================================================

// IsDiverging reports whether values are diverging (the default).
func (o *Options) IsDiverging() bool {
	return o.Diverging == nil || *o.Diverging
}

// PaddingValue returns the frame padding, or DefaultPadding when unset.
func (o *Options) PaddingValue() float64 {
	if o.Padding == nil {
		return DefaultPadding
	}
	return *o.Padding
}

// MinRadiusValue returns the smallest drawn dot radius, or
// DefaultMinRadius when unset.
func (o *Options) MinRadiusValue() float64 {
	if o.MinRadius == nil {
		return DefaultMinRadius
	}
	return *o.MinRadius
}

// SetDefaults fills every unset field.
func (o *Options) SetDefaults() {
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Padding == nil {
		p := DefaultPadding
		o.Padding = &p
	}
	if o.Colormap == "" {
		o.Colormap = DefaultColormap
	}
	if o.Diverging == nil {
		d := true
		o.Diverging = &d
	}
	if o.Resolution == 0 {
		o.Resolution = DefaultResolution
	}
	if o.Levels == 0 {
		o.Levels = DefaultLevels
	}
	if o.MinRadius == nil {
		r := DefaultMinRadius
		o.MinRadius = &r
	}
	if o.BondLength == 0 {
		o.BondLength = DefaultBondLength
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{render.FormatSVG}
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks option ranges. Call SetDefaults first.
func (o *Options) Validate() error {
	switch {
	case o.Scale < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "scale must be positive, got %v", o.Scale)
	case o.PaddingValue() < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "padding must not be negative, got %v", o.PaddingValue())
	case o.Resolution < 1:
		return errors.New(errors.ErrCodeInvalidConfig, "resolution must be at least 1, got %d", o.Resolution)
	case o.Levels < 1:
		return errors.New(errors.ErrCodeInvalidConfig, "levels must be at least 1, got %d", o.Levels)
	case o.MinRadiusValue() < 0 || o.MinRadiusValue() >= 1:
		return errors.New(errors.ErrCodeInvalidConfig, "min_radius must be in [0, 1), got %v", o.MinRadiusValue())
	case o.BondLength < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "bond_length must be positive, got %v", o.BondLength)
	case o.PNGScale < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "png_scale must be positive, got %v", o.PNGScale)
	}
	if err := errors.ValidateName("colormap", o.Colormap); err != nil {
		return err
	}
	return errors.ValidateFormats(o.Formats)
}

// ValidateAndSetDefaults applies defaults and validates. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// Merge returns o with every zero field taken from base. Formats and
// booleans set in o win.
func (o Options) Merge(base Options) Options {
	out := base
	if o.Scale != 0 {
		out.Scale = o.Scale
	}
	if o.Padding != nil {
		out.Padding = o.Padding
	}
	if o.Colormap != "" {
		out.Colormap = o.Colormap
	}
	if o.Diverging != nil {
		out.Diverging = o.Diverging
	}
	if o.Resolution != 0 {
		out.Resolution = o.Resolution
	}
	if o.Levels != 0 {
		out.Levels = o.Levels
	}
	if o.MinRadius != nil {
		out.MinRadius = o.MinRadius
	}
	if o.BondLength != 0 {
		out.BondLength = o.BondLength
	}
	if o.Seed != 0 {
		out.Seed = o.Seed
	}
	if len(o.Formats) > 0 {
		out.Formats = o.Formats
	}
	if o.PNGScale != 0 {
		out.PNGScale = o.PNGScale
	}
	if o.Logger != nil {
		out.Logger = o.Logger
	}
	out.Halo = o.Halo || base.Halo
	out.Refresh = o.Refresh || base.Refresh
	out.validated = false
	return out
}

// encoder returns the dot encoder for o.
func (o *Options) encoder() *plotdot.Encoder {
	return plotdot.NewEncoder(plotdot.WithLevels(o.Levels), plotdot.WithMinRadius(o.MinRadiusValue()))
}
