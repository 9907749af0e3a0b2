package pipeline

import (
	"context"
	"encoding/json"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/xenopict/pkg/cache"
	"github.com/matzehuels/xenopict/pkg/colormap"
	"github.com/matzehuels/xenopict/pkg/errors"
	"github.com/matzehuels/xenopict/pkg/geom"
	"github.com/matzehuels/xenopict/pkg/layout"
	"github.com/matzehuels/xenopict/pkg/molecule"
	"github.com/matzehuels/xenopict/pkg/observability"
	"github.com/matzehuels/xenopict/pkg/render"
	"github.com/matzehuels/xenopict/pkg/xenopict"
)

// Cache key types reported to observability hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, colour maps and logger.
// Multiple goroutines can safely use the same Runner with different
// requests.
type Runner struct {
	Cache     cache.Cache
	Keyer     cache.Keyer
	Logger    *log.Logger
	Colormaps *colormap.Registry
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:     c,
		Keyer:     keyer,
		Logger:    logger,
		Colormaps: colormap.Default(),
	}
}

// Execute runs the complete layout → compose → render pipeline with
// caching. The request's molecule is never modified.
func (r *Runner) Execute(ctx context.Context, req Request) (*Result, error) {
	opts := req.Options
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if req.Molecule == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request has no molecule")
	}
	if err := req.Molecule.Validate(); err != nil {
		return nil, err
	}
	if err := req.Shading.Validate(req.Molecule.NumAtoms()); err != nil {
		return nil, err
	}
	if _, err := r.Colormaps.Lookup(opts.Colormap); err != nil {
		return nil, err
	}

	reqHash, err := RequestHash(req.Molecule, req.Shading, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash request")
	}
	result := &Result{
		Molecule:    req.Molecule,
		RequestHash: reqHash,
		Stats: Stats{
			Atoms: req.Molecule.NumAtoms(),
			Bonds: req.Molecule.NumBonds(),
		},
	}

	if !opts.Refresh {
		if artifacts, ok := r.cachedArtifacts(ctx, reqHash, opts); ok {
			result.Artifacts = artifacts
			result.CacheInfo.RenderHit = true
			opts.Logger.Info("served from cache", "request", reqHash[:12], "formats", opts.Formats)
			return result, nil
		}
	}

	// Stage 1: Layout
	layoutStart := time.Now()
	mol, generated, layoutHit, err := r.LayoutWithCacheInfo(ctx, req.Molecule, opts)
	if err != nil {
		return nil, err
	}
	result.Molecule = mol
	result.Stats.CoordsGenerated = generated
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit
	if generated {
		opts.Logger.Info("generated coordinates",
			"atoms", mol.NumAtoms(),
			"cached", layoutHit,
			"duration", result.Stats.LayoutTime)
	}

	// Stage 2: Compose
	composeStart := time.Now()
	pic, err := r.Compose(ctx, mol, req.Shading, opts)
	if err != nil {
		return nil, err
	}
	result.Picture = pic
	result.Stats.ComposeTime = time.Since(composeStart)
	opts.Logger.Debug("composed picture", "atoms", pic.NumAtoms(), "duration", result.Stats.ComposeTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, pic, reqHash, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo returns m with coordinates. A molecule that already
// has them is returned as is; otherwise coordinates are generated (or
// read from the cache) on a copy. generated reports whether the
// coordinates are new and hit whether they came from the cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, m *molecule.Molecule, opts Options) (out *molecule.Molecule, generated, hit bool, err error) {
	if m.HasCoords() {
		return m, false, false, nil
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, m.NumAtoms())
	start := time.Now()
	defer func() { hooks.OnLayoutComplete(ctx, m.NumAtoms(), time.Since(start), err) }()

	topo, err := topologyHash(m)
	if err != nil {
		return nil, false, false, errors.Wrap(errors.ErrCodeInternal, err, "hash molecule")
	}
	key := r.Keyer.LayoutKey(topo, opts.LayoutKeyOpts())
	out = withoutCoords(m)

	if !opts.Refresh {
		if pts, ok := r.cachedLayout(ctx, key, m.NumAtoms()); ok {
			if err := out.SetCoords(pts); err != nil {
				return nil, false, false, err
			}
			return out, true, true, nil
		}
	}

	pts, err := layout.Coords(ctx, m,
		layout.WithBondLength(opts.BondLength),
		layout.WithSeed(opts.Seed))
	if err != nil {
		return nil, false, false, err
	}
	if err := out.SetCoords(pts); err != nil {
		return nil, false, false, err
	}
	if data, err := json.Marshal(pts); err == nil {
		r.store(ctx, keyTypeLayout, key, data, cache.TTLLayout)
	}
	return out, true, false, nil
}

// Compose builds the picture for m and applies sh. m must have
// coordinates.
func (r *Runner) Compose(ctx context.Context, m *molecule.Molecule, sh *Shading, opts Options) (pic *xenopict.Picture, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnComposeStart(ctx, m.NumAtoms())
	start := time.Now()
	defer func() { hooks.OnComposeComplete(ctx, m.NumAtoms(), time.Since(start), err) }()

	cmap, err := r.Colormaps.Lookup(opts.Colormap)
	if err != nil {
		return nil, err
	}
	src, err := xenopict.FromMolecule(m)
	if err != nil {
		return nil, err
	}
	pic, err = xenopict.New(src,
		xenopict.WithScale(opts.Scale),
		xenopict.WithColormap(cmap),
		xenopict.WithDiverging(opts.IsDiverging()),
		xenopict.WithEncoder(opts.encoder()),
		xenopict.WithResolution(opts.Resolution))
	if err != nil {
		return nil, err
	}
	if err := sh.Apply(pic, opts.Halo); err != nil {
		return nil, err
	}
	if err := pic.Reframe(opts.PaddingValue(), nil).Err(); err != nil {
		return nil, err
	}
	return pic, nil
}

// Render converts pic to every requested format and caches each output
// under reqHash. An empty reqHash disables caching.
func (r *Runner) Render(ctx context.Context, pic *xenopict.Picture, reqHash string, opts Options) (artifacts map[string][]byte, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err) }()

	doc := pic.SVG()
	artifacts = make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if _, ok := artifacts[format]; ok {
			continue
		}
		data, err := render.Convert(ctx, doc, format, render.WithPNGScale(opts.PNGScale))
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
		if reqHash != "" {
			r.store(ctx, keyTypeArtifact, r.Keyer.ArtifactKey(reqHash, opts.ArtifactKeyOpts(format)), data, cache.TTLArtifact)
		}
	}
	return artifacts, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// LayoutKeyOpts returns the options that affect generated coordinates.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{BondLength: o.BondLength, Seed: o.Seed}
}

// ArtifactKeyOpts returns the options that affect one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	if format == render.FormatPNG {
		k.PNGScale = o.PNGScale
	}
	return k
}

// RequestHash identifies a render request independently of the output
// formats, which are part of each artifact key instead.
func RequestHash(m *molecule.Molecule, sh *Shading, opts Options) (string, error) {
	opts.Formats = nil
	opts.PNGScale = 0
	opts.Refresh = false
	return cache.HashJSON(struct {
		Molecule *molecule.Molecule `json:"molecule"`
		Shading  *Shading           `json:"shading,omitempty"`
		Options  Options            `json:"options"`
	}{m, sh, opts})
}

// cachedArtifacts returns every requested format from the cache, or false
// if any is missing.
func (r *Runner) cachedArtifacts(ctx context.Context, reqHash string, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, ok := r.lookup(ctx, keyTypeArtifact, r.Keyer.ArtifactKey(reqHash, opts.ArtifactKeyOpts(format)))
		if !ok {
			return nil, false
		}
		artifacts[format] = data
	}
	return artifacts, true
}

func (r *Runner) cachedLayout(ctx context.Context, key string, n int) ([]geom.Point, bool) {
	data, ok := r.lookup(ctx, keyTypeLayout, key)
	if !ok {
		return nil, false
	}
	var pts []geom.Point
	if err := json.Unmarshal(data, &pts); err != nil || len(pts) != n {
		r.Logger.Debug("discarding cached layout", "key", key)
		return nil, false
	}
	return pts, true
}

// lookup reads key from the cache. Cache errors count as misses.
func (r *Runner) lookup(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// topologyHash hashes what coordinate generation depends on.
func topologyHash(m *molecule.Molecule) (string, error) {
	return cache.HashJSON(struct {
		Atoms []molecule.Atom `json:"atoms"`
		Bonds []molecule.Bond `json:"bonds"`
	}{withoutCoords(m).Atoms, m.Bonds})
}

// withoutCoords returns a copy of m with its own atom slice and no
// coordinates or base diagram.
func withoutCoords(m *molecule.Molecule) *molecule.Molecule {
	out := *m
	out.SVG = ""
	out.Atoms = slices.Clone(m.Atoms)
	for i := range out.Atoms {
		out.Atoms[i].X, out.Atoms[i].Y = nil, nil
	}
	out.Bonds = slices.Clone(m.Bonds)
	return &out
}
