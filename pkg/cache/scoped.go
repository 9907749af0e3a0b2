package cache

// ScopedKeyer prefixes every key of an inner Keyer. The server and the CLI
// can share one Redis instance without sharing entries:
//
//	keyer := cache.NewScopedKeyer(nil, "api:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or a DefaultKeyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey returns the inner layout key with the prefix.
func (k *ScopedKeyer) LayoutKey(moleculeHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(moleculeHash, opts)
}

// ArtifactKey returns the inner artifact key with the prefix.
func (k *ScopedKeyer) ArtifactKey(requestHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(requestHash, opts)
}
