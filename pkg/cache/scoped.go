package cache

// ScopedKeyer wraps a Keyer with a prefix, so that several deployments can
// share one Redis database without seeing each other's entries.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "bpmnlayout:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer is
// replaced by the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey returns the prefixed key of the inner keyer.
func (k *ScopedKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(docHash, opts)
}
