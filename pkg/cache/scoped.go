package cache

// ScopedKeyer prefixes every key of an inner Keyer. Use it to keep several
// deployments (or a test run) apart inside one shared Redis or Mongo store:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner with prefix. A nil inner uses DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// PlacementKey returns the prefixed placement key.
func (k *ScopedKeyer) PlacementKey(problemHash string, opts PlacementKeyOpts) string {
	return k.prefix + k.inner.PlacementKey(problemHash, opts)
}
