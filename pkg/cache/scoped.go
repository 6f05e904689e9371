package cache

// ScopedKeyer prefixes every key of an inner Keyer. The server uses it to keep
// its entries apart from those written by the CLI when both share one store.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "server:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner with prefix. A nil inner means DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// CompareKey returns the prefixed comparison key.
func (k *ScopedKeyer) CompareKey(hashA, hashB string, opts CompareKeyOpts) string {
	return k.prefix + k.inner.CompareKey(hashA, hashB, opts)
}

// ConvertKey returns the prefixed conversion key.
func (k *ScopedKeyer) ConvertKey(inputHash string, opts ConvertKeyOpts) string {
	return k.prefix + k.inner.ConvertKey(inputHash, opts)
}
