package cache

// ScopedKeyer wraps a Keyer with a prefix so that different credentials do
// not share cached ranges. Two Google accounts may see different data in
// the same spreadsheet, or one of them none at all.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "client:"+Hash(secret)[:12]+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// RangeKey generates a prefixed range key.
func (k *ScopedKeyer) RangeKey(id, rng string) string {
	return k.prefix + k.inner.RangeKey(id, rng)
}

// SheetsKey generates a prefixed tab list key.
func (k *ScopedKeyer) SheetsKey(id string) string {
	return k.prefix + k.inner.SheetsKey(id)
}
