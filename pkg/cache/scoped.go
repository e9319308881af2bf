package cache

// ScopedKeyer wraps a Keyer with a prefix. The API server scopes its keys
// so that a cache shared with batch runs can be cleared separately.
//
//	apiKeyer := NewScopedKeyer(NewDefaultKeyer(), "api:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// the DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

func (k *ScopedKeyer) OrderingKey(graphHash string, opts OrderingKeyOpts) string {
	return k.prefix + k.inner.OrderingKey(graphHash, opts)
}

func (k *ScopedKeyer) DrawingKey(orderingHash string, opts DrawingKeyOpts) string {
	return k.prefix + k.inner.DrawingKey(orderingHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(drawingHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(drawingHash, opts)
}
