// Package cache stores computed layouts keyed by document content and
// layout options.
//
// Three backends implement [Cache]: [NullCache] disables caching,
// [FileCache] keeps entries on local disk for the CLI, and [RedisCache]
// shares entries between server instances. Keys are built by a [Keyer] so
// that every caller derives the same key for the same request.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
//
// Get reports a miss with ok == false and a nil error. Backends treat
// corrupt or expired entries as misses.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

// LayoutKeyOpts are the inputs besides the document that change a layout.
type LayoutKeyOpts struct {
	Strategy string `json:"strategy"`
	Format   string `json:"format"`
	// ConfigHash is a hash of the layout constants in effect.
	ConfigHash string `json:"config_hash"`
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey returns the key of a laid-out document.
	LayoutKey(docHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer produces keys of the form "layout:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey hashes the document hash together with opts.
func (DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", docHash, opts)
}
