// If you are AI: This file implements a bounded cache of rendered ad-hoc requests.
// Keys hash the request body together with everything that changes the output.

package docs

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"scriptvar/internal/core/jsvar"
)

// CacheKey identifies a rendering of a request body.
type CacheKey uint64

// Cache holds rendered output keyed by CacheKey.
// A nil *Cache is valid and never stores anything.
type Cache struct {
	entries *lru.Cache[CacheKey, string]
}

// NewCache creates a cache holding up to size entries.
// A size of zero or less disables caching and returns nil.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		return nil, nil
	}
	entries, err := lru.New[CacheKey, string](size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries}, nil
}

// Key hashes the body with the output mode, format, variable name and options.
func Key(mode, format, varName string, opts jsvar.Options, body []byte) CacheKey {
	d := xxhash.New()
	for _, part := range []string{
		mode,
		format,
		varName,
		strconv.FormatBool(opts.StrictNull),
		strconv.FormatBool(opts.Strict),
		strconv.Itoa(opts.MaxDepth),
	} {
		_, _ = d.WriteString(part)
		_, _ = d.Write([]byte{0})
	}
	_, _ = d.Write(body)
	return CacheKey(d.Sum64())
}

// Get returns the cached output for key.
func (c *Cache) Get(key CacheKey) (string, bool) {
	if c == nil {
		return "", false
	}
	return c.entries.Get(key)
}

// Add stores output under key.
func (c *Cache) Add(key CacheKey, output string) {
	if c == nil {
		return
	}
	c.entries.Add(key, output)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}
