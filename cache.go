package mdblog

import (
	"sync"
)

// metadataCache holds the sorted listing between invalidations.
// The generation counter keeps a load that raced an invalidation from
// repopulating the cache with stale data.
type metadataCache struct {
	mu    sync.RWMutex
	posts []PostMetadata
	valid bool
	gen   uint64
}

// get returns a copy of the cached listing.
func (c *metadataCache) get() ([]PostMetadata, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.valid {
		return nil, false
	}
	return cloneListing(c.posts), true
}

func (c *metadataCache) generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

// set stores posts if no invalidation happened since gen was read.
func (c *metadataCache) set(gen uint64, posts []PostMetadata) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.posts = cloneListing(posts)
	c.valid = true
}

func (c *metadataCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.posts = nil
	c.valid = false
	c.gen++
}

// cloneListing copies posts deeply enough that callers cannot reach the
// cached Params maps or the slices and maps nested inside them.
func cloneListing(posts []PostMetadata) []PostMetadata {
	if posts == nil {
		return nil
	}
	out := make([]PostMetadata, len(posts))
	for i, p := range posts {
		out[i] = p
		if p.Params != nil {
			out[i].Params = cloneMap(p.Params)
		}
	}
	return out
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

// cloneValue copies the container types YAML and TOML decoders produce.
// Scalars are returned as is.
func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return cloneMap(v)
	case map[any]any:
		out := make(map[any]any, len(v))
		for k, e := range v {
			out[k] = cloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = cloneValue(e)
		}
		return out
	case []map[string]any:
		out := make([]map[string]any, len(v))
		for i, e := range v {
			out[i] = cloneMap(e)
		}
		return out
	default:
		return v
	}
}
