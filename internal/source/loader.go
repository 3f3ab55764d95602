package source

import (
	"fmt"
	"sync"

	"github.com/Faultbox/imgmesh/internal/raster"
	"github.com/Faultbox/imgmesh/pkg/grf"
)

// Loader loads images and keeps archives open between loads. Decoded rasters
// are cached by reference; callers must treat them as read-only.
type Loader struct {
	archives map[string]*grf.Archive
	cache    *Cache
	mu       sync.Mutex
}

// NewLoader creates an empty loader.
func NewLoader() *Loader {
	return &Loader{
		archives: make(map[string]*grf.Archive),
		cache:    NewCache(),
	}
}

// Load resolves ref, returning a cached raster when one exists.
func (l *Loader) Load(ref string) (*raster.Raster, error) {
	if r, ok := l.cache.Get(ref); ok {
		return r, nil
	}

	parsed := Parse(ref)
	var (
		r   *raster.Raster
		err error
	)
	if parsed.InArchive() {
		r, err = l.loadEntry(parsed)
	} else {
		r, err = raster.DecodeFile(parsed.Path)
	}
	if err != nil {
		return nil, err
	}

	l.cache.Set(ref, r)
	return r, nil
}

func (l *Loader) loadEntry(ref Ref) (*raster.Raster, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	archive, ok := l.archives[ref.Path]
	if !ok {
		var err error
		archive, err = grf.Open(ref.Path)
		if err != nil {
			return nil, fmt.Errorf("opening archive %s: %w", ref.Path, err)
		}
		l.archives[ref.Path] = archive
	}

	data, err := archive.Read(ref.Entry)
	if err != nil {
		return nil, err
	}
	return raster.Decode(ref.Entry, data)
}

// Stats returns cache statistics.
func (l *Loader) Stats() (hits, misses int) {
	return l.cache.Stats()
}

// Close closes all archives and drops the cache.
func (l *Loader) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var firstErr error
	for path, archive := range l.archives {
		if err := archive.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(l.archives, path)
	}
	l.cache.Clear()
	return firstErr
}

// Cache is an in-memory raster cache.
type Cache struct {
	data map[string]*raster.Raster
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*raster.Raster),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) (*raster.Raster, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return r, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, r *raster.Raster) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = r
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]*raster.Raster)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
