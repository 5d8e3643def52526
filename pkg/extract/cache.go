package extract

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/agentstation/restock/pkg/constants"
	"github.com/agentstation/restock/pkg/errors"
	"github.com/agentstation/restock/pkg/logging"
)

// Cache wraps an Extractor and reuses answers for identical document bytes
// and instruction, so re-running over the same invoice yields the same table.
type Cache struct {
	next  Extractor
	store *gocache.Cache
	path  string
}

// NewCache creates a cache around next. A ttl of zero uses the default.
// When path is set, entries are loaded from it if it exists and written back by Save.
func NewCache(next Extractor, ttl time.Duration, path string) (*Cache, error) {
	if next == nil {
		return nil, errors.NewValidationError("extractor", nil, "cannot be nil")
	}
	if ttl <= 0 {
		ttl = constants.ExtractionCacheTTL
	}
	c := &Cache{
		next:  next,
		store: gocache.New(ttl, constants.CacheCleanupInterval),
		path:  path,
	}
	if path == "" {
		return c, nil
	}
	if err := c.store.LoadFile(path); err != nil && !os.IsNotExist(err) {
		return nil, errors.WrapIO("load cache", path, err)
	}
	return c, nil
}

// Extract implements Extractor.
func (c *Cache) Extract(ctx context.Context, doc Document, instruction string) (string, error) {
	key := CacheKey(doc, instruction)
	if v, ok := c.store.Get(key); ok {
		if text, ok := v.(string); ok {
			logging.FromContext(ctx).Debug().Str("document", doc.Name).Msg("Extraction cache hit")
			return text, nil
		}
	}

	text, err := c.next.Extract(ctx, doc, instruction)
	if err != nil {
		return "", err
	}
	c.store.Set(key, text, gocache.DefaultExpiration)
	return text, nil
}

// Len returns the number of cached answers.
func (c *Cache) Len() int {
	return c.store.ItemCount()
}

// Save persists the cache to its file, if it has one.
func (c *Cache) Save() error {
	if c.path == "" {
		return nil
	}
	if err := c.store.SaveFile(c.path); err != nil {
		return errors.WrapIO("save cache", c.path, err)
	}
	return nil
}

// CacheKey identifies a document and instruction pair.
func CacheKey(doc Document, instruction string) string {
	h := sha256.New()
	h.Write(doc.Data)
	h.Write([]byte{0})
	h.Write([]byte(instruction))
	return hex.EncodeToString(h.Sum(nil))
}
