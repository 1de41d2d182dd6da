package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"vocabpool/internal/models"
)

// catalogTTL controls how long a single word stays cached. Words are
// near-static reference data, so a generous TTL is fine; the point is
// taking repeated Learn/Practice/Review assembly off the database, not
// strict freshness.
const catalogTTL = 6 * time.Hour

// CatalogCache wraps models.CatalogRepository with a Redis read-through
// cache for single-word lookups.
type CatalogCache struct {
	next   models.CatalogRepository
	client *goredis.Client
}

// NewCatalogCache wraps next with a read-through cache backed by client.
func NewCatalogCache(next models.CatalogRepository, client *goredis.Client) *CatalogCache {
	return &CatalogCache{next: next, client: client}
}

func wordCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("word:%s", id)
}

// GetWord serves from cache when present, otherwise falls through to the
// wrapped repository and populates the cache.
func (c *CatalogCache) GetWord(ctx context.Context, id uuid.UUID) (*models.Word, error) {
	key := wordCacheKey(id)
	if cached, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var w models.Word
		if jsonErr := json.Unmarshal(cached, &w); jsonErr == nil {
			return &w, nil
		}
	}

	w, err := c.next.GetWord(ctx, id)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(w); err == nil {
		c.client.Set(ctx, key, data, catalogTTL)
	}
	return w, nil
}

// GetWords, RandomDistractors, and NextUnlearnedWords pass straight
// through; they're batch/randomized reads that don't benefit from a
// per-id cache the way a single GetWord lookup does.

func (c *CatalogCache) GetWords(ctx context.Context, ids []uuid.UUID) ([]models.Word, error) {
	return c.next.GetWords(ctx, ids)
}

func (c *CatalogCache) RandomDistractors(ctx context.Context, language string, excludeID uuid.UUID, level int, n int) ([]models.Word, error) {
	return c.next.RandomDistractors(ctx, language, excludeID, level, n)
}

func (c *CatalogCache) NextUnlearnedWords(ctx context.Context, userID uuid.UUID, language string, limit int) ([]models.Word, error) {
	return c.next.NextUnlearnedWords(ctx, userID, language, limit)
}
