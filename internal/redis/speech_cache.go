package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// speechTTL controls how long synthesized audio stays cached per
// (language, text) key. Longer than the catalog TTL since
// synthesized speech for a given word never changes.
const speechTTL = 30 * 24 * time.Hour

// SpeechCache caches synthesized audio bytes keyed by language and text,
// so repeated requests for the same word don't re-invoke Polly.
type SpeechCache struct {
	client *goredis.Client
}

// NewSpeechCache builds a SpeechCache backed by client.
func NewSpeechCache(client *goredis.Client) *SpeechCache {
	return &SpeechCache{client: client}
}

func speechCacheKey(language, text string) string {
	return fmt.Sprintf("speech:%s:%s", language, text)
}

// Get returns cached audio bytes for (language, text), if present.
func (c *SpeechCache) Get(ctx context.Context, language, text string) ([]byte, bool) {
	data, err := c.client.Get(ctx, speechCacheKey(language, text)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores synthesized audio bytes for (language, text).
func (c *SpeechCache) Set(ctx context.Context, language, text string, audio []byte) error {
	return c.client.Set(ctx, speechCacheKey(language, text), audio, speechTTL).Err()
}
