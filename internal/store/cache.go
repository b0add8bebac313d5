package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	resultCacheTTL     = 30 * time.Minute
	dictionaryCacheTTL = 24 * time.Hour
)

// CacheResult stores the rendered JSON document for a completed session,
// keyed by session ID. GET /sessions/:id in internal/api answers from its
// in-memory state and does not read this cache.
func (s *Store) CacheResult(ctx context.Context, sessionID string, doc []byte) error {
	return s.Redis.Set(ctx, "result:"+sessionID, doc, resultCacheTTL).Err()
}

// GetCachedResult returns a previously cached rendered document, if any.
func (s *Store) GetCachedResult(ctx context.Context, sessionID string) ([]byte, bool, error) {
	val, err := s.Redis.Get(ctx, "result:"+sessionID).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// DictionaryWordCount returns the cached normalized word count for a
// dictionary file's content hash, skipping a re-read/re-normalize pass.
func (s *Store) DictionaryWordCount(ctx context.Context, content []byte) (int, bool, error) {
	key := "dict:" + hashContent(content)
	val, err := s.Redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	count, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, err
	}
	return count, true, nil
}

// SetDictionaryWordCount caches a dictionary file's normalized word count.
func (s *Store) SetDictionaryWordCount(ctx context.Context, content []byte, count int) error {
	key := "dict:" + hashContent(content)
	return s.Redis.Set(ctx, key, count, dictionaryCacheTTL).Err()
}

func hashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
