// Package cache is a best-effort accelerator in front of the database. It
// never holds authoritative state: every getter degrades to a miss on error,
// so losing the backing store only costs latency.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	CategoriesKey     = "quiz_categories"
	QuestionsKeyBase  = "quiz_questions"
	quizKeyPrefix     = "quiz_"
	CategoriesTTL     = 10 * time.Minute
	QuestionsTTL      = 5 * time.Minute
)

// Store is the minimal cache surface. Implementations must be safe for
// concurrent use and treat every operation as fallible but non-fatal.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
	DeletePrefix(ctx context.Context, prefix string)
	Clear(ctx context.Context)
}

// New returns a Redis-backed cache when the client is reachable, otherwise an
// in-process memory cache.
func New(client *redis.Client) *Cache {
	if client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err == nil {
			log.Println("Cache: connected to Redis")
			return &Cache{store: &redisStore{client: client}}
		}
		log.Println("Cache: Redis unreachable, using memory cache")
	}
	return NewMemory()
}

// NewMemory returns a cache backed only by process memory.
func NewMemory() *Cache {
	return &Cache{store: newMemoryStore()}
}

type Cache struct {
	store Store
}

func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	data, ok := c.store.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.store.Delete(ctx, key)
		return false
	}
	return true
}

func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.store.Set(ctx, key, data, ttl)
}

func (c *Cache) Delete(ctx context.Context, key string) {
	c.store.Delete(ctx, key)
}

func (c *Cache) Clear(ctx context.Context) {
	c.store.Clear(ctx)
}

// InvalidateQuizData drops every cached category and question list. Called
// after any admin write to quiz content.
func (c *Cache) InvalidateQuizData(ctx context.Context) {
	c.store.DeletePrefix(ctx, quizKeyPrefix)
}

// QuestionsKey builds the cache key for a category's question list.
func QuestionsKey(category, difficulty string) string {
	if difficulty == "" {
		return QuestionsKeyBase + ":" + category
	}
	return QuestionsKeyBase + ":" + category + ":" + difficulty
}

type redisStore struct {
	client *redis.Client
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Cache get failed for %s: %v", key, err)
		}
		return nil, false
	}
	return data, true
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Printf("Cache set failed for %s: %v", key, err)
	}
}

func (s *redisStore) Delete(ctx context.Context, key string) {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		log.Printf("Cache delete failed for %s: %v", key, err)
	}
}

func (s *redisStore) DeletePrefix(ctx context.Context, prefix string) {
	keys, err := s.client.Keys(ctx, prefix+"*").Result()
	if err != nil {
		log.Printf("Cache prefix scan failed for %s: %v", prefix, err)
		return
	}
	if len(keys) > 0 {
		if err := s.client.Del(ctx, keys...).Err(); err != nil {
			log.Printf("Cache prefix delete failed for %s: %v", prefix, err)
		}
	}
}

func (s *redisStore) Clear(ctx context.Context) {
	if err := s.client.FlushDB(ctx).Err(); err != nil {
		log.Printf("Cache clear failed: %v", err)
	}
}

type memoryEntry struct {
	value   []byte
	expires time.Time
}

type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entries: make(map[string]memoryEntry)}
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !entry.expires.IsZero() && time.Now().After(entry.expires) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false
	}
	return entry.value, true
}

func (s *memoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expires = time.Now().Add(ttl)
	}
	s.mu.Lock()
	s.entries[key] = entry
	s.mu.Unlock()
}

func (s *memoryStore) Delete(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

func (s *memoryStore) DeletePrefix(_ context.Context, prefix string) {
	s.mu.Lock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
}

func (s *memoryStore) Clear(_ context.Context) {
	s.mu.Lock()
	s.entries = make(map[string]memoryEntry)
	s.mu.Unlock()
}
