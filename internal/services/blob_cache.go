package services

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kanishka132/StudyBuddy-AI/internal/logger"
	"github.com/kanishka132/StudyBuddy-AI/internal/utils"
)

// BlobCache keeps recently downloaded material blobs so repeated views and
// downloads skip the bucket round trip. A miss is never an error.
type BlobCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, data []byte)
	Delete(ctx context.Context, key string)
}

type redisBlobCache struct {
	log    *logger.Logger
	client *redis.Client
	ttl    time.Duration
}

func NewRedisBlobCache(log *logger.Logger) (BlobCache, error) {
	serviceLog := log.With("service", "RedisBlobCache")
	addr := utils.GetEnv("REDIS_ADDR", "localhost:6379", log)
	password := utils.GetEnv("REDIS_PASSWORD", "", log)
	ttlMinutes := utils.GetEnvAsInt("BLOB_CACHE_TTL_MINUTES", 30, log)

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &redisBlobCache{
		log:    serviceLog,
		client: client,
		ttl:    time.Duration(ttlMinutes) * time.Minute,
	}, nil
}

func (c *redisBlobCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.client.Get(ctx, "blob:"+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("Blob cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	return data, true
}

func (c *redisBlobCache) Set(ctx context.Context, key string, data []byte) {
	if err := c.client.Set(ctx, "blob:"+key, data, c.ttl).Err(); err != nil {
		c.log.Warn("Blob cache write failed", "key", key, "error", err)
	}
}

func (c *redisBlobCache) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, "blob:"+key).Err(); err != nil {
		c.log.Warn("Blob cache delete failed", "key", key, "error", err)
	}
}

// memoryBlobCache is the fallback when Redis is not configured. It evicts
// the least recently used entry once over capacity.
type memoryBlobCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	entries  map[string]*list.Element
}

type memoryBlobEntry struct {
	key  string
	data []byte
}

func NewMemoryBlobCache(capacity int) BlobCache {
	if capacity <= 0 {
		capacity = 64
	}
	return &memoryBlobCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
	}
}

func (c *memoryBlobCache) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*memoryBlobEntry).data, true
}

func (c *memoryBlobCache) Set(ctx context.Context, key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		el.Value.(*memoryBlobEntry).data = data
		c.order.MoveToFront(el)
		return
	}
	c.entries[key] = c.order.PushFront(&memoryBlobEntry{key: key, data: data})
	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*memoryBlobEntry).key)
		}
	}
}

func (c *memoryBlobCache) Delete(ctx context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		c.order.Remove(el)
		delete(c.entries, key)
	}
}
