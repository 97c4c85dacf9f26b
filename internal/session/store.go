package session

import (
	"context"
	"encoding/json" // JSON encoding/decoding
	"time"

	"github.com/patrickmn/go-cache" // In-process TTL cache
	"github.com/redis/go-redis/v9"  // Redis client
)

// Store keeps session data by id
type Store interface {
	Load(ctx context.Context, id string) (Data, bool, error)
	Save(ctx context.Context, id string, data Data, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

// RedisStore keeps sessions as JSON values with a TTL
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore returns a RedisStore writing keys under "session:"
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: "session:"}
}

// Load retrieves a session from Redis
func (s *RedisStore) Load(ctx context.Context, id string) (Data, bool, error) {
	var data Data
	val, err := s.rdb.Get(ctx, s.prefix+id).Result() // Get value from Redis
	if err == redis.Nil {
		return data, false, nil // Key does not exist
	} else if err != nil {
		return data, false, err // Other Redis error
	}
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return Data{}, false, err
	}
	return data, true, nil
}

// Save sets the session in Redis with the given TTL
func (s *RedisStore) Save(ctx context.Context, id string, data Data, ttl time.Duration) error {
	b, err := json.Marshal(data) // Marshal value to JSON
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.prefix+id, b, ttl).Err()
}

// Delete removes a session from Redis
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, s.prefix+id).Err()
}

// MemoryStore keeps sessions in process memory.
// Sessions are lost on restart and not shared between instances.
// Expired sessions are evicted by the cache janitor.
type MemoryStore struct {
	items *cache.Cache
}

// memoryCleanupInterval is how often expired sessions are swept
const memoryCleanupInterval = 5 * time.Minute

// NewMemoryStore returns an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return newMemoryStore(memoryCleanupInterval)
}

func newMemoryStore(cleanup time.Duration) *MemoryStore {
	return &MemoryStore{items: cache.New(cache.NoExpiration, cleanup)}
}

func (s *MemoryStore) Load(_ context.Context, id string) (Data, bool, error) {
	v, ok := s.items.Get(id) // Expired entries are reported as missing
	if !ok {
		return Data{}, false, nil
	}
	return cloneData(v.(Data)), true, nil
}

func (s *MemoryStore) Save(_ context.Context, id string, data Data, ttl time.Duration) error {
	if ttl <= 0 {
		s.items.Delete(id)
		return nil
	}
	s.items.Set(id, cloneData(data), ttl)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.items.Delete(id)
	return nil
}

// Len returns the number of stored sessions, expired ones included until swept
func (s *MemoryStore) Len() int {
	return s.items.ItemCount()
}

func cloneData(d Data) Data {
	if d.Flashes != nil {
		d.Flashes = append([]Flash(nil), d.Flashes...)
	}
	return d
}
