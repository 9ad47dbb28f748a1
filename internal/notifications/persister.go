package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/2beens/cragjournal/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
)

const DefaultRedisKey = "cragjournal::notifications"

// RedisPersister keeps the whole notification list as one JSON blob under a single key.
type RedisPersister struct {
	redisClient *redis.Client
	key         string
}

func NewRedisPersister(redisClient *redis.Client, key string) *RedisPersister {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisPersister{
		redisClient: redisClient,
		key:         key,
	}
}

func (p *RedisPersister) Load(ctx context.Context) (_ []Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "redisPersister.load")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	recordsJson, err := p.redisClient.Get(ctx, p.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("redis get %s: %w", p.key, err)
	}

	var records []Record
	if err := json.Unmarshal([]byte(recordsJson), &records); err != nil {
		return nil, fmt.Errorf("unmarshal notifications: %w", err)
	}
	return records, nil
}

func (p *RedisPersister) Save(ctx context.Context, records []Record) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "redisPersister.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if records == nil {
		records = []Record{}
	}
	recordsJson, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal notifications: %w", err)
	}

	if err := p.redisClient.Set(ctx, p.key, string(recordsJson), 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", p.key, err)
	}
	return nil
}

// MemoryPersister keeps a copy of the saved list in memory. Used in tests and
// when no redis is configured.
type MemoryPersister struct {
	mu      sync.Mutex
	records []Record
}

func NewMemoryPersister(initial ...Record) *MemoryPersister {
	p := &MemoryPersister{}
	p.records = append(p.records, initial...)
	return p
}

func (p *MemoryPersister) Load(_ context.Context) ([]Record, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	records := make([]Record, len(p.records))
	copy(records, p.records)
	return records, nil
}

func (p *MemoryPersister) Save(_ context.Context, records []Record) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.records = make([]Record, len(records))
	copy(p.records, records)
	return nil
}
