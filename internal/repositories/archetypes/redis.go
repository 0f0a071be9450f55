package archetypes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/archetype-balancer/internal/entities"
	dnderr "github.com/KirkDiggler/archetype-balancer/internal/errors"
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

type redisRepo struct {
	client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil || cfg.Client == nil {
		panic("RedisRepoConfig and Client are required")
	}

	return &redisRepo{
		client: cfg.Client,
	}
}

func archetypeKey(id string) string {
	return fmt.Sprintf("archetype:%s", id)
}

func historyKey(id string) string {
	return fmt.Sprintf("archetype:%s:balance", id)
}

// Save creates or replaces an archetype
func (r *redisRepo) Save(ctx context.Context, archetype *entities.Archetype) error {
	if err := validateArchetype(archetype); err != nil {
		return err
	}

	jsonData, err := json.Marshal(archetype)
	if err != nil {
		return dnderr.Wrap(err, "failed to marshal archetype")
	}

	if err := r.client.Set(ctx, archetypeKey(archetype.ID), string(jsonData), 0).Err(); err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to store archetype in Redis")
	}

	return nil
}

// Get retrieves an archetype by ID
func (r *redisRepo) Get(ctx context.Context, id string) (*entities.Archetype, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("archetype ID is required")
	}

	jsonData, err := r.client.Get(ctx, archetypeKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, archetypeNotFound(id)
		}
		return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to get archetype from Redis")
	}

	var archetype entities.Archetype
	if err := json.Unmarshal(jsonData, &archetype); err != nil {
		return nil, dnderr.Wrapf(err, "failed to unmarshal archetype %s", id)
	}

	return &archetype, nil
}

// RecordBalance appends a balance outcome to the archetype's history list
func (r *redisRepo) RecordBalance(ctx context.Context, record *entities.BalanceRecord) error {
	if err := validateRecord(record); err != nil {
		return err
	}

	if err := r.ensureExists(ctx, record.ArchetypeID); err != nil {
		return err
	}

	jsonData, err := json.Marshal(record)
	if err != nil {
		return dnderr.Wrap(err, "failed to marshal balance record")
	}

	if err := r.client.RPush(ctx, historyKey(record.ArchetypeID), string(jsonData)).Err(); err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to record balance in Redis")
	}

	return nil
}

// History returns balance outcomes oldest first
func (r *redisRepo) History(ctx context.Context, archetypeID string) ([]*entities.BalanceRecord, error) {
	if archetypeID == "" {
		return nil, dnderr.InvalidArgument("archetype ID is required")
	}

	if err := r.ensureExists(ctx, archetypeID); err != nil {
		return nil, err
	}

	entries, err := r.client.LRange(ctx, historyKey(archetypeID), 0, -1).Result()
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to read balance history from Redis")
	}

	records := make([]*entities.BalanceRecord, len(entries))
	for i, entry := range entries {
		var record entities.BalanceRecord
		if err := json.Unmarshal([]byte(entry), &record); err != nil {
			return nil, dnderr.Wrapf(err, "failed to unmarshal balance record %d", i)
		}
		records[i] = &record
	}

	return records, nil
}

func (r *redisRepo) ensureExists(ctx context.Context, id string) error {
	n, err := r.client.Exists(ctx, archetypeKey(id)).Result()
	if err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to check archetype in Redis")
	}
	if n == 0 {
		return archetypeNotFound(id)
	}
	return nil
}
