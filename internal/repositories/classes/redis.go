package classes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/archetype-balancer/internal/entities"
	dnderr "github.com/KirkDiggler/archetype-balancer/internal/errors"
)

const rosterKey = "classes:roster"

// ClassData is the serialized form of a class in Redis
type ClassData struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	PowerVector []float64 `json:"power_vector"`
}

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

func classKey(id string) string {
	return fmt.Sprintf("class:%s", id)
}

// Create stores the class and appends it to the roster list
func (r *redisRepo) Create(ctx context.Context, class *entities.ClassDefinition) error {
	if err := validateClass(class); err != nil {
		return err
	}

	jsonData, err := json.Marshal(toClassData(class))
	if err != nil {
		return dnderr.Wrap(err, "failed to marshal class data")
	}

	created, err := r.client.SetNX(ctx, classKey(class.ID), string(jsonData), 0).Result()
	if err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to store class in Redis")
	}
	if !created {
		return dnderr.AlreadyExistsf("class with ID '%s' already exists", class.ID).
			WithMeta("class_id", class.ID)
	}

	if err := r.client.RPush(ctx, rosterKey, class.ID).Err(); err != nil {
		// every class key must be listed in the roster
		if delErr := r.client.Del(ctx, classKey(class.ID)).Err(); delErr != nil {
			log.Printf("Failed to roll back class %s after roster error: %v", class.ID, delErr)
		}
		return dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to add class to roster")
	}

	return nil
}

// Get retrieves a class by ID
func (r *redisRepo) Get(ctx context.Context, id string) (*entities.ClassDefinition, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("class ID is required")
	}

	jsonData, err := r.client.Get(ctx, classKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, classNotFound(id)
		}
		return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to get class from Redis")
	}

	var data ClassData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, dnderr.Wrapf(err, "failed to unmarshal class %s", id)
	}

	return toClass(&data), nil
}

// List loads the roster order, then fetches every class concurrently
func (r *redisRepo) List(ctx context.Context) ([]*entities.ClassDefinition, error) {
	ids, err := r.client.LRange(ctx, rosterKey, 0, -1).Result()
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to read roster from Redis")
	}

	result := make([]*entities.ClassDefinition, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			class, err := r.Get(ctx, id)
			if err != nil {
				return dnderr.Wrapf(err, "failed to get class %s", id)
			}
			result[i] = class
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

// Delete removes the class and its roster entry
func (r *redisRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dnderr.InvalidArgument("class ID is required")
	}

	pipe := r.client.Pipeline()
	del := pipe.Del(ctx, classKey(id))
	pipe.LRem(ctx, rosterKey, 0, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to delete class from Redis")
	}

	if del.Val() == 0 {
		return classNotFound(id)
	}

	return nil
}

func toClassData(class *entities.ClassDefinition) *ClassData {
	return &ClassData{
		ID:          class.ID,
		Name:        class.Name,
		PowerVector: class.PowerVector[:],
	}
}

func toClass(data *ClassData) *entities.ClassDefinition {
	class := &entities.ClassDefinition{
		ID:   data.ID,
		Name: data.Name,
	}
	copy(class.PowerVector[:], data.PowerVector)
	return class
}
