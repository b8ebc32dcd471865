package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/jo-hoe/rokkastyle/internal/stack"
)

const defaultKeyPrefix = "rokkastyle"

// RedisStore keeps every stack as a JSON value under <prefix>:stack:<name>
// and tracks the names in the set <prefix>:stacks.
type RedisStore struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedisStore connects using a redis:// URL.
func NewRedisStore(connectionString string) (*RedisStore, error) {
	options, err := redis.ParseURL(connectionString)
	if err != nil {
		return nil, fmt.Errorf("invalid redis connection string: %w", err)
	}
	return NewRedisStoreWithClient(redis.NewClient(options), defaultKeyPrefix)
}

func NewRedisStoreWithClient(client redis.UniversalClient, keyPrefix string) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
	}, nil
}

func (r *RedisStore) stackKey(name string) string {
	return r.keyPrefix + ":stack:" + name
}

func (r *RedisStore) namesKey() string {
	return r.keyPrefix + ":stacks"
}

func (r *RedisStore) Save(ctx context.Context, s stack.Stack) (*StoredStack, error) {
	stored, err := newStoredStack(s)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("failed to encode stack %s: %w", stored.Name, err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.stackKey(stored.Name), data, 0)
		pipe.SAdd(ctx, r.namesKey(), stored.Name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save stack %s: %w", stored.Name, err)
	}
	return stored, nil
}

func (r *RedisStore) Get(ctx context.Context, name string) (*StoredStack, error) {
	data, err := r.client.Get(ctx, r.stackKey(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrStackNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return decodeStack(name, data)
}

func (r *RedisStore) List(ctx context.Context) ([]*StoredStack, error) {
	names, err := r.client.SMembers(ctx, r.namesKey()).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	stacks := make([]*StoredStack, 0, len(names))
	for _, name := range names {
		stored, err := r.Get(ctx, name)
		if errors.Is(err, ErrStackNotFound) {
			// deleted between SMEMBERS and GET
			continue
		}
		if err != nil {
			return nil, err
		}
		stacks = append(stacks, stored)
	}
	return stacks, nil
}

func (r *RedisStore) Delete(ctx context.Context, name string) error {
	var deleted *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.Del(ctx, r.stackKey(name))
		pipe.SRem(ctx, r.namesKey(), name)
		return nil
	})
	if err != nil {
		return err
	}
	if deleted.Val() == 0 {
		return fmt.Errorf("%w: %s", ErrStackNotFound, name)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

func decodeStack(name string, data []byte) (*StoredStack, error) {
	var stored StoredStack
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to decode stack %s: %w", name, err)
	}
	return &stored, nil
}
