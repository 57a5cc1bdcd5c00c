package storage

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"waitlist/internal/constant"
)

const redisKeyPrefix = "waitlist"

// RedisStore keeps each document in a hash {body, version} and the keys of a
// collection in a set. Compare-and-set uses WATCH on the document hash.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Get(ctx context.Context, collection, key string) (Document, error) {
	fields, err := s.rdb.HGetAll(ctx, docKey(collection, key)).Result()
	if err != nil {
		return Document{}, constant.NewStoreError("get", err)
	}
	if len(fields) == 0 {
		return Document{}, constant.ErrNotFound
	}

	var version int64
	if _, err := fmt.Sscan(fields["version"], &version); err != nil {
		return Document{}, constant.NewStoreError("get", errors.Wrapf(err, "bad version for %s/%s", collection, key))
	}
	return Document{Key: key, Body: []byte(fields["body"]), Version: version}, nil
}

func (s *RedisStore) Set(ctx context.Context, collection, key string, body []byte) error {
	k := docKey(collection, key)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, k, "body", body)
		pipe.HIncrBy(ctx, k, "version", 1)
		pipe.SAdd(ctx, indexKey(collection), key)
		return nil
	})
	if err != nil {
		return constant.NewStoreError("set", err)
	}
	return nil
}

func (s *RedisStore) CompareAndSet(ctx context.Context, collection, key string, expectedVersion int64, body []byte) error {
	k := docKey(collection, key)

	err := s.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.HGet(ctx, k, "version").Int64()
		if errors.Is(err, redis.Nil) {
			current = 0
		} else if err != nil {
			return err
		}
		if current != expectedVersion {
			return constant.ErrVersionConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, k, "body", body, "version", expectedVersion+1)
			pipe.SAdd(ctx, indexKey(collection), key)
			return nil
		})
		return err
	}, k)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, constant.ErrVersionConflict), errors.Is(err, redis.TxFailedErr):
		return constant.ErrVersionConflict
	default:
		return constant.NewStoreError("compare and set", err)
	}
}

func (s *RedisStore) List(ctx context.Context, collection string) ([]Document, error) {
	keys, err := s.rdb.SMembers(ctx, indexKey(collection)).Result()
	if err != nil {
		return nil, constant.NewStoreError("list", err)
	}
	sort.Strings(keys)

	out := make([]Document, 0, len(keys))
	for _, key := range keys {
		doc, err := s.Get(ctx, collection, key)
		if errors.Is(err, constant.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

func docKey(collection, key string) string {
	return fmt.Sprintf("%s:%s:%s", redisKeyPrefix, collection, key)
}

func indexKey(collection string) string {
	return fmt.Sprintf("%s:%s", redisKeyPrefix, collection)
}
