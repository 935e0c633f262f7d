package redis

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"strings"
	"sync/atomic"

	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"

	"github.com/sharedcode/meshin"
	"github.com/sharedcode/meshin/store"
)

// KeyspaceChannel is the pub/sub channel SignalModified publishes modified key names on.
const KeyspaceChannel = "meshin:keyspace"

// Store is a store.Store over a Redis connection. Values are read with TYPE followed by
// the type's read command and written as one MULTI/EXEC replacement.
type Store struct {
	conn       *Connection
	retry      meshin.RetryOptions
	maxCompact int
	dirty      atomic.Int64
}

// NewStore returns a store over conn. Reads are retried per ro; lists read back use the
// compact encoding up to maxCompact elements.
func NewStore(conn *Connection, ro meshin.RetryOptions, maxCompact int) *Store {
	return &Store{conn: conn, retry: ro, maxCompact: maxCompact}
}

// keyNotFound will detect whether error signifies key not found by Redis.
func keyNotFound(err error) bool {
	return errors.Is(err, redis.Nil)
}

func isWrongType(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), "WRONGTYPE")
}

func backendError(op, key string, err error) error {
	return meshin.Error{Code: meshin.BackendFailure, Err: fmt.Errorf("redis %s failed for key %s: %w", op, key, err), UserData: key}
}

func (s *Store) client() (*redis.Client, error) {
	if s.conn == nil || s.conn.Client == nil {
		return nil, meshin.Error{Code: meshin.BackendFailure, Err: fmt.Errorf("Redis connection is not open")}
	}
	return s.conn.Client, nil
}

// read runs f with the configured retry budget.
func (s *Store) read(ctx context.Context, f func(ctx context.Context) error) error {
	return meshin.RetryWith(ctx, s.retry, func(ctx context.Context) error {
		err := f(ctx)
		if err != nil && meshin.ShouldRetry(err) {
			return retry.RetryableError(err)
		}
		return err
	}, nil)
}

// Ping tests connectivity for redis (PONG should be returned).
func (s *Store) Ping(ctx context.Context) error {
	c, err := s.client()
	if err != nil {
		return err
	}
	return c.Ping(ctx).Err()
}

// Get reads the value at key.
func (s *Store) Get(ctx context.Context, key string) (bool, store.Value, error) {
	c, err := s.client()
	if err != nil {
		return false, nil, err
	}
	var found bool
	var v store.Value
	err = s.read(ctx, func(ctx context.Context) error {
		found, v = false, nil
		t, err := c.Type(ctx, key).Result()
		if err != nil {
			return backendError("type", key, err)
		}
		v, err = s.fetch(ctx, c, key, t)
		if keyNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}
		found = v != nil
		return nil
	})
	return found, v, err
}

func (s *Store) fetch(ctx context.Context, c *redis.Client, key, t string) (store.Value, error) {
	switch t {
	case "none":
		return nil, nil
	case "string":
		r, err := c.Get(ctx, key).Result()
		if err != nil {
			return nil, wrapRead("get", key, err)
		}
		return store.String(r), nil
	case "list":
		r, err := c.LRange(ctx, key, 0, -1).Result()
		if err != nil {
			return nil, wrapRead("lrange", key, err)
		}
		return emptyAsMissing(store.NewList(s.maxCompact, r...), len(r)), nil
	case "set":
		r, err := c.SMembers(ctx, key).Result()
		if err != nil {
			return nil, wrapRead("smembers", key, err)
		}
		return emptyAsMissing(store.NewSet(r...), len(r)), nil
	case "zset":
		r, err := c.ZRangeWithScores(ctx, key, 0, -1).Result()
		if err != nil {
			return nil, wrapRead("zrange", key, err)
		}
		return emptyAsMissing(zsetFromScores(r), len(r)), nil
	case "hash":
		r, err := c.HGetAll(ctx, key).Result()
		if err != nil {
			return nil, wrapRead("hgetall", key, err)
		}
		return emptyAsMissing(hashFromMap(r), len(r)), nil
	}
	return nil, meshin.NewWrongTypeError(key)
}

// wrapRead passes redis.Nil through so a key deleted between TYPE and the read counts as missing.
func wrapRead(op, key string, err error) error {
	if keyNotFound(err) {
		return err
	}
	return backendError(op, key, err)
}

// emptyAsMissing maps a collection that vanished between TYPE and the read to a missing key.
func emptyAsMissing(v store.Value, n int) store.Value {
	if n == 0 {
		return nil
	}
	return v
}

// Put replaces the value at key inside one MULTI/EXEC block.
func (s *Store) Put(ctx context.Context, key string, value store.Value) error {
	c, err := s.client()
	if err != nil {
		return err
	}
	_, err = c.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		switch v := value.(type) {
		case store.String:
			pipe.Set(ctx, key, string(v), 0)
		case *store.List:
			if args := listArgs(v); len(args) > 0 {
				pipe.RPush(ctx, key, args...)
			}
		case *store.Set:
			if args := setArgs(v); len(args) > 0 {
				pipe.SAdd(ctx, key, args...)
			}
		case *store.ZSet:
			if zs := zsetArgs(v); len(zs) > 0 {
				pipe.ZAdd(ctx, key, zs...)
			}
		case *store.Hash:
			if args := hashArgs(v); len(args) > 0 {
				pipe.HSet(ctx, key, args...)
			}
		default:
			return fmt.Errorf("unsupported value type %T", value)
		}
		return nil
	})
	if err != nil {
		return backendError("put", key, err)
	}
	return nil
}

// Delete removes keys and reports whether any existed.
func (s *Store) Delete(ctx context.Context, keys ...string) (bool, error) {
	if len(keys) == 0 {
		return false, nil
	}
	c, err := s.client()
	if err != nil {
		return false, err
	}
	n, err := c.Del(ctx, keys...).Result()
	if err != nil {
		return false, backendError("del", strings.Join(keys, ","), err)
	}
	return n > 0, nil
}

// GetHashField implements store.HashFieldReader with HGET.
func (s *Store) GetHashField(ctx context.Context, key, field string) (string, bool, bool, error) {
	c, err := s.client()
	if err != nil {
		return "", false, false, err
	}
	var val string
	var found, isHash bool
	err = s.read(ctx, func(ctx context.Context) error {
		r, err := c.HGet(ctx, key, field).Result()
		switch {
		case err == nil:
			val, found, isHash = r, true, true
		case keyNotFound(err):
			val, found, isHash = "", false, true
		case isWrongType(err):
			val, found, isHash = "", false, false
		default:
			return backendError("hget", key, err)
		}
		return nil
	})
	return val, found, isHash, err
}

// KeyCount implements store.KeyCounter with DBSIZE.
func (s *Store) KeyCount(ctx context.Context) (int64, error) {
	c, err := s.client()
	if err != nil {
		return 0, err
	}
	n, err := c.DBSize(ctx).Result()
	if err != nil {
		return 0, backendError("dbsize", "", err)
	}
	return n, nil
}

// SignalModified publishes key on KeyspaceChannel. Publish failures are logged, not returned.
func (s *Store) SignalModified(ctx context.Context, key string) {
	c, err := s.client()
	if err != nil {
		return
	}
	if err := c.Publish(ctx, KeyspaceChannel, key).Err(); err != nil {
		log.Warn("keyspace notification failed", "key", key, "error", err)
	}
}

// IncrDirty adds n to this process' change counter.
func (s *Store) IncrDirty(n int64) {
	s.dirty.Add(n)
}

// Dirty returns this process' change counter.
func (s *Store) Dirty() int64 {
	return s.dirty.Load()
}
