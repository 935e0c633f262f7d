package inmemory

import (
	"hash/fnv"
	"sync"

	"github.com/sharedcode/meshin/store"
)

const shardCount = 256

type entry struct {
	value   store.Value
	version uint64
}

type shard struct {
	mu    sync.RWMutex
	items map[string]entry
}

type shardedMap struct {
	shards [shardCount]*shard
}

func newShardedMap() *shardedMap {
	m := &shardedMap{}
	for i := 0; i < shardCount; i++ {
		m.shards[i] = &shard{items: make(map[string]entry)}
	}
	return m
}

func (m *shardedMap) getShard(key string) *shard {
	h := fnv.New32a()
	h.Write([]byte(key))
	return m.shards[h.Sum32()%shardCount]
}

func (m *shardedMap) load(key string) (store.Value, bool) {
	shard := m.getShard(key)
	shard.mu.RLock()
	e, ok := shard.items[key]
	shard.mu.RUnlock()
	return e.value, ok
}

// store replaces key's value keeping its version.
func (m *shardedMap) store(key string, value store.Value) {
	shard := m.getShard(key)
	shard.mu.Lock()
	e := shard.items[key]
	e.value = value
	shard.items[key] = e
	shard.mu.Unlock()
}

func (m *shardedMap) delete(key string) bool {
	shard := m.getShard(key)
	shard.mu.Lock()
	_, ok := shard.items[key]
	delete(shard.items, key)
	shard.mu.Unlock()
	return ok
}

// bump increments the version of an existing key and returns it. Missing keys report 0.
func (m *shardedMap) bump(key string) uint64 {
	shard := m.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	e, ok := shard.items[key]
	if !ok {
		return 0
	}
	e.version++
	shard.items[key] = e
	return e.version
}

func (m *shardedMap) version(key string) uint64 {
	shard := m.getShard(key)
	shard.mu.RLock()
	defer shard.mu.RUnlock()
	return shard.items[key].version
}

func (m *shardedMap) count() int64 {
	var n int64
	for _, s := range m.shards {
		s.mu.RLock()
		n += int64(len(s.items))
		s.mu.RUnlock()
	}
	return n
}

func (m *shardedMap) clear() {
	for _, s := range m.shards {
		s.mu.Lock()
		clear(s.items)
		s.mu.Unlock()
	}
}
