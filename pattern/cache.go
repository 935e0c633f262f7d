package pattern

import (
	"sync"

	"github.com/sharedcode/meshin/internal/list"
)

// Cache keeps the most recently used compiled patterns.
type Cache struct {
	capacity int
	mux      sync.Mutex
	mru      *list.DoublyLinkedList[*Pattern]
	lookup   map[string]*list.Node[*Pattern]
}

// NewCache returns a cache holding up to capacity patterns. capacity <= 0 disables caching.
func NewCache(capacity int) *Cache {
	return &Cache{
		capacity: capacity,
		mru:      list.New[*Pattern](),
		lookup:   map[string]*list.Node[*Pattern]{},
	}
}

// Get returns the compiled form of s, compiling it on a miss.
func (c *Cache) Get(s string) *Pattern {
	if c.capacity <= 0 {
		return Compile(s)
	}
	c.mux.Lock()
	defer c.mux.Unlock()
	if n, ok := c.lookup[s]; ok {
		c.mru.MoveToHead(n)
		return n.Data
	}
	p := Compile(s)
	c.lookup[s] = c.mru.AddToHead(p)
	c.prune()
	return p
}

// Len returns the number of cached patterns.
func (c *Cache) Len() int {
	c.mux.Lock()
	defer c.mux.Unlock()
	return c.mru.Count()
}

func (c *Cache) prune() {
	for c.mru.Count() > c.capacity {
		p, ok := c.mru.DeleteFromTail()
		if !ok {
			return
		}
		delete(c.lookup, p.String())
	}
}
