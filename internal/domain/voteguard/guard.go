// Package voteguard tracks already-seen vote keys so repeat submissions can
// be short-circuited before reaching the store.
//
// The guard is a read-through optimization, never the authority: the store's
// uniqueness constraint on (match, fingerprint) is the only enforced
// invariant. Evicted or lost guard entries merely cost one extra round-trip
// to the store.
package voteguard

import (
	"context"
	"sync"
	"sync/atomic"
)

// Guard records seen vote keys for at-most-once fast-path checks.
type Guard interface {
	// SeenAndRecord atomically checks whether key was seen and records it
	// if not. Returns true when the key was already present.
	SeenAndRecord(ctx context.Context, key string) bool

	// Unrecord removes a key, re-opening the fast path. Used when a vote
	// was recorded here but the authoritative insert failed for a reason
	// other than duplication.
	Unrecord(ctx context.Context, key string)

	Size() int64
}

// node is one entry of the bounded guard's eviction list.
type node struct {
	key  string
	next *node
}

func (n *node) reset() {
	n.key = ""
	n.next = nil
}

// memoryGuard implements Guard in memory.
//
// Bounded mode (maxSize > 0) keeps a linked list for newest-first eviction
// and recycles nodes through a sync.Pool. Unbounded mode (maxSize <= 0) is a
// plain map.
type memoryGuard struct {
	mu       sync.Mutex
	seen     map[string]*node
	head     *node
	maxSize  int
	size     atomic.Int64
	nodePool sync.Pool
}

// defaultMaxSize bounds the guard when no option is given.
const defaultMaxSize = 100_000

// New creates an in-memory guard with configuration options.
func New(opts ...Option) Guard {
	g := &memoryGuard{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(g)
	}
	g.seen = make(map[string]*node)
	if g.maxSize > 0 {
		g.nodePool = sync.Pool{New: func() interface{} { return &node{} }}
	}
	return g
}

func (g *memoryGuard) SeenAndRecord(_ context.Context, key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.seen[key]; exists {
		return true
	}

	if g.maxSize > 0 {
		if len(g.seen) >= g.maxSize {
			g.evictOldest()
		}
		n := g.nodePool.Get().(*node)
		n.key = key
		n.next = g.head
		g.head = n
		g.seen[key] = n
	} else {
		g.seen[key] = nil
	}
	g.size.Add(1)
	return false
}

func (g *memoryGuard) Unrecord(_ context.Context, key string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	n, exists := g.seen[key]
	if !exists {
		return
	}
	delete(g.seen, key)
	g.size.Add(-1)

	if g.maxSize <= 0 {
		return
	}
	if g.head == n {
		g.head = n.next
	} else {
		cur := g.head
		for cur != nil && cur.next != n {
			cur = cur.next
		}
		if cur != nil {
			cur.next = n.next
		}
	}
	n.reset()
	g.nodePool.Put(n)
}

// evictOldest drops the tail of the list. Caller holds g.mu.
func (g *memoryGuard) evictOldest() {
	if g.head == nil {
		return
	}
	var prev *node
	cur := g.head
	for cur.next != nil {
		prev = cur
		cur = cur.next
	}
	if prev == nil {
		g.head = nil
	} else {
		prev.next = nil
	}
	delete(g.seen, cur.key)
	cur.reset()
	g.nodePool.Put(cur)
	g.size.Add(-1)
}

func (g *memoryGuard) Size() int64 {
	return g.size.Load()
}
