package negamax

import (
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
)

const cacheEntrySize = 16

// MinCachePower and MaxCachePower bound the number of cache entries, as a
// power of two.
const (
	MinCachePower = 10
	MaxCachePower = 28
)

type cacheEntry struct {
	hash  uint64
	score int32
	valid bool
}

// EvalCache remembers leaf evaluations by zobrist key. Evaluations are
// pure, so a hit returns exactly what the evaluator would have. Entries
// are overwritten on collision. An EvalCache is not safe for concurrent
// use; give every solver goroutine its own.
type EvalCache struct {
	table        []cacheEntry
	sizePowerOf2 int
	sizeMask     uint64

	created atomic.Uint64
	lookups atomic.Uint64
	hits    atomic.Uint64
}

// NewEvalCache allocates a cache of 2^sizePowerOf2 entries, clamped to the
// allowed range and to a quarter of system memory.
func NewEvalCache(sizePowerOf2 int) *EvalCache {
	c := &EvalCache{}
	c.Reset(sizePowerOf2)
	return c
}

// Reset reallocates (or clears) the table.
func (c *EvalCache) Reset(sizePowerOf2 int) {
	if sizePowerOf2 < MinCachePower {
		sizePowerOf2 = MinCachePower
	}
	if sizePowerOf2 > MaxCachePower {
		sizePowerOf2 = MaxCachePower
	}
	totalMem := memory.TotalMemory()
	for totalMem > 0 && sizePowerOf2 > MinCachePower &&
		uint64(1)<<sizePowerOf2*cacheEntrySize > totalMem/4 {
		sizePowerOf2--
	}
	numElems := 1 << sizePowerOf2
	reset := false
	if c.table != nil && len(c.table) == numElems {
		reset = true
		clear(c.table)
	} else {
		c.table = make([]cacheEntry, numElems)
	}
	c.sizePowerOf2 = sizePowerOf2
	c.sizeMask = uint64(numElems - 1)

	log.Debug().Int("num-elems", numElems).
		Int("estimated-total-memory-bytes", numElems*cacheEntrySize).
		Uint64("total-system-memory-bytes", totalMem).
		Bool("reset", reset).
		Msg("eval-cache-size")

	c.created.Store(0)
	c.lookups.Store(0)
	c.hits.Store(0)
}

// Size is the number of entries.
func (c *EvalCache) Size() int {
	return len(c.table)
}

func (c *EvalCache) lookup(hash uint64) (int, bool) {
	c.lookups.Add(1)
	e := c.table[hash&c.sizeMask]
	if !e.valid || e.hash != hash {
		return 0, false
	}
	c.hits.Add(1)
	return int(e.score), true
}

func (c *EvalCache) store(hash uint64, score int) {
	c.table[hash&c.sizeMask] = cacheEntry{hash: hash, score: int32(score), valid: true}
	c.created.Add(1)
}

func (c *EvalCache) logStats() {
	log.Debug().
		Uint64("cache-created", c.created.Load()).
		Uint64("cache-lookups", c.lookups.Load()).
		Uint64("cache-hits", c.hits.Load()).
		Msg("eval-cache-stats")
}
