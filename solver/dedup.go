package solver

import (
	"github.com/cespare/xxhash"
	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
)

// Rough per-entry cost of the dedup set: an 8-byte key in the map plus
// bucket overhead, and the same key again in the eviction ring.
const dedupEntrySize = 64

// memFraction caps the dedup set at this fraction of physical memory.
const memFraction = 4

// dedupSet remembers canonical state signatures so a position reached
// via different move orders is only ever expanded once. The set is
// bounded: when it reaches the memory-derived cap the oldest entries
// are evicted first. Evicting can re-admit an old transposition, which
// costs time but never correctness.
type dedupSet struct {
	seen    map[uint64]struct{}
	ring    []uint64
	next    int
	maxSize int
}

func newDedupSet() *dedupSet {
	maxSize := int(memory.TotalMemory() / memFraction / dedupEntrySize)
	if maxSize < 1 {
		maxSize = 1 << 20
	}
	log.Debug().Int("maxSize", maxSize).Msg("sized dedup set")
	return &dedupSet{
		seen:    make(map[uint64]struct{}),
		maxSize: maxSize,
	}
}

// add records a state signature, returning false if it was already
// present.
func (d *dedupSet) add(state string) bool {
	key := xxhash.Sum64String(state)
	if _, ok := d.seen[key]; ok {
		return false
	}
	if len(d.ring) < d.maxSize {
		d.ring = append(d.ring, key)
	} else {
		delete(d.seen, d.ring[d.next])
		d.ring[d.next] = key
		d.next = (d.next + 1) % d.maxSize
	}
	d.seen[key] = struct{}{}
	return true
}
