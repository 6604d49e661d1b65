// Package group maintains named node groups for a scene tree: a many-to-many
// index between group names and live nodes, sharded by group-name hash for
// concurrent access.
package group

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/zeusync/scenekit/pkg/sequence"
)

const defaultShardCount = 16

// Member is anything with a stable instance ID. Scene nodes satisfy it.
type Member interface {
	ID() uuid.UUID
}

// Index is a sharded group membership table. The zero value is not usable;
// construct with NewIndex.
type Index[T Member] struct {
	shards []shard[T]
	count  uint32

	// reverse holds member -> group names, for RemoveAll on tree exit.
	reverseMu sync.RWMutex
	reverse   map[uuid.UUID]map[string]struct{}
}

type shard[T Member] struct {
	mu     sync.RWMutex
	groups map[string]map[uuid.UUID]T
}

// NewIndex creates a group index with the given shard count; zero or negative
// selects the default.
func NewIndex[T Member](shardCount int) *Index[T] {
	if shardCount <= 0 {
		shardCount = defaultShardCount
	}
	idx := &Index[T]{
		shards:  make([]shard[T], shardCount),
		count:   uint32(shardCount),
		reverse: make(map[uuid.UUID]map[string]struct{}),
	}
	for i := range idx.shards {
		idx.shards[i].groups = make(map[string]map[uuid.UUID]T)
	}
	return idx
}

func (idx *Index[T]) shardFor(group string) *shard[T] {
	return &idx.shards[uint32(xxhash.Sum64String(group))%idx.count]
}

// Add puts m into the named group. Adding twice is a no-op.
func (idx *Index[T]) Add(group string, m T) {
	if group == "" {
		return
	}
	sh := idx.shardFor(group)
	sh.mu.Lock()
	if sh.groups[group] == nil {
		sh.groups[group] = make(map[uuid.UUID]T)
	}
	sh.groups[group][m.ID()] = m
	sh.mu.Unlock()

	idx.reverseMu.Lock()
	if idx.reverse[m.ID()] == nil {
		idx.reverse[m.ID()] = make(map[string]struct{})
	}
	idx.reverse[m.ID()][group] = struct{}{}
	idx.reverseMu.Unlock()
}

// Remove takes m out of the named group.
func (idx *Index[T]) Remove(group string, m T) {
	sh := idx.shardFor(group)
	sh.mu.Lock()
	if members, ok := sh.groups[group]; ok {
		delete(members, m.ID())
		if len(members) == 0 {
			delete(sh.groups, group)
		}
	}
	sh.mu.Unlock()

	idx.reverseMu.Lock()
	if groups, ok := idx.reverse[m.ID()]; ok {
		delete(groups, group)
		if len(groups) == 0 {
			delete(idx.reverse, m.ID())
		}
	}
	idx.reverseMu.Unlock()
}

// RemoveAll takes m out of every group it belongs to.
func (idx *Index[T]) RemoveAll(m T) {
	idx.reverseMu.Lock()
	groups := idx.reverse[m.ID()]
	delete(idx.reverse, m.ID())
	idx.reverseMu.Unlock()

	for group := range groups {
		sh := idx.shardFor(group)
		sh.mu.Lock()
		if members, ok := sh.groups[group]; ok {
			delete(members, m.ID())
			if len(members) == 0 {
				delete(sh.groups, group)
			}
		}
		sh.mu.Unlock()
	}
}

// In returns an iterator over the current members of the named group, in no
// particular order.
func (idx *Index[T]) In(group string) *sequence.Iterator[T] {
	sh := idx.shardFor(group)
	sh.mu.RLock()
	members := sh.groups[group]
	out := make([]T, 0, len(members))
	for _, m := range members {
		out = append(out, m)
	}
	sh.mu.RUnlock()
	return sequence.From(out)
}

// Count returns the number of members in the named group.
func (idx *Index[T]) Count(group string) int {
	sh := idx.shardFor(group)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	return len(sh.groups[group])
}

// GroupsOf returns the group names m currently belongs to.
func (idx *Index[T]) GroupsOf(m T) []string {
	idx.reverseMu.RLock()
	defer idx.reverseMu.RUnlock()
	groups := idx.reverse[m.ID()]
	if len(groups) == 0 {
		return nil
	}
	out := make([]string, 0, len(groups))
	for g := range groups {
		out = append(out, g)
	}
	return out
}
