package main

import (
	"fmt"
	"sort"
)

type TTFlag uint8

const (
	TTExact TTFlag = iota
	TTLower
	TTUpper
)

// TTEntry is a searched node: its evaluation for the optimizing side, the move
// chosen there, and whether Eval is exact or only a bound left by a cutoff.
type TTEntry struct {
	Eval int
	Move Move
	Flag TTFlag
}

// TranspositionCache maps a search context key (optimizing side, mover,
// remaining depth) to canonical boards and their searched entries. It is
// owned by a single Minmax strategy and is not safe for concurrent use.
type TranspositionCache struct {
	tables map[string]map[string]TTEntry
}

func NewTranspositionCache() *TranspositionCache {
	return &TranspositionCache{tables: make(map[string]map[string]TTEntry)}
}

// ttKey concatenates the decimal signs and depth, e.g. "1-15".
func ttKey(optimizing, mover PlayerColor, depth int) string {
	return fmt.Sprintf("%d%d%d", int(optimizing), int(mover), depth)
}

func (c *TranspositionCache) Probe(key, board string) (TTEntry, bool) {
	table, ok := c.tables[key]
	if !ok {
		return TTEntry{}, false
	}
	entry, ok := table[board]
	return entry, ok
}

func (c *TranspositionCache) Store(key, board string, entry TTEntry) {
	table, ok := c.tables[key]
	if !ok {
		table = make(map[string]TTEntry)
		c.tables[key] = table
	}
	table[board] = entry
}

// Count returns the number of boards stored across every context key.
func (c *TranspositionCache) Count() int {
	total := 0
	for _, table := range c.tables {
		total += len(table)
	}
	return total
}

// Keys returns the context keys in sorted order.
func (c *TranspositionCache) Keys() []string {
	keys := make([]string, 0, len(c.tables))
	for key := range c.tables {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (c *TranspositionCache) CountByKey() map[string]int {
	counts := make(map[string]int, len(c.tables))
	for key, table := range c.tables {
		counts[key] = len(table)
	}
	return counts
}

// Merge copies other's entries into c. An exact entry is never replaced by a bound.
func (c *TranspositionCache) Merge(other *TranspositionCache) {
	if other == nil || other == c {
		return
	}
	for key, table := range other.tables {
		for board, entry := range table {
			if existing, ok := c.Probe(key, board); ok && existing.Flag == TTExact && entry.Flag != TTExact {
				continue
			}
			c.Store(key, board, entry)
		}
	}
}

func (c *TranspositionCache) Clear() {
	c.tables = make(map[string]map[string]TTEntry)
}

func (f TTFlag) String() string {
	switch f {
	case TTLower:
		return "lower"
	case TTUpper:
		return "upper"
	default:
		return "exact"
	}
}

func parseTTFlag(value string) (TTFlag, error) {
	switch value {
	case "", "exact":
		return TTExact, nil
	case "lower":
		return TTLower, nil
	case "upper":
		return TTUpper, nil
	default:
		return TTExact, fmt.Errorf("unknown cache flag %q", value)
	}
}
