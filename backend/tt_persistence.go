package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

const ttPersistenceVersion = 1

var dockerCacheDir = "/cache_logs"

type ttPersistenceSnapshot struct {
	Version int                                    `json:"version"`
	Entries map[string]map[string]ttPersistedEntry `json:"entries"`
}

type ttPersistedEntry struct {
	Eval int    `json:"eval"`
	Move [2]int `json:"move"`
	Flag string `json:"flag,omitempty"`
}

// LoadTranspositionCache restores the cache configured in cfg. A disabled,
// missing or unreadable store yields an empty cache.
func LoadTranspositionCache(cfg Config) *TranspositionCache {
	if !cfg.CacheEnablePersistence || cfg.CachePersistencePath == "" {
		log.Printf("[ai:cache] restored minmax cache: 0 entries (disabled or no path)")
		return NewTranspositionCache()
	}
	path := resolveTTPersistencePath(cfg.CachePersistencePath)
	cache, err := loadTranspositionCacheFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[ai:cache] restored minmax cache: 0 entries (file not found: %s)", path)
		} else {
			log.Printf("[ai:cache] failed to restore minmax cache %s: %v", path, err)
		}
		return NewTranspositionCache()
	}
	log.Printf("[ai:cache] restored minmax cache from %s (%d entries)", path, cache.Count())
	return cache
}

func loadTranspositionCacheFile(path string) (*TranspositionCache, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var snapshot ttPersistenceSnapshot
	if err := json.NewDecoder(file).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if snapshot.Version != ttPersistenceVersion {
		return nil, fmt.Errorf("unsupported cache version %d (want %d)", snapshot.Version, ttPersistenceVersion)
	}
	cache := NewTranspositionCache()
	for key, boards := range snapshot.Entries {
		for board, persisted := range boards {
			flag, err := parseTTFlag(persisted.Flag)
			if err != nil {
				return nil, fmt.Errorf("entry %s/%s: %w", key, board, err)
			}
			cache.Store(key, board, TTEntry{
				Eval: persisted.Eval,
				Move: Move{Row: persisted.Move[0], Col: persisted.Move[1]},
				Flag: flag,
			})
		}
	}
	return cache, nil
}

// SaveTranspositionCaches merges caches in order and writes them to the
// configured store.
func SaveTranspositionCaches(cfg Config, caches ...*TranspositionCache) error {
	if !cfg.CacheEnablePersistence || cfg.CachePersistencePath == "" {
		log.Printf("[ai:cache] stored minmax cache: 0 entries (disabled or no path)")
		return nil
	}
	merged := NewTranspositionCache()
	for _, cache := range caches {
		merged.Merge(cache)
	}
	path := resolveTTPersistencePath(cfg.CachePersistencePath)
	if err := writeTranspositionCacheFile(path, merged); err != nil {
		log.Printf("[ai:cache] failed to store minmax cache %s: %v", path, err)
		return err
	}
	log.Printf("[ai:cache] stored minmax cache to %s (%d entries)", path, merged.Count())
	return nil
}

// writeTranspositionCacheFile writes through a temporary file and renames it
// so a failed save never truncates the previous store.
func writeTranspositionCacheFile(path string, cache *TranspositionCache) error {
	snapshot := ttPersistenceSnapshot{
		Version: ttPersistenceVersion,
		Entries: make(map[string]map[string]ttPersistedEntry, len(cache.tables)),
	}
	for key, table := range cache.tables {
		boards := make(map[string]ttPersistedEntry, len(table))
		for board, entry := range table {
			boards[board] = ttPersistedEntry{
				Eval: entry.Eval,
				Move: [2]int{entry.Move.Row, entry.Move.Col},
				Flag: entry.Flag.String(),
			}
		}
		snapshot.Entries[key] = boards
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create cache directory %s: %w", dir, err)
		}
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	tmpPath := tmp.Name()
	if err := json.NewEncoder(tmp).Encode(&snapshot); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("encode cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp cache file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace cache file: %w", err)
	}
	return nil
}

func resolveTTPersistencePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if stat, err := os.Stat(dockerCacheDir); err == nil && stat.IsDir() {
		return filepath.Join(dockerCacheDir, path)
	}
	return path
}
