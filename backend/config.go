package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

type Config struct {
	ListenAddr             string `json:"listen_addr"`
	TickIntervalMs         int    `json:"tick_interval_ms"`
	MinmaxDepth            int    `json:"minmax_depth"`
	CachePersistencePath   string `json:"cache_persistence_path"`
	CacheEnablePersistence bool   `json:"cache_enable_persistence"`
	CacheSaveOnExit        bool   `json:"cache_save_on_exit"`
	Seed                   uint64 `json:"seed"`
	PlayerColor            string `json:"player_color"`
	CpuStrategy            string `json:"cpu_strategy"`
	PlayerStrategy         string `json:"player_strategy"`
	LogSearchStats         bool   `json:"log_search_stats"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		ListenAddr:     ":8080",
		TickIntervalMs: 50,
		MinmaxDepth:    DefaultMinmaxDepth,

		CachePersistencePath:   "minmax_cache.json",
		CacheEnablePersistence: true,
		CacheSaveOnExit:        true,

		// 0 seeds from the clock at start-up
		Seed: 0,

		PlayerColor:    "black",
		CpuStrategy:    string(StrategyRandom),
		PlayerStrategy: string(StrategyRandom),
		LogSearchStats: false,
	}
}

// LoadConfigFromEnv overlays OTHELLO_* environment variables on base.
func LoadConfigFromEnv(base Config) Config {
	cfg := base
	cfg.ListenAddr = getenv("OTHELLO_ADDR", cfg.ListenAddr)
	cfg.TickIntervalMs = getenvInt("OTHELLO_TICK_MS", cfg.TickIntervalMs)
	cfg.MinmaxDepth = getenvInt("OTHELLO_MINMAX_DEPTH", cfg.MinmaxDepth)
	cfg.CachePersistencePath = getenv("OTHELLO_CACHE_PATH", cfg.CachePersistencePath)
	cfg.CacheEnablePersistence = getenvBool("OTHELLO_CACHE_PERSIST", cfg.CacheEnablePersistence)
	cfg.CacheSaveOnExit = getenvBool("OTHELLO_CACHE_SAVE_ON_EXIT", cfg.CacheSaveOnExit)
	cfg.Seed = getenvUint("OTHELLO_SEED", cfg.Seed)
	cfg.PlayerColor = getenv("OTHELLO_PLAYER_COLOR", cfg.PlayerColor)
	cfg.CpuStrategy = getenv("OTHELLO_CPU_STRATEGY", cfg.CpuStrategy)
	cfg.PlayerStrategy = getenv("OTHELLO_PLAYER_STRATEGY", cfg.PlayerStrategy)
	cfg.LogSearchStats = getenvBool("OTHELLO_LOG_SEARCH_STATS", cfg.LogSearchStats)
	return cfg
}

// Validate rejects values the game cannot start with.
func (c Config) Validate() error {
	if c.TickIntervalMs <= 0 {
		return fmt.Errorf("tick_interval_ms must be positive, got %d", c.TickIntervalMs)
	}
	if c.MinmaxDepth <= 0 {
		return fmt.Errorf("minmax_depth must be positive, got %d", c.MinmaxDepth)
	}
	if _, err := ParseColorAssignment(c.PlayerColor); err != nil {
		return err
	}
	if _, err := ParseStrategyName(c.CpuStrategy); err != nil {
		return fmt.Errorf("cpu_strategy: %w", err)
	}
	if _, err := ParseStrategyName(c.PlayerStrategy); err != nil {
		return fmt.Errorf("player_strategy: %w", err)
	}
	return nil
}

var configStore = &ConfigStore{config: DefaultConfig()}

func GetConfig() Config {
	return configStore.Get()
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var parsed int
	if _, err := fmt.Sscanf(value, "%d", &parsed); err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func getenvUint(key string, fallback uint64) uint64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvBool(key string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}
