package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/muesli/termenv"
)

type arena struct {
	client         *http.Client
	baseURL        string
	pollInterval   time.Duration
	gameTimeout    time.Duration
	logger         *log.Logger
	out            *termenv.Output
	games          int
	playerStrategy string
	cpuStrategy    string
	saveCache      bool
	showBoards     bool
}

func main() {
	if !runArena() {
		os.Exit(1)
	}
}

func runArena() bool {
	logger, closeLog, err := buildLogger(getenv("ARENA_LOG_PATH", ""))
	if err != nil {
		log.Printf("failed to initialize logger: %v", err)
		return false
	}
	defer closeLog()

	a := &arena{
		client:         &http.Client{Timeout: 2 * time.Minute},
		baseURL:        strings.TrimRight(getenv("ARENA_BACKEND_URL", "http://localhost:8080"), "/"),
		pollInterval:   time.Duration(getenvInt("ARENA_POLL_MS", 50)) * time.Millisecond,
		gameTimeout:    time.Duration(getenvInt("ARENA_GAME_TIMEOUT_SEC", 300)) * time.Second,
		logger:         logger,
		out:            termenv.NewOutput(os.Stdout),
		games:          getenvInt("ARENA_GAMES", 10),
		playerStrategy: getenv("ARENA_PLAYER_STRATEGY", "minmax"),
		cpuStrategy:    getenv("ARENA_CPU_STRATEGY", "random"),
		saveCache:      getenvBool("ARENA_SAVE_CACHE", true),
		showBoards:     getenvBool("ARENA_SHOW_BOARDS", true),
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	a.logf("arena started. backend=%s games=%d player=%s cpu=%s", a.baseURL, a.games, a.playerStrategy, a.cpuStrategy)
	tally, err := a.run(sigCtx)
	fmt.Fprintln(os.Stdout, renderSummary(a.out, a.playerStrategy, a.cpuStrategy, tally))
	if err != nil {
		a.logf("arena stopped: %v", err)
		return false
	}
	return true
}

func buildLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(os.Stdout, "", 0), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.New(io.MultiWriter(os.Stdout, f), "", 0)
	return logger, func() { _ = f.Close() }, nil
}

func (a *arena) logf(format string, args ...any) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	a.logger.Printf("[%s] %s", ts, fmt.Sprintf(format, args...))
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
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
