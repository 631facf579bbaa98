package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type StatusResponse struct {
	Board       [][]int         `json:"board"`
	ToMove      string          `json:"to_move"`
	PlayerColor string          `json:"player_color"`
	Phase       string          `json:"phase"`
	Result      string          `json:"result"`
	Counts      Counts          `json:"counts"`
	Passes      int             `json:"passes"`
	LegalMoves  []legalMoveDTO  `json:"legal_moves"`
	LastMove    *Move           `json:"last_move,omitempty"`
	Settings    GameSettingsDTO `json:"settings"`
	HistorySize int             `json:"history_size"`
	RedoSize    int             `json:"redo_size"`
	HasSnapshot bool            `json:"has_snapshot"`
}

type GameSettingsDTO struct {
	PlayerStrategy string `json:"player_strategy"`
	CpuStrategy    string `json:"cpu_strategy"`
	PlayerAuto     bool   `json:"player_auto"`
}

type legalMoveDTO struct {
	Row      int `json:"row"`
	Col      int `json:"col"`
	Captures int `json:"captures"`
}

type apiMove struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type actionResponse struct {
	Changed bool           `json:"changed"`
	Status  StatusResponse `json:"status"`
}

type cacheStatusResponse struct {
	Entries     map[string]int `json:"entries"`
	Path        string         `json:"path"`
	Persistence bool           `json:"persistence"`
}

func main() {
	cfg := LoadConfigFromEnv(DefaultConfig())
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[backend] invalid configuration: %v", err)
	}
	configStore.Update(cfg)

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Printf("[backend] rng seed %d", seed)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	settings, err := SettingsFromConfig(cfg)
	if err != nil {
		log.Fatalf("[backend] invalid game settings: %v", err)
	}
	controller, err := NewGameController(settings, cfg, rng)
	if err != nil {
		log.Fatalf("[backend] failed to create game: %v", err)
	}

	var persistOnce sync.Once
	persistOnShutdown := func(reason string) {
		persistOnce.Do(func() {
			if !GetConfig().CacheSaveOnExit {
				return
			}
			log.Printf("[backend] persisting caches on %s", reason)
			if err := controller.SaveCache(); err != nil {
				log.Printf("[backend] cache persistence failed: %v", err)
			}
		})
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			log.Printf("[backend] panic recovered in main: %v", recovered)
			persistOnShutdown("panic")
		}
	}()
	defer persistOnShutdown("exit")

	hubs := newHubs()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go hubs.status.Run(ctx.Done())
	go hubs.hint.Run(ctx.Done())
	go hubs.analytics.Run(ctx.Done())
	go runTicker(ctx, time.Duration(cfg.TickIntervalMs)*time.Millisecond, controller, hubs)

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: newRouter(controller, hubs),
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	log.Printf("[backend] listening on %s", cfg.ListenAddr)
	var runErr error
	select {
	case <-sigCtx.Done():
		log.Printf("[backend] shutdown signal received: %v", sigCtx.Err())
	case err, ok := <-serverErrCh:
		if ok {
			runErr = err
			log.Printf("[backend] server error: %v", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("[backend] graceful shutdown failed: %v", err)
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			log.Printf("[backend] forced close failed: %v", closeErr)
		}
	}

	cancel()
	persistOnShutdown("shutdown")
	if runErr != nil {
		log.Printf("[backend] exiting after server error: %v", runErr)
	}
}

// hubs groups the websocket broadcasters fed on every state change.
type hubs struct {
	status    *wsHub[StatusResponse]
	hint      *wsHub[hintPayload]
	analytics *wsHub[analyticsPayload]
}

func newHubs() hubs {
	return hubs{
		status:    newWSHub[StatusResponse]("status", 32),
		hint:      newWSHub[hintPayload]("hint", 32),
		analytics: newWSHub[analyticsPayload]("analytics", 64),
	}
}

// runTicker advances the game on a fixed cadence and broadcasts every change.
func runTicker(ctx context.Context, interval time.Duration, controller *GameController, hubs hubs) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if controller.Tick() {
				publishState(controller, hubs)
			}
		}
	}
}

func publishState(controller *GameController, hubs hubs) {
	hubs.status.Publish(controller.Status())
	if hubs.hint.HasClients() {
		hubs.hint.Publish(currentHint(controller))
	}
	if hubs.analytics.HasClients() {
		hubs.analytics.Publish(searchAnalytics(controller, "update"))
	}
}

func newRouter(controller *GameController, hubs hubs) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	respond := func(w http.ResponseWriter, changed bool) {
		if changed {
			publishState(controller, hubs)
		}
		writeJSON(w, http.StatusOK, actionResponse{Changed: changed, Status: controller.Status()})
	}

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, controller.Status())
	})

	r.Post("/api/move", func(w http.ResponseWriter, r *http.Request) {
		var payload apiMove
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, errors.New("invalid payload"))
			return
		}
		if err := controller.SubmitMove(NewMove(payload.Row, payload.Col)); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		respond(w, true)
	})

	r.Post("/api/advance", func(w http.ResponseWriter, r *http.Request) {
		respond(w, controller.Tick())
	})

	r.Post("/api/undo", func(w http.ResponseWriter, r *http.Request) {
		respond(w, controller.Undo())
	})

	r.Post("/api/redo", func(w http.ResponseWriter, r *http.Request) {
		respond(w, controller.Redo())
	})

	r.Post("/api/new", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Color string `json:"color"`
		}
		if err := decodeOptional(r, &payload); err != nil {
			writeError(w, http.StatusBadRequest, errors.New("invalid payload"))
			return
		}
		color, err := ParseColorAssignment(payload.Color)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		controller.NewGame(color)
		respond(w, true)
	})

	r.Post("/api/strategy", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Side string `json:"side"`
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, errors.New("invalid payload"))
			return
		}
		seat, err := ParseSeat(payload.Side)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if err := controller.SetStrategy(seat, payload.Name); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		respond(w, true)
	})

	r.Post("/api/auto", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Enabled bool `json:"enabled"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, errors.New("invalid payload"))
			return
		}
		controller.SetPlayerAuto(payload.Enabled)
		respond(w, true)
	})

	r.Get("/api/config", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, GetConfig())
	})

	r.Post("/api/config", func(w http.ResponseWriter, r *http.Request) {
		cfg := GetConfig()
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			writeError(w, http.StatusBadRequest, errors.New("invalid payload"))
			return
		}
		if err := cfg.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		configStore.Update(cfg)
		controller.ApplyConfig(cfg)
		writeJSON(w, http.StatusOK, cfg)
	})

	r.Get("/api/cache", func(w http.ResponseWriter, r *http.Request) {
		cfg := GetConfig()
		writeJSON(w, http.StatusOK, cacheStatusResponse{
			Entries:     controller.CacheEntries(),
			Path:        resolveTTPersistencePath(cfg.CachePersistencePath),
			Persistence: cfg.CacheEnablePersistence,
		})
	})

	r.Post("/api/cache/save", func(w http.ResponseWriter, r *http.Request) {
		if err := controller.SaveCache(); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"saved":   true,
			"entries": controller.CacheEntries(),
		})
	})

	r.Get("/api/analytics", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, searchAnalytics(controller, "snapshot"))
	})

	r.Post("/api/snapshot", func(w http.ResponseWriter, r *http.Request) {
		controller.Snapshot()
		respond(w, false)
	})

	r.Post("/api/snapshot/restore", func(w http.ResponseWriter, r *http.Request) {
		if err := controller.Restore(); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		respond(w, true)
	})

	r.Get("/ws/", func(w http.ResponseWriter, r *http.Request) {
		hubs.status.Serve(w, r, controller.Status)
	})
	r.Get("/ws/hint", func(w http.ResponseWriter, r *http.Request) {
		hubs.hint.Serve(w, r, func() hintPayload { return currentHint(controller) })
	})
	r.Get("/ws/analytics", func(w http.ResponseWriter, r *http.Request) {
		hubs.analytics.Serve(w, r, func() analyticsPayload { return searchAnalytics(controller, "snapshot") })
	})

	return r
}

func statusFromGame(g *Game) StatusResponse {
	state := g.State()
	settings := g.Settings()
	history := g.History()
	status := StatusResponse{
		Board:       boardToSlice(state.Board),
		ToMove:      state.ToMove.String(),
		PlayerColor: state.PlayerColor.String(),
		Phase:       state.Phase.String(),
		Result:      state.Result.String(),
		Counts:      state.Counts,
		Passes:      state.Passes,
		LegalMoves:  legalMovesToDTO(g.LegalMoves()),
		Settings: GameSettingsDTO{
			PlayerStrategy: string(settings.PlayerStrategy),
			CpuStrategy:    string(settings.CpuStrategy),
			PlayerAuto:     settings.PlayerAuto,
		},
		HistorySize: history.Size(),
		RedoSize:    history.RedoSize(),
		HasSnapshot: g.HasSnapshot(),
	}
	if last := g.LastMove(); last.IsValid() {
		status.LastMove = &last
	}
	return status
}

func boardToSlice(board Board) [][]int {
	display := board.Display()
	rows := make([][]int, BoardSize)
	for r := range display {
		rows[r] = make([]int, BoardSize)
		for c, cell := range display[r] {
			rows[r][c] = int(cell)
		}
	}
	return rows
}

func legalMovesToDTO(moves ReversibleMap) []legalMoveDTO {
	candidates := moves.Candidates()
	result := make([]legalMoveDTO, 0, len(candidates))
	for _, move := range candidates {
		result = append(result, legalMoveDTO{Row: move.Row, Col: move.Col, Captures: len(moves[move])})
	}
	return result
}

// decodeOptional decodes a JSON body, treating an empty body as zero values.
func decodeOptional(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	return json.NewDecoder(r.Body).Decode(v)
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
