package main

import (
	"math/rand/v2"
	"sync"
)

// GameController serialises every command and query on a Game so the tick
// loop and HTTP handlers can share it.
type GameController struct {
	mu   sync.Mutex
	game *Game
}

func NewGameController(settings GameSettings, cfg Config, rng *rand.Rand) (*GameController, error) {
	game, err := NewGame(settings, cfg, rng)
	if err != nil {
		return nil, err
	}
	return &GameController{game: game}, nil
}

func (gc *GameController) Tick() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Advance()
}

func (gc *GameController) SubmitMove(move Move) error {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.SubmitMove(move)
}

func (gc *GameController) Undo() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Undo()
}

func (gc *GameController) Redo() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Redo()
}

func (gc *GameController) NewGame(color ColorAssignment) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.Reset(color)
}

func (gc *GameController) SetStrategy(seat Seat, name string) error {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.SetStrategy(seat, name)
}

func (gc *GameController) SetPlayerAuto(enabled bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.SetPlayerAuto(enabled)
}

func (gc *GameController) ApplyConfig(cfg Config) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.ApplyConfig(cfg)
}

func (gc *GameController) State() GameState {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.State()
}

func (gc *GameController) Settings() GameSettings {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Settings()
}

func (gc *GameController) DisplayBoard() [BoardSize][BoardSize]Cell {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.State().Board.Display()
}

func (gc *GameController) LegalMoves() ReversibleMap {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.LegalMoves()
}

func (gc *GameController) Counts() Counts {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.State().Counts
}

func (gc *GameController) Result() GameResult {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.State().Result
}

func (gc *GameController) Hint() (Move, bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Hint()
}

func (gc *GameController) Snapshot() {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.Snapshot()
}

func (gc *GameController) Restore() error {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Restore()
}

func (gc *GameController) SaveCache() error {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.SaveCache()
}

func (gc *GameController) CacheEntries() map[string]int {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.CacheEntries()
}

// SearchAnalytics reports the latest Minmax searches with the cache sizes
// they left behind.
func (gc *GameController) SearchAnalytics() ([]searchAnalyticDTO, map[string]int) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return searchAnalyticsFromGame(gc.game), gc.game.CacheEntries()
}

// Status captures everything the API reports in one locked read.
func (gc *GameController) Status() StatusResponse {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return statusFromGame(gc.game)
}
