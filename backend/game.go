package main

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
)

var (
	ErrNotPlayerTurn = errors.New("not the player's turn")
	ErrGameOver      = errors.New("game is over")
	ErrNoSnapshot    = errors.New("no snapshot saved")
)

// Game is the turn state machine. It owns the live board and history and lends
// copies to strategies.
type Game struct {
	settings GameSettings
	config   Config
	state    GameState
	moves    ReversibleMap
	history  MoveHistory
	human    *HumanPlayer
	cpu      Strategy
	rng      *rand.Rand
	hintRng  *rand.Rand
	lastMove Move
	snapshot *gameSnapshot
}

type gameSnapshot struct {
	board       Board
	toMove      PlayerColor
	playerColor PlayerColor
	passes      int
	history     MoveHistory
	lastMove    Move
}

func NewGame(settings GameSettings, cfg Config, rng *rand.Rand) (*Game, error) {
	playerStrategy, err := NewStrategy(settings.PlayerStrategy, cfg)
	if err != nil {
		return nil, fmt.Errorf("player strategy: %w", err)
	}
	cpuStrategy, err := NewStrategy(settings.CpuStrategy, cfg)
	if err != nil {
		return nil, fmt.Errorf("cpu strategy: %w", err)
	}
	g := &Game{
		settings: settings,
		config:   cfg,
		human:    NewHumanPlayer(playerStrategy),
		cpu:      cpuStrategy,
		rng:      rng,
		hintRng:  rand.New(rand.NewPCG(rng.Uint64(), rng.Uint64())),
	}
	g.human.SetAuto(settings.PlayerAuto)
	g.Reset(settings.Color)
	return g, nil
}

// Reset starts a fresh game. Strategies and auto-play carry over.
func (g *Game) Reset(color ColorAssignment) {
	g.settings.Color = color
	g.state = GameState{
		Board:       NewBoard(),
		ToMove:      PlayerBlack,
		PlayerColor: g.pickColor(color),
	}
	g.history.Reset(g.state.Board)
	g.lastMove = NoMove
	g.refresh()
	g.logMatchup()
}

func (g *Game) pickColor(color ColorAssignment) PlayerColor {
	switch color {
	case AssignWhite:
		return PlayerWhite
	case AssignRandom:
		if g.rng.IntN(2) == 0 {
			return PlayerBlack
		}
		return PlayerWhite
	default:
		return PlayerBlack
	}
}

// refresh recomputes everything derived from the board, side to move and
// pass counter.
func (g *Game) refresh() {
	g.moves = ReversibleMoves(g.state.Board, g.state.ToMove)
	own, opponent, blank := CountDisks(g.state.Board, g.state.PlayerColor)
	g.state.Counts = Counts{Player: own, Opponent: opponent, Blank: blank}
	if IsTerminal(g.state.Passes, blank) {
		g.state.Result = ClassifyResult(own, opponent)
		g.state.Phase = PhaseGameOver
		return
	}
	g.state.Result = ResultUndecided
	if g.state.ToMove == g.state.PlayerColor {
		g.state.Phase = PhaseAwaitingPlayerMove
	} else {
		g.state.Phase = PhaseAwaitingCpuMove
	}
}

// Advance drives one step: an automatic pass, a CPU move, or an auto-played
// player move. It reports whether the game changed.
func (g *Game) Advance() bool {
	if g.state.Phase == PhaseGameOver {
		return false
	}
	if len(g.moves) == 0 {
		g.pass()
		return true
	}
	var strategy Strategy
	switch {
	case g.state.Phase == PhaseAwaitingCpuMove:
		strategy = g.cpu
	case g.human.IsAuto():
		strategy = g.human.Strategy()
	default:
		return false
	}
	move := strategy.SelectMove(g.state.Board, g.state.ToMove, g.moves.Clone(), g.rng)
	if err := g.play(move); err != nil {
		log.Printf("[game] %s strategy chose %s: %v", strategy.Name(), move, err)
		return g.play(g.moves.Candidates()[0]) == nil
	}
	return true
}

func (g *Game) pass() {
	log.Printf("[game] %s has no move and passes", g.state.ToMove)
	g.state.Passes++
	g.state.ToMove = otherPlayer(g.state.ToMove)
	g.refresh()
	g.logResult()
}

func (g *Game) play(move Move) error {
	next, err := ApplyMove(g.state.Board, g.state.ToMove, move, g.moves)
	if err != nil {
		return err
	}
	g.state.Board = next
	g.state.Passes = 0
	g.history.Push(next)
	g.lastMove = move
	g.state.ToMove = otherPlayer(g.state.ToMove)
	g.refresh()
	g.logResult()
	return nil
}

// SubmitMove plays move for the human seat.
func (g *Game) SubmitMove(move Move) error {
	if g.state.Phase == PhaseGameOver {
		return ErrGameOver
	}
	if g.state.Phase != PhaseAwaitingPlayerMove || g.human.IsAuto() {
		return ErrNotPlayerTurn
	}
	return g.play(move)
}

// Undo restores the previous board. Only the board comes back: the side to
// move is kept and the pass counter restarts.
func (g *Game) Undo() bool {
	board, ok := g.history.Undo()
	if !ok {
		return false
	}
	g.restoreBoard(board)
	return true
}

func (g *Game) Redo() bool {
	board, ok := g.history.Redo()
	if !ok {
		return false
	}
	g.restoreBoard(board)
	return true
}

func (g *Game) restoreBoard(board Board) {
	g.state.Board = board
	g.state.Passes = 0
	g.lastMove = NoMove
	g.refresh()
}

// SetStrategy swaps the strategy of seat. An unknown name leaves the current
// one in place.
func (g *Game) SetStrategy(seat Seat, value string) error {
	name, err := ParseStrategyName(value)
	if err != nil {
		return err
	}
	current := g.cpu
	if seat == SeatPlayer {
		current = g.human.Strategy()
	}
	if current != nil && current.Name() == name {
		return nil
	}
	strategy, err := NewStrategy(name, g.config)
	if err != nil {
		return err
	}
	if seat == SeatPlayer {
		g.human.SetStrategy(strategy)
		g.settings.PlayerStrategy = name
	} else {
		g.cpu = strategy
		g.settings.CpuStrategy = name
	}
	log.Printf("[game] %s strategy set to %s", seat, name)
	return nil
}

func (g *Game) SetPlayerAuto(enabled bool) {
	g.human.SetAuto(enabled)
	g.settings.PlayerAuto = enabled
}

// ApplyConfig makes later strategy constructions and live Minmax seats follow cfg.
func (g *Game) ApplyConfig(cfg Config) {
	g.config = cfg
	for _, minmax := range g.minmaxSeats() {
		minmax.SetDepth(cfg.MinmaxDepth)
		minmax.logStats = cfg.LogSearchStats
	}
}

func (g *Game) State() GameState {
	return g.state
}

func (g *Game) Settings() GameSettings {
	return g.settings
}

func (g *Game) LegalMoves() ReversibleMap {
	return g.moves.Clone()
}

func (g *Game) History() MoveHistory {
	return g.history.Clone()
}

func (g *Game) LastMove() Move {
	return g.lastMove
}

// Hint asks the player strategy what it would play on the human's turn.
func (g *Game) Hint() (Move, bool) {
	if g.state.Phase != PhaseAwaitingPlayerMove || len(g.moves) == 0 {
		return NoMove, false
	}
	move := g.human.Strategy().SelectMove(g.state.Board, g.state.ToMove, g.moves.Clone(), g.hintRng)
	if !g.moves.Contains(move) {
		return NoMove, false
	}
	return move, true
}

// Snapshot bookmarks the board and history so Restore can return to them.
func (g *Game) Snapshot() {
	g.snapshot = &gameSnapshot{
		board:       g.state.Board,
		toMove:      g.state.ToMove,
		playerColor: g.state.PlayerColor,
		passes:      g.state.Passes,
		history:     g.history.Clone(),
		lastMove:    g.lastMove,
	}
}

func (g *Game) Restore() error {
	if g.snapshot == nil {
		return ErrNoSnapshot
	}
	snap := g.snapshot
	g.state.Board = snap.board
	g.state.ToMove = snap.toMove
	g.state.PlayerColor = snap.playerColor
	g.state.Passes = snap.passes
	g.history = snap.history.Clone()
	g.lastMove = snap.lastMove
	g.refresh()
	return nil
}

func (g *Game) HasSnapshot() bool {
	return g.snapshot != nil
}

func (g *Game) minmaxSeats() []*MinmaxStrategy {
	var seats []*MinmaxStrategy
	if minmax, ok := g.human.Strategy().(*MinmaxStrategy); ok {
		seats = append(seats, minmax)
	}
	if minmax, ok := g.cpu.(*MinmaxStrategy); ok {
		seats = append(seats, minmax)
	}
	return seats
}

// SaveCache persists the caches of every Minmax seat into one store.
func (g *Game) SaveCache() error {
	seats := g.minmaxSeats()
	caches := make([]*TranspositionCache, 0, len(seats))
	for _, minmax := range seats {
		caches = append(caches, minmax.Cache())
	}
	if err := SaveTranspositionCaches(g.config, caches...); err != nil {
		return fmt.Errorf("save minmax cache: %w", err)
	}
	return nil
}

// CacheEntries reports the number of cached boards per Minmax seat.
func (g *Game) CacheEntries() map[string]int {
	counts := map[string]int{}
	if minmax, ok := g.human.Strategy().(*MinmaxStrategy); ok {
		counts[SeatPlayer.String()] = minmax.Cache().Count()
	}
	if minmax, ok := g.cpu.(*MinmaxStrategy); ok {
		counts[SeatCpu.String()] = minmax.Cache().Count()
	}
	return counts
}

func (g *Game) logMatchup() {
	log.Printf("[game] new game: player=%s (%s) cpu=%s (%s)",
		g.state.PlayerColor, g.human.Strategy().Name(),
		otherPlayer(g.state.PlayerColor), g.cpu.Name())
}

func (g *Game) logResult() {
	if g.state.Phase != PhaseGameOver {
		return
	}
	log.Printf("[game] game over: %s %d-%d", g.state.Result, g.state.Counts.Player, g.state.Counts.Opponent)
}
