package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.CacheEnablePersistence = false
	cfg.CacheSaveOnExit = false
	cfg.MinmaxDepth = 2
	return cfg
}

func newTestGame(t *testing.T, settings GameSettings) *Game {
	t.Helper()
	game, err := NewGame(settings, testConfig(t), testRNG(17))
	require.NoError(t, err)
	return game
}

// setBoard replaces the live position, as a loaded fixture would.
func setBoard(g *Game, board Board, toMove PlayerColor) {
	g.state.Board = board
	g.state.ToMove = toMove
	g.state.Passes = 0
	g.history.Reset(board)
	g.refresh()
}

func TestNewGameAsBlackAwaitsPlayer(t *testing.T) {
	game := newTestGame(t, DefaultGameSettings())
	state := game.State()
	assert.Equal(t, PlayerBlack, state.PlayerColor)
	assert.Equal(t, PhaseAwaitingPlayerMove, state.Phase)
	assert.Equal(t, Counts{Player: 2, Opponent: 2, Blank: 60}, state.Counts)
	assert.Equal(t, ResultUndecided, state.Result)
	assert.Len(t, game.LegalMoves(), 4)
}

func TestNewGameAsWhiteLetsCpuOpen(t *testing.T) {
	settings := DefaultGameSettings()
	settings.Color = AssignWhite
	game := newTestGame(t, settings)
	require.Equal(t, PhaseAwaitingCpuMove, game.State().Phase)

	err := game.SubmitMove(Move{Row: 3, Col: 4})
	assert.True(t, errors.Is(err, ErrNotPlayerTurn))

	require.True(t, game.Advance())
	state := game.State()
	assert.Equal(t, PhaseAwaitingPlayerMove, state.Phase)
	assert.Equal(t, PlayerWhite, state.ToMove)
	assert.Equal(t, 2, game.History().Size())
	assert.Equal(t, Counts{Player: 1, Opponent: 4, Blank: 59}, state.Counts)
}

func TestRandomAssignmentPicksAColor(t *testing.T) {
	settings := DefaultGameSettings()
	settings.Color = AssignRandom
	seen := map[PlayerColor]bool{}
	game := newTestGame(t, settings)
	for i := 0; i < 50; i++ {
		game.Reset(AssignRandom)
		seen[game.State().PlayerColor] = true
	}
	assert.Len(t, seen, 2)
}

func TestSubmitMoveAppliesLegalMove(t *testing.T) {
	game := newTestGame(t, DefaultGameSettings())
	require.NoError(t, game.SubmitMove(Move{Row: 3, Col: 4}))
	state := game.State()
	assert.Equal(t, PlayerWhite, state.ToMove)
	assert.Equal(t, PhaseAwaitingCpuMove, state.Phase)
	assert.Equal(t, 0, state.Passes)
	assert.Equal(t, Counts{Player: 4, Opponent: 1, Blank: 59}, state.Counts)
	assert.Equal(t, 2, game.History().Size())
	assert.Equal(t, Move{Row: 3, Col: 4}, game.LastMove())
}

func TestSubmitIllegalMoveLeavesStateUntouched(t *testing.T) {
	game := newTestGame(t, DefaultGameSettings())
	before := game.State()
	err := game.SubmitMove(Move{Row: 1, Col: 1})
	assert.True(t, errors.Is(err, ErrIllegalMove))
	assert.Equal(t, before, game.State())
	assert.Equal(t, 1, game.History().Size())
}

func TestPassesDoNotTouchHistoryAndEndTheGame(t *testing.T) {
	game := newTestGame(t, DefaultGameSettings())
	// Black cannot bracket the corner disk; White captures along the edge.
	setBoard(game, mustParseBoard(t,
		"OX......",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
	), PlayerBlack)
	require.Empty(t, game.LegalMoves())
	require.Equal(t, PhaseAwaitingPlayerMove, game.State().Phase)

	require.True(t, game.Advance())
	state := game.State()
	assert.Equal(t, 1, state.Passes)
	assert.Equal(t, PlayerWhite, state.ToMove)
	assert.Equal(t, 1, game.History().Size())
	assert.Equal(t, PhaseAwaitingCpuMove, state.Phase)

	require.True(t, game.Advance())
	state = game.State()
	assert.Equal(t, 0, state.Passes, "a move resets the pass counter")
	assert.Equal(t, 2, game.History().Size())

	// Black has no disk left, then White has nothing to capture.
	require.True(t, game.Advance())
	assert.Equal(t, 1, game.State().Passes)
	assert.NotEqual(t, PhaseGameOver, game.State().Phase)
	require.True(t, game.Advance())
	state = game.State()
	assert.Equal(t, 2, state.Passes)
	assert.Equal(t, PhaseGameOver, state.Phase)
	assert.Equal(t, ResultLose, state.Result)
	assert.Equal(t, 2, game.History().Size())

	assert.False(t, game.Advance())
	assert.True(t, errors.Is(game.SubmitMove(Move{Row: 1, Col: 4}), ErrGameOver))
}

func TestFullBoardEndsTheGame(t *testing.T) {
	full := mustParseBoard(t,
		"XXXXXXXX",
		"XXXXXXXX",
		"XXXXXXXX",
		"XXXXXXXX",
		"XXXOOOOO",
		"OOOOOOOO",
		"OOOOOOOO",
		"OOOOOOOO",
	)
	game := newTestGame(t, DefaultGameSettings())
	setBoard(game, full, PlayerWhite)
	state := game.State()
	assert.Equal(t, PhaseGameOver, state.Phase)
	assert.Equal(t, ResultWin, state.Result)
	assert.Equal(t, Counts{Player: 35, Opponent: 29, Blank: 0}, state.Counts)

	settings := DefaultGameSettings()
	settings.Color = AssignWhite
	white := newTestGame(t, settings)
	setBoard(white, full, PlayerBlack)
	assert.Equal(t, ResultLose, white.State().Result)
	assert.Equal(t, Counts{Player: 29, Opponent: 35, Blank: 0}, white.State().Counts)
}

func TestUndoRedoRestoreBoardsOnly(t *testing.T) {
	game := newTestGame(t, DefaultGameSettings())
	initial := game.State().Board
	require.NoError(t, game.SubmitMove(Move{Row: 3, Col: 4}))
	afterPlayer := game.State().Board
	require.True(t, game.Advance())
	afterCpu := game.State().Board
	toMove := game.State().ToMove

	require.True(t, game.Undo())
	assert.Equal(t, afterPlayer, game.State().Board)
	assert.Equal(t, toMove, game.State().ToMove)
	assert.Equal(t, 1, game.History().RedoSize())

	require.True(t, game.Redo())
	assert.Equal(t, afterCpu, game.State().Board)
	assert.False(t, game.Redo())

	require.True(t, game.Undo())
	require.True(t, game.Undo())
	assert.Equal(t, initial, game.State().Board)
	assert.False(t, game.Undo())
	assert.Equal(t, 2, game.History().RedoSize())
}

func TestMoveAfterUndoDiscardsRedo(t *testing.T) {
	game := newTestGame(t, DefaultGameSettings())
	require.NoError(t, game.SubmitMove(Move{Row: 3, Col: 4}))
	require.True(t, game.Advance())
	require.True(t, game.Undo())
	require.True(t, game.Undo())
	require.Equal(t, 2, game.History().RedoSize())

	require.Equal(t, PhaseAwaitingPlayerMove, game.State().Phase)
	require.NoError(t, game.SubmitMove(game.LegalMoves().Candidates()[0]))
	assert.Equal(t, 0, game.History().RedoSize())
	assert.False(t, game.Redo())
}

func TestUndoOutOfGameOverResumes(t *testing.T) {
	game := newTestGame(t, DefaultGameSettings())
	setBoard(game, mustParseBoard(t,
		"OX......",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
	), PlayerBlack)
	for game.Advance() {
	}
	require.Equal(t, PhaseGameOver, game.State().Phase)

	require.True(t, game.Undo())
	state := game.State()
	assert.Equal(t, 0, state.Passes)
	assert.Equal(t, ResultUndecided, state.Result)
	assert.NotEqual(t, PhaseGameOver, state.Phase)
}

func TestSetStrategyRejectsUnknownName(t *testing.T) {
	game := newTestGame(t, DefaultGameSettings())
	require.NoError(t, game.SetStrategy(SeatCpu, "maximize"))
	err := game.SetStrategy(SeatCpu, "deep-blue")
	assert.True(t, errors.Is(err, ErrUnknownStrategy))
	assert.Equal(t, StrategyMaximize, game.Settings().CpuStrategy)
	assert.Equal(t, StrategyMaximize, game.cpu.Name())
}

func TestSetStrategyKeepsMinmaxCache(t *testing.T) {
	game := newTestGame(t, DefaultGameSettings())
	require.NoError(t, game.SetStrategy(SeatPlayer, "minmax"))
	first := game.human.Strategy()
	require.NoError(t, game.SetStrategy(SeatPlayer, "min-max"))
	assert.Same(t, first, game.human.Strategy())
}

func TestPlayerAutoPlaysFromAdvance(t *testing.T) {
	game := newTestGame(t, DefaultGameSettings())
	assert.False(t, game.Advance(), "human turn without auto does nothing")

	game.SetPlayerAuto(true)
	assert.True(t, errors.Is(game.SubmitMove(Move{Row: 3, Col: 4}), ErrNotPlayerTurn))
	require.True(t, game.Advance())
	assert.Equal(t, PlayerWhite, game.State().ToMove)
}

func TestAutoGamesReachGameOver(t *testing.T) {
	for _, cpu := range StrategyNames {
		settings := DefaultGameSettings()
		settings.PlayerAuto = true
		settings.PlayerStrategy = StrategyMaximize
		settings.CpuStrategy = cpu
		game := newTestGame(t, settings)
		for i := 0; i < 200 && game.Advance(); i++ {
			state := game.State()
			over := state.Passes >= 2 || state.Counts.Blank == 0
			require.Equal(t, over, state.Phase == PhaseGameOver)
		}
		state := game.State()
		require.Equal(t, PhaseGameOver, state.Phase, "cpu %s", cpu)
		assert.NotEqual(t, ResultUndecided, state.Result)
		assert.Equal(t, ClassifyResult(state.Counts.Player, state.Counts.Opponent), state.Result)
	}
}

func TestHintOnlyOnPlayerTurn(t *testing.T) {
	game := newTestGame(t, DefaultGameSettings())
	move, ok := game.Hint()
	require.True(t, ok)
	assert.True(t, game.LegalMoves().Contains(move))

	require.NoError(t, game.SubmitMove(move))
	_, ok = game.Hint()
	assert.False(t, ok)
}

func TestSnapshotRestore(t *testing.T) {
	game := newTestGame(t, DefaultGameSettings())
	assert.True(t, errors.Is(game.Restore(), ErrNoSnapshot))

	require.NoError(t, game.SubmitMove(Move{Row: 3, Col: 4}))
	game.Snapshot()
	saved := game.State()

	require.True(t, game.Advance())
	require.NoError(t, game.SubmitMove(game.LegalMoves().Candidates()[0]))
	require.NoError(t, game.Restore())
	assert.Equal(t, saved, game.State())
	assert.Equal(t, 2, game.History().Size())
}

func TestNewGameKeepsStrategies(t *testing.T) {
	game := newTestGame(t, DefaultGameSettings())
	require.NoError(t, game.SetStrategy(SeatCpu, "evenness"))
	game.Reset(AssignWhite)
	assert.Equal(t, StrategyEvenness, game.cpu.Name())
	assert.Equal(t, PlayerWhite, game.State().PlayerColor)
	assert.Equal(t, 1, game.History().Size())
}

func TestSaveCacheMergesMinmaxSeats(t *testing.T) {
	withoutDockerCacheDir(t)
	cfg := testConfig(t)
	cfg.CacheEnablePersistence = true
	cfg.CachePersistencePath = t.TempDir() + "/minmax_cache.json"
	settings := DefaultGameSettings()
	settings.PlayerStrategy = StrategyMinmax
	settings.CpuStrategy = StrategyMinmax
	settings.PlayerAuto = true
	game, err := NewGame(settings, cfg, testRNG(3))
	require.NoError(t, err)
	require.True(t, game.Advance())
	require.True(t, game.Advance())

	counts := game.CacheEntries()
	assert.Greater(t, counts["player"], 0)
	assert.Greater(t, counts["cpu"], 0)
	require.NoError(t, game.SaveCache())

	loaded := LoadTranspositionCache(cfg)
	assert.GreaterOrEqual(t, loaded.Count(), counts["player"])
}

func TestApplyConfigUpdatesMinmaxDepth(t *testing.T) {
	settings := DefaultGameSettings()
	settings.CpuStrategy = StrategyMinmax
	game := newTestGame(t, settings)
	cfg := testConfig(t)
	cfg.MinmaxDepth = 4
	game.ApplyConfig(cfg)
	assert.Equal(t, 4, game.cpu.(*MinmaxStrategy).Depth())
}
