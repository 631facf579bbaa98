package main

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParseBoard(t *testing.T, rows ...string) Board {
	t.Helper()
	board, err := ParseBoard(rows...)
	require.NoError(t, err)
	return board
}

// captureScenario gives Black exactly two candidates: (1,5) flipping three
// disks and (8,5) flipping one.
func captureScenario(t *testing.T) Board {
	return mustParseBoard(t,
		"XOOO....",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		".....OX.",
	)
}

func TestInitialBoardHasFourSingleCaptureMoves(t *testing.T) {
	moves := ReversibleMoves(NewBoard(), PlayerBlack)
	assert.Equal(t, []Move{{3, 4}, {4, 3}, {5, 6}, {6, 5}}, moves.Candidates())
	for move, captures := range moves {
		assert.Len(t, captures, 1, "move %s", move)
	}
	assert.Len(t, ReversibleMoves(NewBoard(), PlayerWhite), 4)
}

func TestReversibleMovesUnionsAllDirections(t *testing.T) {
	board := mustParseBoard(t,
		".OX.....",
		"OO......",
		"X.X.....",
		"........",
		"........",
		"........",
		"........",
		"........",
	)
	moves := ReversibleMoves(board, PlayerBlack)
	captures, ok := moves[Move{Row: 1, Col: 1}]
	require.True(t, ok)
	assert.ElementsMatch(t, []Move{{1, 2}, {2, 1}, {2, 2}}, captures)
}

func TestCaptureScenarioCounts(t *testing.T) {
	moves := ReversibleMoves(captureScenario(t), PlayerBlack)
	require.Len(t, moves, 2)
	assert.Len(t, moves[Move{Row: 1, Col: 5}], 3)
	assert.Len(t, moves[Move{Row: 8, Col: 5}], 1)
}

func TestSurroundedEmptyCellWithoutCaptureIsAbsent(t *testing.T) {
	board := mustParseBoard(t,
		"........",
		"........",
		"...OOO..",
		"...O.O..",
		"...OOO..",
		"........",
		"........",
		"........",
	)
	moves := ReversibleMoves(board, PlayerBlack)
	assert.False(t, moves.Contains(Move{Row: 4, Col: 5}))
	assert.Empty(t, moves)
}

func TestApplyMoveRejectsNonCandidate(t *testing.T) {
	board := NewBoard()
	moves := ReversibleMoves(board, PlayerBlack)
	next, err := ApplyMove(board, PlayerBlack, Move{Row: 1, Col: 1}, moves)
	assert.True(t, errors.Is(err, ErrIllegalMove))
	assert.Equal(t, board, next)
}

// Every candidate flips exactly its capture list, along random games.
func TestApplyMoveFlipsExactlyTheCaptures(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for game := 0; game < 20; game++ {
		board := NewBoard()
		side := PlayerBlack
		passes := 0
		for passes < 2 && board.CountEmpty() > 0 {
			moves := ReversibleMoves(board, side)
			if len(moves) == 0 {
				passes++
				side = otherPlayer(side)
				continue
			}
			passes = 0
			for move, captures := range moves {
				require.NotEmpty(t, captures)
				next, err := ApplyMove(board, side, move, moves)
				require.NoError(t, err)
				assertOnlyChanged(t, board, next, side, move, captures)
			}
			candidates := moves.Candidates()
			next, err := ApplyMove(board, side, candidates[rng.IntN(len(candidates))], moves)
			require.NoError(t, err)
			board = next
			side = otherPlayer(side)
		}
	}
}

func assertOnlyChanged(t *testing.T, before, after Board, side PlayerColor, move Move, captures []Move) {
	t.Helper()
	changed := map[Move]bool{move: true}
	for _, c := range captures {
		changed[c] = true
	}
	mine := CellFromPlayer(side)
	for row := 0; row < gridSize; row++ {
		for col := 0; col < gridSize; col++ {
			pos := Move{Row: row, Col: col}
			if changed[pos] {
				require.Equal(t, mine, after.At(row, col), "cell %v", pos)
				continue
			}
			require.Equal(t, before.At(row, col), after.At(row, col), "cell %v", pos)
		}
	}
}

func TestJudgeClassifiesFullBoards(t *testing.T) {
	win := mustParseBoard(t,
		"XXXXXXXX",
		"XXXXXXXX",
		"XXXXXXXX",
		"XXXXXXXX",
		"XXXOOOOO",
		"OOOOOOOO",
		"OOOOOOOO",
		"OOOOOOOO",
	)
	own, opponent, blank := CountDisks(win, PlayerBlack)
	require.Equal(t, []int{35, 29, 0}, []int{own, opponent, blank})

	result, over := Judge(win, PlayerBlack, 0)
	assert.True(t, over)
	assert.Equal(t, ResultWin, result)

	result, _ = Judge(win, PlayerWhite, 0)
	assert.Equal(t, ResultLose, result)

	draw := mustParseBoard(t,
		"XXXXXXXX",
		"XXXXXXXX",
		"XXXXXXXX",
		"XXXXXXXX",
		"OOOOOOOO",
		"OOOOOOOO",
		"OOOOOOOO",
		"OOOOOOOO",
	)
	result, over = Judge(draw, PlayerWhite, 0)
	assert.True(t, over)
	assert.Equal(t, ResultDraw, result)
}

func TestJudgeNeedsTwoPassesOrFullBoard(t *testing.T) {
	board := NewBoard()
	for passes := 0; passes < 2; passes++ {
		result, over := Judge(board, PlayerBlack, passes)
		assert.False(t, over)
		assert.Equal(t, ResultUndecided, result)
	}
	result, over := Judge(board, PlayerBlack, 2)
	assert.True(t, over)
	assert.Equal(t, ResultDraw, result)
}
