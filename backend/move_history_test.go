package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historyBoards(t *testing.T, n int) []Board {
	t.Helper()
	boards := []Board{NewBoard()}
	side := PlayerBlack
	for i := 0; i < n; i++ {
		current := boards[len(boards)-1]
		moves := ReversibleMoves(current, side)
		require.NotEmpty(t, moves)
		next, err := ApplyMove(current, side, moves.Candidates()[0], moves)
		require.NoError(t, err)
		boards = append(boards, next)
		side = otherPlayer(side)
	}
	return boards
}

func TestUndoIsNoOpOnInitialBoard(t *testing.T) {
	history := NewMoveHistory(NewBoard())
	_, ok := history.Undo()
	assert.False(t, ok)
	_, ok = history.Redo()
	assert.False(t, ok)
	assert.Equal(t, 1, history.Size())
}

func TestUndoThenRedoRestoresBoard(t *testing.T) {
	boards := historyBoards(t, 3)
	history := NewMoveHistory(boards[0])
	for _, b := range boards[1:] {
		history.Push(b)
	}

	previous, ok := history.Undo()
	require.True(t, ok)
	assert.Equal(t, boards[2], previous)
	assert.Equal(t, 1, history.RedoSize())

	restored, ok := history.Redo()
	require.True(t, ok)
	assert.Equal(t, boards[3], restored)
	assert.Equal(t, boards[3], history.Latest())
	assert.Equal(t, 0, history.RedoSize())
}

func TestPushAfterUndoDiscardsRedo(t *testing.T) {
	boards := historyBoards(t, 3)
	history := NewMoveHistory(boards[0])
	for _, b := range boards[1:] {
		history.Push(b)
	}
	history.Undo()
	history.Undo()
	require.Equal(t, 2, history.RedoSize())

	history.Push(boards[3])
	assert.Equal(t, 0, history.RedoSize())
	_, ok := history.Redo()
	assert.False(t, ok)
	assert.Equal(t, []Board{boards[0], boards[1], boards[3]}, history.All())
}

func TestCloneDoesNotShareStacks(t *testing.T) {
	boards := historyBoards(t, 2)
	history := NewMoveHistory(boards[0])
	history.Push(boards[1])
	clone := history.Clone()
	history.Push(boards[2])
	assert.Equal(t, 2, clone.Size())
	assert.Equal(t, 3, history.Size())
}
