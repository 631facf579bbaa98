package main

import (
	"errors"
	"fmt"
	"sort"
)

var ErrIllegalMove = errors.New("illegal move")

// The eight scan directions. (0,0) is deliberately absent: scanning it would
// compare a cell with itself.
var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// ReversibleMap maps every legal placement to the disks it would flip.
// A key never has an empty capture list.
type ReversibleMap map[Move][]Move

// Candidates returns the legal placements in row-major order.
func (m ReversibleMap) Candidates() []Move {
	moves := make([]Move, 0, len(m))
	for move := range m {
		moves = append(moves, move)
	}
	sort.Slice(moves, func(i, j int) bool {
		if moves[i].Row != moves[j].Row {
			return moves[i].Row < moves[j].Row
		}
		return moves[i].Col < moves[j].Col
	})
	return moves
}

func (m ReversibleMap) Contains(move Move) bool {
	_, ok := m[move]
	return ok
}

func ReversibleMoves(board Board, side PlayerColor) ReversibleMap {
	moves := ReversibleMap{}
	for row := 1; row <= BoardSize; row++ {
		for col := 1; col <= BoardSize; col++ {
			if !board.IsEmpty(row, col) {
				continue
			}
			if captures := findCaptures(board, row, col, side); len(captures) > 0 {
				moves[Move{Row: row, Col: col}] = captures
			}
		}
	}
	return moves
}

func findCaptures(board Board, row, col int, side PlayerColor) []Move {
	own := CellFromPlayer(side)
	opponent := CellFromPlayer(otherPlayer(side))
	var captures []Move
	for _, d := range directions {
		r, c := row+d[0], col+d[1]
		run := 0
		for board.At(r, c) == opponent {
			r += d[0]
			c += d[1]
			run++
		}
		if run == 0 || board.At(r, c) != own {
			continue
		}
		for step := 1; step <= run; step++ {
			captures = append(captures, Move{Row: row + d[0]*step, Col: col + d[1]*step})
		}
	}
	return captures
}

// ApplyMove places side's disk and flips its captures on a copy of board.
func ApplyMove(board Board, side PlayerColor, move Move, moves ReversibleMap) (Board, error) {
	captures, ok := moves[move]
	if !ok {
		return board, fmt.Errorf("%w: %s for %s", ErrIllegalMove, move, side)
	}
	next := board
	cell := CellFromPlayer(side)
	next.Set(move.Row, move.Col, cell)
	for _, captured := range captures {
		next.Set(captured.Row, captured.Col, cell)
	}
	return next, nil
}

func CountDisks(board Board, side PlayerColor) (own, opponent, blank int) {
	mine := CellFromPlayer(side)
	theirs := CellFromPlayer(otherPlayer(side))
	for row := 1; row <= BoardSize; row++ {
		for col := 1; col <= BoardSize; col++ {
			switch board.At(row, col) {
			case mine:
				own++
			case theirs:
				opponent++
			case CellEmpty:
				blank++
			}
		}
	}
	return own, opponent, blank
}

// IsTerminal applies the end-of-game rule: two consecutive passes or no blank cell left.
func IsTerminal(passes, blank int) bool {
	return passes >= 2 || blank == 0
}

// ClassifyResult compares disk counts from one side's perspective.
func ClassifyResult(own, opponent int) GameResult {
	switch {
	case own > opponent:
		return ResultWin
	case own < opponent:
		return ResultLose
	default:
		return ResultDraw
	}
}

// Judge returns the result from perspective's point of view and whether the
// game is over on board with the given pass counter.
func Judge(board Board, perspective PlayerColor, passes int) (GameResult, bool) {
	own, opponent, blank := CountDisks(board, perspective)
	if !IsTerminal(passes, blank) {
		return ResultUndecided, false
	}
	return ClassifyResult(own, opponent), true
}

func (m ReversibleMap) Clone() ReversibleMap {
	out := make(ReversibleMap, len(m))
	for move, captures := range m {
		out[move] = append([]Move(nil), captures...)
	}
	return out
}
