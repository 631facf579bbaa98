package main

import (
	"fmt"
	"strconv"
	"strings"
)

type Cell int8

const (
	CellEmpty  Cell = 0
	CellBlack  Cell = 1
	CellWhite  Cell = -1
	CellBorder Cell = 2
)

const (
	BoardSize = 8
	gridSize  = BoardSize + 2
)

// Board is the 8x8 playing field wrapped in a one-cell Border frame so that
// directional scans stop on the frame without bounds checks. It is a value:
// assigning a Board copies every cell.
type Board struct {
	cells [gridSize][gridSize]Cell
}

func NewBoard() Board {
	b := EmptyBoard()
	mid := BoardSize / 2
	b.cells[mid][mid] = CellWhite
	b.cells[mid+1][mid+1] = CellWhite
	b.cells[mid][mid+1] = CellBlack
	b.cells[mid+1][mid] = CellBlack
	return b
}

// EmptyBoard returns a board with only the border frame set.
func EmptyBoard() Board {
	b := Board{}
	for i := 0; i < gridSize; i++ {
		b.cells[0][i] = CellBorder
		b.cells[gridSize-1][i] = CellBorder
		b.cells[i][0] = CellBorder
		b.cells[i][gridSize-1] = CellBorder
	}
	return b
}

func (b Board) At(row, col int) Cell {
	return b.cells[row][col]
}

// Set writes a disk or clears a playable cell. Border cells are never touched.
func (b *Board) Set(row, col int, value Cell) {
	if !InPlayableArea(row, col) || value == CellBorder {
		return
	}
	b.cells[row][col] = value
}

func (b Board) IsEmpty(row, col int) bool {
	return b.cells[row][col] == CellEmpty
}

func InPlayableArea(row, col int) bool {
	return row >= 1 && row <= BoardSize && col >= 1 && col <= BoardSize
}

func (b Board) CountEmpty() int {
	count := 0
	for row := 1; row <= BoardSize; row++ {
		for col := 1; col <= BoardSize; col++ {
			if b.cells[row][col] == CellEmpty {
				count++
			}
		}
	}
	return count
}

// Display strips the border and returns the playable region.
func (b Board) Display() [BoardSize][BoardSize]Cell {
	var out [BoardSize][BoardSize]Cell
	for row := 1; row <= BoardSize; row++ {
		for col := 1; col <= BoardSize; col++ {
			out[row-1][col-1] = b.cells[row][col]
		}
	}
	return out
}

// TouchesEdge reports whether any disk sits on the outer ring of the playable region.
func (b Board) TouchesEdge() bool {
	for i := 1; i <= BoardSize; i++ {
		if b.cells[1][i] != CellEmpty || b.cells[BoardSize][i] != CellEmpty {
			return true
		}
		if b.cells[i][1] != CellEmpty || b.cells[i][BoardSize] != CellEmpty {
			return true
		}
	}
	return false
}

// Encode is the canonical cache key of a board: the signed digit of every
// cell of the bordered grid, row-major.
func (b Board) Encode() string {
	var sb strings.Builder
	sb.Grow(gridSize * gridSize * 2)
	for row := 0; row < gridSize; row++ {
		for col := 0; col < gridSize; col++ {
			sb.WriteString(strconv.Itoa(int(b.cells[row][col])))
		}
	}
	return sb.String()
}

// String renders the playable region, one row per line, for logs and test failures.
func (b Board) String() string {
	var sb strings.Builder
	for row := 1; row <= BoardSize; row++ {
		for col := 1; col <= BoardSize; col++ {
			switch b.cells[row][col] {
			case CellBlack:
				sb.WriteByte('X')
			case CellWhite:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (c Cell) String() string {
	switch c {
	case CellBlack:
		return "Black"
	case CellWhite:
		return "White"
	case CellBorder:
		return "Border"
	default:
		return "Empty"
	}
}

func CellFromPlayer(player PlayerColor) Cell {
	if player == PlayerBlack {
		return CellBlack
	}
	return CellWhite
}

func PlayerFromCell(cell Cell) (PlayerColor, error) {
	switch cell {
	case CellBlack:
		return PlayerBlack, nil
	case CellWhite:
		return PlayerWhite, nil
	default:
		return PlayerBlack, fmt.Errorf("%s cell has no player", cell)
	}
}

// ParseBoard builds a board from eight rows of 'X' (black), 'O' (white) and
// '.' (empty). It is used by tests and by snapshot fixtures.
func ParseBoard(rows ...string) (Board, error) {
	if len(rows) != BoardSize {
		return Board{}, fmt.Errorf("expected %d rows, got %d", BoardSize, len(rows))
	}
	b := EmptyBoard()
	for r, line := range rows {
		if len(line) != BoardSize {
			return Board{}, fmt.Errorf("row %d: expected %d cells, got %d", r+1, BoardSize, len(line))
		}
		for c, ch := range line {
			switch ch {
			case 'X', 'x', 'B':
				b.cells[r+1][c+1] = CellBlack
			case 'O', 'o', 'W':
				b.cells[r+1][c+1] = CellWhite
			case '.', '-':
			default:
				return Board{}, fmt.Errorf("row %d: unexpected cell %q", r+1, ch)
			}
		}
	}
	return b, nil
}
