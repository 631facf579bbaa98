package main

import "fmt"

// Move is a position on the bordered grid, 1-indexed: playable cells are
// rows and columns 1..8.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NoMove is the sentinel returned by depth-0 search nodes. It addresses a
// border cell, so it is never legal.
var NoMove = Move{}

func NewMove(row, col int) Move {
	return Move{Row: row, Col: col}
}

func (m Move) IsValid() bool {
	return InPlayableArea(m.Row, m.Col)
}

func (m Move) Equals(other Move) bool {
	return m.Row == other.Row && m.Col == other.Col
}

func (m Move) String() string {
	if !m.IsValid() {
		return "--"
	}
	return fmt.Sprintf("%c%d", 'a'+rune(m.Col-1), m.Row)
}
