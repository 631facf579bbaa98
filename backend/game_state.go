package main

import (
	"errors"
	"fmt"
	"strings"
)

// PlayerColor doubles as the sign of a side: Black is +1, White is -1.
type PlayerColor int

type GameResult int

type GamePhase int

const (
	PlayerBlack PlayerColor = 1
	PlayerWhite PlayerColor = -1
)

const (
	ResultUndecided GameResult = iota
	ResultWin
	ResultLose
	ResultDraw
)

const (
	PhaseAwaitingPlayerMove GamePhase = iota
	PhaseAwaitingCpuMove
	PhaseGameOver
)

var ErrUnknownColor = errors.New("unknown color")

func otherPlayer(player PlayerColor) PlayerColor {
	return -player
}

func (p PlayerColor) String() string {
	if p == PlayerBlack {
		return "black"
	}
	return "white"
}

// Counts are disk totals from the human player's perspective.
type Counts struct {
	Player   int `json:"player"`
	Opponent int `json:"opponent"`
	Blank    int `json:"blank"`
}

// GameState is a read-only view of the controller's bookkeeping.
type GameState struct {
	Board       Board
	ToMove      PlayerColor
	PlayerColor PlayerColor
	Passes      int
	Counts      Counts
	Result      GameResult
	Phase       GamePhase
}

func (r GameResult) String() string {
	switch r {
	case ResultWin:
		return "win"
	case ResultLose:
		return "lose"
	case ResultDraw:
		return "draw"
	default:
		return "undecided"
	}
}

func (p GamePhase) String() string {
	switch p {
	case PhaseAwaitingPlayerMove:
		return "awaiting_player_move"
	case PhaseAwaitingCpuMove:
		return "awaiting_cpu_move"
	default:
		return "game_over"
	}
}

// ColorAssignment chooses the human's color at the start of a game.
type ColorAssignment int

const (
	AssignBlack ColorAssignment = iota
	AssignWhite
	AssignRandom
)

func ParseColorAssignment(value string) (ColorAssignment, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "black", "b", "":
		return AssignBlack, nil
	case "white", "w":
		return AssignWhite, nil
	case "random":
		return AssignRandom, nil
	default:
		return AssignBlack, fmt.Errorf("%w: %q", ErrUnknownColor, value)
	}
}

func (c ColorAssignment) String() string {
	switch c {
	case AssignWhite:
		return "white"
	case AssignRandom:
		return "random"
	default:
		return "black"
	}
}
