package main

import (
	"errors"
	"fmt"
	"strings"
)

type StrategyName string

const (
	StrategyRandom   StrategyName = "random"
	StrategyMaximize StrategyName = "maximize"
	StrategyMinimize StrategyName = "minimize"
	StrategyOpenness StrategyName = "openness"
	StrategyEvenness StrategyName = "evenness"
	StrategyMinmax   StrategyName = "minmax"
)

var (
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrUnknownSide     = errors.New("unknown side")
)

// StrategyNames lists every selectable strategy in menu order.
var StrategyNames = []StrategyName{
	StrategyRandom,
	StrategyMaximize,
	StrategyMinimize,
	StrategyOpenness,
	StrategyEvenness,
	StrategyMinmax,
}

func ParseStrategyName(value string) (StrategyName, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "random":
		return StrategyRandom, nil
	case "maximize":
		return StrategyMaximize, nil
	case "minimize":
		return StrategyMinimize, nil
	case "openness", "openness_theory":
		return StrategyOpenness, nil
	case "evenness", "evenness_theory":
		return StrategyEvenness, nil
	case "minmax", "min-max":
		return StrategyMinmax, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, value)
	}
}

// NewStrategy builds the named strategy. A Minmax strategy loads its
// transposition cache here.
func NewStrategy(name StrategyName, cfg Config) (Strategy, error) {
	switch name {
	case StrategyRandom:
		return RandomStrategy{}, nil
	case StrategyMaximize:
		return CaptureCountStrategy{maximize: true}, nil
	case StrategyMinimize:
		return CaptureCountStrategy{maximize: false}, nil
	case StrategyOpenness:
		return OpennessStrategy{}, nil
	case StrategyEvenness:
		return EvennessStrategy{}, nil
	case StrategyMinmax:
		minmax := NewMinmaxStrategy(cfg.MinmaxDepth, LoadTranspositionCache(cfg))
		minmax.logStats = cfg.LogSearchStats
		return minmax, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Seat identifies which side of the table a strategy is configured for.
type Seat int

const (
	SeatPlayer Seat = iota
	SeatCpu
)

func ParseSeat(value string) (Seat, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "player", "human":
		return SeatPlayer, nil
	case "cpu", "ai":
		return SeatCpu, nil
	default:
		return SeatPlayer, fmt.Errorf("%w: %q", ErrUnknownSide, value)
	}
}

func (s Seat) String() string {
	if s == SeatCpu {
		return "cpu"
	}
	return "player"
}
