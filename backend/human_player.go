package main

// HumanPlayer is the human seat. Its strategy powers hints and, with auto
// enabled, plays the human's moves from Advance.
type HumanPlayer struct {
	strategy Strategy
	auto     bool
}

func NewHumanPlayer(strategy Strategy) *HumanPlayer {
	return &HumanPlayer{strategy: strategy}
}

func (h *HumanPlayer) IsAuto() bool {
	return h.auto
}

func (h *HumanPlayer) SetAuto(enabled bool) {
	h.auto = enabled
}

func (h *HumanPlayer) Strategy() Strategy {
	return h.strategy
}

func (h *HumanPlayer) SetStrategy(strategy Strategy) {
	h.strategy = strategy
}
