package main

// MoveHistory keeps every board reached in the game. log[0] is the initial
// board; redo holds undone boards with the most recent undo last.
type MoveHistory struct {
	log  []Board
	redo []Board
}

func NewMoveHistory(initial Board) MoveHistory {
	return MoveHistory{log: []Board{initial}}
}

func (h *MoveHistory) Reset(initial Board) {
	h.log = []Board{initial}
	h.redo = nil
}

// Push records a newly reached board and discards the redo stack.
func (h *MoveHistory) Push(board Board) {
	h.log = append(h.log, board)
	h.redo = nil
}

// Undo moves the latest board to the redo stack and returns the new top of
// the log. It is a no-op when only the initial board remains.
func (h *MoveHistory) Undo() (Board, bool) {
	if len(h.log) <= 1 {
		return Board{}, false
	}
	last := h.log[len(h.log)-1]
	h.log = h.log[:len(h.log)-1]
	h.redo = append(h.redo, last)
	return h.log[len(h.log)-1], true
}

func (h *MoveHistory) Redo() (Board, bool) {
	if len(h.redo) == 0 {
		return Board{}, false
	}
	board := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.log = append(h.log, board)
	return board, true
}

func (h MoveHistory) Size() int {
	return len(h.log)
}

func (h MoveHistory) RedoSize() int {
	return len(h.redo)
}

func (h MoveHistory) Latest() Board {
	return h.log[len(h.log)-1]
}

func (h MoveHistory) All() []Board {
	return append([]Board(nil), h.log...)
}

func (h MoveHistory) Clone() MoveHistory {
	return MoveHistory{
		log:  append([]Board(nil), h.log...),
		redo: append([]Board(nil), h.redo...),
	}
}
