package main

// hintPayload is the player strategy's suggestion for the human's turn.
// Active is false when no suggestion applies.
type hintPayload struct {
	Move     *Move  `json:"move,omitempty"`
	Strategy string `json:"strategy,omitempty"`
	Active   bool   `json:"active"`
}

func currentHint(controller *GameController) hintPayload {
	move, ok := controller.Hint()
	if !ok {
		return hintPayload{Active: false}
	}
	return hintPayload{
		Move:     &move,
		Strategy: string(controller.Settings().PlayerStrategy),
		Active:   true,
	}
}
