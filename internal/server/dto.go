package server

import (
	"errors"

	"github.com/jagchew1/ireland-cauldron-sub000/internal/engine"
)

// ClientMessage is the single inbound envelope. Type selects the intent;
// the other fields are read per intent.
type ClientMessage struct {
	Type       string `json:"type"`
	CardID     string `json:"cardId,omitempty"`
	Choice     string `json:"choice,omitempty"`     // keep | discard | confirm
	Ingredient string `json:"ingredient,omitempty"` // yew target / rue guess
	Ready      bool   `json:"ready,omitempty"`
	ToPlayerID string `json:"toPlayerId,omitempty"`
	Message    string `json:"message,omitempty"`
}

type ServerMessage struct {
	Type   string     `json:"type"`
	State  *RoomView  `json:"state,omitempty"`
	Events []Event    `json:"events,omitempty"`
	Error  *ErrorView `json:"error,omitempty"`
	Rune   *RuneView  `json:"rune,omitempty"`
}

type ErrorView struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RuneView carries a private message; only the recipient ever sees Message.
type RuneView struct {
	FromPlayerID string `json:"fromPlayerId"`
	Message      string `json:"message"`
}

type Event struct {
	Type       string           `json:"type"`
	Ingredient string           `json:"ingredient,omitempty"`
	Message    string           `json:"message"`
	Revealed   []CenterCardView `json:"revealed,omitempty"`
	Round      int              `json:"round"`
}

func parseChoice(msg ClientMessage) (engine.Choice, error) {
	switch msg.Type {
	case "yew_target":
		if msg.Ingredient == "" {
			return engine.Choice{}, errors.New("ingredient required")
		}
		return engine.Choice{Kind: engine.ChoiceTarget, Ingredient: msg.Ingredient}, nil
	case "resolution_action":
		switch msg.Choice {
		case "keep":
			return engine.Choice{Kind: engine.ChoiceKeep}, nil
		case "discard":
			return engine.Choice{Kind: engine.ChoiceDiscard}, nil
		case "confirm":
			return engine.Choice{Kind: engine.ChoiceConfirm}, nil
		case "guess":
			if msg.Ingredient == "" {
				return engine.Choice{}, errors.New("ingredient required")
			}
			return engine.Choice{Kind: engine.ChoiceGuess, Ingredient: msg.Ingredient}, nil
		default:
			return engine.Choice{}, errors.New("unknown choice")
		}
	default:
		return engine.Choice{}, errors.New("not a resolution intent")
	}
}
