package room

import "fmt"

// ActionType identifies the kind of action a player can take
type ActionType string

// action type constants
const (
	ActionFold  ActionType = "fold"
	ActionCheck ActionType = "check"
	ActionCall  ActionType = "call"
	ActionRaise ActionType = "raise"
	ActionAllIn ActionType = "all-in"
)

// Action is a single player decision. Only a raise carries an amount; the
// constructors below are the only way callers should build one, which keeps
// invalid type/amount combinations out of the engine.
type Action struct {
	Type   ActionType `json:"type"`
	Amount int        `json:"amount,omitempty"`
}

// Fold returns a fold action
func Fold() Action {
	return Action{Type: ActionFold}
}

// Check returns a check action
func Check() Action {
	return Action{Type: ActionCheck}
}

// Call returns a call action
func Call() Action {
	return Action{Type: ActionCall}
}

// Raise returns a raise action to the given total amount
func Raise(amount int) Action {
	return Action{Type: ActionRaise, Amount: amount}
}

// AllIn returns an all-in action
func AllIn() Action {
	return Action{Type: ActionAllIn}
}

// ActionFromString builds an action from its wire identifier
func ActionFromString(s string, amount int) (Action, error) {
	switch ActionType(s) {
	case ActionFold:
		return Fold(), nil
	case ActionCheck:
		return Check(), nil
	case ActionCall:
		return Call(), nil
	case ActionAllIn:
		return AllIn(), nil
	case ActionRaise:
		if amount <= 0 {
			return Action{}, fmt.Errorf("%w: a raise requires an amount", ErrInvalidAction)
		}

		return Raise(amount), nil
	}

	return Action{}, fmt.Errorf("%w: unknown action for identifier: %s", ErrInvalidAction, s)
}

func (a Action) String() string {
	return string(a.Type)
}

// LogMessage returns a message formatted for the game log
func (a Action) LogMessage() string {
	switch a.Type {
	case ActionFold:
		return "folded"
	case ActionCheck:
		return "checked"
	case ActionCall:
		return "called"
	case ActionRaise:
		return fmt.Sprintf("raised to %d", a.Amount)
	case ActionAllIn:
		return "went all-in"
	}

	return ""
}
