package room

import "errors"

// UserError is an error that is safe to return in a response
type UserError string

func (u UserError) Error() string {
	return string(u)
}

// IsUserError returns true if the error, or any error it wraps, is a
// UserError
func IsUserError(err error) bool {
	var userError UserError
	return errors.As(err, &userError)
}

// validation errors returned by the engine. Callers can branch on these with
// errors.Is instead of matching message text.
var (
	ErrRoomNotWaiting    = UserError("the room is not accepting players")
	ErrRoomFull          = UserError("the room is full")
	ErrAlreadyJoined     = UserError("you already joined this room")
	ErrNotAPlayer        = UserError("you are not a player in this room")
	ErrNotCreator        = UserError("only the room creator can start the game")
	ErrNotEnoughPlayers  = UserError("not enough players to start the game")
	ErrNotYourTurn       = UserError("it is not your turn")
	ErrAlreadyFolded     = UserError("you already folded")
	ErrInsufficientChips = UserError("you do not have enough chips")
	ErrInvalidAction     = UserError("invalid action")
)
