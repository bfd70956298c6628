package lobby

import (
	"context"
	"errors"

	"pokerbot-server/pkg/room"
)

// ErrRoomNotFound is returned when the room does not exist
var ErrRoomNotFound = room.UserError("room not found")

// ErrVersionConflict is returned when a save lost a concurrent update race.
// The lobby's per-room lock makes this unreachable within one process; the
// check guards against multiple processes sharing a store.
var ErrVersionConflict = errors.New("room was modified concurrently")

// Store durably holds room records
// Implementations must return independent copies from GetRoom, and SaveRoom
// must perform an optimistic version check: it succeeds and bumps
// room.Version only if the stored version still matches.
type Store interface {
	CreateRoom(ctx context.Context, r *room.Room) error
	GetRoom(ctx context.Context, uuid string) (*room.Room, error)
	SaveRoom(ctx context.Context, r *room.Room) error
	ActiveRoomUUIDs(ctx context.Context) ([]string, error)
}
