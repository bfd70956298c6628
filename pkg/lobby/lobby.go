package lobby

import (
	"context"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/sirupsen/logrus"

	"pokerbot-server/internal/rng"
	"pokerbot-server/pkg/room"
)

// Lobby coordinates access to rooms. Every mutation runs under a per-room
// lock and goes through the store's optimistic version check, so concurrent
// requests against the same room are applied one at a time.
type Lobby struct {
	store       Store
	generator   rng.Generator
	clock       quartz.Clock
	turnTimeout time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	subs *subscriptions
}

// New returns a new lobby
func New(store Store, generator rng.Generator, clock quartz.Clock, turnTimeout time.Duration) *Lobby {
	return &Lobby{
		store:       store,
		generator:   generator,
		clock:       clock,
		turnTimeout: turnTimeout,
		locks:       make(map[string]*sync.Mutex),
		subs:        newSubscriptions(),
	}
}

// roomLock returns the mutex for the room, creating it on first use
func (l *Lobby) roomLock(uuid string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[uuid]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[uuid] = lock
	}

	return lock
}

// withRoom loads a room, applies the mutation, saves it back, and publishes
// the update to subscribers. The per-room lock is held for the full cycle.
func (l *Lobby) withRoom(ctx context.Context, uuid string, fn func(r *room.Room) error) (*room.Room, error) {
	lock := l.roomLock(uuid)
	lock.Lock()
	defer lock.Unlock()

	r, err := l.store.GetRoom(ctx, uuid)
	if err != nil {
		return nil, err
	}

	if err := fn(r); err != nil {
		return nil, err
	}

	if err := l.store.SaveRoom(ctx, r); err != nil {
		return nil, err
	}

	l.subs.publish(r)
	return r, nil
}

// CreateRoom creates a room and seats the creator with the given buy-in
func (l *Lobby) CreateRoom(ctx context.Context, opts room.Options, creatorID int64, buyIn int) (*room.Room, error) {
	now := l.clock.Now()

	r, err := room.New(opts, creatorID, now)
	if err != nil {
		return nil, err
	}

	if err := r.AddPlayer(creatorID, buyIn, now); err != nil {
		return nil, err
	}

	if err := l.store.CreateRoom(ctx, r); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"room":    r.UUID,
		"creator": creatorID,
	}).Info("room created")

	return r, nil
}

// JoinRoom seats a player in the room
func (l *Lobby) JoinRoom(ctx context.Context, uuid string, playerID int64, buyIn int) (*room.Room, error) {
	return l.withRoom(ctx, uuid, func(r *room.Room) error {
		return r.AddPlayer(playerID, buyIn, l.clock.Now())
	})
}

// LeaveRoom removes a player from a room that has not started
func (l *Lobby) LeaveRoom(ctx context.Context, uuid string, playerID int64) (*room.Room, error) {
	return l.withRoom(ctx, uuid, func(r *room.Room) error {
		return r.RemovePlayer(playerID)
	})
}

// StartGame begins the hand. Only the room's creator may start it.
func (l *Lobby) StartGame(ctx context.Context, uuid string, requesterID int64) (*room.Room, error) {
	r, err := l.withRoom(ctx, uuid, func(r *room.Room) error {
		return r.StartGame(requesterID, l.generator, l.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"room":    uuid,
		"players": len(r.Players),
	}).Info("hand started")

	return r, nil
}

// ApplyAction applies a betting action for the player
func (l *Lobby) ApplyAction(ctx context.Context, uuid string, playerID int64, action room.Action) (*room.Room, error) {
	r, err := l.withRoom(ctx, uuid, func(r *room.Room) error {
		return r.ApplyAction(playerID, action, l.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"room":   uuid,
		"player": playerID,
		"action": action.String(),
	}).Info("action applied")

	return r, nil
}

// GetState returns the room projected for the viewer
func (l *Lobby) GetState(ctx context.Context, uuid string, viewerID int64) (*room.Snapshot, error) {
	r, err := l.store.GetRoom(ctx, uuid)
	if err != nil {
		return nil, err
	}

	return r.Snapshot(viewerID), nil
}

// Subscribe registers the viewer for live updates to the room. An initial
// snapshot is delivered immediately.
func (l *Lobby) Subscribe(ctx context.Context, uuid string, viewerID int64) (<-chan *room.Snapshot, func(), error) {
	r, err := l.store.GetRoom(ctx, uuid)
	if err != nil {
		return nil, nil, err
	}

	ch, cancel := l.subs.subscribe(uuid, viewerID)

	// the channel is freshly created and buffered, so seeding the stream with
	// the current state cannot block
	ch <- r.Snapshot(viewerID)

	return ch, cancel, nil
}

// TickTimeout force-folds the room's current player if their turn clock has
// expired. It reports whether a fold was applied.
func (l *Lobby) TickTimeout(ctx context.Context, uuid string) (bool, error) {
	lock := l.roomLock(uuid)
	lock.Lock()
	defer lock.Unlock()

	r, err := l.store.GetRoom(ctx, uuid)
	if err != nil {
		return false, err
	}

	folded, err := r.TickTimeout(l.clock.Now(), l.turnTimeout)
	if err != nil {
		return false, err
	}

	if !folded {
		return false, nil
	}

	if err := l.store.SaveRoom(ctx, r); err != nil {
		return false, err
	}

	l.subs.publish(r)

	logrus.WithFields(logrus.Fields{
		"room": uuid,
	}).Info("player timed out and was folded")

	return true, nil
}

// SweepTimeouts runs the timeout check across every active room. Errors are
// logged per room; one broken room does not stop the sweep.
func (l *Lobby) SweepTimeouts(ctx context.Context) {
	uuids, err := l.store.ActiveRoomUUIDs(ctx)
	if err != nil {
		logrus.WithError(err).Error("could not list active rooms")
		return
	}

	for _, uuid := range uuids {
		if _, err := l.TickTimeout(ctx, uuid); err != nil {
			logrus.WithError(err).WithField("room", uuid).Error("timeout sweep failed for room")
		}
	}
}
