package lobby

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"pokerbot-server/pkg/room"
)

// MemoryStore is an in-memory Store for tests and single-node deployments
type MemoryStore struct {
	mu    sync.Mutex
	rooms map[string]*room.Room
}

// NewMemoryStore returns a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms: make(map[string]*room.Room),
	}
}

// CreateRoom stores a new room
func (s *MemoryStore) CreateRoom(_ context.Context, r *room.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[r.UUID]; ok {
		return fmt.Errorf("room %s already exists", r.UUID)
	}

	r.Version = 1
	clone, err := cloneRoom(r)
	if err != nil {
		return err
	}

	s.rooms[r.UUID] = clone
	return nil
}

// GetRoom returns an independent copy of the room
func (s *MemoryStore) GetRoom(_ context.Context, uuid string) (*room.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.rooms[uuid]
	if !ok {
		return nil, ErrRoomNotFound
	}

	return cloneRoom(stored)
}

// SaveRoom stores the room if its version still matches
func (s *MemoryStore) SaveRoom(_ context.Context, r *room.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.rooms[r.UUID]
	if !ok {
		return ErrRoomNotFound
	}

	if stored.Version != r.Version {
		return ErrVersionConflict
	}

	r.Version++
	clone, err := cloneRoom(r)
	if err != nil {
		r.Version--
		return err
	}

	s.rooms[r.UUID] = clone
	return nil
}

// ActiveRoomUUIDs returns the rooms with a hand in progress
func (s *MemoryStore) ActiveRoomUUIDs(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uuids := make([]string, 0)
	for uuid, r := range s.rooms {
		if r.Status == room.StatusPlaying {
			uuids = append(uuids, uuid)
		}
	}

	return uuids, nil
}

// cloneRoom deep-copies a room through its JSON form, the same round trip the
// durable store performs
func cloneRoom(r *room.Room) (*room.Room, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}

	var clone room.Room
	if err := json.Unmarshal(b, &clone); err != nil {
		return nil, err
	}

	return &clone, nil
}
