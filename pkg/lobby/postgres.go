package lobby

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"pokerbot-server/pkg/db"
	"pokerbot-server/pkg/room"
)

// PostgresStore persists rooms to a postgres database. The full room state is
// stored as JSON alongside a version column used for optimistic concurrency.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore returns a store backed by the provided database
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// CreateRoom inserts a new room at version 1
func (s *PostgresStore) CreateRoom(ctx context.Context, r *room.Room) error {
	r.Version = 1
	state, err := json.Marshal(r)
	if err != nil {
		r.Version = 0
		return err
	}

	const query = `
INSERT INTO rooms (uuid, status, version, state, created, updated)
VALUES ($1, $2, $3, $4, (NOW() AT TIME ZONE 'utc'), (NOW() AT TIME ZONE 'utc'))`

	if _, err := s.db.ExecContext(ctx, query, r.UUID, string(r.Status), r.Version, state); err != nil {
		r.Version = 0
		return err
	}

	return nil
}

// GetRoom loads a room by its UUID
func (s *PostgresStore) GetRoom(ctx context.Context, uuid string) (*room.Room, error) {
	const query = `SELECT state FROM rooms WHERE uuid = $1`

	r, err := scanRoom(s.db.QueryRowContext(ctx, query, uuid))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRoomNotFound
		}

		return nil, err
	}

	return r, nil
}

func scanRoom(s db.Scanner) (*room.Room, error) {
	var state []byte
	if err := s.Scan(&state); err != nil {
		return nil, err
	}

	var r room.Room
	if err := json.Unmarshal(state, &r); err != nil {
		return nil, fmt.Errorf("could not unmarshal room: %w", err)
	}

	return &r, nil
}

// SaveRoom writes the room back, failing with ErrVersionConflict if another
// writer saved the room since it was loaded
func (s *PostgresStore) SaveRoom(ctx context.Context, r *room.Room) error {
	next := r.Version + 1
	prev := r.Version

	r.Version = next
	state, err := json.Marshal(r)
	if err != nil {
		r.Version = prev
		return err
	}

	const query = `
UPDATE rooms
SET status = $1, version = $2, state = $3, updated = (NOW() AT TIME ZONE 'utc')
WHERE uuid = $4 AND version = $5`

	res, err := s.db.ExecContext(ctx, query, string(r.Status), next, state, r.UUID, prev)
	if err != nil {
		r.Version = prev
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		r.Version = prev
		return err
	}

	if rows == 0 {
		r.Version = prev

		var exists bool
		if err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM rooms WHERE uuid = $1)`, r.UUID).Scan(&exists); err != nil {
			return err
		}

		if !exists {
			return ErrRoomNotFound
		}

		return ErrVersionConflict
	}

	return nil
}

// ActiveRoomUUIDs returns the UUIDs of rooms with a hand in progress
func (s *PostgresStore) ActiveRoomUUIDs(ctx context.Context) ([]string, error) {
	const query = `SELECT uuid FROM rooms WHERE status = $1`

	rows, err := s.db.QueryContext(ctx, query, string(room.StatusPlaying))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	uuids := make([]string, 0)
	for rows.Next() {
		var uuid string
		if err := rows.Scan(&uuid); err != nil {
			return nil, err
		}

		uuids = append(uuids, uuid)
	}

	return uuids, rows.Err()
}
