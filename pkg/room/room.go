package room

import (
	"time"

	"github.com/google/uuid"

	"pokerbot-server/pkg/deck"
)

// Status represents the lifecycle state of a room
type Status string

// status constants
const (
	StatusWaiting  Status = "waiting"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

// Options configures a room
type Options struct {
	SmallBlind int `json:"smallBlind" yaml:"smallBlind"`
	BigBlind   int `json:"bigBlind" yaml:"bigBlind"`
	MinPlayers int `json:"minPlayers" yaml:"minPlayers"`
	MaxPlayers int `json:"maxPlayers" yaml:"maxPlayers"`
}

// DefaultOptions returns the default room options
func DefaultOptions() Options {
	return Options{
		SmallBlind: 50,
		BigBlind:   100,
		MinPlayers: 2,
		MaxPlayers: 10,
	}
}

func validateOptions(opts Options) error {
	if opts.SmallBlind <= 0 {
		return UserError("small blind must be greater than zero")
	}

	if opts.BigBlind <= opts.SmallBlind {
		return UserError("big blind must be greater than the small blind")
	}

	if opts.MinPlayers < 2 {
		return UserError("there must be at least two players")
	}

	if opts.MaxPlayers < opts.MinPlayers {
		return UserError("max players cannot be less than min players")
	}

	// 10 x 2 hole cards + 5 community cards still fits one deck
	if opts.MaxPlayers > 10 {
		return UserError("a table cannot seat more than ten players")
	}

	return nil
}

// Room is the authoritative state of one table.
// It is a plain value that can be marshaled to JSON for persistence; all
// mutation goes through the engine methods, and callers are responsible for
// serializing access per room.
type Room struct {
	UUID      string    `json:"uuid"`
	CreatorID int64     `json:"creatorId"`
	Options   Options   `json:"options"`
	Status    Status    `json:"status"`
	Players   []*Player `json:"players"`

	Pot        int `json:"pot"`
	CurrentBet int `json:"currentBet"`
	MinRaise   int `json:"minRaise"`

	Deck      *deck.Deck   `json:"deck,omitempty"`
	Community deck.Hand    `json:"communityCards"`
	Round     BettingRound `json:"bettingRound"`

	DealerIndex     int `json:"dealerIndex"`
	SmallBlindIndex int `json:"smallBlindIndex"`
	BigBlindIndex   int `json:"bigBlindIndex"`
	CurrentIndex    int `json:"currentPlayerIndex"`

	// Version is bumped by the store on every successful save and backs its
	// optimistic concurrency check
	Version int64 `json:"version"`

	CreatedAt     time.Time  `json:"createdAt"`
	StartedAt     *time.Time `json:"startedAt,omitempty"`
	EndedAt       *time.Time `json:"endedAt,omitempty"`
	TurnStartedAt *time.Time `json:"turnStartedAt,omitempty"`
	LastActionAt  *time.Time `json:"lastActionAt,omitempty"`

	Result *Settlement `json:"result,omitempty"`
}

// New creates a new room in the waiting state
func New(opts Options, creatorID int64, now time.Time) (*Room, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	return &Room{
		UUID:         uuid.New().String(),
		CreatorID:    creatorID,
		Options:      opts,
		Status:       StatusWaiting,
		Players:      make([]*Player, 0, opts.MaxPlayers),
		CurrentIndex: -1,
		CreatedAt:    now,
	}, nil
}

// AddPlayer seats a player with the given buy-in
func (r *Room) AddPlayer(playerID int64, chips int, now time.Time) error {
	if r.Status != StatusWaiting {
		return ErrRoomNotWaiting
	}

	if len(r.Players) >= r.Options.MaxPlayers {
		return ErrRoomFull
	}

	if r.playerIndex(playerID) >= 0 {
		return ErrAlreadyJoined
	}

	if chips <= 0 {
		return ErrInsufficientChips
	}

	r.Players = append(r.Players, &Player{
		ID:       playerID,
		Chips:    chips,
		JoinedAt: now,
	})

	return nil
}

// RemovePlayer removes a player from the table
// Players may only leave while the room is waiting; mid-hand departures would
// break chip conservation.
func (r *Room) RemovePlayer(playerID int64) error {
	if r.Status != StatusWaiting {
		return ErrRoomNotWaiting
	}

	index := r.playerIndex(playerID)
	if index < 0 {
		return ErrNotAPlayer
	}

	r.Players = append(r.Players[:index], r.Players[index+1:]...)
	return nil
}

// Player returns the seated player with the given ID, or nil
func (r *Room) Player(playerID int64) *Player {
	if index := r.playerIndex(playerID); index >= 0 {
		return r.Players[index]
	}

	return nil
}

func (r *Room) playerIndex(playerID int64) int {
	for i, p := range r.Players {
		if p.ID == playerID {
			return i
		}
	}

	return -1
}

// nextActiveIndex scans forward from the given seat and returns the first
// player who can still act, or -1 if no one can
func (r *Room) nextActiveIndex(from int) int {
	n := len(r.Players)
	for i := 0; i < n; i++ {
		index := (from + i) % n
		if r.Players[index].canAct() {
			return index
		}
	}

	return -1
}

func (r *Room) nonFoldedCount() int {
	count := 0
	for _, p := range r.Players {
		if !p.Folded {
			count++
		}
	}

	return count
}

func (r *Room) activeCount() int {
	count := 0
	for _, p := range r.Players {
		if p.canAct() {
			count++
		}
	}

	return count
}

// ChipsInPlay returns the pot plus every player's stack. The engine never
// creates or destroys chips, so this is constant for the life of a hand.
func (r *Room) ChipsInPlay() int {
	total := r.Pot
	for _, p := range r.Players {
		total += p.Chips
	}

	return total
}
