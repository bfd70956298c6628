package room

import (
	"encoding/json"
	"fmt"
)

// BettingRound represents one of the four Texas Hold'em betting rounds
type BettingRound int

// constants for BettingRound
const (
	RoundPreFlop BettingRound = iota
	RoundFlop
	RoundTurn
	RoundRiver
)

func (b BettingRound) String() string {
	switch b {
	case RoundPreFlop:
		return "pre-flop"
	case RoundFlop:
		return "flop"
	case RoundTurn:
		return "turn"
	case RoundRiver:
		return "river"
	}

	return ""
}

// MarshalJSON encodes JSON
func (b BettingRound) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(b),
		Name: b.String(),
	})
}

// UnmarshalJSON decodes JSON
func (b *BettingRound) UnmarshalJSON(data []byte) error {
	var payload struct {
		ID int `json:"id"`
	}

	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}

	if payload.ID < int(RoundPreFlop) || payload.ID > int(RoundRiver) {
		return fmt.Errorf("unknown betting round: %d", payload.ID)
	}

	*b = BettingRound(payload.ID)
	return nil
}
