package room

import (
	"time"

	"pokerbot-server/pkg/deck"
)

// PlayerSnapshot is the public view of a seated player
type PlayerSnapshot struct {
	ID         int64     `json:"id"`
	Chips      int       `json:"chips"`
	BetAmount  int       `json:"betAmount"`
	TotalBet   int       `json:"totalBet"`
	Folded     bool      `json:"folded"`
	AllIn      bool      `json:"allIn"`
	LastAction *Action   `json:"lastAction,omitempty"`
	HoleCards  deck.Hand `json:"holeCards,omitempty"`
}

// Snapshot is a read-only projection of the room for one viewer. The deck is
// never exposed and hole cards are visible only to their owner, or to everyone
// once the hand went to showdown.
type Snapshot struct {
	UUID            string            `json:"uuid"`
	CreatorID       int64             `json:"creatorId"`
	Status          Status            `json:"status"`
	Options         Options           `json:"options"`
	Players         []*PlayerSnapshot `json:"players"`
	Pot             int               `json:"pot"`
	CurrentBet      int               `json:"currentBet"`
	MinRaise        int               `json:"minRaise"`
	Community       deck.Hand         `json:"communityCards"`
	Round           BettingRound      `json:"bettingRound"`
	DealerIndex     int               `json:"dealerIndex"`
	CurrentPlayerID int64             `json:"currentPlayerId,omitempty"`
	TurnStartedAt   *time.Time        `json:"turnStartedAt,omitempty"`
	Result          *Settlement       `json:"result,omitempty"`
}

// Snapshot returns the room as seen by viewerID
func (r *Room) Snapshot(viewerID int64) *Snapshot {
	players := make([]*PlayerSnapshot, len(r.Players))
	for i, p := range r.Players {
		ps := &PlayerSnapshot{
			ID:         p.ID,
			Chips:      p.Chips,
			BetAmount:  p.BetAmount,
			TotalBet:   p.TotalBet,
			Folded:     p.Folded,
			AllIn:      p.AllIn,
			LastAction: p.LastAction,
		}

		if p.ID == viewerID || r.revealedAtShowdown(i) {
			ps.HoleCards = p.HoleCards.Clone()
		}

		players[i] = ps
	}

	var currentPlayerID int64
	if r.Status == StatusPlaying && r.CurrentIndex >= 0 {
		currentPlayerID = r.Players[r.CurrentIndex].ID
	}

	return &Snapshot{
		UUID:            r.UUID,
		CreatorID:       r.CreatorID,
		Status:          r.Status,
		Options:         r.Options,
		Players:         players,
		Pot:             r.Pot,
		CurrentBet:      r.CurrentBet,
		MinRaise:        r.MinRaise,
		Community:       r.Community.Clone(),
		Round:           r.Round,
		DealerIndex:     r.DealerIndex,
		CurrentPlayerID: currentPlayerID,
		TurnStartedAt:   r.TurnStartedAt,
		Result:          r.Result,
	}
}

// revealedAtShowdown returns true if the seat's hole cards were shown at a
// showdown (a hand that ended with everyone folding reveals nothing)
func (r *Room) revealedAtShowdown(index int) bool {
	if r.Status != StatusFinished || r.Result == nil {
		return false
	}

	return r.Result.Results[index].Hand != nil
}
