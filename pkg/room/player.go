package room

import (
	"time"

	"pokerbot-server/pkg/deck"
)

// Player represents a seated player
// Chips+TotalBet is constant for the duration of a hand until settlement pays out.
type Player struct {
	ID         int64     `json:"id"`
	Chips      int       `json:"chips"`
	HoleCards  deck.Hand `json:"holeCards"`
	BetAmount  int       `json:"betAmount"`
	TotalBet   int       `json:"totalBet"`
	Folded     bool      `json:"folded"`
	AllIn      bool      `json:"allIn"`
	LastAction *Action   `json:"lastAction,omitempty"`
	JoinedAt   time.Time `json:"joinedAt"`
}

// betTo moves chips into this round's bet until the player's bet reaches
// amount, capped at their remaining stack (a blind may be posted short).
// The value returned is what was added to the pot.
func (p *Player) betTo(amount int) int {
	diff := amount - p.BetAmount
	if diff > p.Chips {
		diff = p.Chips
	}

	p.Chips -= diff
	p.BetAmount += diff
	p.TotalBet += diff

	return diff
}

// newHand resets the player's hand-scoped state
func (p *Player) newHand() {
	p.HoleCards = make(deck.Hand, 0, 2)
	p.BetAmount = 0
	p.TotalBet = 0
	p.Folded = false
	p.AllIn = false
	p.LastAction = nil
}

// newRound resets the player's round-scoped state
func (p *Player) newRound() {
	p.BetAmount = 0
	p.LastAction = nil
}

// canAct returns true if the player still has decisions to make
func (p *Player) canAct() bool {
	return !p.Folded && !p.AllIn
}
