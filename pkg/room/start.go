package room

import (
	"fmt"
	"time"

	"pokerbot-server/internal/rng"
	"pokerbot-server/pkg/deck"
)

// StartGame shuffles a fresh deck, deals hole cards, posts the blinds, and
// puts the first player on the clock. Only the room creator may start the game.
func (r *Room) StartGame(requesterID int64, generator rng.Generator, now time.Time) error {
	if r.Status != StatusWaiting {
		return ErrRoomNotWaiting
	}

	if requesterID != r.CreatorID {
		return ErrNotCreator
	}

	if len(r.Players) < 2 || len(r.Players) < r.Options.MinPlayers {
		return ErrNotEnoughPlayers
	}

	for _, p := range r.Players {
		if p.Chips < r.Options.BigBlind {
			return fmt.Errorf("%w: player %d cannot cover the big blind", ErrInsufficientChips, p.ID)
		}
	}

	r.Deck = deck.New(generator)
	r.Deck.Shuffle()

	for _, p := range r.Players {
		p.newHand()
	}

	if err := r.dealHoleCards(); err != nil {
		return err
	}

	n := len(r.Players)
	if n == 2 {
		// heads-up: the dealer posts the small blind
		r.SmallBlindIndex = r.DealerIndex
		r.BigBlindIndex = (r.DealerIndex + 1) % n
	} else {
		r.SmallBlindIndex = (r.DealerIndex + 1) % n
		r.BigBlindIndex = (r.DealerIndex + 2) % n
	}

	r.Pot = r.Players[r.SmallBlindIndex].betTo(r.Options.SmallBlind)
	r.Pot += r.Players[r.BigBlindIndex].betTo(r.Options.BigBlind)

	r.CurrentBet = r.Options.BigBlind
	r.MinRaise = r.Options.BigBlind
	r.Round = RoundPreFlop
	r.Community = make(deck.Hand, 0, 5)
	r.Result = nil

	r.CurrentIndex = r.nextActiveIndex(r.BigBlindIndex + 1)

	r.Status = StatusPlaying
	started := now
	r.StartedAt = &started
	r.TurnStartedAt = &started
	r.LastActionAt = &started

	return nil
}

// dealHoleCards deals two cards to every seated player, one at a time in
// player order
func (r *Room) dealHoleCards() error {
	for i := 0; i < 2; i++ {
		for _, p := range r.Players {
			card, err := r.Deck.Draw()
			if err != nil {
				return err
			}

			p.HoleCards.AddCard(card)
		}
	}

	return nil
}
