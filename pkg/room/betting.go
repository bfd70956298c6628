package room

import (
	"fmt"
	"time"
)

// ApplyAction validates and applies a single player action, then advances the
// turn and, when the betting round is complete, the round itself.
func (r *Room) ApplyAction(playerID int64, action Action, now time.Time) error {
	if r.Status != StatusPlaying {
		return fmt.Errorf("%w: no hand is in progress", ErrInvalidAction)
	}

	index := r.playerIndex(playerID)
	if index < 0 {
		return ErrNotAPlayer
	}

	if index != r.CurrentIndex {
		return ErrNotYourTurn
	}

	p := r.Players[index]
	if p.Folded {
		return ErrAlreadyFolded
	}

	switch action.Type {
	case ActionFold:
		p.Folded = true
	case ActionCheck:
		if p.BetAmount != r.CurrentBet && !r.isSmallBlindCheck(index) {
			return fmt.Errorf("%w: cannot check with an outstanding bet", ErrInvalidAction)
		}
	case ActionCall:
		owed := r.CurrentBet - p.BetAmount
		if owed <= 0 {
			return fmt.Errorf("%w: there is nothing to call", ErrInvalidAction)
		}

		if p.Chips < owed {
			return ErrInsufficientChips
		}

		r.Pot += p.betTo(r.CurrentBet)
		if p.Chips == 0 {
			p.AllIn = true
		}
	case ActionRaise:
		if action.Amount <= r.CurrentBet {
			return fmt.Errorf("%w: raise must exceed the current bet of %d", ErrInvalidAction, r.CurrentBet)
		}

		if action.Amount > p.Chips+p.BetAmount {
			return fmt.Errorf("%w: raise exceeds your stack", ErrInvalidAction)
		}

		previousBet := r.CurrentBet
		r.Pot += p.betTo(action.Amount)
		if p.Chips == 0 {
			p.AllIn = true
		}

		r.CurrentBet = action.Amount
		r.MinRaise = action.Amount - previousBet
	case ActionAllIn:
		target := p.BetAmount + p.Chips
		previousBet := r.CurrentBet

		r.Pot += p.betTo(target)
		p.AllIn = true

		// an all-in above the current bet is a raise to that amount
		if target > previousBet {
			r.CurrentBet = target
			r.MinRaise = target - previousBet
		}
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidAction, action.Type)
	}

	applied := action
	p.LastAction = &applied
	actedAt := now
	r.LastActionAt = &actedAt

	return r.advance(now)
}

// isSmallBlindCheck reports whether the player may check despite an
// outstanding bet: pre-flop, in an unraised pot, the small blind's posted
// blind counts as matching
func (r *Room) isSmallBlindCheck(index int) bool {
	return r.Round == RoundPreFlop &&
		index == r.SmallBlindIndex &&
		r.CurrentBet == r.Options.BigBlind
}

// roundComplete returns true once every non-folded player is either all-in or
// has acted this round with a matched bet. This is equivalent to action having
// returned to the round's first actor: a raise leaves the other players with
// unmatched bets, and a blind is not an action.
func (r *Room) roundComplete() bool {
	for i, p := range r.Players {
		if p.Folded || p.AllIn {
			continue
		}

		if p.LastAction == nil {
			return false
		}

		if p.BetAmount != r.CurrentBet {
			if r.isSmallBlindCheck(i) && p.LastAction.Type == ActionCheck {
				continue
			}

			return false
		}
	}

	return true
}

// advance passes the turn to the next player who can act, or moves the game
// forward when the betting round, or the whole hand, is over
func (r *Room) advance(now time.Time) error {
	if r.nonFoldedCount() == 1 {
		return r.settle(now)
	}

	if r.roundComplete() {
		return r.advanceRound(now)
	}

	next := r.nextActiveIndex(r.CurrentIndex + 1)
	if next < 0 {
		// everyone left is all-in; run out the board
		return r.advanceRound(now)
	}

	r.CurrentIndex = next
	turnStarted := now
	r.TurnStartedAt = &turnStarted

	return nil
}

// advanceRound deals the next street and resets round-scoped state. After the
// river it settles the hand instead.
func (r *Room) advanceRound(now time.Time) error {
	var draw int
	switch r.Round {
	case RoundPreFlop:
		draw = 3
	case RoundFlop, RoundTurn:
		draw = 1
	case RoundRiver:
		return r.settle(now)
	}

	cards, err := r.Deck.DrawN(draw)
	if err != nil {
		return err
	}

	r.Community = append(r.Community, cards...)
	r.Round++

	for _, p := range r.Players {
		p.newRound()
	}

	r.CurrentBet = 0
	r.MinRaise = r.Options.BigBlind

	// with fewer than two players able to act there is no more betting;
	// keep dealing until showdown
	if r.activeCount() < 2 {
		return r.advanceRound(now)
	}

	r.CurrentIndex = r.nextActiveIndex(r.DealerIndex + 1)
	turnStarted := now
	r.TurnStartedAt = &turnStarted

	return nil
}
