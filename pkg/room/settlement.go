package room

import (
	"time"

	"pokerbot-server/pkg/poker"
)

// PlayerResult is one player's outcome of a settled hand
type PlayerResult struct {
	PlayerID int64             `json:"playerId"`
	Payout   int               `json:"payout"`
	Folded   bool              `json:"folded"`
	Hand     *poker.Evaluation `json:"hand,omitempty"`
}

// Settlement records how the pot was distributed. The caller uses the payouts
// to persist net winnings to the wallet ledger after the hand.
type Settlement struct {
	Pot     int             `json:"pot"`
	Winners []int64         `json:"winners"`
	Results []*PlayerResult `json:"results"`
}

// settle awards the pot and transitions the room to finished.
// With more than one player left, hands are compared with the full kicker
// tie-break; a split pot's integer remainder goes one chip at a time in seat
// order starting left of the dealer, so the amounts paid out always sum to
// the pot.
func (r *Room) settle(now time.Time) error {
	pot := r.Pot
	results := make([]*PlayerResult, len(r.Players))
	for i, p := range r.Players {
		results[i] = &PlayerResult{
			PlayerID: p.ID,
			Folded:   p.Folded,
		}
	}

	winners := make([]int, 0, len(r.Players))

	if r.nonFoldedCount() == 1 {
		// everyone else folded; no showdown
		for i, p := range r.Players {
			if !p.Folded {
				winners = append(winners, i)
			}
		}
	} else {
		var best *poker.Evaluation
		for i, p := range r.Players {
			if p.Folded {
				continue
			}

			ev, err := poker.BestOfSeven(p.HoleCards, r.Community)
			if err != nil {
				return err
			}

			results[i].Hand = ev

			if best == nil || ev.Compare(best) > 0 {
				best = ev
				winners = winners[:0]
				winners = append(winners, i)
			} else if ev.Compare(best) == 0 {
				winners = append(winners, i)
			}
		}
	}

	share := pot / len(winners)
	remainder := pot % len(winners)

	payouts := make(map[int]int, len(winners))
	for _, index := range winners {
		payouts[index] = share
	}

	// odd chips go to winners in seat order starting left of the dealer
	for seat := r.DealerIndex + 1; remainder > 0; seat++ {
		index := seat % len(r.Players)
		if _, ok := payouts[index]; ok {
			payouts[index]++
			remainder--
		}
	}

	winnerIDs := make([]int64, 0, len(winners))
	for _, index := range winners {
		winnerIDs = append(winnerIDs, r.Players[index].ID)
	}

	for index, payout := range payouts {
		r.Players[index].Chips += payout
		results[index].Payout = payout
	}

	r.Pot = 0
	r.CurrentBet = 0
	r.CurrentIndex = -1
	r.TurnStartedAt = nil
	r.Status = StatusFinished

	ended := now
	r.EndedAt = &ended

	r.Result = &Settlement{
		Pot:     pot,
		Winners: winnerIDs,
		Results: results,
	}

	return nil
}
