package room

import "time"

// TickTimeout force-folds the acting player if their turn has exceeded the
// timeout. The fold goes through ApplyAction so every invariant of a real
// action holds. Returns true if a fold was applied.
//
// Callers must hold the same per-room exclusion used for real actions; the
// turn clock resets as soon as an action lands, so whichever of the two wins
// the lock makes the other a no-op.
func (r *Room) TickTimeout(now time.Time, timeout time.Duration) (bool, error) {
	if r.Status != StatusPlaying || r.TurnStartedAt == nil || r.CurrentIndex < 0 {
		return false, nil
	}

	if now.Sub(*r.TurnStartedAt) < timeout {
		return false, nil
	}

	playerID := r.Players[r.CurrentIndex].ID
	if err := r.ApplyAction(playerID, Fold(), now); err != nil {
		return false, err
	}

	return true, nil
}
