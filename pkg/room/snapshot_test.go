package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoom_Snapshot_hidesHoleCards(t *testing.T) {
	a := assert.New(t)

	r := startedRoom(t, DefaultOptions(), 1000, 1000)

	s := r.Snapshot(1)
	a.Equal(2, len(s.Players[0].HoleCards))
	a.Equal(0, len(s.Players[1].HoleCards))
	a.Equal(int64(1), s.CurrentPlayerID)
	a.Equal(150, s.Pot)

	s = r.Snapshot(2)
	a.Equal(0, len(s.Players[0].HoleCards))
	a.Equal(2, len(s.Players[1].HoleCards))

	// spectators see no hole cards at all
	s = r.Snapshot(99)
	a.Equal(0, len(s.Players[0].HoleCards))
	a.Equal(0, len(s.Players[1].HoleCards))
}

func TestRoom_Snapshot_showdownReveals(t *testing.T) {
	a := assert.New(t)

	r := riverRoom(t, 400, "13h,7h,2h,10s,9d", "14h,3h", "12h,4h")
	a.NoError(r.ApplyAction(2, Check(), testTime))
	a.Equal(StatusFinished, r.Status)

	s := r.Snapshot(99)
	a.Equal(2, len(s.Players[0].HoleCards))
	a.Equal(2, len(s.Players[1].HoleCards))
	a.NotNil(s.Result)
}

func TestRoom_Snapshot_foldedHandNotRevealed(t *testing.T) {
	a := assert.New(t)

	r := startedRoom(t, DefaultOptions(), 1000, 1000)
	a.NoError(r.ApplyAction(1, Fold(), testTime))

	// the hand ended with a fold; nothing is shown
	s := r.Snapshot(99)
	a.Equal(0, len(s.Players[0].HoleCards))
	a.Equal(0, len(s.Players[1].HoleCards))
	a.Equal(int64(0), s.CurrentPlayerID)
}
