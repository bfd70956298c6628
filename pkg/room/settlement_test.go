package room

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pokerbot-server/pkg/deck"
	"pokerbot-server/pkg/poker"
)

// riverRoom builds a room mid-river with the given pot and hole cards, one
// check away from showdown
func riverRoom(t *testing.T, pot int, community string, holeCards ...string) *Room {
	t.Helper()

	opts := DefaultOptions()
	players := make([]*Player, len(holeCards))
	check := Check()
	for i, cards := range holeCards {
		players[i] = &Player{
			ID:         int64(i + 1),
			HoleCards:  deck.CardsFromString(cards),
			LastAction: &check,
		}
	}

	// the player on the clock has not acted yet
	last := len(players) - 1
	players[last].LastAction = nil

	return &Room{
		UUID:         "settlement-test",
		CreatorID:    1,
		Options:      opts,
		Status:       StatusPlaying,
		Players:      players,
		Pot:          pot,
		Round:        RoundRiver,
		Community:    deck.CardsFromString(community),
		DealerIndex:  0,
		CurrentIndex: last,
	}
}

func TestRoom_settle_foldsToOne(t *testing.T) {
	a := assert.New(t)

	r := startedRoom(t, DefaultOptions(), 1000, 1000)
	a.NoError(r.ApplyAction(1, Fold(), testTime))

	a.Equal(StatusFinished, r.Status)
	a.Equal(0, r.Pot)
	a.Equal(950, r.Players[0].Chips)
	a.Equal(1050, r.Players[1].Chips)
	a.Equal(2000, r.ChipsInPlay())

	result := r.Result
	a.NotNil(result)
	a.Equal(150, result.Pot)
	a.Equal([]int64{2}, result.Winners)

	// no showdown, no hands revealed
	a.Nil(result.Results[0].Hand)
	a.Nil(result.Results[1].Hand)
	a.True(result.Results[0].Folded)
	a.Equal(testTime, *r.EndedAt)
}

func TestRoom_settle_showdown(t *testing.T) {
	a := assert.New(t)

	// player 1 holds the nut flush, player 2 a weaker flush
	r := riverRoom(t, 400, "13h,7h,2h,10s,9d", "14h,3h", "12h,4h")
	a.NoError(r.ApplyAction(2, Check(), testTime))

	a.Equal(StatusFinished, r.Status)
	a.Equal([]int64{1}, r.Result.Winners)
	a.Equal(400, r.Result.Results[0].Payout)
	a.Equal(0, r.Result.Results[1].Payout)
	a.Equal(poker.Flush, r.Result.Results[0].Hand.Category)
	a.Equal(poker.Flush, r.Result.Results[1].Hand.Category)
	a.Equal(400, r.Players[0].Chips)
}

func TestRoom_settle_kickerDecides(t *testing.T) {
	a := assert.New(t)

	// both players pair the king; the ace kicker wins
	r := riverRoom(t, 300, "13s,9c,7d,4h,2s", "13h,14d", "13d,12c")
	a.NoError(r.ApplyAction(2, Check(), testTime))

	a.Equal([]int64{1}, r.Result.Winners)
	a.Equal(300, r.Result.Results[0].Payout)
}

// three players tie with pot=100: 33 chips each and the odd chip goes to the
// first winner left of the dealer, so the payouts always sum to the pot
func TestRoom_settle_splitPotRemainder(t *testing.T) {
	a := assert.New(t)

	// the board plays for everyone
	r := riverRoom(t, 100, "14s,13s,12s,11s,10s", "2c,3d", "2d,3h", "2h,3c")
	a.NoError(r.ApplyAction(3, Check(), testTime))

	a.Equal(StatusFinished, r.Status)
	a.Equal([]int64{1, 2, 3}, r.Result.Winners)

	a.Equal(33, r.Result.Results[0].Payout)
	a.Equal(34, r.Result.Results[1].Payout)
	a.Equal(33, r.Result.Results[2].Payout)

	total := 0
	for _, result := range r.Result.Results {
		total += result.Payout
	}
	a.Equal(100, total)
	a.Equal(0, r.Pot)
}

func TestRoom_settle_multipleOddChips(t *testing.T) {
	a := assert.New(t)

	r := riverRoom(t, 92, "14s,13s,12s,11s,10s", "2c,3d", "2d,3h", "2h,3c")
	a.NoError(r.ApplyAction(3, Check(), testTime))

	a.Equal(30, r.Result.Results[0].Payout)
	a.Equal(31, r.Result.Results[1].Payout)
	a.Equal(31, r.Result.Results[2].Payout)
}

func TestRoom_settle_foldedPlayerCannotWin(t *testing.T) {
	a := assert.New(t)

	r := riverRoom(t, 500, "14s,13s,12s,11s,10s", "2c,3d", "2d,3h", "2h,3c")
	r.Players[1].Folded = true
	a.NoError(r.ApplyAction(3, Check(), testTime))

	a.Equal([]int64{1, 3}, r.Result.Winners)
	a.Equal(250, r.Result.Results[0].Payout)
	a.Equal(0, r.Result.Results[1].Payout)
	a.Equal(250, r.Result.Results[2].Payout)
	a.Nil(r.Result.Results[1].Hand)
}
