package mux

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"pokerbot-server/pkg/room"
)

func Test_postRoom(t *testing.T) {
	ts := httptest.NewServer(testMux(t))
	defer ts.Close()

	token := signedJWTFor(t, 1)

	var snapshot room.Snapshot
	assertPost(t, ts, "/room", postRoomPayload{BuyIn: 1000}, &snapshot, 201, token)
	assert.NotEmpty(t, snapshot.UUID)
	assert.Equal(t, room.StatusWaiting, snapshot.Status)
	assert.Equal(t, int64(1), snapshot.CreatorID)
	assert.Equal(t, 1, len(snapshot.Players))
	assert.Equal(t, 1000, snapshot.Players[0].Chips)

	var errObj errorResponse
	assertPost(t, ts, "/room", postRoomPayload{BuyIn: 0}, &errObj, 400, token)
	assert.Equal(t, "buy-in must be greater than zero", errObj.Message)

	assertPost(t, ts, "/room", postRoomPayload{
		Options: &room.Options{SmallBlind: 100, BigBlind: 50, MinPlayers: 2, MaxPlayers: 10},
		BuyIn:   1000,
	}, &errObj, 400, token)
	assert.Equal(t, "big blind must be greater than the small blind", errObj.Message)

	assertPost(t, ts, "/room", nil, &errObj, 401)
}

func Test_getRoomUUID(t *testing.T) {
	ts := httptest.NewServer(testMux(t))
	defer ts.Close()

	token := signedJWTFor(t, 1)

	var errObj errorResponse
	assertGet(t, ts, "/room/"+uuid.New().String(), &errObj, 404, token)
	assert.Equal(t, "room not found", errObj.Message)

	var snapshot room.Snapshot
	assertPost(t, ts, "/room", postRoomPayload{BuyIn: 1000}, &snapshot, 201, token)

	var got room.Snapshot
	assertGet(t, ts, "/room/"+snapshot.UUID, &got, 200, token)
	assert.Equal(t, snapshot.UUID, got.UUID)
}

func Test_roomFlow(t *testing.T) {
	ts := httptest.NewServer(testMux(t))
	defer ts.Close()

	creator := signedJWTFor(t, 1)
	joiner := signedJWTFor(t, 2)

	var snapshot room.Snapshot
	assertPost(t, ts, "/room", postRoomPayload{BuyIn: 1000}, &snapshot, 201, creator)
	base := "/room/" + snapshot.UUID

	// the creator cannot join twice
	var errObj errorResponse
	assertPost(t, ts, base+"/join", postJoinPayload{BuyIn: 1000}, &errObj, 400, creator)
	assert.Equal(t, "you already joined this room", errObj.Message)

	assertPost(t, ts, base+"/join", postJoinPayload{BuyIn: 1000}, &snapshot, 201, joiner)
	assert.Equal(t, 2, len(snapshot.Players))

	// only the creator can deal
	assertPost(t, ts, base+"/start", nil, &errObj, 400, joiner)
	assert.Equal(t, "only the room creator can start the game", errObj.Message)

	assertPost(t, ts, base+"/start", nil, &snapshot, 200, creator)
	assert.Equal(t, room.StatusPlaying, snapshot.Status)
	assert.Equal(t, 150, snapshot.Pot)
	assert.Equal(t, int64(1), snapshot.CurrentPlayerID)

	// players only see their own hole cards
	assert.Equal(t, 2, len(snapshot.Players[0].HoleCards))
	assert.Nil(t, snapshot.Players[1].HoleCards)

	// out of turn
	assertPost(t, ts, base+"/action", postActionPayload{Action: "call"}, &errObj, 400, joiner)
	assert.Equal(t, "it is not your turn", errObj.Message)

	// unknown action
	assertPost(t, ts, base+"/action", postActionPayload{Action: "pass"}, &errObj, 400, creator)

	assertPost(t, ts, base+"/action", postActionPayload{Action: "call"}, &snapshot, 200, creator)
	assertPost(t, ts, base+"/action", postActionPayload{Action: "check"}, &snapshot, 200, joiner)
	assert.Equal(t, 3, len(snapshot.Community))

	// leaving mid-hand is not allowed
	assertPost(t, ts, base+"/leave", nil, &errObj, 400, joiner)
	assert.Equal(t, "the room is not accepting players", errObj.Message)
}

func Test_postRoomUUIDLeave(t *testing.T) {
	ts := httptest.NewServer(testMux(t))
	defer ts.Close()

	creator := signedJWTFor(t, 1)
	joiner := signedJWTFor(t, 2)

	var snapshot room.Snapshot
	assertPost(t, ts, "/room", postRoomPayload{BuyIn: 1000}, &snapshot, 201, creator)
	base := fmt.Sprintf("/room/%s", snapshot.UUID)

	assertPost(t, ts, base+"/join", postJoinPayload{BuyIn: 1000}, &snapshot, 201, joiner)
	assert.Equal(t, 2, len(snapshot.Players))

	assertPost(t, ts, base+"/leave", nil, &snapshot, 200, joiner)
	assert.Equal(t, 1, len(snapshot.Players))

	var errObj errorResponse
	assertPost(t, ts, base+"/leave", nil, &errObj, 400, joiner)
	assert.Equal(t, "you are not a player in this room", errObj.Message)
}
