package mux

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"pokerbot-server/pkg/room"
)

func Test_getRoomUUIDWS(t *testing.T) {
	a := assert.New(t)
	ts := httptest.NewServer(testMux(t))
	defer ts.Close()

	creator := signedJWTFor(t, 1)
	joiner := signedJWTFor(t, 2)

	var snapshot room.Snapshot
	assertPost(t, ts, "/room", postRoomPayload{BuyIn: 1000}, &snapshot, 201, creator)
	base := "/room/" + snapshot.UUID
	assertPost(t, ts, base+"/join", postJoinPayload{BuyIn: 1000}, &snapshot, 201, joiner)

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + base + "/ws?access_token=" + url.QueryEscape(joiner)
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	a.NoError(err)
	if resp != nil {
		defer resp.Body.Close()
	}
	defer conn.Close()

	// the current state arrives as soon as the socket opens
	var got room.Snapshot
	a.NoError(conn.ReadJSON(&got))
	a.Equal(room.StatusWaiting, got.Status)
	a.Equal(2, len(got.Players))

	assertPost(t, ts, base+"/start", nil, &snapshot, 200, creator)

	a.NoError(conn.ReadJSON(&got))
	a.Equal(room.StatusPlaying, got.Status)
	a.Equal(150, got.Pot)

	// the stream is projected for the subscriber
	a.Nil(got.Players[0].HoleCards)
	a.Equal(2, len(got.Players[1].HoleCards))
}

func Test_getRoomUUIDWS_unauthorized(t *testing.T) {
	a := assert.New(t)
	ts := httptest.NewServer(testMux(t))
	defer ts.Close()

	creator := signedJWTFor(t, 1)

	var snapshot room.Snapshot
	assertPost(t, ts, "/room", postRoomPayload{BuyIn: 1000}, &snapshot, 201, creator)

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/room/" + snapshot.UUID + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	a.Error(err)
	a.Nil(conn)
	if resp != nil {
		a.Equal(401, resp.StatusCode)
		resp.Body.Close()
	}
}
