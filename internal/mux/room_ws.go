package mux

import (
	"net/http"
	"time"

	gmux "github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"pokerbot-server/pkg/room"
)

const writeWait = time.Second * 10
const pongWait = time.Second * 60
const pingPeriod = pongWait * 9 / 10

func (m *Mux) getRoomUUIDWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		uuid := gmux.Vars(r)["uuid"]
		id := playerID(r)

		snapshots, cancel, err := m.lobby.Subscribe(r.Context(), uuid, id)
		if err != nil {
			writeGameError(w, err)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			cancel()
			logrus.WithError(err).Error("could not upgrade connection")
			return
		}

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		log := logrus.WithFields(logrus.Fields{
			"room":   uuid,
			"player": id,
		})
		log.Debug("websocket client connected")

		defer func() {
			cancel()
			_ = conn.Close()
			log.Debug("websocket client disconnected")
		}()

		go m.webSocketWriteLoop(conn, snapshots, log)
		m.webSocketReadLoop(conn, log)
	}
}

func (m *Mux) webSocketWriteLoop(conn *websocket.Conn, snapshots <-chan *room.Snapshot, log logrus.FieldLogger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case snapshot, ok := <-snapshots:
			if !ok {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(snapshot); err != nil {
				log.WithError(err).Error("could not write message")
				return
			}
		}
	}
}

// webSocketReadLoop drains the connection so pongs are processed. Clients do
// not send game messages over the socket; actions go through the REST
// endpoints.
func (m *Mux) webSocketReadLoop(conn *websocket.Conn, log logrus.FieldLogger) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Debug("websocket read failed")
			}

			return
		}
	}
}
