package mux

import (
	"errors"
	"net/http"

	gmux "github.com/gorilla/mux"

	"pokerbot-server/pkg/room"
)

type postRoomPayload struct {
	Options *room.Options `json:"options"`
	BuyIn   int           `json:"buyIn"`
}

func (m *Mux) postRoom() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postRoomPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if pp.BuyIn <= 0 {
			writeJSONError(w, http.StatusBadRequest, errors.New("buy-in must be greater than zero"))
			return
		}

		opts := room.DefaultOptions()
		if pp.Options != nil {
			opts = *pp.Options
		}

		id := playerID(r)
		rm, err := m.lobby.CreateRoom(r.Context(), opts, id, pp.BuyIn)
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, rm.Snapshot(id))
	}
}

func (m *Mux) getRoomUUID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := m.lobby.GetState(r.Context(), gmux.Vars(r)["uuid"], playerID(r))
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, snapshot)
	})
}

type postJoinPayload struct {
	BuyIn int `json:"buyIn"`
}

func (m *Mux) postRoomUUIDJoin() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var pp postJoinPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if pp.BuyIn <= 0 {
			writeJSONError(w, http.StatusBadRequest, errors.New("buy-in must be greater than zero"))
			return
		}

		id := playerID(r)
		rm, err := m.lobby.JoinRoom(r.Context(), gmux.Vars(r)["uuid"], id, pp.BuyIn)
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, rm.Snapshot(id))
	})
}

func (m *Mux) postRoomUUIDLeave() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := playerID(r)
		rm, err := m.lobby.LeaveRoom(r.Context(), gmux.Vars(r)["uuid"], id)
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, rm.Snapshot(id))
	})
}

func (m *Mux) postRoomUUIDStart() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := playerID(r)
		rm, err := m.lobby.StartGame(r.Context(), gmux.Vars(r)["uuid"], id)
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, rm.Snapshot(id))
	})
}

type postActionPayload struct {
	Action string `json:"action"`
	Amount int    `json:"amount"`
}

func (m *Mux) postRoomUUIDAction() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var pp postActionPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		action, err := room.ActionFromString(pp.Action, pp.Amount)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		id := playerID(r)
		rm, err := m.lobby.ApplyAction(r.Context(), gmux.Vars(r)["uuid"], id, action)
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, rm.Snapshot(id))
	})
}
