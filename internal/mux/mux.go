package mux

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	gmux "github.com/gorilla/mux"

	"pokerbot-server/internal/jwt"
	"pokerbot-server/pkg/lobby"
)

type ctxKey int

const ctxPlayerIDKey ctxKey = iota

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	lobby   *lobby.Lobby

	// store for testing purposes
	authRouter *gmux.Router
}

// NewMux returns a new HTTP mux
func NewMux(version string, l *lobby.Lobby) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		lobby:   l,
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	}

	// requires bearer authorization
	{
		r := this.authRouter
		r.Methods(http.MethodPost).Path("/room").Handler(this.postRoom())

		rr := r.PathPrefix("/room/{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}").Subrouter()
		rr.Methods(http.MethodGet).Path("").Handler(this.getRoomUUID())
		rr.Methods(http.MethodGet).Path("/ws").Handler(this.getRoomUUIDWS())
		rr.Methods(http.MethodPost).Path("/join").Handler(this.postRoomUUIDJoin())
		rr.Methods(http.MethodPost).Path("/leave").Handler(this.postRoomUUIDLeave())
		rr.Methods(http.MethodPost).Path("/start").Handler(this.postRoomUUIDStart())
		rr.Methods(http.MethodPost).Path("/action").Handler(this.postRoomUUIDAction())
	}

	return this
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		id, err := jwt.ValidUserID(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxPlayerIDKey, id)
		w.Header().Set("PokerBot-UserID", strconv.FormatInt(id, 10))
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

// playerID returns the authenticated player. Handlers behind authMiddleware
// can rely on the value being present.
func playerID(r *http.Request) int64 {
	return r.Context().Value(ctxPlayerIDKey).(int64)
}
