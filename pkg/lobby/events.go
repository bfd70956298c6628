package lobby

import (
	"sync"

	"github.com/sirupsen/logrus"

	"pokerbot-server/pkg/room"
)

const subscriberBuffer = 16

type subscriber struct {
	viewerID int64
	ch       chan *room.Snapshot
}

// subscriptions fans room updates out to connected clients. Each subscriber
// receives snapshots projected for its own viewer.
type subscriptions struct {
	mu   sync.Mutex
	subs map[string]map[*subscriber]struct{}
}

func newSubscriptions() *subscriptions {
	return &subscriptions{
		subs: make(map[string]map[*subscriber]struct{}),
	}
}

// subscribe registers a viewer for updates to the room. The returned cancel
// function must be called when the client disconnects.
func (s *subscriptions) subscribe(uuid string, viewerID int64) (chan *room.Snapshot, func()) {
	sub := &subscriber{
		viewerID: viewerID,
		ch:       make(chan *room.Snapshot, subscriberBuffer),
	}

	s.mu.Lock()
	if s.subs[uuid] == nil {
		s.subs[uuid] = make(map[*subscriber]struct{})
	}
	s.subs[uuid][sub] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if set, ok := s.subs[uuid]; ok {
			if _, ok := set[sub]; ok {
				delete(set, sub)
				close(sub.ch)

				if len(set) == 0 {
					delete(s.subs, uuid)
				}
			}
		}
	}

	return sub.ch, cancel
}

// publish sends a per-viewer snapshot of the room to every subscriber. A
// subscriber that cannot keep up has the update dropped rather than blocking
// the game.
func (s *subscriptions) publish(r *room.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for sub := range s.subs[r.UUID] {
		select {
		case sub.ch <- r.Snapshot(sub.viewerID):
		default:
			logrus.WithFields(logrus.Fields{
				"room":   r.UUID,
				"viewer": sub.viewerID,
			}).Warn("subscriber is slow, dropping update")
		}
	}
}
