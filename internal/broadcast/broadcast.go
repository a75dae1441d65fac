package broadcast

import (
	"strconv"
	"sync"

	"beastduel/internal/events"
)

// EventMessage is one server-sent event for connected spectators.
type EventMessage struct {
	Event string
	Msg   string
}

// Broadcaster fans the game's event bus out to any number of SSE
// subscribers.
type Broadcaster struct {
	Mu      sync.Mutex
	Clients map[chan EventMessage]bool
}

func NewBroadcaster(bus *events.Bus) *Broadcaster {
	b := &Broadcaster{
		Clients: make(map[chan EventMessage]bool),
	}
	go func() {
		for ev := range bus.SceneChanges {
			b.Broadcast("sceneChange", ev.Scene)
		}
	}()
	go func() {
		for ev := range bus.Rounds {
			b.Broadcast("round", strconv.Itoa(ev.Number)+":"+ev.Criterion)
		}
	}()
	return b
}

func (b *Broadcaster) Subscribe() chan EventMessage {
	ch := make(chan EventMessage, 10)
	b.Mu.Lock()
	b.Clients[ch] = true
	b.Mu.Unlock()
	return ch
}

func (b *Broadcaster) Unsubscribe(ch chan EventMessage) {
	b.Mu.Lock()
	delete(b.Clients, ch)
	b.Mu.Unlock()
	close(ch)
}

func (b *Broadcaster) Broadcast(event string, message string) {
	b.Mu.Lock()
	defer b.Mu.Unlock()
	for ch := range b.Clients {
		select {
		case ch <- EventMessage{Event: event, Msg: message}:
		default:
			// skip clients with full data channels
		}
	}
}
