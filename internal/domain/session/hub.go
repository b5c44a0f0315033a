package session

import (
	"sync"
	"sync/atomic"

	"github.com/claimex/backend/internal/model"
	"github.com/puzpuzpuz/xsync"
)

// State is what a browser session sees: the signed-in user or none.
type State struct {
	User *model.User `json:"user"`
}

type subscriber struct {
	mu     sync.Mutex
	closed bool
	c      chan State
}

// deliver keeps only the latest state when the subscriber is slow.
func (s *subscriber) deliver(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	select {
	case <-s.c:
	default:
	}
	s.c <- state
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.c)
	}
}

// entry is the state of one session key. It lives only while the key has
// subscribers; a removed entry is never reused.
type entry struct {
	mu          sync.Mutex
	removed     bool
	state       *State
	subscribers map[uint64]*subscriber
}

// Hub is the process-wide observable session state, keyed by session id.
// The state of a key is remembered only while someone subscribes to it, a
// session nobody watches is read from its credentials instead.
type Hub struct {
	nextID  atomic.Uint64
	entries *xsync.MapOf[string, *entry]
}

func NewHub() *Hub {
	return &Hub{entries: xsync.NewMapOf[*entry]()}
}

// Subscribe returns a channel receiving every state published under key,
// starting with the current one if any. The returned func unsubscribes and
// closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe(key string) (<-chan State, func()) {
	id := h.nextID.Add(1)
	s := &subscriber{c: make(chan State, 1)}

	for {
		e, _ := h.entries.LoadOrCompute(key, func() *entry {
			return &entry{subscribers: map[uint64]*subscriber{}}
		})

		e.mu.Lock()
		if e.removed {
			// The last subscriber left meanwhile, take a fresh entry.
			e.mu.Unlock()
			continue
		}

		e.subscribers[id] = s
		if e.state != nil {
			s.deliver(*e.state)
		}
		e.mu.Unlock()

		return s.c, func() { h.unsubscribe(key, e, id) }
	}
}

func (h *Hub) unsubscribe(key string, e *entry, id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if s, ok := e.subscribers[id]; ok {
		delete(e.subscribers, id)
		s.close()
	}

	if len(e.subscribers) == 0 && !e.removed {
		e.removed = true
		h.entries.Delete(key)
	}
}

// Publish notifies the subscribers of key. Nothing is kept when there are
// none.
func (h *Hub) Publish(key string, state State) {
	e, ok := h.entries.Load(key)
	if !ok {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.removed {
		return
	}

	e.state = &state
	for _, s := range e.subscribers {
		s.deliver(state)
	}
}

// Current returns the last state published to the subscribers of key.
func (h *Hub) Current(key string) (State, bool) {
	e, ok := h.entries.Load(key)
	if !ok {
		return State{}, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.removed || e.state == nil {
		return State{}, false
	}

	return *e.state, true
}

// Size is the number of session keys held in memory.
func (h *Hub) Size() int {
	return h.entries.Size()
}
