package session

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/pantryline/backend/internal/types"
)

// MemoryHub is an in-process Transport provider. Every transport obtained
// from the same hub shares channels and presence, so multiple simulated
// clients can exercise the full protocol without Redis. Used by tests and
// by local development without a broker.
type MemoryHub struct {
	mu       sync.Mutex
	channels map[string]*memoryChannelState
}

func NewMemoryHub() *MemoryHub {
	return &MemoryHub{channels: make(map[string]*memoryChannelState)}
}

// Client returns a transport with its own presence identity.
func (h *MemoryHub) Client() Transport {
	return &memoryTransport{hub: h, clientID: uuid.NewString()}
}

// FailingTransport returns a transport whose Connect always fails; for
// exercising the disconnected path.
func (h *MemoryHub) FailingTransport() Transport {
	return &memoryTransport{hub: h, clientID: uuid.NewString(), failConnect: true}
}

func (h *MemoryHub) state(name string) *memoryChannelState {
	h.mu.Lock()
	defer h.mu.Unlock()
	st, ok := h.channels[name]
	if !ok {
		st = &memoryChannelState{
			subs:     make(map[int]memorySub),
			presence: make(map[string]types.ActiveUser),
			psubs:    make(map[int]func()),
		}
		h.channels[name] = st
	}
	return st
}

type memorySub struct {
	event   string
	handler func(payload []byte)
}

type memoryChannelState struct {
	mu       sync.Mutex
	nextID   int
	subs     map[int]memorySub
	presence map[string]types.ActiveUser
	order    []string
	psubs    map[int]func()
}

type memoryTransport struct {
	hub         *MemoryHub
	clientID    string
	failConnect bool
}

func (t *memoryTransport) Connect(ctx context.Context) error {
	if t.failConnect {
		return errors.New("memory transport: connect refused")
	}
	return nil
}

func (t *memoryTransport) Channel(name string) Channel {
	return &memoryChannel{state: t.hub.state(name), clientID: t.clientID}
}

func (t *memoryTransport) Close() error { return nil }

type memoryChannel struct {
	state    *memoryChannelState
	clientID string
}

func (c *memoryChannel) Publish(ctx context.Context, event string, payload []byte) error {
	c.state.mu.Lock()
	handlers := make([]func(payload []byte), 0, len(c.state.subs))
	for _, sub := range c.state.subs {
		if sub.event == event {
			handlers = append(handlers, sub.handler)
		}
	}
	c.state.mu.Unlock()

	// Delivery happens synchronously, in arrival order, to every
	// subscriber including the publisher.
	data := append([]byte(nil), payload...)
	for _, h := range handlers {
		h(data)
	}
	return nil
}

func (c *memoryChannel) Subscribe(ctx context.Context, event string, handler func(payload []byte)) (func(), error) {
	c.state.mu.Lock()
	id := c.state.nextID
	c.state.nextID++
	c.state.subs[id] = memorySub{event: event, handler: handler}
	c.state.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.state.mu.Lock()
			delete(c.state.subs, id)
			c.state.mu.Unlock()
		})
	}, nil
}

func (c *memoryChannel) Presence() Presence {
	return &memoryPresence{channel: c}
}

type memoryPresence struct {
	channel *memoryChannel
}

func (p *memoryPresence) Enter(ctx context.Context, member types.ActiveUser) error {
	st := p.channel.state
	st.mu.Lock()
	if _, ok := st.presence[p.channel.clientID]; !ok {
		st.order = append(st.order, p.channel.clientID)
	}
	st.presence[p.channel.clientID] = member
	st.mu.Unlock()
	p.notify()
	return nil
}

func (p *memoryPresence) Leave(ctx context.Context) error {
	st := p.channel.state
	st.mu.Lock()
	_, present := st.presence[p.channel.clientID]
	delete(st.presence, p.channel.clientID)
	if present {
		for i, id := range st.order {
			if id == p.channel.clientID {
				st.order = append(st.order[:i], st.order[i+1:]...)
				break
			}
		}
	}
	st.mu.Unlock()
	if present {
		p.notify()
	}
	return nil
}

func (p *memoryPresence) Get(ctx context.Context) ([]types.ActiveUser, error) {
	st := p.channel.state
	st.mu.Lock()
	defer st.mu.Unlock()
	out := make([]types.ActiveUser, 0, len(st.order))
	for _, id := range st.order {
		out = append(out, st.presence[id])
	}
	return out, nil
}

func (p *memoryPresence) Subscribe(ctx context.Context, handler func()) (func(), error) {
	st := p.channel.state
	st.mu.Lock()
	id := st.nextID
	st.nextID++
	st.psubs[id] = handler
	st.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			st.mu.Lock()
			delete(st.psubs, id)
			st.mu.Unlock()
		})
	}, nil
}

func (p *memoryPresence) notify() {
	st := p.channel.state
	st.mu.Lock()
	handlers := make([]func(), 0, len(st.psubs))
	for _, h := range st.psubs {
		handlers = append(handlers, h)
	}
	st.mu.Unlock()
	for _, h := range handlers {
		h()
	}
}
