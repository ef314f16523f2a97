package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/pantryline/backend/internal/types"
)

// State is the connection state of a session controller.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// ErrNoList is returned when Enable is called without a list id.
var ErrNoList = errors.New("session: shopping list id required")

// Handlers receives inbound session events. Nil handlers are skipped.
// Handlers run on the controller's single dispatch goroutine, so they
// observe events in arrival order. A handler may call Disable on its
// own controller; the teardown then completes without waiting for the
// handler to return.
type Handlers struct {
	ItemChecked     func(types.ItemCheckedEvent)
	ListUpdated     func(types.ListUpdatedEvent)
	ItemDeleted     func(types.ItemDeletedEvent)
	PresenceChanged func([]types.ActiveUser)
}

// presenceNotify is the internal queue marker for presence changes.
const presenceNotify = "__presence__"

const queueSize = 64

type message struct {
	event   string
	payload []byte
}

// Controller owns one live session: channel lifecycle, inbound event
// dispatch and the locally observed presence roster.
type Controller struct {
	transport Transport
	handlers  Handlers
	log       *zap.Logger

	dispatching atomic.Bool

	mu       sync.Mutex
	state    State
	listID   string
	channel  Channel
	identity *types.ActiveUser
	roster   []types.ActiveUser
	unsubs   []func()
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewController(transport Transport, handlers Handlers, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		transport: transport,
		handlers:  handlers,
		log:       log,
	}
}

// Enable connects to the given list's channel, enters presence when an
// identity is provided, and starts dispatching inbound events. Any
// previous session is torn down completely first; channels are never
// reused across list ids.
func (c *Controller) Enable(ctx context.Context, listID string, identity *types.ActiveUser) error {
	if listID == "" {
		return ErrNoList
	}
	c.Disable()

	c.setState(StateConnecting)
	if err := c.transport.Connect(ctx); err != nil {
		c.setState(StateDisconnected)
		return fmt.Errorf("session connect: %w", err)
	}

	ch := c.transport.Channel(ChannelName(listID))
	queue := make(chan message, queueSize)

	enqueue := func(event string) func(payload []byte) {
		return func(payload []byte) {
			select {
			case queue <- message{event: event, payload: payload}:
			default:
				c.log.Warn("session queue full, dropping event", zap.String("event", event))
			}
		}
	}

	var unsubs []func()
	teardown := func() {
		for _, unsub := range unsubs {
			unsub()
		}
		c.setState(StateDisconnected)
	}

	for _, event := range []string{types.EventItemChecked, types.EventListUpdated, types.EventItemDeleted} {
		unsub, err := ch.Subscribe(ctx, event, enqueue(event))
		if err != nil {
			teardown()
			return fmt.Errorf("session subscribe %s: %w", event, err)
		}
		unsubs = append(unsubs, unsub)
	}

	punsub, err := ch.Presence().Subscribe(ctx, func() {
		select {
		case queue <- message{event: presenceNotify}:
		default:
		}
	})
	if err != nil {
		teardown()
		return fmt.Errorf("session presence subscribe: %w", err)
	}
	unsubs = append(unsubs, punsub)

	if identity != nil {
		if err := ch.Presence().Enter(ctx, *identity); err != nil {
			// Presence is advisory; the session still works without it.
			c.log.Warn("presence enter failed", zap.String("list_id", listID), zap.Error(err))
		}
	}

	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	c.mu.Lock()
	c.listID = listID
	c.channel = ch
	c.identity = identity
	c.unsubs = unsubs
	c.cancel = cancel
	c.done = done
	c.state = StateConnected
	c.mu.Unlock()

	go c.dispatch(runCtx, ch, queue, done)

	// Prime the roster so callers see membership immediately.
	c.refreshRoster(ctx, ch)

	return nil
}

// Disable leaves presence, unsubscribes and clears all session state. It
// is safe to call any number of times, also when the transport already
// tore the channel down.
func (c *Controller) Disable() {
	c.mu.Lock()
	ch := c.channel
	identity := c.identity
	unsubs := c.unsubs
	cancel := c.cancel
	done := c.done
	c.channel = nil
	c.identity = nil
	c.unsubs = nil
	c.cancel = nil
	c.done = nil
	c.listID = ""
	c.roster = nil
	c.state = StateDisconnected
	c.mu.Unlock()

	if ch == nil {
		return
	}

	if identity != nil {
		leaveCtx, cancelLeave := context.WithTimeout(context.Background(), 5*time.Second)
		if err := ch.Presence().Leave(leaveCtx); err != nil {
			c.log.Debug("presence leave failed", zap.Error(err))
		}
		cancelLeave()
	}

	for _, unsub := range unsubs {
		unsub()
	}
	if cancel != nil {
		cancel()
	}
	// Waiting for the dispatch goroutine from inside one of its own
	// handlers would deadlock; it exits on its own once cancelled.
	if done != nil && !c.dispatching.Load() {
		<-done
	}
}

// State reports the current connection state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ListID reports the list the controller is currently attached to.
func (c *Controller) ListID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listID
}

// Roster returns a copy of the locally observed presence roster.
func (c *Controller) Roster() []types.ActiveUser {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]types.ActiveUser(nil), c.roster...)
}

// dispatch consumes the inbound queue on a single goroutine, preserving
// arrival order across event types.
func (c *Controller) dispatch(ctx context.Context, ch Channel, queue <-chan message, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-queue:
			c.dispatching.Store(true)
			if msg.event == presenceNotify {
				c.refreshRoster(ctx, ch)
			} else {
				c.dispatchEvent(msg)
			}
			c.dispatching.Store(false)
		}
	}
}

// dispatchEvent decodes one wire payload and forwards it to the matching
// handler. Malformed or incomplete payloads are dropped silently.
func (c *Controller) dispatchEvent(msg message) {
	switch msg.event {
	case types.EventItemChecked:
		var raw struct {
			Type       string  `json:"type"`
			FoodItemID *string `json:"foodItemId"`
			Checked    *bool   `json:"checked"`
			UpdatedBy  *string `json:"updatedBy"`
		}
		if err := json.Unmarshal(msg.payload, &raw); err != nil {
			return
		}
		if raw.FoodItemID == nil || *raw.FoodItemID == "" || raw.Checked == nil || raw.UpdatedBy == nil {
			return
		}
		if h := c.handlers.ItemChecked; h != nil {
			h(types.ItemCheckedEvent{
				Type:       types.EventItemChecked,
				FoodItemID: *raw.FoodItemID,
				Checked:    *raw.Checked,
				UpdatedBy:  *raw.UpdatedBy,
			})
		}

	case types.EventListUpdated:
		var raw struct {
			Type      string            `json:"type"`
			Items     *[]types.ListItem `json:"items"`
			UpdatedBy *string           `json:"updatedBy"`
		}
		if err := json.Unmarshal(msg.payload, &raw); err != nil {
			return
		}
		if raw.Items == nil || raw.UpdatedBy == nil {
			return
		}
		if h := c.handlers.ListUpdated; h != nil {
			h(types.ListUpdatedEvent{
				Type:      types.EventListUpdated,
				Items:     *raw.Items,
				UpdatedBy: *raw.UpdatedBy,
			})
		}

	case types.EventItemDeleted:
		var raw struct {
			Type       string  `json:"type"`
			FoodItemID *string `json:"foodItemId"`
			UpdatedBy  *string `json:"updatedBy"`
		}
		if err := json.Unmarshal(msg.payload, &raw); err != nil {
			return
		}
		if raw.FoodItemID == nil || *raw.FoodItemID == "" || raw.UpdatedBy == nil {
			return
		}
		if h := c.handlers.ItemDeleted; h != nil {
			h(types.ItemDeletedEvent{
				Type:       types.EventItemDeleted,
				FoodItemID: *raw.FoodItemID,
				UpdatedBy:  *raw.UpdatedBy,
			})
		}
	}
}

// refreshRoster replaces the local roster with a full presence snapshot.
func (c *Controller) refreshRoster(ctx context.Context, ch Channel) {
	members, err := ch.Presence().Get(ctx)
	if err != nil {
		c.log.Warn("presence fetch failed", zap.Error(err))
		return
	}
	roster := ValidMembers(members)

	c.mu.Lock()
	if c.channel != ch {
		// A newer session took over while the fetch was in flight.
		c.mu.Unlock()
		return
	}
	c.roster = roster
	handler := c.handlers.PresenceChanged
	c.mu.Unlock()

	if handler != nil {
		handler(roster)
	}
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}
