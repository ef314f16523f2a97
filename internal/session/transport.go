// Package session implements the live shopping session protocol: a
// presence-aware publish/subscribe channel per shopping list, mirroring
// item mutations across connected clients and tracking who is shopping.
//
// Concurrent edits are not arbitrated: two shoppers checking the same
// item inside the propagation window resolve last-event-wins in arrival
// order at each client independently, which can transiently diverge.
package session

import (
	"context"

	"github.com/pantryline/backend/internal/types"
)

// Transport is the generic real-time collaborator the session protocol
// runs on. It is injected, never a process-wide singleton, so tests can
// substitute an in-memory implementation.
type Transport interface {
	// Connect establishes the transport connection. Idempotent.
	Connect(ctx context.Context) error
	// Channel returns the named channel. Channels are cheap handles; a
	// fresh one is obtained per session.
	Channel(name string) Channel
	// Close releases transport resources.
	Close() error
}

// Channel carries mutation events and presence for one shopping list.
type Channel interface {
	// Publish sends a raw event payload to every subscriber of event.
	Publish(ctx context.Context, event string, payload []byte) error
	// Subscribe registers a handler for one event type and returns an
	// unsubscribe function that is safe to call more than once.
	Subscribe(ctx context.Context, event string, handler func(payload []byte)) (func(), error)
	// Presence returns the channel's presence set.
	Presence() Presence
}

// Presence tracks channel membership. Membership truth lives in the
// transport; observers re-fetch the full snapshot on every change
// notification rather than maintaining incremental diffs.
type Presence interface {
	Enter(ctx context.Context, member types.ActiveUser) error
	Leave(ctx context.Context) error
	Get(ctx context.Context) ([]types.ActiveUser, error)
	// Subscribe registers a change notification handler; the handler
	// carries no payload, it only signals that a re-fetch is due.
	Subscribe(ctx context.Context, handler func()) (func(), error)
}

// ChannelName returns the channel a shopping list's session lives on.
func ChannelName(listID string) string {
	return "list:" + listID
}

// ValidMembers filters a presence snapshot down to well-formed members;
// anything lacking an email or a name is dropped at the boundary.
func ValidMembers(members []types.ActiveUser) []types.ActiveUser {
	out := make([]types.ActiveUser, 0, len(members))
	for _, m := range members {
		if m.Email == "" || m.Name == "" {
			continue
		}
		out = append(out, m)
	}
	return out
}
