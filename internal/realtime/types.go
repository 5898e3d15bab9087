package realtime

import (
	"context"
	"encoding/json"

	"github.com/dowdarts/spectators-videochat/internal/errors"
)

const (
	ErrNotSubscribed errors.Code = "channel not subscribed"
	ErrClosed        errors.Code = "channel closed"
	ErrSubscribe     errors.Code = "subscribe failed"
	ErrInvalidTopic  errors.Code = "invalid topic"
)

type EventKind int

const (
	EventStatus EventKind = iota + 1
	EventBroadcast
	EventPresenceSync
)

type Status string

const (
	StatusSubscribed Status = "SUBSCRIBED"
	StatusClosed     Status = "CLOSED"
)

// Event is one item on a channel's event stream. Which fields are set
// depends on Kind.
type Event struct {
	Kind     EventKind
	Status   Status
	Name     string
	Payload  json.RawMessage
	Presence PresenceState
}

// PresenceState maps a presence key to the payloads tracked under it.
type PresenceState map[string][]json.RawMessage

// Count returns how many tracked payloads satisfy match.
func (p PresenceState) Count(match func(payload json.RawMessage) bool) int {
	n := 0
	for _, metas := range p {
		for _, m := range metas {
			if match(m) {
				n++
			}
		}
	}
	return n
}

func (p PresenceState) Clone() PresenceState {
	out := make(PresenceState, len(p))
	for k, metas := range p {
		out[k] = append([]json.RawMessage(nil), metas...)
	}
	return out
}

type ChannelOptions struct {
	// identifies this client in the topic's presence; random when empty
	PresenceKey string
	// deliver this channel's own broadcasts back to it
	BroadcastSelf bool
}

// Client opens channels on named topics.
type Client interface {
	Channel(topic string, opts ChannelOptions) (Channel, error)
}

// Channel is a subscription to one topic. Delivery is at-most-once with no
// ordering guarantee across senders.
type Channel interface {
	Topic() string
	// Subscribe returns once the subscription is confirmed. The event stream
	// then starts with a StatusSubscribed event and a presence sync.
	Subscribe(ctx context.Context) error
	// Events is closed by Unsubscribe.
	Events() <-chan Event
	Track(ctx context.Context, payload any) error
	Untrack(ctx context.Context) error
	Send(ctx context.Context, event string, payload any) error
	PresenceState() PresenceState
	// Unsubscribe is safe to call more than once.
	Unsubscribe(ctx context.Context) error
}
