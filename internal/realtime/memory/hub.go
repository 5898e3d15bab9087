package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"github.com/dowdarts/spectators-videochat/internal/errors"
	"github.com/dowdarts/spectators-videochat/internal/realtime"
)

const defaultBuffer = 64

// Hub is an in-process realtime.Client. All channels opened on the same Hub
// share topics, which makes it usable for single-node deployments and tests.
type Hub struct {
	mu     sync.Mutex
	topics map[string]*topic
	buffer int
}

type topic struct {
	channels map[*channel]struct{}
	presence map[string]json.RawMessage
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Hub{
		topics: map[string]*topic{},
		buffer: buffer,
	}
}

func (h *Hub) Channel(name string, opts realtime.ChannelOptions) (realtime.Channel, error) {
	if name == "" {
		return nil, errors.New(realtime.ErrInvalidTopic, "topic is required")
	}
	if opts.PresenceKey == "" {
		opts.PresenceKey = uuid.NewString()
	}
	return &channel{
		hub:    h,
		name:   name,
		opts:   opts,
		events: make(chan realtime.Event, h.buffer),
	}, nil
}

// Subscribers reports how many subscribed channels a topic has.
func (h *Hub) Subscribers(name string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if t, ok := h.topics[name]; ok {
		return len(t.channels)
	}
	return 0
}

func (h *Hub) topicLocked(name string) *topic {
	t, ok := h.topics[name]
	if !ok {
		t = &topic{
			channels: map[*channel]struct{}{},
			presence: map[string]json.RawMessage{},
		}
		h.topics[name] = t
	}
	return t
}

func (h *Hub) dropTopicLocked(name string) {
	if t, ok := h.topics[name]; ok && len(t.channels) == 0 && len(t.presence) == 0 {
		delete(h.topics, name)
	}
}

func (t *topic) stateLocked() realtime.PresenceState {
	state := make(realtime.PresenceState, len(t.presence))
	for k, v := range t.presence {
		state[k] = []json.RawMessage{v}
	}
	return state
}

func (t *topic) syncLocked() {
	for ch := range t.channels {
		ch.deliverLocked(realtime.Event{Kind: realtime.EventPresenceSync, Presence: t.stateLocked()})
	}
}

// channel state is guarded by hub.mu.
type channel struct {
	hub    *Hub
	name   string
	opts   realtime.ChannelOptions
	events chan realtime.Event

	subscribed bool
	closed     bool
	tracked    bool
}

func (ch *channel) Topic() string {
	return ch.name
}

func (ch *channel) Events() <-chan realtime.Event {
	return ch.events
}

func (ch *channel) deliverLocked(ev realtime.Event) {
	if ch.closed {
		return
	}
	select {
	case ch.events <- ev:
	default:
	}
}

func (ch *channel) Subscribe(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(realtime.ErrSubscribe, err, ch.name)
	}

	h := ch.hub
	h.mu.Lock()
	defer h.mu.Unlock()

	switch {
	case ch.closed:
		return errors.New(realtime.ErrClosed, ch.name)
	case ch.subscribed:
		return nil
	}

	t := h.topicLocked(ch.name)
	t.channels[ch] = struct{}{}
	ch.subscribed = true

	ch.deliverLocked(realtime.Event{Kind: realtime.EventStatus, Status: realtime.StatusSubscribed})
	ch.deliverLocked(realtime.Event{Kind: realtime.EventPresenceSync, Presence: t.stateLocked()})
	return nil
}

func (ch *channel) Send(_ context.Context, event string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	h := ch.hub
	h.mu.Lock()
	defer h.mu.Unlock()

	if !ch.subscribed || ch.closed {
		return errors.New(realtime.ErrNotSubscribed, ch.name)
	}

	ev := realtime.Event{Kind: realtime.EventBroadcast, Name: event, Payload: body}
	for other := range h.topics[ch.name].channels {
		if other == ch && !ch.opts.BroadcastSelf {
			continue
		}
		other.deliverLocked(ev)
	}
	return nil
}

func (ch *channel) Track(_ context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	h := ch.hub
	h.mu.Lock()
	defer h.mu.Unlock()

	if !ch.subscribed || ch.closed {
		return errors.New(realtime.ErrNotSubscribed, ch.name)
	}

	t := h.topics[ch.name]
	t.presence[ch.opts.PresenceKey] = body
	ch.tracked = true
	t.syncLocked()
	return nil
}

func (ch *channel) Untrack(_ context.Context) error {
	h := ch.hub
	h.mu.Lock()
	defer h.mu.Unlock()

	ch.untrackLocked()
	return nil
}

func (ch *channel) untrackLocked() {
	if !ch.tracked {
		return
	}
	ch.tracked = false

	t, ok := ch.hub.topics[ch.name]
	if !ok {
		return
	}
	delete(t.presence, ch.opts.PresenceKey)
	t.syncLocked()
}

func (ch *channel) PresenceState() realtime.PresenceState {
	h := ch.hub
	h.mu.Lock()
	defer h.mu.Unlock()

	if !ch.subscribed || ch.closed {
		return realtime.PresenceState{}
	}
	return h.topics[ch.name].stateLocked()
}

func (ch *channel) Unsubscribe(_ context.Context) error {
	h := ch.hub
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch.closed {
		return nil
	}
	ch.untrackLocked()
	if t, ok := h.topics[ch.name]; ok {
		delete(t.channels, ch)
	}
	ch.closed = true
	close(ch.events)
	h.dropTopicLocked(ch.name)
	return nil
}
