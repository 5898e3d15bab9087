package redis

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/dowdarts/spectators-videochat/internal/errors"
	"github.com/dowdarts/spectators-videochat/internal/log"
	"github.com/dowdarts/spectators-videochat/internal/realtime"
)

type channel struct {
	client      *Client
	topic       string
	opts        realtime.ChannelOptions
	sender      string
	pubsubKey   string
	presenceKey string
	logger      *log.Logger

	events chan realtime.Event

	// guards everything below
	mu         sync.Mutex
	pubsub     *redis.PubSub
	subscribed bool
	closing    bool
	closed     bool
	tracked    json.RawMessage
	presence   realtime.PresenceState
	stopLoop   context.CancelFunc
	stopBeat   context.CancelFunc
	wg         sync.WaitGroup
}

func (ch *channel) Topic() string {
	return ch.topic
}

func (ch *channel) Events() <-chan realtime.Event {
	return ch.events
}

func (ch *channel) Subscribe(ctx context.Context) error {
	ch.mu.Lock()
	switch {
	case ch.closing:
		ch.mu.Unlock()
		return errors.New(realtime.ErrClosed, ch.topic)
	case ch.subscribed:
		ch.mu.Unlock()
		return nil
	}
	ch.mu.Unlock()

	subCtx, cancel := context.WithTimeout(ctx, ch.client.cfg.SubscribeTimeout)
	defer cancel()

	var ps *redis.PubSub
	err := ch.client.retry.Do(subCtx, func() error {
		ps = ch.client.rdb.Subscribe(subCtx, ch.pubsubKey)
		if _, err := ps.Receive(subCtx); err != nil {
			_ = ps.Close()
			return err
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(realtime.ErrSubscribe, err, "subscribe %s", ch.topic)
	}

	loopCtx, stopLoop := context.WithCancel(context.Background())

	ch.mu.Lock()
	if ch.closing {
		ch.mu.Unlock()
		stopLoop()
		_ = ps.Close()
		return errors.New(realtime.ErrClosed, ch.topic)
	}
	ch.pubsub = ps
	ch.subscribed = true
	ch.stopLoop = stopLoop
	ch.wg.Add(1)
	ch.mu.Unlock()

	ch.emit(realtime.Event{Kind: realtime.EventStatus, Status: realtime.StatusSubscribed})
	if err := ch.syncPresence(ctx); err != nil {
		ch.logger.Warn("initial presence sync failed", log.Error(err))
	}

	go ch.receiveLoop(loopCtx, ps.Channel())
	return nil
}

func (ch *channel) receiveLoop(ctx context.Context, msgs <-chan *redis.Message) {
	defer ch.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			ch.handleMessage(ctx, msg.Payload)
		}
	}
}

func (ch *channel) handleMessage(ctx context.Context, raw string) {
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		ch.logger.Debug("drop malformed envelope", log.Error(err))
		return
	}

	switch env.Kind {
	case kindBroadcast:
		if env.Sender == ch.sender && !ch.opts.BroadcastSelf {
			return
		}
		ch.emit(realtime.Event{
			Kind:    realtime.EventBroadcast,
			Name:    env.Event,
			Payload: env.Payload,
		})
	case kindPresence:
		if err := ch.syncPresence(ctx); err != nil {
			ch.logger.Debug("presence sync failed", log.Error(err))
		}
	default:
		ch.logger.Debug("drop unknown envelope", log.String("kind", env.Kind))
	}
}

// syncPresence reloads the topic's presence hash, skipping entries whose
// heartbeat is older than the presence TTL.
func (ch *channel) syncPresence(ctx context.Context) error {
	entries, err := ch.client.rdb.HGetAll(ctx, ch.presenceKey).Result()
	if err != nil {
		return err
	}

	state := realtime.PresenceState{}
	for key, raw := range entries {
		var entry presenceEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			continue
		}
		if ch.client.stale(entry.TS) {
			continue
		}
		state[key] = append(state[key], entry.Payload)
	}

	ch.mu.Lock()
	ch.presence = state
	ch.mu.Unlock()

	ch.emit(realtime.Event{Kind: realtime.EventPresenceSync, Presence: state.Clone()})
	return nil
}

// emit never blocks; a full buffer drops the event.
func (ch *channel) emit(ev realtime.Event) {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if ch.closed {
		return
	}
	select {
	case ch.events <- ev:
	default:
		ch.logger.Warn("event buffer full, dropping event", log.Int("kind", int(ev.Kind)), log.String("event", ev.Name))
	}
}

func (ch *channel) Send(ctx context.Context, event string, payload any) error {
	ch.mu.Lock()
	ready := ch.subscribed && !ch.closed
	ch.mu.Unlock()
	if !ready {
		return errors.New(realtime.ErrNotSubscribed, ch.topic)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return ch.publish(ctx, envelope{Kind: kindBroadcast, Event: event, Payload: body})
}

func (ch *channel) publish(ctx context.Context, env envelope) error {
	env.Sender = ch.sender
	bs, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return ch.client.rdb.Publish(ctx, ch.pubsubKey, bs).Err()
}

func (ch *channel) Track(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	ch.mu.Lock()
	if !ch.subscribed || ch.closing {
		ch.mu.Unlock()
		return errors.New(realtime.ErrNotSubscribed, ch.topic)
	}
	ch.tracked = body
	startBeat := ch.stopBeat == nil
	var beatCtx context.Context
	if startBeat {
		beatCtx, ch.stopBeat = context.WithCancel(context.Background())
		ch.wg.Add(1)
	}
	ch.mu.Unlock()

	if startBeat {
		go ch.heartbeat(beatCtx)
	}

	if err := ch.writePresence(ctx, body); err != nil {
		return err
	}
	return ch.publish(ctx, envelope{Kind: kindPresence})
}

func (ch *channel) writePresence(ctx context.Context, body json.RawMessage) error {
	entry, err := json.Marshal(presenceEntry{Payload: body, TS: ch.client.nowMillis()})
	if err != nil {
		return err
	}

	pipe := ch.client.rdb.TxPipeline()
	pipe.HSet(ctx, ch.presenceKey, ch.opts.PresenceKey, entry)
	if ttl := ch.client.cfg.PresenceTTL; ttl > 0 {
		pipe.PExpire(ctx, ch.presenceKey, 2*ttl)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (ch *channel) heartbeat(ctx context.Context) {
	defer ch.wg.Done()

	interval := ch.client.cfg.HeartbeatInterval
	if interval <= 0 {
		return
	}
	ticker := ch.client.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			ch.mu.Lock()
			body := ch.tracked
			ch.mu.Unlock()
			if body == nil {
				continue
			}
			if err := ch.writePresence(ctx, body); err != nil {
				ch.logger.Debug("presence heartbeat failed", log.Error(err))
			}
		}
	}
}

func (ch *channel) Untrack(ctx context.Context) error {
	ch.mu.Lock()
	wasTracked := ch.tracked != nil
	ch.tracked = nil
	stopBeat := ch.stopBeat
	ch.stopBeat = nil
	ch.mu.Unlock()

	if stopBeat != nil {
		stopBeat()
	}
	if !wasTracked {
		return nil
	}

	if err := ch.client.rdb.HDel(ctx, ch.presenceKey, ch.opts.PresenceKey).Err(); err != nil {
		return err
	}
	return ch.publish(ctx, envelope{Kind: kindPresence})
}

func (ch *channel) PresenceState() realtime.PresenceState {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.presence.Clone()
}

func (ch *channel) Unsubscribe(ctx context.Context) error {
	ch.mu.Lock()
	if ch.closing {
		ch.mu.Unlock()
		return nil
	}
	ch.closing = true
	ch.mu.Unlock()

	// presence removal is best effort; an abandoned entry ages out by TTL
	untrackErr := ch.Untrack(ctx)

	ch.mu.Lock()
	ch.closed = true
	ps := ch.pubsub
	stopLoop := ch.stopLoop
	ch.mu.Unlock()

	if stopLoop != nil {
		stopLoop()
	}
	var closeErr error
	if ps != nil {
		closeErr = ps.Close()
	}
	ch.wg.Wait()

	ch.mu.Lock()
	close(ch.events)
	ch.mu.Unlock()

	if untrackErr != nil {
		return untrackErr
	}
	return closeErr
}
