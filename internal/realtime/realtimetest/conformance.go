// Package realtimetest holds shared checks for realtime.Client drivers.
package realtimetest

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dowdarts/spectators-videochat/internal/errors"
	"github.com/dowdarts/spectators-videochat/internal/realtime"
)

const waitTimeout = 2 * time.Second

// NextEvent waits for the next event of kind, skipping other kinds.
func NextEvent(t *testing.T, ch realtime.Channel, kind realtime.EventKind) realtime.Event {
	t.Helper()

	deadline := time.After(waitTimeout)
	for {
		select {
		case ev, ok := <-ch.Events():
			require.True(t, ok, "events closed while waiting for kind %d", kind)
			if ev.Kind == kind {
				return ev
			}
		case <-deadline:
			require.FailNow(t, "timed out waiting for event", "kind %d on %s", kind, ch.Topic())
		}
	}
}

// NoBroadcast asserts that no broadcast arrives within d.
func NoBroadcast(t *testing.T, ch realtime.Channel, d time.Duration) {
	t.Helper()

	deadline := time.After(d)
	for {
		select {
		case ev, ok := <-ch.Events():
			if !ok {
				return
			}
			assert.NotEqual(t, realtime.EventBroadcast, ev.Kind, "unexpected broadcast %q", ev.Name)
		case <-deadline:
			return
		}
	}
}

func open(t *testing.T, c realtime.Client, topic string, opts realtime.ChannelOptions) realtime.Channel {
	t.Helper()

	ch, err := c.Channel(topic, opts)
	require.NoError(t, err)
	require.NoError(t, ch.Subscribe(context.Background()))
	t.Cleanup(func() { _ = ch.Unsubscribe(context.Background()) })
	return ch
}

// RunChannelSuite checks the behavior every driver must share.
func RunChannelSuite(t *testing.T, newClient func(t *testing.T) realtime.Client) {
	t.Run("SubscribeEmitsStatusThenPresence", func(t *testing.T) {
		c := newClient(t)
		ch := open(t, c, "room-AAA111", realtime.ChannelOptions{})

		ev := NextEvent(t, ch, realtime.EventStatus)
		assert.Equal(t, realtime.StatusSubscribed, ev.Status)
		ev = NextEvent(t, ch, realtime.EventPresenceSync)
		assert.Empty(t, ev.Presence)
	})

	t.Run("BroadcastSkipsSelfByDefault", func(t *testing.T) {
		c := newClient(t)
		a := open(t, c, "room-BBB222", realtime.ChannelOptions{PresenceKey: "a"})
		b := open(t, c, "room-BBB222", realtime.ChannelOptions{PresenceKey: "b"})

		require.NoError(t, a.Send(context.Background(), "lobby-ping", map[string]int64{"ts": 42}))

		ev := NextEvent(t, b, realtime.EventBroadcast)
		assert.Equal(t, "lobby-ping", ev.Name)
		assert.JSONEq(t, `{"ts":42}`, string(ev.Payload))

		NoBroadcast(t, a, 100*time.Millisecond)
	})

	t.Run("BroadcastSelf", func(t *testing.T) {
		c := newClient(t)
		a := open(t, c, "room-CCC333", realtime.ChannelOptions{BroadcastSelf: true})

		require.NoError(t, a.Send(context.Background(), "offer-request", map[string]string{"token": "t"}))
		ev := NextEvent(t, a, realtime.EventBroadcast)
		assert.Equal(t, "offer-request", ev.Name)
	})

	t.Run("TopicsAreIsolated", func(t *testing.T) {
		c := newClient(t)
		a := open(t, c, "room-DDD444", realtime.ChannelOptions{})
		b := open(t, c, "room-EEE555", realtime.ChannelOptions{})

		require.NoError(t, a.Send(context.Background(), "offer", map[string]string{}))
		NoBroadcast(t, b, 100*time.Millisecond)
	})

	t.Run("TrackAndUntrack", func(t *testing.T) {
		c := newClient(t)
		host := open(t, c, "room-FFF666", realtime.ChannelOptions{PresenceKey: "host"})
		viewer := open(t, c, "room-FFF666", realtime.ChannelOptions{PresenceKey: "viewer"})
		NextEvent(t, viewer, realtime.EventPresenceSync)

		require.NoError(t, host.Track(context.Background(), map[string]string{"role": "participant"}))

		ev := NextEvent(t, viewer, realtime.EventPresenceSync)
		require.Contains(t, ev.Presence, "host")
		assert.JSONEq(t, `{"role":"participant"}`, string(ev.Presence["host"][0]))
		assert.Equal(t, 1, viewer.PresenceState().Count(func(json.RawMessage) bool { return true }))

		require.NoError(t, host.Untrack(context.Background()))
		ev = NextEvent(t, viewer, realtime.EventPresenceSync)
		assert.NotContains(t, ev.Presence, "host")
	})

	t.Run("SendRequiresSubscribe", func(t *testing.T) {
		c := newClient(t)
		ch, err := c.Channel("room-GGG777", realtime.ChannelOptions{})
		require.NoError(t, err)

		err = ch.Send(context.Background(), "offer", map[string]string{})
		assert.True(t, errors.Is(err, realtime.ErrNotSubscribed))
		assert.True(t, errors.Is(ch.Track(context.Background(), map[string]string{}), realtime.ErrNotSubscribed))
	})

	t.Run("UnsubscribeIsIdempotent", func(t *testing.T) {
		c := newClient(t)
		ch, err := c.Channel("room-HHH888", realtime.ChannelOptions{})
		require.NoError(t, err)
		require.NoError(t, ch.Subscribe(context.Background()))

		require.NoError(t, ch.Unsubscribe(context.Background()))
		require.NoError(t, ch.Unsubscribe(context.Background()))

		for range ch.Events() {
		}
		assert.True(t, errors.Is(ch.Subscribe(context.Background()), realtime.ErrClosed))
	})

	t.Run("EmptyTopicRejected", func(t *testing.T) {
		c := newClient(t)
		_, err := c.Channel("", realtime.ChannelOptions{})
		assert.True(t, errors.Is(err, realtime.ErrInvalidTopic))
	})
}
