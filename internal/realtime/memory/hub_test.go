package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dowdarts/spectators-videochat/internal/realtime"
	"github.com/dowdarts/spectators-videochat/internal/realtime/realtimetest"
)

func TestHubConformance(t *testing.T) {
	realtimetest.RunChannelSuite(t, func(*testing.T) realtime.Client {
		return NewHub(0)
	})
}

func TestHubDropsEmptyTopics(t *testing.T) {
	hub := NewHub(0)
	ch, err := hub.Channel("room-ABC123", realtime.ChannelOptions{})
	require.NoError(t, err)
	require.NoError(t, ch.Subscribe(context.Background()))
	assert.Equal(t, 1, hub.Subscribers("room-ABC123"))

	require.NoError(t, ch.Track(context.Background(), map[string]string{"role": "observer"}))
	require.NoError(t, ch.Unsubscribe(context.Background()))

	assert.Equal(t, 0, hub.Subscribers("room-ABC123"))
	assert.Empty(t, hub.topics)
}

func TestHubFullBufferDrops(t *testing.T) {
	hub := NewHub(2)
	a, _ := hub.Channel("room-ABC123", realtime.ChannelOptions{})
	b, _ := hub.Channel("room-ABC123", realtime.ChannelOptions{})
	require.NoError(t, a.Subscribe(context.Background()))
	require.NoError(t, b.Subscribe(context.Background()))

	// b's buffer already holds status + presence sync
	require.NoError(t, a.Send(context.Background(), "offer", map[string]string{}))
	assert.Len(t, b.Events(), 2)
}
