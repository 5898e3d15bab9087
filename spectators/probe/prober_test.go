package probe

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/suite"

	"github.com/dowdarts/spectators-videochat/internal/log"
	"github.com/dowdarts/spectators-videochat/internal/realtime"
	"github.com/dowdarts/spectators-videochat/internal/realtime/memory"
	"github.com/dowdarts/spectators-videochat/spectators/signal"
)

// scriptedChannel emits only what the test pushes.
type scriptedChannel struct {
	topic        string
	events       chan realtime.Event
	presence     realtime.PresenceState
	subscribeErr error

	mu           sync.Mutex
	sent         []string
	unsubscribed bool
}

func newScripted(topic string) *scriptedChannel {
	return &scriptedChannel{topic: topic, events: make(chan realtime.Event, 16), presence: realtime.PresenceState{}}
}

func (c *scriptedChannel) Topic() string                    { return c.topic }
func (c *scriptedChannel) Events() <-chan realtime.Event    { return c.events }
func (c *scriptedChannel) Subscribe(context.Context) error  { return c.subscribeErr }
func (c *scriptedChannel) Track(context.Context, any) error { return nil }
func (c *scriptedChannel) Untrack(context.Context) error    { return nil }
func (c *scriptedChannel) Send(_ context.Context, event string, _ any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, event)
	return nil
}
func (c *scriptedChannel) PresenceState() realtime.PresenceState { return c.presence }
func (c *scriptedChannel) Unsubscribe(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unsubscribed = true
	return nil
}

func (c *scriptedChannel) wasUnsubscribed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unsubscribed
}

type scriptedClient struct {
	channels map[string]*scriptedChannel
	openErr  map[string]error
}

func (c *scriptedClient) Channel(topic string, _ realtime.ChannelOptions) (realtime.Channel, error) {
	if err := c.openErr[topic]; err != nil {
		return nil, err
	}
	return c.channels[topic], nil
}

type ProberTestSuite struct {
	suite.Suite
	hub   *memory.Hub
	clock *clockwork.FakeClock
}

func TestProberTestSuite(t *testing.T) {
	suite.Run(t, new(ProberTestSuite))
}

func (s *ProberTestSuite) SetupTest() {
	s.hub = memory.NewHub(0)
	s.clock = clockwork.NewFakeClock()
}

func (s *ProberTestSuite) join(roomCode, key, role string) {
	ch, err := s.hub.Channel(signal.Topic(roomCode), realtime.ChannelOptions{PresenceKey: key})
	s.Require().NoError(err)
	s.Require().NoError(ch.Subscribe(context.Background()))
	s.Require().NoError(ch.Track(context.Background(), map[string]string{"role": role}))
	s.T().Cleanup(func() { _ = ch.Unsubscribe(context.Background()) })
}

func (s *ProberTestSuite) TestTwoParticipantsAreLive() {
	s.join("ABC123", "host", "participant")
	s.join("ABC123", "guest", "participant")

	result := New(s.hub, s.clock, 0, log.NewNop()).Probe(context.Background(), "ABC123")

	s.Equal("ABC123", result.RoomCode)
	s.Equal(2, result.PresenceCount)
	s.True(result.Live())
}

func (s *ProberTestSuite) TestObserversNotCounted() {
	s.join("ABC123", "host", "participant")
	s.join("ABC123", "spectator-1", "observer")
	s.join("ABC123", "spectator-2", "observer")

	result := New(s.hub, s.clock, 0, log.NewNop()).Probe(context.Background(), "ABC123")

	s.Equal(1, result.PresenceCount)
	s.False(result.Live())
}

func (s *ProberTestSuite) TestEmptyRoom() {
	result := New(s.hub, s.clock, 0, log.NewNop()).Probe(context.Background(), "ABC123")
	s.Zero(result.PresenceCount)
	s.Zero(result.SignalCount)
	s.False(result.Live())

	// teardown runs in the background
	s.Eventually(func() bool { return s.hub.Subscribers(signal.Topic("ABC123")) == 0 }, time.Second, 5*time.Millisecond)
}

func (s *ProberTestSuite) TestPongsCountedUntilTimeout() {
	ch := newScripted(signal.Topic("ABC123"))
	ch.events <- realtime.Event{Kind: realtime.EventStatus, Status: realtime.StatusSubscribed}
	pong := func(role string) realtime.Event {
		body, _ := json.Marshal(map[string]string{"role": role})
		return realtime.Event{Kind: realtime.EventBroadcast, Name: signal.EventLobbyPong, Payload: body}
	}
	ch.events <- pong("participant")
	ch.events <- pong("observer")
	ch.events <- pong("participant")
	ch.events <- realtime.Event{Kind: realtime.EventBroadcast, Name: signal.EventOffer, Payload: json.RawMessage(`{}`)}

	client := &scriptedClient{channels: map[string]*scriptedChannel{ch.topic: ch}}
	prober := New(client, s.clock, time.Second, log.NewNop())

	done := make(chan struct{})
	var result struct{ signals, presence int }
	go func() {
		defer close(done)
		r := prober.Probe(context.Background(), "ABC123")
		result.signals, result.presence = r.SignalCount, r.PresenceCount
	}()

	s.Require().NoError(s.clock.BlockUntilContext(context.Background(), 1))
	s.clock.Advance(time.Second)
	<-done

	s.Equal(2, result.signals)
	s.Equal(0, result.presence)
	s.Equal([]string{signal.EventLobbyPing}, ch.sent)
	s.Eventually(ch.wasUnsubscribed, time.Second, 5*time.Millisecond)
}

func (s *ProberTestSuite) TestTimeoutUsesCurrentPresence() {
	ch := newScripted(signal.Topic("ABC123"))
	ch.presence = realtime.PresenceState{
		"host":  {json.RawMessage(`{"role":"participant"}`)},
		"guest": {json.RawMessage(`{"role":"participant"}`)},
	}
	client := &scriptedClient{channels: map[string]*scriptedChannel{ch.topic: ch}}
	prober := New(client, s.clock, 0, log.NewNop())

	done := make(chan bool)
	go func() { done <- prober.Probe(context.Background(), "ABC123").Live() }()

	s.Require().NoError(s.clock.BlockUntilContext(context.Background(), 1))
	s.clock.Advance(DefaultTimeout)
	s.True(<-done)
}

func (s *ProberTestSuite) TestFailuresIsolatedPerRoom() {
	s.join("GOOD01", "host", "participant")
	s.join("GOOD01", "guest", "participant")

	bad := newScripted(signal.Topic("BADSUB"))
	bad.subscribeErr = errors.New("channel error")

	client := &mixedClient{
		hub:     s.hub,
		scripts: map[string]*scriptedChannel{bad.topic: bad},
		openErr: map[string]error{signal.Topic("NOPE01"): errors.New("refused")},
	}

	results := New(client, s.clock, 0, log.NewNop()).ProbeAll(context.Background(), []string{"NOPE01", "GOOD01", "BADSUB"})

	s.Require().Len(results, 3)
	s.Equal("NOPE01", results[0].RoomCode)
	s.False(results[0].Live())
	s.Equal("GOOD01", results[1].RoomCode)
	s.True(results[1].Live())
	s.Equal("BADSUB", results[2].RoomCode)
	s.Zero(results[2].PresenceCount)
	s.Eventually(bad.wasUnsubscribed, time.Second, 5*time.Millisecond)
}

func (s *ProberTestSuite) TestProbeAllEmpty() {
	s.Empty(New(s.hub, s.clock, 0, log.NewNop()).ProbeAll(context.Background(), nil))
}

type mixedClient struct {
	hub     *memory.Hub
	scripts map[string]*scriptedChannel
	openErr map[string]error
}

func (c *mixedClient) Channel(topic string, opts realtime.ChannelOptions) (realtime.Channel, error) {
	if err := c.openErr[topic]; err != nil {
		return nil, err
	}
	if ch, ok := c.scripts[topic]; ok {
		return ch, nil
	}
	return c.hub.Channel(topic, opts)
}
