package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/dowdarts/spectators-videochat/internal/log"
	"github.com/dowdarts/spectators-videochat/internal/realtime"
	"github.com/dowdarts/spectators-videochat/internal/realtime/realtimetest"
)

type ChannelTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	rdb    *goredis.Client
	clock  *clockwork.FakeClock
	cfg    *realtime.Config
	client *Client
}

func TestChannelTestSuite(t *testing.T) {
	suite.Run(t, new(ChannelTestSuite))
}

func (s *ChannelTestSuite) SetupTest() {
	s.mr = miniredis.RunT(s.T())
	s.rdb = goredis.NewClient(&goredis.Options{Addr: s.mr.Addr()})
	s.clock = clockwork.NewFakeClockAt(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	s.cfg = &realtime.Config{
		Prefix:            "rt",
		PresenceTTL:       30 * time.Second,
		HeartbeatInterval: 10 * time.Second,
		SubscribeTimeout:  time.Second,
		EventBuffer:       16,
	}
	s.client = NewClient(s.rdb, s.cfg, s.clock, log.NewNop())
}

func (s *ChannelTestSuite) TearDownTest() {
	s.rdb.Close()
}

func (s *ChannelTestSuite) TestConformance() {
	realtimetest.RunChannelSuite(s.T(), func(*testing.T) realtime.Client {
		return NewClient(s.rdb, s.cfg, clockwork.NewRealClock(), log.NewNop())
	})
}

func (s *ChannelTestSuite) TestTrackWritesPresenceHash() {
	ch, err := s.client.Channel("room-ABC123", realtime.ChannelOptions{PresenceKey: "host-1"})
	s.Require().NoError(err)
	s.Require().NoError(ch.Subscribe(context.Background()))
	defer ch.Unsubscribe(context.Background())

	s.Require().NoError(ch.Track(context.Background(), map[string]string{"role": "participant"}))

	raw := s.mr.HGet("rt:room-ABC123:presence", "host-1")
	var entry presenceEntry
	s.Require().NoError(json.Unmarshal([]byte(raw), &entry))
	s.JSONEq(`{"role":"participant"}`, string(entry.Payload))
	s.Equal(s.clock.Now().UnixMilli(), entry.TS)
	s.Positive(s.mr.TTL("rt:room-ABC123:presence"))
}

func (s *ChannelTestSuite) TestStalePresenceIgnored() {
	stale, _ := json.Marshal(presenceEntry{
		Payload: json.RawMessage(`{"role":"participant"}`),
		TS:      s.clock.Now().Add(-time.Minute).UnixMilli(),
	})
	fresh, _ := json.Marshal(presenceEntry{
		Payload: json.RawMessage(`{"role":"participant"}`),
		TS:      s.clock.Now().UnixMilli(),
	})
	s.mr.HSet("rt:room-ABC123:presence", "gone", string(stale))
	s.mr.HSet("rt:room-ABC123:presence", "here", string(fresh))

	ch, err := s.client.Channel("room-ABC123", realtime.ChannelOptions{})
	s.Require().NoError(err)
	s.Require().NoError(ch.Subscribe(context.Background()))
	defer ch.Unsubscribe(context.Background())

	ev := realtimetest.NextEvent(s.T(), ch, realtime.EventPresenceSync)
	s.Contains(ev.Presence, "here")
	s.NotContains(ev.Presence, "gone")
	s.Len(ch.PresenceState(), 1)
}

func (s *ChannelTestSuite) TestHeartbeatRefreshesTimestamp() {
	ch, err := s.client.Channel("room-ABC123", realtime.ChannelOptions{PresenceKey: "host-1"})
	s.Require().NoError(err)
	s.Require().NoError(ch.Subscribe(context.Background()))
	defer ch.Unsubscribe(context.Background())
	s.Require().NoError(ch.Track(context.Background(), map[string]string{"role": "participant"}))

	s.Require().NoError(s.clock.BlockUntilContext(context.Background(), 1))
	s.clock.Advance(10 * time.Second)

	s.Eventually(func() bool {
		var entry presenceEntry
		if err := json.Unmarshal([]byte(s.mr.HGet("rt:room-ABC123:presence", "host-1")), &entry); err != nil {
			return false
		}
		return entry.TS == s.clock.Now().UnixMilli()
	}, time.Second, 10*time.Millisecond)
}

func (s *ChannelTestSuite) TestUnsubscribeRemovesPresence() {
	ch, err := s.client.Channel("room-ABC123", realtime.ChannelOptions{PresenceKey: "viewer-1"})
	s.Require().NoError(err)
	s.Require().NoError(ch.Subscribe(context.Background()))
	s.Require().NoError(ch.Track(context.Background(), map[string]string{"role": "observer"}))

	s.Require().NoError(ch.Unsubscribe(context.Background()))
	s.Empty(s.mr.HGet("rt:room-ABC123:presence", "viewer-1"))
}

func (s *ChannelTestSuite) TestSubscribeFailsWhenRedisDown() {
	s.mr.Close()
	s.cfg.SubscribeTimeout = 200 * time.Millisecond

	ch, err := s.client.Channel("room-ABC123", realtime.ChannelOptions{})
	s.Require().NoError(err)
	err = ch.Subscribe(context.Background())
	s.ErrorIs(err, realtime.ErrSubscribe)
}
