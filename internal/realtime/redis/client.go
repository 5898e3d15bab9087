package redis

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"

	"github.com/dowdarts/spectators-videochat/internal/errors"
	"github.com/dowdarts/spectators-videochat/internal/log"
	"github.com/dowdarts/spectators-videochat/internal/realtime"
	redisutil "github.com/dowdarts/spectators-videochat/internal/redis"
	"github.com/dowdarts/spectators-videochat/internal/retry"
)

const (
	kindBroadcast = "broadcast"
	kindPresence  = "presence"
)

// envelope is the JSON published on a topic's pub/sub channel.
type envelope struct {
	Kind    string          `json:"kind"`
	Event   string          `json:"event,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Sender  string          `json:"sender"`
}

// presenceEntry is the value stored per presence key in the presence hash.
type presenceEntry struct {
	Payload json.RawMessage `json:"payload"`
	TS      int64           `json:"ts"`
}

// Client implements realtime.Client over Redis pub/sub. Presence lives in a
// hash per topic and is refreshed by each tracking channel's heartbeat.
type Client struct {
	rdb    redis.UniversalClient
	cfg    *realtime.Config
	clock  clockwork.Clock
	retry  retry.Retry
	logger *log.Logger
}

func NewClient(
	rdb redis.UniversalClient,
	cfg *realtime.Config,
	clock clockwork.Clock,
	logger *log.Logger,
) *Client {
	return &Client{
		rdb:    rdb,
		cfg:    cfg,
		clock:  clock,
		retry:  retry.New(logger, 50*time.Millisecond, time.Second, 0),
		logger: logger,
	}
}

func (c *Client) Channel(topic string, opts realtime.ChannelOptions) (realtime.Channel, error) {
	if topic == "" {
		return nil, errors.New(realtime.ErrInvalidTopic, "topic is required")
	}
	if opts.PresenceKey == "" {
		opts.PresenceKey = uuid.NewString()
	}

	buffer := c.cfg.EventBuffer
	if buffer <= 0 {
		buffer = 64
	}

	return &channel{
		client:      c,
		topic:       topic,
		opts:        opts,
		sender:      uuid.NewString(),
		pubsubKey:   redisutil.Key(c.cfg.Prefix, topic),
		presenceKey: redisutil.Key(c.cfg.Prefix, topic, "presence"),
		events:      make(chan realtime.Event, buffer),
		presence:    realtime.PresenceState{},
		logger:      c.logger.With(log.String("topic", topic)),
	}, nil
}

func (c *Client) nowMillis() int64 {
	return c.clock.Now().UnixMilli()
}

func (c *Client) stale(ts int64) bool {
	if c.cfg.PresenceTTL <= 0 {
		return false
	}
	return c.nowMillis()-ts > c.cfg.PresenceTTL.Milliseconds()
}
