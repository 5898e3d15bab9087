package probe

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/dowdarts/spectators-videochat/internal/constants"
	"github.com/dowdarts/spectators-videochat/internal/log"
	"github.com/dowdarts/spectators-videochat/internal/realtime"
	"github.com/dowdarts/spectators-videochat/spectators"
	"github.com/dowdarts/spectators-videochat/spectators/signal"
)

const (
	DefaultTimeout = 1200 * time.Millisecond

	teardownTimeout = 5 * time.Second
)

// Prober asks each room's channel whether anyone is there. A probe never
// fails as a whole: any error yields a zero result for that room.
type Prober struct {
	client  realtime.Client
	clock   clockwork.Clock
	timeout time.Duration
	logger  *log.Logger
}

func New(client realtime.Client, clock clockwork.Clock, timeout time.Duration, logger *log.Logger) *Prober {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Prober{
		client:  client,
		clock:   clock,
		timeout: timeout,
		logger:  logger,
	}
}

// ProbeAll probes rooms concurrently and returns results in input order once
// every probe has decided.
func (p *Prober) ProbeAll(ctx context.Context, roomCodes []string) []spectators.ProbeResult {
	results := make([]spectators.ProbeResult, len(roomCodes))

	var g errgroup.Group
	for i, code := range roomCodes {
		g.Go(func() error {
			results[i] = p.Probe(ctx, code)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (p *Prober) Probe(ctx context.Context, roomCode string) spectators.ProbeResult {
	result := spectators.ProbeResult{RoomCode: roomCode}
	logger := p.logger.With(log.RoomCode(roomCode))
	probesStarted.Add(ctx, 1)

	ch, err := p.client.Channel(signal.Topic(roomCode), realtime.ChannelOptions{
		PresenceKey:   constants.PresenceKeyLobby + uuid.NewString()[:8],
		BroadcastSelf: false,
	})
	if err != nil {
		logger.Warn("probe channel open failed", log.Error(err))
		probesFailed.Add(ctx, 1)
		return result
	}
	defer p.teardown(ch, logger)

	if err := ch.Subscribe(ctx); err != nil {
		logger.Warn("probe subscribe failed", log.Error(err))
		probesFailed.Add(ctx, 1)
		return result
	}

	started := p.clock.Now()
	ping := &signal.LobbyPing{TS: started.UnixMilli()}
	if err := signal.Send(ctx, ch, ping); err != nil {
		logger.Debug("lobby ping failed", log.Error(err))
	}

	timer := p.clock.NewTimer(p.timeout)
	defer timer.Stop()

	var presence realtime.PresenceState
	decided := false
	for !decided {
		select {
		case ev, ok := <-ch.Events():
			if !ok {
				decided = true
				break
			}
			switch ev.Kind {
			case realtime.EventPresenceSync:
				presence = ev.Presence
				decided = true
			case realtime.EventBroadcast:
				if isParticipantPong(ev) {
					result.SignalCount++
				}
			}
		case <-timer.Chan():
			probesTimedOut.Add(ctx, 1)
			decided = true
		case <-ctx.Done():
			decided = true
		}
	}

	if presence == nil {
		presence = ch.PresenceState()
	}
	result.PresenceCount = presence.Count(isNonObserver)

	probeDuration.Record(ctx, p.clock.Since(started).Seconds())
	if result.Live() {
		roomsLive.Add(ctx, 1)
	}
	logger.Debug("probe decided",
		log.Int("presence", result.PresenceCount),
		log.Int("signals", result.SignalCount))
	return result
}

// teardown does not block the caller; failures are only logged.
func (p *Prober) teardown(ch realtime.Channel, logger *log.Logger) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), teardownTimeout)
		defer cancel()
		if err := ch.Unsubscribe(ctx); err != nil {
			logger.Debug("probe teardown failed", log.Error(err))
		}
	}()
}

func isParticipantPong(ev realtime.Event) bool {
	msg, err := signal.Decode(ev)
	if err != nil {
		return false
	}
	pong, ok := msg.(*signal.LobbyPong)
	return ok && pong.Role == constants.RoleParticipant
}

func isNonObserver(raw json.RawMessage) bool {
	return signal.DecodePresence(raw).Role != constants.RoleObserver
}
