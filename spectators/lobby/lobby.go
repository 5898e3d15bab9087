package lobby

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dowdarts/spectators-videochat/internal/errors"
	"github.com/dowdarts/spectators-videochat/internal/log"
	intotel "github.com/dowdarts/spectators-videochat/internal/otel"
	"github.com/dowdarts/spectators-videochat/internal/workflow"
	"github.com/dowdarts/spectators-videochat/spectators"
)

type Config struct {
	// AutoRefresh is the period of background refreshes; zero disables them.
	AutoRefresh time.Duration `mapstructure:"auto_refresh"`
}

// Lobby lists rooms that are both active in the store and answered a probe.
// Refresh cycles are not serialized; Latest returns whichever finished last.
type Lobby struct {
	directory spectators.Directory
	prober    spectators.Prober
	clock     clockwork.Clock
	cfg       Config
	logger    *log.Logger

	// cancelled by Stop, bounds every refresh
	life   context.Context
	cancel context.CancelFunc

	mu      sync.RWMutex
	latest  *spectators.LobbySnapshot
	stopped chan struct{}
}

func New(
	directory spectators.Directory,
	prober spectators.Prober,
	clock clockwork.Clock,
	cfg Config,
	logger *log.Logger,
) *Lobby {
	life, cancel := context.WithCancel(context.Background())
	return &Lobby{
		directory: directory,
		prober:    prober,
		clock:     clock,
		cfg:       cfg,
		logger:    logger,
		life:      life,
		cancel:    cancel,
	}
}

// Start runs the initial fetch and, if configured, periodic refreshes in the
// background until ctx ends or Stop is called.
func (l *Lobby) Start(ctx context.Context) error {
	l.mu.Lock()
	if l.stopped != nil {
		l.mu.Unlock()
		return errors.New(spectators.ErrInvalidState, "lobby already started")
	}
	l.stopped = make(chan struct{})
	l.mu.Unlock()

	ctx, cancel := workflow.WithEitherDone(ctx, l.life)
	go func() {
		defer cancel()
		l.refreshLoop(ctx)
	}()
	return nil
}

func (l *Lobby) refreshLoop(ctx context.Context) {
	defer close(l.stopped)

	if _, err := l.Refresh(ctx); err != nil {
		l.logger.Warn("initial lobby refresh failed", log.Error(err))
	}
	if l.cfg.AutoRefresh <= 0 {
		return
	}

	ticker := l.clock.NewTicker(l.cfg.AutoRefresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if _, err := l.Refresh(ctx); err != nil {
				l.logger.Warn("lobby refresh failed", log.Error(err))
			}
		}
	}
}

// Stop cancels background and in-flight refreshes and waits for the loop.
func (l *Lobby) Stop() {
	l.cancel()

	l.mu.RLock()
	stopped := l.stopped
	l.mu.RUnlock()
	if stopped != nil {
		<-stopped
	}
}

func (l *Lobby) Latest() *spectators.LobbySnapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.latest
}

// Refresh runs one cycle. On a directory failure it stores and returns a
// degraded snapshot together with ErrBackendUnavailable. A cycle cut short by
// ctx or Stop stores nothing and returns the context error.
func (l *Lobby) Refresh(ctx context.Context) (*spectators.LobbySnapshot, error) {
	ctx, cancel := workflow.WithEitherDone(ctx, l.life)
	defer cancel()

	ctx, span := intotel.StartSpan(ctx, intotel.Tracer(), "lobby.refresh")
	defer span.End()

	start := l.clock.Now()
	refreshTotal.Add(ctx, 1)
	defer func() {
		refreshDuration.Record(ctx, l.clock.Since(start).Seconds())
	}()

	rooms, err := l.directory.ListActiveRooms(ctx)
	if cerr := ctx.Err(); cerr != nil {
		return nil, l.abandon(span, cerr)
	}
	if err != nil {
		intotel.RecordError(span, err)
		refreshFailed.Add(ctx, 1)

		snap := &spectators.LobbySnapshot{
			Rooms:       []spectators.LiveRoom{},
			RefreshedAt: l.clock.Now(),
			Status:      statusError,
			Degraded:    true,
		}
		l.store(snap)
		if !errors.Is(err, spectators.ErrBackendUnavailable) {
			err = errors.Wrap(spectators.ErrBackendUnavailable, err, "list rooms")
		}
		return snap, err
	}

	live := []spectators.LiveRoom{}
	if len(rooms) > 0 {
		createdAt := make(map[string]time.Time, len(rooms))
		codes := make([]string, 0, len(rooms))
		for _, r := range rooms {
			createdAt[r.RoomCode] = r.CreatedAt
			codes = append(codes, r.RoomCode)
		}

		now := l.clock.Now()
		for _, res := range l.prober.ProbeAll(ctx, codes) {
			if !res.Live() {
				continue
			}
			live = append(live, spectators.LiveRoom{
				RoomCode:      res.RoomCode,
				CreatedAt:     createdAt[res.RoomCode],
				Label:         ElapsedLabel(now, createdAt[res.RoomCode]),
				PresenceCount: res.PresenceCount,
				SignalCount:   res.SignalCount,
			})
		}
		// liveness checks cut short by ctx report zero counts
		if cerr := ctx.Err(); cerr != nil {
			return nil, l.abandon(span, cerr)
		}
		sort.SliceStable(live, func(i, j int) bool {
			return live[i].CreatedAt.After(live[j].CreatedAt)
		})
	}

	span.SetAttributes(
		attribute.Int("rooms.active", len(rooms)),
		attribute.Int("rooms.live", len(live)),
	)

	snap := &spectators.LobbySnapshot{
		Rooms:       live,
		RefreshedAt: l.clock.Now(),
		Status:      statusLine(len(live)),
	}
	l.store(snap)

	l.logger.Debug("lobby refreshed",
		log.Int("active", len(rooms)),
		log.Int("live", len(live)))
	return snap, nil
}

func (l *Lobby) abandon(span trace.Span, err error) error {
	intotel.RecordError(span, err)
	refreshFailed.Add(context.Background(), 1)
	l.logger.Debug("lobby refresh abandoned", log.Error(err))
	return err
}

func (l *Lobby) store(snap *spectators.LobbySnapshot) {
	l.mu.Lock()
	l.latest = snap
	l.mu.Unlock()
}
