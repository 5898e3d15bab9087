package directory

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/dowdarts/spectators-videochat/internal/errors"
	"github.com/dowdarts/spectators-videochat/internal/log"
	"github.com/dowdarts/spectators-videochat/spectators"
)

const DefaultStaleAfter = 10 * time.Minute

type directoryImpl struct {
	store      spectators.RoomStore
	clock      clockwork.Clock
	staleAfter time.Duration
	logger     *log.Logger
}

// New returns a Directory listing active rooms created within staleAfter.
func New(
	store spectators.RoomStore,
	clock clockwork.Clock,
	staleAfter time.Duration,
	logger *log.Logger,
) spectators.Directory {
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	return &directoryImpl{
		store:      store,
		clock:      clock,
		staleAfter: staleAfter,
		logger:     logger,
	}
}

func (d *directoryImpl) ListActiveRooms(ctx context.Context) ([]spectators.Room, error) {
	rooms, err := d.store.ListActiveRooms(ctx)
	if err != nil {
		return nil, errors.Wrap(spectators.ErrBackendUnavailable, err, "list active rooms")
	}

	cutoff := d.clock.Now().Add(-d.staleAfter)
	fresh := rooms[:0]
	for _, r := range rooms {
		if r.IsActive && r.CreatedAt.After(cutoff) {
			fresh = append(fresh, r)
		}
	}

	d.logger.Debug("listed active rooms",
		log.Int("active", len(rooms)),
		log.Int("fresh", len(fresh)))
	return fresh, nil
}
