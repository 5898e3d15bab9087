package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dowdarts/spectators-videochat/internal/log"
)

func TestDoSucceedsAfterFailures(t *testing.T) {
	r := New(log.NewNop(), time.Millisecond, 2*time.Millisecond, time.Second)

	calls := 0
	err := r.Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoStopsOnPermanent(t *testing.T) {
	r := New(log.NewNop(), time.Millisecond, 2*time.Millisecond, time.Second)
	boom := errors.New("boom")

	calls := 0
	err := r.Do(context.Background(), func() error {
		calls++
		return Permanent(boom)
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestDoHonorsContext(t *testing.T) {
	r := New(log.NewNop(), 10*time.Millisecond, 10*time.Millisecond, 0)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := r.Do(ctx, func() error { return errors.New("down") })
	assert.Error(t, err)
}
