package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dowdarts/spectators-videochat/internal/log"
	"github.com/dowdarts/spectators-videochat/spectators"
)

type roomStoreImpl struct {
	client redis.UniversalClient
	keys   keys
	logger *log.Logger
}

func NewRoomStore(client redis.UniversalClient, prefix string, logger *log.Logger) spectators.RoomStore {
	return &roomStoreImpl{
		client: client,
		keys:   keys{prefix: prefix},
		logger: logger,
	}
}

func (rs *roomStoreImpl) ListActiveRooms(ctx context.Context) ([]spectators.Room, error) {
	entries, err := rs.client.ZRevRangeWithScores(ctx, rs.keys.activeRooms(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list active rooms: %w", err)
	}

	rooms := make([]spectators.Room, 0, len(entries))
	for _, z := range entries {
		code, ok := z.Member.(string)
		if !ok {
			continue
		}
		rooms = append(rooms, spectators.Room{
			RoomCode:  code,
			CreatedAt: time.UnixMilli(int64(z.Score)).UTC(),
			IsActive:  true,
		})
	}
	return rooms, nil
}

func (rs *roomStoreImpl) GetActiveRoom(ctx context.Context, roomCode string) (*spectators.Room, error) {
	data, err := rs.client.HGetAll(ctx, rs.keys.room(roomCode)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get room %s: %w", roomCode, err)
	}
	if len(data) == 0 || data[fieldIsActive] != "1" {
		return nil, nil
	}

	createdAt, err := parseMillis(data[fieldCreatedAt])
	if err != nil {
		rs.logger.Warn("invalid room timestamp",
			log.RoomCode(roomCode),
			log.String("createdAt", data[fieldCreatedAt]))
	}

	return &spectators.Room{
		RoomCode:  roomCode,
		CreatedAt: createdAt,
		IsActive:  true,
	}, nil
}

func (rs *roomStoreImpl) SaveRoom(ctx context.Context, room spectators.Room) error {
	ms := room.CreatedAt.UnixMilli()
	active := "0"
	if room.IsActive {
		active = "1"
	}

	pipe := rs.client.TxPipeline()
	pipe.HSet(ctx, rs.keys.room(room.RoomCode),
		fieldCreatedAt, ms,
		fieldIsActive, active,
	)
	if room.IsActive {
		pipe.ZAdd(ctx, rs.keys.activeRooms(), redis.Z{Score: float64(ms), Member: room.RoomCode})
	} else {
		pipe.ZRem(ctx, rs.keys.activeRooms(), room.RoomCode)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save room %s: %w", room.RoomCode, err)
	}
	return nil
}

func parseMillis(s string) (time.Time, error) {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms).UTC(), nil
}
