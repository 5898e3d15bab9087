package store

import (
	redisutil "github.com/dowdarts/spectators-videochat/internal/redis"
)

const (
	fieldRoomCode  = "room_code"
	fieldCreatedAt = "created_at"
	fieldExpiresAt = "expires_at"
	fieldIsActive  = "is_active"
)

type keys struct {
	prefix string
}

// active rooms, scored by created_at in unix millis
func (k keys) activeRooms() string {
	return redisutil.Key(k.prefix, "rooms", "active")
}

func (k keys) room(roomCode string) string {
	return redisutil.Key(k.prefix, "room", roomCode)
}

func (k keys) spectator(token string) string {
	return redisutil.Key(k.prefix, "spectator", token)
}

func (k keys) lease(token string) string {
	return redisutil.Key(k.prefix, "spectator", token, "lease")
}
