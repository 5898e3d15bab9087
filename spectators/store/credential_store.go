package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dowdarts/spectators-videochat/internal/errors"
	"github.com/dowdarts/spectators-videochat/internal/log"
	"github.com/dowdarts/spectators-videochat/spectators"
)

const ErrTokenExists errors.Code = "token already exists"

// insertScript writes the credential hash only if the token is unused and
// lets Redis drop it once expired.
var insertScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return 0
end
redis.call('HSET', KEYS[1], 'room_code', ARGV[1], 'created_at', ARGV[2], 'expires_at', ARGV[3])
redis.call('PEXPIREAT', KEYS[1], ARGV[3])
return 1
`)

var releaseScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

type credentialStoreImpl struct {
	client redis.UniversalClient
	keys   keys
	logger *log.Logger
}

func NewCredentialStore(client redis.UniversalClient, prefix string, logger *log.Logger) spectators.CredentialStore {
	return &credentialStoreImpl{
		client: client,
		keys:   keys{prefix: prefix},
		logger: logger,
	}
}

func (cs *credentialStoreImpl) InsertCredential(ctx context.Context, cred *spectators.Credential) error {
	inserted, err := insertScript.Run(ctx, cs.client,
		[]string{cs.keys.spectator(cred.Token)},
		cred.RoomCode,
		cred.CreatedAt.UnixMilli(),
		cred.ExpiresAt.UnixMilli(),
	).Int()
	if err != nil {
		return fmt.Errorf("failed to insert credential: %w", err)
	}
	if inserted == 0 {
		return errors.New(ErrTokenExists, "token collision")
	}
	return nil
}

func (cs *credentialStoreImpl) GetCredential(ctx context.Context, roomCode, token string) (*spectators.Credential, error) {
	data, err := cs.client.HGetAll(ctx, cs.keys.spectator(token)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}
	if len(data) == 0 || data[fieldRoomCode] != roomCode {
		return nil, nil
	}

	createdAt, err := parseMillis(data[fieldCreatedAt])
	if err != nil {
		return nil, fmt.Errorf("invalid credential created_at: %w", err)
	}
	expiresAt, err := parseMillis(data[fieldExpiresAt])
	if err != nil {
		return nil, fmt.Errorf("invalid credential expires_at: %w", err)
	}

	return &spectators.Credential{
		RoomCode:  roomCode,
		Token:     token,
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
	}, nil
}

func (cs *credentialStoreImpl) ClaimLease(ctx context.Context, token, holder string, ttl time.Duration) (bool, error) {
	ok, err := cs.client.SetNX(ctx, cs.keys.lease(token), holder, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim lease: %w", err)
	}
	return ok, nil
}

func (cs *credentialStoreImpl) ReleaseLease(ctx context.Context, token, holder string) error {
	if err := releaseScript.Run(ctx, cs.client, []string{cs.keys.lease(token)}, holder).Err(); err != nil {
		return fmt.Errorf("failed to release lease: %w", err)
	}
	return nil
}
