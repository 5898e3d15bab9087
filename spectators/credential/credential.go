package credential

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/dowdarts/spectators-videochat/internal/cryptoutil"
	"github.com/dowdarts/spectators-videochat/internal/errors"
	"github.com/dowdarts/spectators-videochat/internal/log"
	"github.com/dowdarts/spectators-videochat/spectators"
)

const (
	DefaultTTL = 24 * time.Hour

	// 80 bits of entropy
	tokenBytes = 10
)

// Policy decides whether one token may back several sessions at once.
type Policy string

const (
	PolicyShared    Policy = "shared"
	PolicyExclusive Policy = "exclusive"
)

type Config struct {
	TTL    time.Duration `mapstructure:"ttl"`
	Policy Policy        `mapstructure:"policy"`
}

type service struct {
	store  spectators.CredentialStore
	clock  clockwork.Clock
	cfg    Config
	logger *log.Logger
}

func New(
	store spectators.CredentialStore,
	clock clockwork.Clock,
	cfg Config,
	logger *log.Logger,
) spectators.Credentials {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Policy == "" {
		cfg.Policy = PolicyShared
	}
	return &service{
		store:  store,
		clock:  clock,
		cfg:    cfg,
		logger: logger,
	}
}

func (s *service) Issue(ctx context.Context, roomCode string) (*spectators.Credential, error) {
	token, err := cryptoutil.RandomHex(tokenBytes)
	if err != nil {
		return nil, errors.Wrap(spectators.ErrPersistence, err, "generate token")
	}

	now := s.clock.Now()
	cred := &spectators.Credential{
		RoomCode:  roomCode,
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.TTL),
	}

	if err := s.store.InsertCredential(ctx, cred); err != nil {
		s.logger.Error("failed to persist credential", log.RoomCode(roomCode), log.Error(err))
		return nil, errors.Wrap(spectators.ErrPersistence, err, "insert credential")
	}

	s.logger.Info("issued spectator credential",
		log.RoomCode(roomCode),
		log.Time("expiresAt", cred.ExpiresAt))
	return cred, nil
}

func (s *service) Validate(ctx context.Context, roomCode, token string) (*spectators.Credential, error) {
	if token == "" {
		return nil, errors.New(spectators.ErrInvalidCredential, "token is required")
	}

	cred, err := s.store.GetCredential(ctx, roomCode, token)
	if err != nil {
		return nil, errors.Wrap(spectators.ErrBackendUnavailable, err, "lookup credential")
	}
	if cred == nil {
		return nil, errors.New(spectators.ErrInvalidCredential, "no matching credential")
	}
	if cred.Expired(s.clock.Now()) {
		return nil, errors.Newf(spectators.ErrInvalidCredential, "credential expired at %s", cred.ExpiresAt.Format(time.RFC3339))
	}
	return cred, nil
}

func (s *service) Claim(ctx context.Context, cred *spectators.Credential, holder string) error {
	if s.cfg.Policy != PolicyExclusive {
		return nil
	}

	ttl := cred.ExpiresAt.Sub(s.clock.Now())
	if ttl <= 0 {
		return errors.New(spectators.ErrInvalidCredential, "credential expired")
	}

	ok, err := s.store.ClaimLease(ctx, cred.Token, holder, ttl)
	if err != nil {
		return errors.Wrap(spectators.ErrBackendUnavailable, err, "claim lease")
	}
	if !ok {
		return errors.New(spectators.ErrInvalidCredential, "spectator link already in use")
	}
	return nil
}

func (s *service) Release(ctx context.Context, token, holder string) {
	if s.cfg.Policy != PolicyExclusive || token == "" {
		return
	}
	if err := s.store.ReleaseLease(ctx, token, holder); err != nil {
		s.logger.Warn("failed to release lease", log.Error(err))
	}
}
