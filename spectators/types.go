package spectators

//go:generate mockgen -source=types.go -destination=mocks/mock_types.go -package=mocks

import (
	"context"
	"time"
)

// Room is a row of the backing store's rooms table as seen by spectators.
type Room struct {
	RoomCode  string    `json:"roomCode"`
	CreatedAt time.Time `json:"createdAt"`
	IsActive  bool      `json:"isActive"`
}

// Credential is a bearer capability granting view access to one room.
type Credential struct {
	RoomCode  string    `json:"roomCode"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the credential is unusable at now.
func (c *Credential) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// ProbeResult is the outcome of one liveness probe.
type ProbeResult struct {
	RoomCode      string `json:"roomCode"`
	PresenceCount int    `json:"presenceCount"`
	SignalCount   int    `json:"signalCount"`
}

// Live applies the liveness rule: at least two replies or two present peers.
func (r ProbeResult) Live() bool {
	return r.SignalCount >= 2 || r.PresenceCount >= 2
}

// LiveRoom is a lobby entry.
type LiveRoom struct {
	RoomCode      string    `json:"roomCode"`
	CreatedAt     time.Time `json:"createdAt"`
	Label         string    `json:"label"`
	PresenceCount int       `json:"presenceCount"`
	SignalCount   int       `json:"signalCount"`
}

// LobbySnapshot is the result of one completed refresh cycle.
type LobbySnapshot struct {
	Rooms       []LiveRoom `json:"rooms"`
	RefreshedAt time.Time  `json:"refreshedAt"`
	Status      string     `json:"status"`
	Degraded    bool       `json:"degraded"`
}

// TrackStats counts media received on one inbound track.
type TrackStats struct {
	ID       string `json:"id"`
	StreamID string `json:"streamId"`
	Kind     string `json:"kind"`
	Packets  uint64 `json:"packets"`
	Bytes    uint64 `json:"bytes"`
}

// Notice is a dismissible user-facing message.
type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// SessionSnapshot is a read-only view of a viewer session.
type SessionSnapshot struct {
	ID           string       `json:"id"`
	RoomCode     string       `json:"roomCode"`
	State        string       `json:"state"`
	Status       string       `json:"status"`
	StatusLine   string       `json:"statusLine"`
	Participants []string     `json:"participants"`
	Tracks       []TrackStats `json:"tracks"`
	Notice       *Notice      `json:"notice,omitempty"`
}

type RoomStore interface {
	// ListActiveRooms returns active rooms ordered by CreatedAt, newest first.
	ListActiveRooms(ctx context.Context) ([]Room, error)
	// GetActiveRoom returns nil without error when the room is missing or inactive.
	GetActiveRoom(ctx context.Context, roomCode string) (*Room, error)
	SaveRoom(ctx context.Context, room Room) error
}

type CredentialStore interface {
	InsertCredential(ctx context.Context, cred *Credential) error
	// GetCredential returns nil without error when no credential matches.
	GetCredential(ctx context.Context, roomCode, token string) (*Credential, error)
	ClaimLease(ctx context.Context, token, holder string, ttl time.Duration) (bool, error)
	ReleaseLease(ctx context.Context, token, holder string) error
}

type Directory interface {
	ListActiveRooms(ctx context.Context) ([]Room, error)
}

type Prober interface {
	ProbeAll(ctx context.Context, roomCodes []string) []ProbeResult
}

type Credentials interface {
	Issue(ctx context.Context, roomCode string) (*Credential, error)
	Validate(ctx context.Context, roomCode, token string) (*Credential, error)
	// Claim and Release enforce the concurrent use policy for a token.
	Claim(ctx context.Context, cred *Credential, holder string) error
	Release(ctx context.Context, token, holder string)
}

type Lobby interface {
	Refresh(ctx context.Context) (*LobbySnapshot, error)
	Latest() *LobbySnapshot
}

type SessionManager interface {
	Open(ctx context.Context, roomCode, token string) (*SessionSnapshot, error)
	Snapshot(sessionID string) (*SessionSnapshot, error)
	// Watch streams snapshots until stop is called or the session ends.
	Watch(sessionID string) (updates <-chan SessionSnapshot, stop func(), err error)
	Leave(ctx context.Context, sessionID string) error
	// DismissNotice clears the session's current notice.
	DismissNotice(sessionID string) error
}
