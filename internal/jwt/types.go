package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Auth signs and verifies session access tokens. A token binds one viewer
// session to the room it was opened for.
type Auth interface {
	Sign(sessionID, roomCode string) (string, error)
	Verify(tokenString string) (*Payload, error)
}

type Payload struct {
	SessionID string `json:"sid"`
	RoomCode  string `json:"room"`
	jwt.RegisteredClaims
}

// Options tunes issued tokens. Zero TTL means tokens never expire.
type Options struct {
	Issuer string
	TTL    time.Duration
	Now    func() time.Time
}
