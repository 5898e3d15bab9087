package spectators

import "github.com/dowdarts/spectators-videochat/internal/errors"

const (
	ErrBackendUnavailable errors.Code = "backend unavailable"
	ErrPersistence        errors.Code = "persistence error"
	ErrInvalidCredential  errors.Code = "invalid or expired spectator link"
	ErrRoomNotFound       errors.Code = "room not found or no longer active"
	ErrNegotiation        errors.Code = "negotiation error"
	ErrSignalingNoise     errors.Code = "signaling noise"
	ErrInvalidState       errors.Code = "invalid session state"
	ErrSessionNotFound    errors.Code = "session not found"
)
