package session

import (
	"github.com/dowdarts/spectators-videochat/internal/errors"
	"github.com/dowdarts/spectators-videochat/spectators"
)

const (
	noticeInfo    = "info"
	noticeSuccess = "success"
	noticeError   = "error"
)

// userMessage turns an error into the text shown to the viewer. Internal
// details stay in the logs.
func userMessage(err error) string {
	code, ok := errors.CodeOf(err)
	if !ok {
		return "Something went wrong"
	}
	switch code {
	case spectators.ErrInvalidCredential:
		return "Invalid or expired spectator link"
	case spectators.ErrRoomNotFound:
		return "Room not found or no longer active"
	case spectators.ErrBackendUnavailable:
		return "Service temporarily unavailable, please try again"
	case spectators.ErrNegotiation:
		return "Failed to connect to stream"
	default:
		return string(code)
	}
}
