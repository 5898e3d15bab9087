package constants

// PresenceRole is the role a client advertises in a room channel's presence.
type PresenceRole string

const (
	// broadcasting side of a room; counts towards liveness
	RoleParticipant PresenceRole = "participant"
	// viewer sessions; never counted as room activity
	RoleObserver PresenceRole = "observer"
)

const (
	// room channels are named <ChannelPrefix><roomCode>
	ChannelPrefix = "room-"

	PresenceKeyLobby     = "lobby-"
	PresenceKeySpectator = "spectator-"
)

// ConnectionStatus is the user-facing connection indicator of a session.
type ConnectionStatus string

const (
	StatusWaiting    ConnectionStatus = "waiting"
	StatusConnecting ConnectionStatus = "connecting"
	StatusConnected  ConnectionStatus = "connected"
	StatusFailed     ConnectionStatus = "failed"
)
