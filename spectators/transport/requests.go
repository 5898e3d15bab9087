package transport

// WatchURI selects the lobby room to issue a spectator link for.
type WatchURI struct {
	RoomCode string `uri:"roomCode" binding:"required,roomcode"`
}

// JoinRequest is accepted from the /viewer query string and the join form.
// The room code is normalized by the session, so only its length is bounded
// here. The token is not shape checked: any token that does not match a
// stored credential is reported as an invalid credential.
type JoinRequest struct {
	RoomCode string `form:"roomCode" json:"roomCode" binding:"max=64"`
	Token    string `form:"token" json:"token"`
}

type SessionURI struct {
	SessionID string `uri:"sessionId" binding:"required,uuid"`
}

// clientMessage is read from the session websocket.
type clientMessage struct {
	Action string `json:"action"`
}

const (
	actionDismiss = "dismiss"
	actionLeave   = "leave"
)
