package session

import (
	"fmt"

	"github.com/pion/webrtc/v4"

	"github.com/dowdarts/spectators-videochat/internal/constants"
)

// projectStatus folds the peer connection and ICE states into the single
// indicator shown to the viewer. Either side reporting connected wins.
func projectStatus(conn webrtc.PeerConnectionState, ice webrtc.ICEConnectionState) constants.ConnectionStatus {
	switch {
	case conn == webrtc.PeerConnectionStateConnected,
		ice == webrtc.ICEConnectionStateConnected,
		ice == webrtc.ICEConnectionStateCompleted:
		return constants.StatusConnected
	case conn == webrtc.PeerConnectionStateConnecting,
		ice == webrtc.ICEConnectionStateChecking:
		return constants.StatusConnecting
	case conn == webrtc.PeerConnectionStateFailed,
		ice == webrtc.ICEConnectionStateFailed:
		return constants.StatusFailed
	default:
		return constants.StatusWaiting
	}
}

var statusText = map[constants.ConnectionStatus]string{
	constants.StatusWaiting:    "Waiting for broadcast",
	constants.StatusConnecting: "Connecting",
	constants.StatusConnected:  "Connected",
	constants.StatusFailed:     "Connection failed",
}

func statusLine(state State, roomCode string, status constants.ConnectionStatus) string {
	switch {
	case state == StateValidating:
		return fmt.Sprintf("Joining Room: %s", roomCode)
	case state.onChannel():
		return fmt.Sprintf("Viewing Room: %s - %s", roomCode, statusText[status])
	case state == StateLeft:
		return "Left room"
	default:
		return "Not watching"
	}
}
