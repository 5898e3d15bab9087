package session

import (
	"testing"

	"github.com/pion/webrtc/v4"
	"github.com/stretchr/testify/assert"

	"github.com/dowdarts/spectators-videochat/internal/constants"
)

func TestProjectStatus(t *testing.T) {
	tests := []struct {
		conn webrtc.PeerConnectionState
		ice  webrtc.ICEConnectionState
		want constants.ConnectionStatus
	}{
		{webrtc.PeerConnectionStateNew, webrtc.ICEConnectionStateNew, constants.StatusWaiting},
		{webrtc.PeerConnectionStateConnecting, webrtc.ICEConnectionStateNew, constants.StatusConnecting},
		{webrtc.PeerConnectionStateNew, webrtc.ICEConnectionStateChecking, constants.StatusConnecting},
		{webrtc.PeerConnectionStateConnected, webrtc.ICEConnectionStateChecking, constants.StatusConnected},
		{webrtc.PeerConnectionStateConnecting, webrtc.ICEConnectionStateConnected, constants.StatusConnected},
		{webrtc.PeerConnectionStateNew, webrtc.ICEConnectionStateCompleted, constants.StatusConnected},
		{webrtc.PeerConnectionStateFailed, webrtc.ICEConnectionStateNew, constants.StatusFailed},
		{webrtc.PeerConnectionStateNew, webrtc.ICEConnectionStateFailed, constants.StatusFailed},
		{webrtc.PeerConnectionStateFailed, webrtc.ICEConnectionStateConnected, constants.StatusConnected},
		{webrtc.PeerConnectionStateDisconnected, webrtc.ICEConnectionStateDisconnected, constants.StatusWaiting},
	}
	for _, tt := range tests {
		t.Run(tt.conn.String()+"/"+tt.ice.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, projectStatus(tt.conn, tt.ice))
		})
	}
}

func TestStatusLine(t *testing.T) {
	assert.Equal(t, "Not watching", statusLine(StateIdle, "", constants.StatusWaiting))
	assert.Equal(t, "Joining Room: ABC123", statusLine(StateValidating, "ABC123", constants.StatusWaiting))
	assert.Equal(t, "Viewing Room: ABC123 - Connecting", statusLine(StateNegotiating, "ABC123", constants.StatusConnecting))
	assert.Equal(t, "Viewing Room: ABC123 - Connection failed", statusLine(StateFailed, "ABC123", constants.StatusFailed))
	assert.Equal(t, "Left room", statusLine(StateLeft, "", constants.StatusWaiting))
}
