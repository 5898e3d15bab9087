package rtc

import (
	"testing"

	"github.com/pion/webrtc/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dowdarts/spectators-videochat/internal/log"
)

func newPeer(t *testing.T) PeerConnection {
	t.Helper()

	f, err := NewFactory(&Config{}, log.NewNop())
	require.NoError(t, err)
	pc, err := f.NewPeerConnection()
	require.NoError(t, err)
	t.Cleanup(func() { _ = pc.Close() })
	return pc
}

func TestRecvOnlyTransceivers(t *testing.T) {
	pc := newPeer(t)

	require.NoError(t, pc.AddRecvOnlyTransceiver(webrtc.RTPCodecTypeVideo))
	require.NoError(t, pc.AddRecvOnlyTransceiver(webrtc.RTPCodecTypeAudio))

	assert.Equal(t, 1, pc.TransceiverCount(webrtc.RTPCodecTypeVideo))
	assert.Equal(t, 1, pc.TransceiverCount(webrtc.RTPCodecTypeAudio))
	assert.Equal(t, webrtc.PeerConnectionStateNew, pc.ConnectionState())
}

// A local sender stands in for the broadcasting side.
func TestAnswerToOffer(t *testing.T) {
	sender, err := webrtc.NewPeerConnection(webrtc.Configuration{})
	require.NoError(t, err)
	defer sender.Close()

	track, err := webrtc.NewTrackLocalStaticSample(
		webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeVP8}, "video", "host")
	require.NoError(t, err)
	_, err = sender.AddTrack(track)
	require.NoError(t, err)

	offer, err := sender.CreateOffer(nil)
	require.NoError(t, err)
	require.NoError(t, sender.SetLocalDescription(offer))

	viewer := newPeer(t)
	require.NoError(t, viewer.AddRecvOnlyTransceiver(webrtc.RTPCodecTypeVideo))
	require.NoError(t, viewer.AddRecvOnlyTransceiver(webrtc.RTPCodecTypeAudio))
	require.NoError(t, viewer.SetRemoteDescription(offer))

	answer, err := viewer.CreateAnswer()
	require.NoError(t, err)
	require.NoError(t, viewer.SetLocalDescription(answer))

	assert.Equal(t, webrtc.SDPTypeAnswer, answer.Type)
	assert.Contains(t, answer.SDP, "m=video")
	require.NoError(t, sender.SetRemoteDescription(answer))
}
