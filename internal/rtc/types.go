package rtc

import (
	"github.com/pion/interceptor"
	"github.com/pion/rtp"
	"github.com/pion/webrtc/v4"
)

// Factory builds receive side peer connections.
type Factory interface {
	NewPeerConnection() (PeerConnection, error)
}

// PeerConnection is the subset of a WebRTC peer connection a viewer needs.
// Callbacks may fire on any goroutine.
type PeerConnection interface {
	AddRecvOnlyTransceiver(kind webrtc.RTPCodecType) error
	TransceiverCount(kind webrtc.RTPCodecType) int

	SetRemoteDescription(desc webrtc.SessionDescription) error
	CreateAnswer() (webrtc.SessionDescription, error)
	SetLocalDescription(desc webrtc.SessionDescription) error
	AddICECandidate(candidate webrtc.ICECandidateInit) error

	OnTrack(f func(track RemoteTrack))
	OnICECandidate(f func(candidate webrtc.ICECandidateInit))
	OnConnectionStateChange(f func(state webrtc.PeerConnectionState))
	OnICEConnectionStateChange(f func(state webrtc.ICEConnectionState))

	ConnectionState() webrtc.PeerConnectionState
	ICEConnectionState() webrtc.ICEConnectionState

	// RequestKeyFrame asks the sender of a video track for a fresh key frame.
	RequestKeyFrame(ssrc uint32) error
	Close() error
}

// RemoteTrack is an inbound media track.
type RemoteTrack interface {
	ID() string
	StreamID() string
	Kind() webrtc.RTPCodecType
	SSRC() webrtc.SSRC
	ReadRTP() (*rtp.Packet, interceptor.Attributes, error)
}
