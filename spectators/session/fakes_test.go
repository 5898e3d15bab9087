package session

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/pion/interceptor"
	"github.com/pion/rtp"
	"github.com/pion/webrtc/v4"

	"github.com/dowdarts/spectators-videochat/internal/rtc"
)

type fakeFactory struct {
	mu    sync.Mutex
	peers []*fakePeer
	// applied to each new peer
	remoteErr error
}

func (f *fakeFactory) NewPeerConnection() (rtc.PeerConnection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := &fakePeer{
		transceivers: map[webrtc.RTPCodecType]int{},
		remoteErr:    f.remoteErr,
		conn:         webrtc.PeerConnectionStateNew,
		ice:          webrtc.ICEConnectionStateNew,
	}
	f.peers = append(f.peers, p)
	return p, nil
}

func (f *fakeFactory) created() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.peers)
}

func (f *fakeFactory) peer(i int) *fakePeer {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.peers[i]
}

// fakePeer records the order of description and candidate calls.
type fakePeer struct {
	mu           sync.Mutex
	transceivers map[webrtc.RTPCodecType]int
	calls        []string
	remoteErr    error
	answers      int
	conn         webrtc.PeerConnectionState
	ice          webrtc.ICEConnectionState
	keyFrames    []uint32
	tracks       []*fakeTrack
	closed       bool

	onICE       func(webrtc.ICECandidateInit)
	onConn      func(webrtc.PeerConnectionState)
	onICEConn   func(webrtc.ICEConnectionState)
	onTrackFunc func(rtc.RemoteTrack)
}

func (p *fakePeer) record(call string) {
	p.calls = append(p.calls, call)
}

func (p *fakePeer) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.calls...)
}

func (p *fakePeer) AddRecvOnlyTransceiver(kind webrtc.RTPCodecType) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.transceivers[kind]++
	return nil
}

func (p *fakePeer) TransceiverCount(kind webrtc.RTPCodecType) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.transceivers[kind]
}

func (p *fakePeer) SetRemoteDescription(desc webrtc.SessionDescription) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.remoteErr != nil {
		return p.remoteErr
	}
	p.record("remote:" + desc.SDP)
	return nil
}

func (p *fakePeer) failRemote(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.remoteErr = err
}

func (p *fakePeer) CreateAnswer() (webrtc.SessionDescription, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.answers++
	return webrtc.SessionDescription{Type: webrtc.SDPTypeAnswer, SDP: fmt.Sprintf("answer-%d", p.answers)}, nil
}

func (p *fakePeer) SetLocalDescription(desc webrtc.SessionDescription) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("local:" + desc.SDP)
	return nil
}

func (p *fakePeer) AddICECandidate(candidate webrtc.ICECandidateInit) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if candidate.Candidate == "bad" {
		return errors.New("malformed candidate")
	}
	p.record("ice:" + candidate.Candidate)
	return nil
}

func (p *fakePeer) OnTrack(f func(rtc.RemoteTrack)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onTrackFunc = f
}

func (p *fakePeer) OnICECandidate(f func(webrtc.ICECandidateInit)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onICE = f
}

func (p *fakePeer) OnConnectionStateChange(f func(webrtc.PeerConnectionState)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onConn = f
}

func (p *fakePeer) OnICEConnectionStateChange(f func(webrtc.ICEConnectionState)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onICEConn = f
}

func (p *fakePeer) ConnectionState() webrtc.PeerConnectionState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.conn
}

func (p *fakePeer) ICEConnectionState() webrtc.ICEConnectionState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ice
}

func (p *fakePeer) RequestKeyFrame(ssrc uint32) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keyFrames = append(p.keyFrames, ssrc)
	return nil
}

func (p *fakePeer) KeyFrames() []uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]uint32(nil), p.keyFrames...)
}

func (p *fakePeer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	for _, t := range p.tracks {
		close(t.packets)
	}
	return nil
}

func (p *fakePeer) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// setConnectionState changes the state and fires the callback the way pion
// does, from a foreign goroutine.
func (p *fakePeer) setConnectionState(state webrtc.PeerConnectionState) {
	p.mu.Lock()
	p.conn = state
	f := p.onConn
	p.mu.Unlock()
	if f != nil {
		go f(state)
	}
}

func (p *fakePeer) gatherCandidate(c webrtc.ICECandidateInit) {
	p.mu.Lock()
	f := p.onICE
	p.mu.Unlock()
	if f != nil {
		go f(c)
	}
}

func (p *fakePeer) addTrack(t *fakeTrack) {
	p.mu.Lock()
	p.tracks = append(p.tracks, t)
	f := p.onTrackFunc
	p.mu.Unlock()
	if f != nil {
		go f(t)
	}
}

type fakeTrack struct {
	id      string
	kind    webrtc.RTPCodecType
	ssrc    webrtc.SSRC
	packets chan *rtp.Packet
}

func newFakeTrack(id string, kind webrtc.RTPCodecType, ssrc webrtc.SSRC) *fakeTrack {
	return &fakeTrack{id: id, kind: kind, ssrc: ssrc, packets: make(chan *rtp.Packet, 16)}
}

func (t *fakeTrack) ID() string                { return t.id }
func (t *fakeTrack) StreamID() string          { return "stream-" + t.id }
func (t *fakeTrack) Kind() webrtc.RTPCodecType { return t.kind }
func (t *fakeTrack) SSRC() webrtc.SSRC         { return t.ssrc }

func (t *fakeTrack) ReadRTP() (*rtp.Packet, interceptor.Attributes, error) {
	pkt, ok := <-t.packets
	if !ok {
		return nil, nil, io.EOF
	}
	return pkt, nil, nil
}
