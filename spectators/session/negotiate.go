package session

import (
	"github.com/pion/webrtc/v4"

	"github.com/dowdarts/spectators-videochat/internal/constants"
	"github.com/dowdarts/spectators-videochat/internal/errors"
	"github.com/dowdarts/spectators-videochat/internal/log"
	"github.com/dowdarts/spectators-videochat/internal/rtc"
	"github.com/dowdarts/spectators-videochat/spectators"
	"github.com/dowdarts/spectators-videochat/spectators/signal"
)

var recvKinds = []webrtc.RTPCodecType{
	webrtc.RTPCodecTypeVideo,
	webrtc.RTPCodecTypeAudio,
}

// handleOffer answers an offer addressed to this session. A failure marks the
// session failed but keeps it on the channel so a later offer can recover.
func (s *Session) handleOffer(l *link, offer *signal.Offer) {
	s.update(func() {
		s.state = StateNegotiating
		s.notice = nil
	})

	if err := s.answer(l, offer); err != nil {
		negotiationsFailed.Add(l.ctx, 1)
		s.logger.Warn("negotiation failed", log.Error(err))
		s.update(func() {
			s.state = StateFailed
			s.status = constants.StatusFailed
			s.notice = &spectators.Notice{Level: noticeError, Message: userMessage(err)}
		})
		return
	}

	s.logger.Info("answered offer")
	s.refreshStatus(l)
}

func (s *Session) answer(l *link, offer *signal.Offer) error {
	if l.pc == nil {
		pc, err := s.deps.Peers.NewPeerConnection()
		if err != nil {
			return errors.Wrap(spectators.ErrNegotiation, err, "create peer connection")
		}
		s.bindPeer(l, pc)
		l.pc = pc
	}

	for _, kind := range recvKinds {
		if l.pc.TransceiverCount(kind) > 0 {
			continue
		}
		if err := l.pc.AddRecvOnlyTransceiver(kind); err != nil {
			return errors.Wrapf(spectators.ErrNegotiation, err, "add %s transceiver", kind)
		}
	}

	if err := l.pc.SetRemoteDescription(offer.Offer); err != nil {
		return errors.Wrap(spectators.ErrNegotiation, err, "set remote description")
	}
	l.remoteSet = true
	s.flushCandidates(l)

	answer, err := l.pc.CreateAnswer()
	if err != nil {
		return errors.Wrap(spectators.ErrNegotiation, err, "create answer")
	}
	if err := l.pc.SetLocalDescription(answer); err != nil {
		return errors.Wrap(spectators.ErrNegotiation, err, "set local description")
	}

	if err := signal.Send(l.ctx, l.ch, &signal.Answer{Token: l.token, Answer: answer}); err != nil {
		return errors.Wrap(spectators.ErrNegotiation, err, "send answer")
	}
	return nil
}

// handleCandidate queues candidates until the remote description is set.
func (s *Session) handleCandidate(l *link, candidate webrtc.ICECandidateInit) {
	if !l.remoteSet {
		l.pendingICE = append(l.pendingICE, candidate)
		return
	}
	s.addCandidate(l, candidate)
}

func (s *Session) flushCandidates(l *link) {
	pending := l.pendingICE
	l.pendingICE = nil
	for _, c := range pending {
		s.addCandidate(l, c)
	}
	if len(pending) > 0 {
		s.logger.Debug("applied queued candidates", log.Int("count", len(pending)))
	}
}

// addCandidate never fails the session; a bad candidate is only logged.
func (s *Session) addCandidate(l *link, candidate webrtc.ICECandidateInit) {
	if err := l.pc.AddICECandidate(candidate); err != nil {
		candidatesDiscarded.Add(l.ctx, 1)
		s.logger.Debug("discard ice candidate",
			log.Error(errors.Wrap(spectators.ErrSignalingNoise, err, candidate.Candidate)))
	}
}

// bindPeer routes peer connection callbacks onto the dispatch loop.
func (s *Session) bindPeer(l *link, pc rtc.PeerConnection) {
	pc.OnICECandidate(func(c webrtc.ICECandidateInit) {
		l.post(func() {
			if err := signal.Send(l.ctx, l.ch, &signal.ICECandidate{Token: l.token, Candidate: c}); err != nil {
				s.logger.Debug("send ice candidate", log.Error(err))
			}
		})
	})
	pc.OnConnectionStateChange(func(state webrtc.PeerConnectionState) {
		l.post(func() { s.refreshStatus(l) })
	})
	pc.OnICEConnectionStateChange(func(state webrtc.ICEConnectionState) {
		l.post(func() { s.refreshStatus(l) })
	})
	pc.OnTrack(func(track rtc.RemoteTrack) {
		l.post(func() { s.onTrack(l, track) })
	})
}

// refreshStatus projects the peer connection state onto the session.
func (s *Session) refreshStatus(l *link) {
	if l.pc == nil {
		return
	}
	status := projectStatus(l.pc.ConnectionState(), l.pc.ICEConnectionState())

	s.update(func() {
		prev := s.status
		s.status = status

		switch status {
		case constants.StatusConnected:
			s.state = StateConnected
			if prev != constants.StatusConnected {
				s.notice = &spectators.Notice{Level: noticeSuccess, Message: "Connected to stream"}
			}
		case constants.StatusFailed:
			s.state = StateFailed
			if prev != constants.StatusFailed {
				s.notice = &spectators.Notice{Level: noticeError, Message: "Connection to stream failed"}
			}
		default:
			if s.state == StateConnected || s.state == StateFailed {
				s.state = StateNegotiating
			}
		}
	})
}
