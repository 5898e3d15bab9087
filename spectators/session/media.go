package session

import (
	"sync/atomic"

	"github.com/pion/webrtc/v4"

	"github.com/dowdarts/spectators-videochat/internal/log"
	"github.com/dowdarts/spectators-videochat/internal/rtc"
	"github.com/dowdarts/spectators-videochat/spectators"
)

// inboundTrack counts what has been read from one remote track.
type inboundTrack struct {
	id       string
	streamID string
	kind     string
	packets  atomic.Uint64
	bytes    atomic.Uint64
}

func (t *inboundTrack) stats() spectators.TrackStats {
	return spectators.TrackStats{
		ID:       t.id,
		StreamID: t.streamID,
		Kind:     t.kind,
		Packets:  t.packets.Load(),
		Bytes:    t.bytes.Load(),
	}
}

// onTrack runs on the dispatch loop for each inbound track. The track is
// drained until the peer connection closes.
func (s *Session) onTrack(l *link, track rtc.RemoteTrack) {
	in := &inboundTrack{
		id:       track.ID(),
		streamID: track.StreamID(),
		kind:     track.Kind().String(),
	}
	s.update(func() {
		s.tracks = append(s.tracks, in)
	})
	tracksReceived.Add(l.ctx, 1)

	logger := s.logger.With(log.String("track", in.id), log.String("kind", in.kind))
	logger.Info("inbound track")

	if track.Kind() == webrtc.RTPCodecTypeVideo && l.pc != nil {
		if err := l.pc.RequestKeyFrame(uint32(track.SSRC())); err != nil {
			logger.Debug("key frame request failed", log.Error(err))
		}
	}

	l.media.Add(1)
	go func() {
		defer l.media.Done()
		drain(track, in)
		logger.Debug("track ended",
			log.Int64("packets", int64(in.packets.Load())),
			log.Int64("bytes", int64(in.bytes.Load())))
	}()
}

func drain(track rtc.RemoteTrack, in *inboundTrack) {
	for {
		pkt, _, err := track.ReadRTP()
		if err != nil {
			return
		}
		in.packets.Add(1)
		in.bytes.Add(uint64(pkt.MarshalSize()))
	}
}
