package session

import (
	"context"
	"sort"
	"sync"

	"github.com/pion/webrtc/v4"

	"github.com/dowdarts/spectators-videochat/internal/constants"
	"github.com/dowdarts/spectators-videochat/internal/errors"
	"github.com/dowdarts/spectators-videochat/internal/log"
	"github.com/dowdarts/spectators-videochat/internal/realtime"
	"github.com/dowdarts/spectators-videochat/internal/rtc"
	"github.com/dowdarts/spectators-videochat/spectators"
	"github.com/dowdarts/spectators-videochat/spectators/roomcode"
	"github.com/dowdarts/spectators-videochat/spectators/signal"
)

const (
	actionBuffer  = 32
	watcherBuffer = 8
)

// Deps are the collaborators a session validates and connects through.
type Deps struct {
	Credentials spectators.Credentials
	Rooms       spectators.RoomStore
	Realtime    realtime.Client
	Peers       rtc.Factory
	RoomCodes   *roomcode.Policy
}

// Session is one viewer watching one room. Join and Leave may be called from
// any goroutine; everything that happens while joined runs on the session's
// dispatch loop.
type Session struct {
	id     string
	deps   Deps
	logger *log.Logger

	// serializes Join and Leave
	lifecycle sync.Mutex

	mu           sync.Mutex
	state        State
	roomCode     string
	token        string
	status       constants.ConnectionStatus
	participants []string
	tracks       []*inboundTrack
	notice       *spectators.Notice
	link         *link
	watchers     map[int]chan spectators.SessionSnapshot
	nextWatcher  int
}

// link is the state of one Joined period. It is owned by the dispatch loop
// and discarded on Leave, so a fresh join never sees a stale peer connection
// or candidate queue.
type link struct {
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	ch       realtime.Channel
	roomCode string
	token    string
	actions  chan func()

	pc         rtc.PeerConnection
	remoteSet  bool
	pendingICE []webrtc.ICECandidateInit
	media      sync.WaitGroup
}

func New(id string, deps Deps, logger *log.Logger) *Session {
	return &Session{
		id:       id,
		deps:     deps,
		logger:   logger.With(log.SessionID(id)),
		status:   constants.StatusWaiting,
		watchers: map[int]chan spectators.SessionSnapshot{},
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Join validates the credential, opens the room channel and asks the
// broadcasting side for an offer. A rejected join leaves the session Idle
// with no channel opened.
func (s *Session) Join(ctx context.Context, roomCode, token string) error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	s.mu.Lock()
	if !s.state.canJoin() {
		state := s.state
		s.mu.Unlock()
		return errors.Newf(spectators.ErrInvalidState, "cannot join while %s", state)
	}
	s.mu.Unlock()

	joinsTotal.Add(ctx, 1)
	s.update(func() {
		s.state = StateValidating
		s.roomCode = roomCode
		s.notice = nil
	})

	l, err := s.join(ctx, roomCode, token)
	if err != nil {
		joinsRejected.Add(ctx, 1)
		s.logger.Info("join rejected", log.RoomCode(roomCode), log.Error(err))
		s.update(func() {
			s.reset(StateIdle)
			s.notice = &spectators.Notice{Level: noticeError, Message: userMessage(err)}
		})
		return err
	}

	s.update(func() {
		s.state = StateJoined
		s.roomCode = l.roomCode
		s.token = l.token
		s.status = constants.StatusWaiting
		s.link = l
		s.notice = &spectators.Notice{Level: noticeInfo, Message: "Joined room " + l.roomCode + " as spectator"}
	})
	sessionsActive.Add(ctx, 1)

	go s.loop(l)

	s.logger.Info("joined room", log.RoomCode(l.roomCode))
	return nil
}

func (s *Session) join(ctx context.Context, rawCode, token string) (*link, error) {
	cred, code, err := s.validate(ctx, rawCode, token)
	if err != nil {
		return nil, err
	}

	if err := s.deps.Credentials.Claim(ctx, cred, s.id); err != nil {
		return nil, err
	}

	l, err := s.open(ctx, code, token)
	if err != nil {
		s.deps.Credentials.Release(context.WithoutCancel(ctx), token, s.id)
		return nil, err
	}
	return l, nil
}

func (s *Session) validate(ctx context.Context, rawCode, token string) (*spectators.Credential, string, error) {
	if token == "" {
		return nil, "", errors.New(spectators.ErrInvalidCredential, "token is required")
	}

	code, ok := s.deps.RoomCodes.Parse(rawCode)
	if !ok {
		return nil, "", errors.Newf(spectators.ErrRoomNotFound, "malformed room code %q", rawCode)
	}

	cred, err := s.deps.Credentials.Validate(ctx, code, token)
	if err != nil {
		return nil, "", err
	}

	room, err := s.deps.Rooms.GetActiveRoom(ctx, code)
	if err != nil {
		return nil, "", errors.Wrap(spectators.ErrBackendUnavailable, err, "lookup room")
	}
	if room == nil {
		return nil, "", errors.Newf(spectators.ErrRoomNotFound, "room %s", code)
	}
	return cred, code, nil
}

// open subscribes to the room channel, announces this viewer and requests an
// offer. Any failure unsubscribes again.
func (s *Session) open(ctx context.Context, code, token string) (_ *link, err error) {
	ch, err := s.deps.Realtime.Channel(signal.Topic(code), realtime.ChannelOptions{
		PresenceKey: constants.PresenceKeySpectator + s.id,
	})
	if err != nil {
		return nil, errors.Wrap(spectators.ErrBackendUnavailable, err, "open channel")
	}
	defer func() {
		if err != nil {
			if uerr := ch.Unsubscribe(context.WithoutCancel(ctx)); uerr != nil {
				s.logger.Debug("unsubscribe after failed join", log.Error(uerr))
			}
		}
	}()

	if err := ch.Subscribe(ctx); err != nil {
		return nil, errors.Wrap(spectators.ErrBackendUnavailable, err, "subscribe")
	}
	if err := ch.Track(ctx, signal.Presence{Role: constants.RoleObserver, Token: token}); err != nil {
		return nil, errors.Wrap(spectators.ErrBackendUnavailable, err, "track presence")
	}
	if err := signal.Send(ctx, ch, &signal.OfferRequest{Token: token}); err != nil {
		return nil, errors.Wrap(spectators.ErrBackendUnavailable, err, "request offer")
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	return &link{
		ctx:      loopCtx,
		cancel:   cancel,
		done:     make(chan struct{}),
		ch:       ch,
		roomCode: code,
		token:    token,
		actions:  make(chan func(), actionBuffer),
	}, nil
}

// Leave tears down the peer connection and the channel subscription. It is
// safe to call in any state.
func (s *Session) Leave(ctx context.Context) error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	s.mu.Lock()
	l := s.link
	s.link = nil
	s.mu.Unlock()

	if l == nil {
		s.update(func() {
			if s.state != StateLeft {
				s.reset(StateIdle)
			}
		})
		return nil
	}

	l.cancel()
	<-l.done

	if l.pc != nil {
		if err := l.pc.Close(); err != nil {
			s.logger.Warn("close peer connection", log.Error(err))
		}
	}
	l.media.Wait()

	if err := l.ch.Unsubscribe(ctx); err != nil {
		s.logger.Warn("unsubscribe room channel", log.Error(err))
	}
	s.deps.Credentials.Release(ctx, l.token, s.id)
	sessionsActive.Add(ctx, -1)

	s.update(func() {
		s.reset(StateLeft)
		s.notice = &spectators.Notice{Level: noticeInfo, Message: "Left room " + l.roomCode}
	})
	s.logger.Info("left room", log.RoomCode(l.roomCode))
	return nil
}

// reset clears identity and per-join state. Caller holds mu.
func (s *Session) reset(state State) {
	s.state = state
	s.roomCode = ""
	s.token = ""
	s.status = constants.StatusWaiting
	s.participants = nil
	s.tracks = nil
	s.notice = nil
}

func (s *Session) DismissNotice() {
	s.update(func() {
		s.notice = nil
	})
}

func (s *Session) Snapshot() spectators.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() spectators.SessionSnapshot {
	snap := spectators.SessionSnapshot{
		ID:           s.id,
		RoomCode:     s.roomCode,
		State:        s.state.String(),
		Status:       string(s.status),
		StatusLine:   statusLine(s.state, s.roomCode, s.status),
		Participants: append([]string{}, s.participants...),
		Tracks:       make([]spectators.TrackStats, 0, len(s.tracks)),
	}
	for _, t := range s.tracks {
		snap.Tracks = append(snap.Tracks, t.stats())
	}
	if s.notice != nil {
		n := *s.notice
		snap.Notice = &n
	}
	return snap
}

// update applies f under mu and publishes the resulting snapshot.
func (s *Session) update(f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f()
	snap := s.snapshotLocked()
	for _, w := range s.watchers {
		select {
		case w <- snap:
		default:
			// keep the newest snapshot for slow watchers
			select {
			case <-w:
			default:
			}
			select {
			case w <- snap:
			default:
			}
		}
	}
}

// Watch returns a stream of snapshots starting with the current one.
func (s *Session) Watch() (<-chan spectators.SessionSnapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextWatcher
	s.nextWatcher++
	w := make(chan spectators.SessionSnapshot, watcherBuffer)
	w <- s.snapshotLocked()
	s.watchers[id] = w

	var once sync.Once
	stop := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if w, ok := s.watchers[id]; ok {
				delete(s.watchers, id)
				close(w)
			}
		})
	}
	return w, stop
}

// closeWatchers ends every watch stream.
func (s *Session) closeWatchers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, w := range s.watchers {
		delete(s.watchers, id)
		close(w)
	}
}

func (s *Session) loop(l *link) {
	defer close(l.done)
	defer l.cancel()

	events := l.ch.Events()
	for {
		select {
		case <-l.ctx.Done():
			return
		case act := <-l.actions:
			act()
		case ev, ok := <-events:
			if !ok {
				s.logger.Warn("room channel closed")
				s.update(func() {
					s.notice = &spectators.Notice{Level: noticeError, Message: "Lost connection to the room"}
				})
				return
			}
			s.dispatch(l, ev)
		}
	}
}

// post queues f on the dispatch loop. It gives up once the link is done.
func (l *link) post(f func()) {
	select {
	case l.actions <- f:
	case <-l.ctx.Done():
	}
}

func (s *Session) dispatch(l *link, ev realtime.Event) {
	if ev.Kind == realtime.EventStatus {
		s.logger.Debug("channel status", log.String("status", string(ev.Status)))
		return
	}

	msg, err := signal.Decode(ev)
	if err != nil {
		s.logger.Debug("ignore channel event", log.Error(errors.Wrap(spectators.ErrSignalingNoise, err, ev.Name)))
		return
	}

	switch m := msg.(type) {
	case *signal.Offer:
		if m.Token != l.token {
			return
		}
		s.handleOffer(l, m)
	case *signal.ICECandidate:
		if m.Token != l.token {
			return
		}
		s.handleCandidate(l, m.Candidate)
	case *signal.PresenceSync:
		participants := m.Participants()
		sort.Strings(participants)
		s.update(func() {
			s.participants = participants
		})
	case *signal.Answer, *signal.OfferRequest, *signal.LobbyPing, *signal.LobbyPong:
		// traffic between other peers on the channel
	}
}
