package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/dowdarts/spectators-videochat/internal/errors"
	"github.com/dowdarts/spectators-videochat/internal/log"
	"github.com/dowdarts/spectators-videochat/internal/realtime/memory"
	"github.com/dowdarts/spectators-videochat/spectators"
	"github.com/dowdarts/spectators-videochat/spectators/mocks"
	"github.com/dowdarts/spectators-videochat/spectators/roomcode"
	"github.com/dowdarts/spectators-videochat/spectators/signal"
)

type ManagerTestSuite struct {
	suite.Suite
	creds   *mocks.MockCredentials
	rooms   *mocks.MockRoomStore
	hub     *memory.Hub
	manager *Manager
}

func TestManagerTestSuite(t *testing.T) {
	suite.Run(t, new(ManagerTestSuite))
}

func (s *ManagerTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.creds = mocks.NewMockCredentials(ctrl)
	s.rooms = mocks.NewMockRoomStore(ctrl)
	s.hub = memory.NewHub(64)

	policy, err := roomcode.NewPolicy(roomcode.FormatDigits4)
	s.Require().NoError(err)

	s.manager = NewManager(Deps{
		Credentials: s.creds,
		Rooms:       s.rooms,
		Realtime:    s.hub,
		Peers:       &fakeFactory{},
		RoomCodes:   policy,
	}, log.NewTest(s.T()))
}

func (s *ManagerTestSuite) TearDownTest() {
	s.NoError(s.manager.Shutdown(context.Background()))
}

func (s *ManagerTestSuite) expectValid(code string) {
	cred := &spectators.Credential{RoomCode: code, Token: testToken}
	s.creds.EXPECT().Validate(gomock.Any(), code, testToken).Return(cred, nil).AnyTimes()
	s.creds.EXPECT().Claim(gomock.Any(), cred, gomock.Any()).Return(nil).AnyTimes()
	s.creds.EXPECT().Release(gomock.Any(), testToken, gomock.Any()).AnyTimes()
	s.rooms.EXPECT().GetActiveRoom(gomock.Any(), code).
		Return(&spectators.Room{RoomCode: code, IsActive: true}, nil).AnyTimes()
}

func (s *ManagerTestSuite) TestOpenAndLeave() {
	s.expectValid("4821")

	snap, err := s.manager.Open(context.Background(), "48-21", testToken)
	s.Require().NoError(err)
	s.NotEmpty(snap.ID)
	s.Equal("4821", snap.RoomCode)
	s.Equal(StateJoined.String(), snap.State)
	s.Equal(1, s.manager.Len())

	got, err := s.manager.Snapshot(snap.ID)
	s.Require().NoError(err)
	s.Equal(snap.ID, got.ID)

	updates, stop, err := s.manager.Watch(snap.ID)
	s.Require().NoError(err)
	defer stop()
	<-updates

	s.Require().NoError(s.manager.Leave(context.Background(), snap.ID))
	s.Equal(0, s.manager.Len())
	s.Equal(0, s.hub.Subscribers(signal.Topic("4821")))

	// the watch stream ends with the session
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-updates:
			if !ok {
				_, err = s.manager.Snapshot(snap.ID)
				s.True(errors.Is(err, spectators.ErrSessionNotFound))
				s.NoError(s.manager.Leave(context.Background(), snap.ID))
				return
			}
		case <-deadline:
			s.FailNow("watch stream not closed")
		}
	}
}

func (s *ManagerTestSuite) TestOpenRejectedIsNotKept() {
	s.creds.EXPECT().Validate(gomock.Any(), "4821", testToken).
		Return(nil, errors.New(spectators.ErrInvalidCredential, "expired"))

	snap, err := s.manager.Open(context.Background(), "4821", testToken)
	s.Nil(snap)
	s.True(errors.Is(err, spectators.ErrInvalidCredential))
	s.Equal(0, s.manager.Len())
}

func (s *ManagerTestSuite) TestUnknownSession() {
	_, err := s.manager.Snapshot("missing")
	s.True(errors.Is(err, spectators.ErrSessionNotFound))

	_, _, err = s.manager.Watch("missing")
	s.True(errors.Is(err, spectators.ErrSessionNotFound))

	s.True(errors.Is(s.manager.DismissNotice("missing"), spectators.ErrSessionNotFound))
	s.NoError(s.manager.Leave(context.Background(), "missing"))
}

func (s *ManagerTestSuite) TestShutdownLeavesAll() {
	s.expectValid("4821")
	s.expectValid("1234")

	_, err := s.manager.Open(context.Background(), "4821", testToken)
	s.Require().NoError(err)
	_, err = s.manager.Open(context.Background(), "1234", testToken)
	s.Require().NoError(err)
	s.Equal(2, s.manager.Len())

	s.Require().NoError(s.manager.Shutdown(context.Background()))
	s.Equal(0, s.manager.Len())
	s.Equal(0, s.hub.Subscribers(signal.Topic("4821")))
	s.Equal(0, s.hub.Subscribers(signal.Topic("1234")))
}
