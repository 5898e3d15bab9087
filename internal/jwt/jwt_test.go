package jwt

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
)

type JWTTestSuite struct {
	suite.Suite
	auth      Auth
	secret    string
	sessionID string
	roomCode  string
	now       time.Time
}

func TestJWTSuite(t *testing.T) {
	suite.Run(t, new(JWTTestSuite))
}

func (s *JWTTestSuite) SetupTest() {
	s.secret = "test-secret"
	s.sessionID = "5c1b7e7a-4a55-4d8f-9d4e-0c8f6c0f2a11"
	s.roomCode = "ABC123"
	s.now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s.auth = NewAuth(s.secret, Options{Issuer: "spectators", TTL: time.Hour, Now: s.clock})
}

func (s *JWTTestSuite) clock() time.Time { return s.now }

func (s *JWTTestSuite) TestSignAndVerify() {
	token, err := s.auth.Sign(s.sessionID, s.roomCode)
	s.Require().NoError(err)
	s.True(strings.HasPrefix(token, "eyJ"))

	claims, err := s.auth.Verify(token)
	s.Require().NoError(err)
	s.Equal(s.sessionID, claims.SessionID)
	s.Equal(s.roomCode, claims.RoomCode)
	s.Equal("spectators", claims.Issuer)
}

func (s *JWTTestSuite) TestSignRequiresFields() {
	_, err := s.auth.Sign("", s.roomCode)
	s.ErrorIs(err, ErrInvalidRequest)

	_, err = s.auth.Sign(s.sessionID, "")
	s.ErrorIs(err, ErrInvalidRequest)
}

func (s *JWTTestSuite) TestVerifyEmpty() {
	claims, err := s.auth.Verify("")
	s.ErrorIs(err, ErrNoToken)
	s.Nil(claims)
}

func (s *JWTTestSuite) TestVerifyGarbage() {
	for _, token := range []string{"invalid-token", "eyJ.invalid.token"} {
		_, err := s.auth.Verify(token)
		s.ErrorIs(err, ErrInvalidToken, token)
	}
}

func (s *JWTTestSuite) TestVerifyWrongSecret() {
	token, err := s.auth.Sign(s.sessionID, s.roomCode)
	s.Require().NoError(err)

	_, err = NewAuth("other-secret", Options{Now: s.clock}).Verify(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *JWTTestSuite) TestVerifyRejectsOtherAlgorithm() {
	token, err := NewAuthWithAlgorithm(s.secret, jwt.SigningMethodHS384, Options{}).Sign(s.sessionID, s.roomCode)
	s.Require().NoError(err)

	_, err = s.auth.Verify(token)
	s.ErrorIs(err, ErrInvalidToken)
	s.Contains(err.Error(), "HS384")
}

func (s *JWTTestSuite) TestVerifyExpired() {
	token, err := s.auth.Sign(s.sessionID, s.roomCode)
	s.Require().NoError(err)

	s.now = s.now.Add(2 * time.Hour)
	_, err = s.auth.Verify(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *JWTTestSuite) TestVerifyMissingFields() {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Payload{SessionID: s.sessionID})
	signed, err := token.SignedString([]byte(s.secret))
	s.Require().NoError(err)

	_, err = s.auth.Verify(signed)
	s.ErrorIs(err, ErrInvalidToken)
	s.Contains(err.Error(), "missing required fields")
}
