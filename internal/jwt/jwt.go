package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dowdarts/spectators-videochat/internal/errors"
)

// NewAuth returns an HS256 authenticator.
func NewAuth(secret string, opts Options) Auth {
	return NewAuthWithAlgorithm(secret, jwt.SigningMethodHS256, opts)
}

// NewAuthWithAlgorithm accepts only tokens signed with method.
func NewAuthWithAlgorithm(secret string, method jwt.SigningMethod, opts Options) Auth {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &jwtAuthImpl{
		secret:        []byte(secret),
		signingMethod: method,
		opts:          opts,
	}
}

type jwtAuthImpl struct {
	secret        []byte
	signingMethod jwt.SigningMethod
	opts          Options
}

func (j *jwtAuthImpl) Sign(sessionID, roomCode string) (string, error) {
	if sessionID == "" || roomCode == "" {
		return "", errors.New(ErrInvalidRequest, "sessionID and roomCode are required")
	}

	now := j.opts.Now()
	claims := &Payload{
		SessionID: sessionID,
		RoomCode:  roomCode,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   j.opts.Issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if j.opts.TTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(j.opts.TTL))
	}

	return jwt.NewWithClaims(j.signingMethod, claims).SignedString(j.secret)
}

func (j *jwtAuthImpl) Verify(tokenString string) (*Payload, error) {
	if tokenString == "" {
		return nil, ErrNoToken
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&Payload{},
		func(*jwt.Token) (any, error) { return j.secret, nil },
		jwt.WithValidMethods([]string{j.signingMethod.Alg()}),
		jwt.WithTimeFunc(j.opts.Now),
	)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidToken, err, "parse token")
	}

	claims, ok := token.Claims.(*Payload)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.SessionID == "" || claims.RoomCode == "" {
		return nil, errors.New(ErrInvalidToken, "missing required fields in token")
	}
	return claims, nil
}
