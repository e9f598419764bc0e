package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionIssuer = "jelajah"

// SessionClaims identify a planner session. The session id travels as the
// token subject.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// SessionTokens signs and checks the planner session cookie.
type SessionTokens struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewSessionTokens(secret string, ttl time.Duration) *SessionTokens {
	return &SessionTokens{key: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *SessionTokens) TTL() time.Duration { return s.ttl }

// CreateToken issues a token for a fresh session id.
func (s *SessionTokens) CreateToken() (sessionID string, token string, err error) {
	sessionID = uuid.New().String()
	now := s.now()
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			Issuer:    sessionIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", "", fmt.Errorf("sign session token: %w", err)
	}
	return sessionID, token, nil
}

// ValidateToken returns the session id carried by a valid, unexpired token.
func (s *SessionTokens) ValidateToken(tokenString string) (string, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("invalid session token")
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", fmt.Errorf("invalid session id: %w", err)
	}
	return claims.Subject, nil
}
