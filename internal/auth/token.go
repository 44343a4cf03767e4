package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ayush/employee-admin/internal/apperr"
)

// Claims is the signed payload of the access_token cookie. It names a server-side
// session and carries no secret.
type Claims struct {
	SessionID string `json:"sid"`
	Username  string `json:"username"`
	jwt.RegisteredClaims
}

// TokenSigner issues and validates HS256 session tokens.
type TokenSigner struct {
	secret []byte
	now    func() time.Time
}

func NewTokenSigner(secret string) *TokenSigner {
	return &TokenSigner{secret: []byte(secret), now: time.Now}
}

// Sign returns a token for the session valid for ttl.
func (s *TokenSigner) Sign(sessionID, username string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		SessionID: sessionID,
		Username:  username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Parse validates signature, algorithm and expiry.
func (s *TokenSigner) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, apperr.Wrap(err, apperr.Authentication, apperr.ErrSessionExpired.Message)
	}
	if err != nil {
		return nil, apperr.Wrap(err, apperr.Authentication, apperr.ErrInvalidToken.Message)
	}
	if !parsed.Valid || claims.SessionID == "" || claims.Username == "" {
		return nil, apperr.ErrInvalidToken
	}
	return claims, nil
}
