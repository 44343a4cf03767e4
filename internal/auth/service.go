package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ayush/employee-admin/internal/apperr"
	"github.com/ayush/employee-admin/internal/models"
)

// ErrInvalidCredentials is returned for every failed login, whatever the cause.
var ErrInvalidCredentials = apperr.New(apperr.Authentication, "invalid credentials")

// dummyHash is compared against when the username is unknown so that a miss costs
// the same as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password"), bcrypt.DefaultCost)

// CredentialStore defines the lookup the gate needs from credential persistence.
type CredentialStore interface {
	FindByUsername(ctx context.Context, username string) (*models.Credential, error)
}

// Sessions is the server-side session table.
type Sessions interface {
	Create(ctx context.Context, sess Session, ttl time.Duration) (string, error)
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

type tokenSigner interface {
	Sign(sessionID, username string, ttl time.Duration) (string, error)
	Parse(token string) (*Claims, error)
}

// Identity is the authenticated principal of a request.
type Identity struct {
	Username  string
	SessionID string
}

// Gate issues and verifies session tokens.
type Gate struct {
	creds    CredentialStore
	sessions Sessions
	tokens   tokenSigner
	ttl      time.Duration
	now      func() time.Time
}

func NewGate(creds CredentialStore, sessions Sessions, tokens tokenSigner, ttl time.Duration) *Gate {
	return &Gate{creds: creds, sessions: sessions, tokens: tokens, ttl: ttl, now: time.Now}
}

// TTL is the lifetime of issued sessions.
func (g *Gate) TTL() time.Duration { return g.ttl }

// Login checks username/password and opens a new session bound to userAgent.
// Every failure is reported as ErrInvalidCredentials; the cause stays in the chain.
func (g *Gate) Login(ctx context.Context, username, password, userAgent string) (string, error) {
	cred, err := g.creds.FindByUsername(ctx, username)
	if err != nil {
		bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return "", loginFailure(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return "", loginFailure(err)
	}

	sid, err := g.sessions.Create(ctx, Session{
		Username:    cred.Username,
		UserAgent:   userAgent,
		Fingerprint: cred.Fingerprint(),
		CreatedAt:   g.now(),
	}, g.ttl)
	if err != nil {
		return "", loginFailure(err)
	}

	token, err := g.tokens.Sign(sid, cred.Username, g.ttl)
	if err != nil {
		if derr := g.sessions.Delete(ctx, sid); derr != nil {
			zerolog.Ctx(ctx).Warn().Err(derr).Str("username", cred.Username).Msg("session cleanup failed")
		}
		return "", loginFailure(err)
	}
	return token, nil
}

// Verify accepts token only while its session exists, the account still exists with
// the same password, and the request comes from the user agent that logged in.
func (g *Gate) Verify(ctx context.Context, token, userAgent string) (*Identity, error) {
	if token == "" {
		return nil, apperr.New(apperr.Authentication, "missing session cookie")
	}
	claims, err := g.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	sess, err := g.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, authFailure(err, "unknown session")
	}
	if sess.Username != claims.Username {
		return nil, apperr.New(apperr.Authentication, "session user mismatch")
	}

	cred, err := g.creds.FindByUsername(ctx, sess.Username)
	if err != nil {
		return nil, authFailure(err, "account unavailable")
	}
	if cred.Username != claims.Username {
		return nil, apperr.New(apperr.Authentication, "account mismatch")
	}
	if subtle.ConstantTimeCompare([]byte(cred.Fingerprint()), []byte(sess.Fingerprint)) != 1 {
		return nil, apperr.New(apperr.Authentication, "credentials changed")
	}
	if sess.UserAgent != userAgent {
		return nil, apperr.New(apperr.Authentication, "user agent mismatch")
	}

	return &Identity{Username: claims.Username, SessionID: claims.SessionID}, nil
}

// Logout ends the session of id.
func (g *Gate) Logout(ctx context.Context, id *Identity) error {
	if err := g.sessions.Delete(ctx, id.SessionID); err != nil {
		return fmt.Errorf("logout %s: %w", id.Username, err)
	}
	return nil
}

func loginFailure(cause error) error {
	return &apperr.Error{Kind: apperr.Authentication, Message: ErrInvalidCredentials.Message, Err: cause}
}

// authFailure reclassifies store errors met during verification: any failure to
// prove the session is an authentication failure, but the cause is kept for logs.
func authFailure(cause error, msg string) error {
	var e *apperr.Error
	if errors.As(cause, &e) && e.Kind == apperr.Authentication {
		return cause
	}
	return apperr.Wrap(cause, apperr.Authentication, msg)
}
