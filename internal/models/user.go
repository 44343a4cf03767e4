package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Credential is a login account. PasswordHash is a bcrypt hash and is never serialized.
type Credential struct {
	ID           string    `json:"-" bson:"_id,omitempty"`
	Username     string    `json:"username" bson:"username"`
	PasswordHash string    `json:"-" bson:"password"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// Fingerprint identifies the current password of the credential without exposing it.
// Any password change yields a different fingerprint.
func (c *Credential) Fingerprint() string {
	sum := sha256.Sum256([]byte(c.Username + "\x00" + c.PasswordHash))
	return hex.EncodeToString(sum[:])
}

// LoginRequest is the JSON body for POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned by POST /login and GET /session.
type LoginResponse struct {
	Auth       bool   `json:"auth"`
	Name       string `json:"name,omitempty"`
	RedirectTo string `json:"redirect_to,omitempty"`
}
