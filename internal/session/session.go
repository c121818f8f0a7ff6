// Package session holds the per-session identity flags and the gate
// policy over them. Flags only ever move from false to true: there is no
// logout, and nothing here survives the process.
package session

import (
	"time"

	"github.com/google/uuid"
)

// Flags are the session's connection/login booleans. Both start false and
// are set only by the explicit connect/login actions.
type Flags struct {
	WalletConnected bool
	SocialLoggedIn  bool
}

// CanParticipate gates the mission participation modal.
func (f Flags) CanParticipate() bool { return f.WalletConnected }

// CanViewFeed gates interactive (unobscured) feed rendering.
func (f Flags) CanViewFeed() bool { return f.SocialLoggedIn }

// CanLike gates the feed like toggle. A closed gate makes the toggle
// inert, never an error.
func (f Flags) CanLike() bool { return f.SocialLoggedIn }

// Session is the process-wide session context, created at startup and torn
// down with the process.
type Session struct {
	ID        string
	StartedAt time.Time
	Flags     Flags
}

// New starts a fresh session with both gates closed.
func New() *Session {
	return &Session{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
	}
}

// ConnectWallet marks the wallet as connected. Idempotent, never fails.
func (s *Session) ConnectWallet() {
	s.Flags.WalletConnected = true
}

// SocialLogin marks the viewer as logged in. Idempotent, never fails.
func (s *Session) SocialLogin() {
	s.Flags.SocialLoggedIn = true
}
