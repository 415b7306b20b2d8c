// Package guard decides whether a route transition proceeds: admin paths
// need an authenticated session, everything else is open.
package guard

import (
	"context"
	"errors"
	"log"
	"strings"

	"vitrina/models"
	"vitrina/repository"
)

const (
	// AdminPrefix is the root of the gated subtree
	AdminPrefix = "/admin"
	// LoginPath is where unauthenticated admin requests are sent
	LoginPath = "/login"
)

// State is the outcome of a transition
type State int

const (
	StatePending State = iota
	StateAllowed
	StateRedirected
)

func (s State) String() string {
	switch s {
	case StateAllowed:
		return "allowed"
	case StateRedirected:
		return "redirected"
	default:
		return "pending"
	}
}

// Transition is one route change being resolved
type Transition struct {
	Path     string
	State    State
	Location string
	Session  *models.Session
}

// SessionLookup finds the session for an opaque token
type SessionLookup interface {
	GetSession(ctx context.Context, token string) (*models.Session, error)
}

// Guard resolves transitions against the session store
type Guard struct {
	sessions SessionLookup
}

// New creates a Guard
func New(sessions SessionLookup) *Guard {
	return &Guard{sessions: sessions}
}

// IsAdminPath reports whether path is /admin or below it
func IsAdminPath(path string) bool {
	return path == AdminPrefix || strings.HasPrefix(path, AdminPrefix+"/")
}

// Resolve moves a transition for path out of the pending state. Admin paths
// without a session are redirected to LoginPath; all other paths are allowed.
func (g *Guard) Resolve(ctx context.Context, path, token string) Transition {
	t := Transition{Path: path, State: StatePending}

	if !IsAdminPath(path) {
		t.State = StateAllowed
		return t
	}

	if session := g.lookup(ctx, token); session != nil {
		t.State = StateAllowed
		t.Session = session
		return t
	}

	t.State = StateRedirected
	t.Location = LoginPath
	return t
}

// lookup returns nil when there is no usable session; lookup failures count
// as no session
func (g *Guard) lookup(ctx context.Context, token string) *models.Session {
	if token == "" {
		return nil
	}
	session, err := g.sessions.GetSession(ctx, token)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("❌ guard: session lookup failed: %v", err)
		}
		return nil
	}
	return session
}
