package viewsync

import (
	"github.com/google/uuid"
)

// SessionID uniquely identifies an attached view (e.g., SSH connection).
type SessionID string

// NewSessionID returns a fresh random session id.
func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// Short returns the first eight characters of the id for display.
func (id SessionID) Short() string {
	if len(id) > 8 {
		return string(id[:8])
	}
	return string(id)
}

// Role is what a view shows.
type Role int

const (
	// RoleController shows the fogged player view and sends input.
	RoleController Role = iota

	// RoleMap shows the whole maze. In two-player modes it also controls
	// player 2.
	RoleMap

	// RoleSpectator shows the whole maze and sends nothing.
	RoleSpectator
)

// String returns a human-readable name for the role.
func (r Role) String() string {
	switch r {
	case RoleController:
		return "controller"
	case RoleMap:
		return "map"
	case RoleSpectator:
		return "spectator"
	default:
		return "unknown"
	}
}
