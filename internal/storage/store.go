// Package storage provides abstractions for roster state storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/equalsplit/internal/models"
)

var (
	// ErrRosterNotFound is returned when no roster exists for an ID.
	ErrRosterNotFound = errors.New("roster not found")

	// ErrIndexOutOfRange is returned when removing a participant position that does not exist.
	ErrIndexOutOfRange = errors.New("participant index out of range")
)

// Store defines the interface for roster storage operations.
// This abstraction keeps all mutable participant state out of the calculator
// and the service layer. Implementations must be safe for concurrent use and
// must return copies, never their internal rosters.
type Store interface {
	// CreateRoster registers a new roster.
	// If roster.ID is empty the store assigns one. If a roster with the same ID
	// already exists, it is left untouched and returned.
	CreateRoster(ctx context.Context, roster *models.Roster) (*models.Roster, error)

	// GetRoster retrieves a roster by its ID.
	// Returns ErrRosterNotFound if the roster does not exist.
	GetRoster(ctx context.Context, rosterID string) (*models.Roster, error)

	// AddParticipant appends a participant to the end of the roster.
	// Returns models.ErrDuplicateName if the roster already has someone by that name.
	AddParticipant(ctx context.Context, rosterID string, p models.Participant) (*models.Roster, error)

	// RemoveParticipant removes the participant at the given position and
	// returns the updated roster along with the removed participant.
	// Returns ErrIndexOutOfRange for a position outside the list.
	RemoveParticipant(ctx context.Context, rosterID string, index int) (*models.Roster, models.Participant, error)

	// ClearRoster removes every participant but keeps the roster.
	ClearRoster(ctx context.Context, rosterID string) (*models.Roster, error)

	// DeleteRoster removes the roster entirely.
	DeleteRoster(ctx context.Context, rosterID string) error

	// Close releases any resources held by the store.
	Close() error
}
