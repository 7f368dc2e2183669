// Package memory provides an in-memory implementation of the storage.Store interface.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/equalsplit/internal/models"
	"github.com/mmynk/equalsplit/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

type entry struct {
	roster  *models.Roster
	touched time.Time
}

// Store keeps rosters in process memory.
// Rosters that have not been read or written for longer than the TTL are
// evicted by a background reaper.
type Store struct {
	mu      sync.Mutex
	rosters map[string]*entry
	ttl     time.Duration
	stopCh  chan struct{}
	once    sync.Once
}

// New creates a Store. A positive ttl starts the reaper goroutine; a zero or
// negative ttl keeps rosters until they are deleted.
func New(ttl time.Duration) *Store {
	s := &Store{
		rosters: make(map[string]*entry),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}
	if ttl > 0 {
		go s.reaper()
	}
	return s
}

func (s *Store) reaper() {
	t := time.NewTicker(s.ttl)
	defer t.Stop()
	for {
		select {
		case <-s.stopCh:
			return
		case now := <-t.C:
			if n := s.evictIdle(now); n > 0 {
				slog.Debug("Evicted idle rosters", "count", n)
			}
		}
	}
}

// evictIdle drops rosters untouched for longer than the TTL and reports how many were removed.
func (s *Store) evictIdle(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.rosters {
		if now.Sub(e.touched) > s.ttl {
			delete(s.rosters, id)
			n++
		}
	}
	return n
}

// Len returns the number of rosters currently held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rosters)
}

// Close stops the reaper. It is safe to call more than once.
func (s *Store) Close() error {
	s.once.Do(func() { close(s.stopCh) })
	return nil
}

// CreateRoster registers a roster, assigning an ID if none is set.
func (s *Store) CreateRoster(ctx context.Context, roster *models.Roster) (*models.Roster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if roster == nil {
		roster = &models.Roster{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if roster.ID != "" {
		if e, ok := s.rosters[roster.ID]; ok {
			e.touched = now
			return e.roster.Clone(), nil
		}
	}

	r := roster.Clone()
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt == 0 {
		r.CreatedAt = now.Unix()
	}
	r.UpdatedAt = r.CreatedAt
	s.rosters[r.ID] = &entry{roster: r, touched: now}
	return r.Clone(), nil
}

// GetRoster retrieves a copy of the roster.
func (s *Store) GetRoster(ctx context.Context, rosterID string) (*models.Roster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(rosterID)
	if err != nil {
		return nil, err
	}
	e.touched = time.Now()
	return e.roster.Clone(), nil
}

// AddParticipant appends a participant in insertion order.
func (s *Store) AddParticipant(ctx context.Context, rosterID string, p models.Participant) (*models.Roster, error) {
	return s.update(ctx, rosterID, func(r *models.Roster) error {
		for _, existing := range r.Participants {
			if existing.Name == p.Name {
				return fmt.Errorf("%s: %w", p.Name, models.ErrDuplicateName)
			}
		}
		r.Participants = append(r.Participants, p)
		return nil
	})
}

// RemoveParticipant removes the participant at index, keeping the order of the rest.
func (s *Store) RemoveParticipant(ctx context.Context, rosterID string, index int) (*models.Roster, models.Participant, error) {
	var removed models.Participant
	r, err := s.update(ctx, rosterID, func(r *models.Roster) error {
		if index < 0 || index >= len(r.Participants) {
			return fmt.Errorf("index %d with %d participants: %w", index, len(r.Participants), storage.ErrIndexOutOfRange)
		}
		removed = r.Participants[index]
		r.Participants = append(r.Participants[:index], r.Participants[index+1:]...)
		return nil
	})
	if err != nil {
		return nil, models.Participant{}, err
	}
	return r, removed, nil
}

// ClearRoster removes all participants.
func (s *Store) ClearRoster(ctx context.Context, rosterID string) (*models.Roster, error) {
	return s.update(ctx, rosterID, func(r *models.Roster) error {
		r.Participants = nil
		return nil
	})
}

// DeleteRoster removes the roster.
func (s *Store) DeleteRoster(ctx context.Context, rosterID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup(rosterID); err != nil {
		return err
	}
	delete(s.rosters, rosterID)
	return nil
}

func (s *Store) update(ctx context.Context, rosterID string, mutate func(*models.Roster) error) (*models.Roster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(rosterID)
	if err != nil {
		return nil, err
	}
	if err := mutate(e.roster); err != nil {
		return nil, err
	}
	now := time.Now()
	e.touched = now
	e.roster.UpdatedAt = now.Unix()
	return e.roster.Clone(), nil
}

// lookup must be called with s.mu held.
func (s *Store) lookup(rosterID string) (*entry, error) {
	e, ok := s.rosters[rosterID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", rosterID, storage.ErrRosterNotFound)
	}
	return e, nil
}
