package entitlement

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vportan/bacbot/internal/storage/snapshot"
)

const (
	// DefaultGrantDuration is the window a plain pro grant covers.
	DefaultGrantDuration = 30 * 24 * time.Hour
	// TrialDuration is the window a trial grant covers. The store does not
	// track whether a user already consumed a trial; once-per-user is a
	// caller convention.
	TrialDuration = 3 * 24 * time.Hour
)

// Record is one user's pro grant. An absent record, or one whose expiry has
// passed, means the free tier. Expired records are never swept; expiry is
// observed lazily on lookup.
type Record struct {
	Until int64 `json:"until"`
}

// Service maps user ids to expiring pro grants, snapshotting the whole record
// set after every mutation.
type Service struct {
	mu      sync.RWMutex
	records map[string]Record
	store   snapshot.Store
	now     func() time.Time
}

func NewService(store snapshot.Store) *Service {
	s := &Service{
		records: make(map[string]Record),
		store:   store,
		now:     time.Now,
	}

	if err := store.Load(&s.records); err != nil {
		log.Warn().Err(err).Msg("Failed to load entitlement snapshot - starting empty")
	}

	return s
}

// IsEntitled reports whether the user has an unexpired grant. It never
// mutates state: expired records stay in place and simply stop counting.
func (s *Service) IsEntitled(userID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[userID]
	return ok && rec.Until > s.now().Unix()
}

// ProUntil returns the grant expiry for the user, if a record exists. The
// returned time may already be in the past.
func (s *Service) ProUntil(userID string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[userID]
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(rec.Until, 0), true
}

// Grant starts a grant window of the given duration from now, overwriting any
// existing record. Granting to an already-entitled user resets the clock
// rather than stacking remaining time.
func (s *Service) Grant(userID string, duration time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[userID] = Record{Until: s.now().Add(duration).Unix()}
	if err := s.store.Save(s.records); err != nil {
		return fmt.Errorf("failed to persist entitlement grant: %w", err)
	}
	return nil
}

// Revoke deletes any record for the user. Revoking a user with no record is a
// no-op.
func (s *Service) Revoke(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, userID)
	if err := s.store.Save(s.records); err != nil {
		return fmt.Errorf("failed to persist entitlement revoke: %w", err)
	}
	return nil
}

// StartTrial grants the fixed trial window.
func (s *Service) StartTrial(userID string) error {
	return s.Grant(userID, TrialDuration)
}
