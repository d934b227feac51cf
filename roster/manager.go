package roster

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/vinyasa/studio/auth"
	"github.com/vinyasa/studio/store"
)

// SessionStore is the slice of the sessions repository the roster needs.
type SessionStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*store.Session, error)
	ParticipantIDs(ctx context.Context, sessionID uuid.UUID) ([]uuid.UUID, error)
	ReplaceRosterTx(ctx context.Context, tx bun.IDB, sessionID uuid.UUID, userIDs []uuid.UUID) error
}

// UserStore is the slice of the users repository the roster needs.
type UserStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*store.User, error)
}

// TxRunner runs a function inside a database transaction.
type TxRunner interface {
	RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error
}

// Manager mutates session rosters. It guarantees that a user appears on a
// roster at most once and that both the session and, for additions, the
// user exist before anything is written.
//
// Roster persistence is a full replace of the participant collection, so a
// plain read-modify-write races under concurrent writers. Mutations are
// serialized per session id: the keyed mutex is held across the read, the
// membership check, and the transactional write.
type Manager struct {
	sessions SessionStore
	users    UserStore
	tx       TxRunner
	logger   auth.Logger

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewManager creates a roster manager on top of the given repositories.
func NewManager(sessions SessionStore, users UserStore, tx TxRunner, logger auth.Logger) *Manager {
	return &Manager{
		sessions: sessions,
		users:    users,
		tx:       tx,
		logger:   logger,
		locks:    make(map[uuid.UUID]*sync.Mutex),
	}
}

// AddParticipant appends a user to a session roster. Check order is fixed:
// session existence, then user existence, then duplicate membership.
func (m *Manager) AddParticipant(ctx context.Context, sessionID, userID uuid.UUID) error {
	lock := m.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	if _, err := m.sessions.FindByID(ctx, sessionID); err != nil {
		return err
	}

	if _, err := m.users.FindByID(ctx, userID); err != nil {
		return err
	}

	participants, err := m.sessions.ParticipantIDs(ctx, sessionID)
	if err != nil {
		return err
	}

	if containsID(participants, userID) {
		return ErrAlreadyParticipating
	}

	participants = append(participants, userID)

	if err := m.saveRoster(ctx, sessionID, participants); err != nil {
		return err
	}

	m.logger.Info("added participant %s to session %s", userID, sessionID)
	return nil
}

// RemoveParticipant takes a user off a session roster. Only session
// existence and membership are validated; the user record itself is not
// re-checked on removal.
func (m *Manager) RemoveParticipant(ctx context.Context, sessionID, userID uuid.UUID) error {
	lock := m.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	if _, err := m.sessions.FindByID(ctx, sessionID); err != nil {
		return err
	}

	participants, err := m.sessions.ParticipantIDs(ctx, sessionID)
	if err != nil {
		return err
	}

	if !containsID(participants, userID) {
		return ErrNotParticipating
	}

	remaining := make([]uuid.UUID, 0, len(participants)-1)
	for _, id := range participants {
		if id != userID {
			remaining = append(remaining, id)
		}
	}

	if err := m.saveRoster(ctx, sessionID, remaining); err != nil {
		return err
	}

	m.logger.Info("removed participant %s from session %s", userID, sessionID)
	return nil
}

func (m *Manager) saveRoster(ctx context.Context, sessionID uuid.UUID, userIDs []uuid.UUID) error {
	return m.tx.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return m.sessions.ReplaceRosterTx(ctx, tx, sessionID, userIDs)
	})
}

// sessionLock returns the mutex for a session id, creating it on first
// use. Entries are never evicted; the map is bounded by the number of
// sessions ever mutated in this process.
func (m *Manager) sessionLock(sessionID uuid.UUID) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	lock, ok := m.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[sessionID] = lock
	}
	return lock
}

func containsID(ids []uuid.UUID, target uuid.UUID) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}
