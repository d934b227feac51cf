package httpapi

import (
	"context"

	"github.com/google/uuid"

	"github.com/vinyasa/studio/store"
)

// UserStore is the slice of the users repository the HTTP surface needs.
type UserStore interface {
	Register(ctx context.Context, user *store.User) (*store.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*store.User, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// SessionStore is the slice of the sessions repository the HTTP surface
// needs.
type SessionStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*store.Session, error)
	List(ctx context.Context) ([]*store.Session, error)
	Create(ctx context.Context, session *store.Session) (*store.Session, error)
	Update(ctx context.Context, session *store.Session) (*store.Session, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// TeacherStore is the slice of the teachers repository the HTTP surface
// needs.
type TeacherStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*store.Teacher, error)
	List(ctx context.Context) ([]*store.Teacher, error)
}

// RosterManager mutates session rosters.
type RosterManager interface {
	AddParticipant(ctx context.Context, sessionID, userID uuid.UUID) error
	RemoveParticipant(ctx context.Context, sessionID, userID uuid.UUID) error
}
