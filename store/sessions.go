package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Sessions is the session directory. Roster rows are written through
// ReplaceRosterTx as a full replace of the participant collection, which is
// why the roster manager serializes writers per session.
type Sessions interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Session, error)
	List(ctx context.Context) ([]*Session, error)
	Create(ctx context.Context, session *Session) (*Session, error)
	Update(ctx context.Context, session *Session) (*Session, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error

	ParticipantIDs(ctx context.Context, sessionID uuid.UUID) ([]uuid.UUID, error)
	ReplaceRosterTx(ctx context.Context, tx bun.IDB, sessionID uuid.UUID, userIDs []uuid.UUID) error
}

type sessions struct {
	db *bun.DB
}

var _ Sessions = (*sessions)(nil)

func NewSessionsRepository(db *bun.DB) Sessions {
	return &sessions{db: db}
}

func (r *sessions) FindByID(ctx context.Context, id uuid.UUID) (*Session, error) {
	record := &Session{}
	err := r.db.NewSelect().
		Model(record).
		Relation("Teacher").
		Relation("Users").
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return record, nil
}

func (r *sessions) List(ctx context.Context) ([]*Session, error) {
	var records []*Session
	err := r.db.NewSelect().
		Model(&records).
		Relation("Teacher").
		Relation("Users").
		Order("date ASC").
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return []*Session{}, nil
		}
		return nil, err
	}
	return records, nil
}

func (r *sessions) Create(ctx context.Context, session *Session) (*Session, error) {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}

	_, err := r.db.NewInsert().
		Model(session).
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (r *sessions) Update(ctx context.Context, session *Session) (*Session, error) {
	now := time.Now()
	session.UpdatedAt = &now

	res, err := r.db.NewUpdate().
		Model(session).
		Column("name", "date", "description", "teacher_id", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (r *sessions) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*SessionUser)(nil)).
			Where("session_id = ?", id).
			Exec(ctx); err != nil {
			return err
		}

		res, err := tx.NewDelete().
			Model((*Session)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return err
		}

		if affected, err := res.RowsAffected(); err == nil && affected == 0 {
			return ErrSessionNotFound
		}
		return nil
	})
}

// ParticipantIDs returns the roster for a session ordered by join position.
func (r *sessions) ParticipantIDs(ctx context.Context, sessionID uuid.UUID) ([]uuid.UUID, error) {
	var rows []SessionUser
	err := r.db.NewSelect().
		Model(&rows).
		Where("session_id = ?", sessionID).
		Order("position ASC").
		Scan(ctx)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.UserID)
	}
	return ids, nil
}

// ReplaceRosterTx writes the whole participant collection back for a
// session. Callers hold the per-session lock across the surrounding
// read-modify-write.
func (r *sessions) ReplaceRosterTx(ctx context.Context, tx bun.IDB, sessionID uuid.UUID, userIDs []uuid.UUID) error {
	if _, err := tx.NewDelete().
		Model((*SessionUser)(nil)).
		Where("session_id = ?", sessionID).
		Exec(ctx); err != nil {
		return err
	}

	if len(userIDs) == 0 {
		return nil
	}

	rows := make([]SessionUser, 0, len(userIDs))
	for i, userID := range userIDs {
		rows = append(rows, SessionUser{
			SessionID: sessionID,
			UserID:    userID,
			Position:  i,
		})
	}

	_, err := tx.NewInsert().
		Model(&rows).
		Exec(ctx)
	return err
}
