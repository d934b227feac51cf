package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Teachers is the read-only instructor directory.
type Teachers interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Teacher, error)
	List(ctx context.Context) ([]*Teacher, error)
}

type teachers struct {
	db *bun.DB
}

var _ Teachers = (*teachers)(nil)

func NewTeachersRepository(db *bun.DB) Teachers {
	return &teachers{db: db}
}

func (r *teachers) FindByID(ctx context.Context, id uuid.UUID) (*Teacher, error) {
	record := &Teacher{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}
	return record, nil
}

func (r *teachers) List(ctx context.Context) ([]*Teacher, error) {
	var records []*Teacher
	err := r.db.NewSelect().
		Model(&records).
		Order("last_name ASC").
		Scan(ctx)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	return records, nil
}
