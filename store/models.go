package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the user model
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	FirstName     string     `bun:"first_name,notnull" json:"first_name,omitempty"`
	LastName      string     `bun:"last_name,notnull" json:"last_name,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash" json:"-"`
	Admin         bool       `bun:"admin" json:"admin"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// Teacher is an instructor that leads scheduled sessions
type Teacher struct {
	bun.BaseModel `bun:"table:teachers,alias:tch"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	FirstName     string     `bun:"first_name,notnull" json:"first_name,omitempty"`
	LastName      string     `bun:"last_name,notnull" json:"last_name,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Session is a scheduled class with a roster of participants. The roster
// never contains the same user twice; the unique index on session_users
// backs up what the roster manager enforces.
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:ses"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	Date          time.Time  `bun:"date,notnull" json:"date,omitempty"`
	Description   string     `bun:"description" json:"description,omitempty"`
	TeacherID     *uuid.UUID `bun:"teacher_id,type:uuid,nullzero" json:"teacher_id,omitempty"`
	Teacher       *Teacher   `bun:"rel:belongs-to,join:teacher_id=id" json:"teacher,omitempty"`
	Users         []*User    `bun:"m2m:session_users,join:Session=User" json:"users,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// SessionUser is the join row behind a session roster entry. Position keeps
// the roster ordered by join time.
type SessionUser struct {
	bun.BaseModel `bun:"table:session_users,alias:su"`
	SessionID     uuid.UUID `bun:"session_id,pk,type:uuid"`
	Session       *Session  `bun:"rel:belongs-to,join:session_id=id"`
	UserID        uuid.UUID `bun:"user_id,pk,type:uuid"`
	User          *User     `bun:"rel:belongs-to,join:user_id=id"`
	Position      int       `bun:"position,notnull"`
}
