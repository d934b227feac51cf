package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareUserDefaults(t *testing.T) {
	t.Run("derives id from email", func(t *testing.T) {
		a := &User{Email: "alice@studio.test"}
		b := &User{Email: "alice@studio.test"}

		prepareUserDefaults(a)
		prepareUserDefaults(b)

		require.NotEqual(t, uuid.Nil, a.ID)
		assert.Equal(t, a.ID, b.ID, "same email should derive the same id")
	})

	t.Run("different emails derive different ids", func(t *testing.T) {
		a := &User{Email: "alice@studio.test"}
		b := &User{Email: "bob@studio.test"}

		prepareUserDefaults(a)
		prepareUserDefaults(b)

		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("keeps a provided id", func(t *testing.T) {
		id := uuid.New()
		record := &User{ID: id, Email: "alice@studio.test"}

		prepareUserDefaults(record)

		assert.Equal(t, id, record.ID)
	})

	t.Run("normalizes email", func(t *testing.T) {
		record := &User{Email: "  Alice@Studio.Test "}

		prepareUserDefaults(record)

		assert.Equal(t, "alice@studio.test", record.Email)
	})

	t.Run("normalized emails derive the same id", func(t *testing.T) {
		a := &User{Email: "Alice@Studio.Test"}
		b := &User{Email: "alice@studio.test"}

		prepareUserDefaults(a)
		prepareUserDefaults(b)

		assert.Equal(t, a.ID, b.ID)
	})
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "sqlite unique index",
			err:  errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)"),
			want: true,
		},
		{
			name: "postgres unique index",
			err:  errors.New(`ERROR: duplicate key value violates unique constraint "users_email_key" (SQLSTATE=23505)`),
			want: true,
		},
		{
			name: "unrelated error",
			err:  errors.New("database is locked"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUniqueViolation(tt.err))
		})
	}
}
