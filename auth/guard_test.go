package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vinyasa/studio/auth"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name      string
		principal *auth.Principal
		ownerID   string
		wantErr   error
	}{
		{
			name:      "nil principal is denied",
			principal: nil,
			ownerID:   "user-1",
			wantErr:   auth.ErrNotResourceOwner,
		},
		{
			name:      "owner is allowed",
			principal: &auth.Principal{UserID: "user-1"},
			ownerID:   "user-1",
			wantErr:   nil,
		},
		{
			name:      "non owner is denied",
			principal: &auth.Principal{UserID: "user-2"},
			ownerID:   "user-1",
			wantErr:   auth.ErrNotResourceOwner,
		},
		{
			name:      "admin may act on anyone",
			principal: &auth.Principal{UserID: "user-2", Admin: true},
			ownerID:   "user-1",
			wantErr:   nil,
		},
		{
			name:      "empty owner id is denied even for the owner of nothing",
			principal: &auth.Principal{UserID: ""},
			ownerID:   "",
			wantErr:   auth.ErrNotResourceOwner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := auth.Authorize(tt.principal, tt.ownerID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthorizeContext(t *testing.T) {
	t.Run("denies a context without a principal", func(t *testing.T) {
		err := auth.AuthorizeContext(context.Background(), "user-1")
		assert.ErrorIs(t, err, auth.ErrNotResourceOwner)
	})

	t.Run("allows the bound principal", func(t *testing.T) {
		ctx := auth.WithContext(context.Background(), &auth.Principal{UserID: "user-1"})
		assert.NoError(t, auth.AuthorizeContext(ctx, "user-1"))
	})

	t.Run("denies a different bound principal", func(t *testing.T) {
		ctx := auth.WithContext(context.Background(), &auth.Principal{UserID: "user-2"})
		assert.ErrorIs(t, auth.AuthorizeContext(ctx, "user-1"), auth.ErrNotResourceOwner)
	})
}
