package store

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/vinyasa/studio/auth"
)

// UserProvider adapts the user directory to the auth.IdentityProvider
// contract: credential verification for login, identifier lookup for the
// identity filter.
type UserProvider struct {
	store  Users
	logger auth.Logger
}

// NewUserProvider will create a new UserProvider
func NewUserProvider(store Users) *UserProvider {
	return &UserProvider{store: store}
}

func (u *UserProvider) WithLogger(l auth.Logger) *UserProvider {
	u.logger = l
	return u
}

var _ auth.IdentityProvider = (*UserProvider)(nil)

// VerifyIdentity will find the user, compare the password, and return the
// identity. Unknown emails fail the same way as bad passwords so callers
// cannot probe which accounts exist.
func (u *UserProvider) VerifyIdentity(ctx context.Context, identifier, password string) (auth.Identity, error) {
	user, err := u.findByIdentifier(ctx, identifier)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return nil, auth.ErrMismatchedHashAndPassword
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve user during verification")
	}

	if err := auth.ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, auth.ErrMismatchedHashAndPassword
	}

	return identityFromUser(user), nil
}

// FindIdentityByIdentifier resolves an identity without checking credentials.
func (u *UserProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (auth.Identity, error) {
	user, err := u.findByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}

	return identityFromUser(user), nil
}

func (u *UserProvider) findByIdentifier(ctx context.Context, identifier string) (*User, error) {
	if id, err := uuid.Parse(identifier); err == nil {
		return u.store.FindByID(ctx, id)
	}

	if IsEmail(identifier) {
		return u.store.FindByEmail(ctx, identifier)
	}

	return nil, ErrUserNotFound
}

type authIdentity struct {
	id        string
	email     string
	firstName string
	lastName  string
	admin     bool
}

func (a authIdentity) ID() string        { return a.id }
func (a authIdentity) Email() string     { return a.email }
func (a authIdentity) FirstName() string { return a.firstName }
func (a authIdentity) LastName() string  { return a.lastName }
func (a authIdentity) IsAdmin() bool     { return a.admin }

var _ auth.Identity = authIdentity{}

func identityFromUser(user *User) auth.Identity {
	return authIdentity{
		id:        user.ID.String(),
		email:     user.Email,
		firstName: user.FirstName,
		lastName:  user.LastName,
		admin:     user.Admin,
	}
}
