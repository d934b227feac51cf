package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vinyasa/studio/auth"
)

type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) VerifyIdentity(ctx context.Context, identifier, password string) (auth.Identity, error) {
	args := m.Called(ctx, identifier, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(auth.Identity), args.Error(1)
}

func (m *MockIdentityProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (auth.Identity, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(auth.Identity), args.Error(1)
}

type testAuthConfig struct{}

func (testAuthConfig) GetSigningKey() string    { return string(signingKey) }
func (testAuthConfig) GetSigningMethod() string { return "HS256" }
func (testAuthConfig) GetContextKey() string    { return "user" }
func (testAuthConfig) GetTokenExpiration() int  { return 1 }
func (testAuthConfig) GetTokenLookup() string   { return "header:Authorization" }
func (testAuthConfig) GetAuthScheme() string    { return "Bearer" }
func (testAuthConfig) GetIssuer() string        { return "studio" }
func (testAuthConfig) GetAudience() []string    { return nil }

func TestLogin(t *testing.T) {
	identity := testIdentity{id: "user-1", admin: true}

	t.Run("mints a token for valid credentials", func(t *testing.T) {
		provider := new(MockIdentityProvider)
		provider.On("VerifyIdentity", mock.Anything, "margot@studio.test", "test!1234").
			Return(identity, nil)

		auther := auth.NewAuthenticator(provider, testAuthConfig{})

		token, got, err := auther.Login(context.Background(), "margot@studio.test", "test!1234")
		require.NoError(t, err)
		require.NotEmpty(t, token)
		assert.Equal(t, "user-1", got.ID())

		claims, err := auther.TokenService().Validate(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.Subject())
		assert.True(t, claims.IsAdmin())

		provider.AssertExpectations(t)
	})

	t.Run("propagates credential failures", func(t *testing.T) {
		provider := new(MockIdentityProvider)
		provider.On("VerifyIdentity", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, auth.ErrMismatchedHashAndPassword)

		auther := auth.NewAuthenticator(provider, testAuthConfig{})

		_, _, err := auther.Login(context.Background(), "margot@studio.test", "wrong")
		assert.ErrorIs(t, err, auth.ErrMismatchedHashAndPassword)
	})

	t.Run("rejects a provider that returns no identity", func(t *testing.T) {
		provider := new(MockIdentityProvider)
		provider.On("VerifyIdentity", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, nil)

		auther := auth.NewAuthenticator(provider, testAuthConfig{})

		_, _, err := auther.Login(context.Background(), "margot@studio.test", "test!1234")
		assert.ErrorIs(t, err, auth.ErrIdentityNotFound)
	})
}

func TestIdentityFromSubject(t *testing.T) {
	t.Run("resolves the subject", func(t *testing.T) {
		provider := new(MockIdentityProvider)
		provider.On("FindIdentityByIdentifier", mock.Anything, "user-1").
			Return(testIdentity{id: "user-1"}, nil)

		auther := auth.NewAuthenticator(provider, testAuthConfig{})

		got, err := auther.IdentityFromSubject(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, "user-1", got.ID())
	})

	t.Run("propagates a missing account", func(t *testing.T) {
		provider := new(MockIdentityProvider)
		provider.On("FindIdentityByIdentifier", mock.Anything, "user-1").
			Return(nil, auth.ErrIdentityNotFound)

		auther := auth.NewAuthenticator(provider, testAuthConfig{})

		_, err := auther.IdentityFromSubject(context.Background(), "user-1")
		assert.ErrorIs(t, err, auth.ErrIdentityNotFound)
	})
}
